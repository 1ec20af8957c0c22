package envstruct_test

import (
	"testing"
	"time"

	"github.com/jvirtane/barfeud/internal/envstruct"
	"github.com/stretchr/testify/require"
)

func TestPopulate(t *testing.T) {
	type args struct {
		v         any
		lookupEnv func(string) (string, bool)
	}
	tests := []struct {
		name    string
		args    args
		want    any
		wantErr error
	}{
		{
			name: "nil",
			args: args{
				v:         nil,
				lookupEnv: func(_ string) (string, bool) { return "", false },
			},
			want:    nil,
			wantErr: envstruct.ErrInvalidValue,
		},
		{
			name: "not pointer",
			args: args{
				v:         struct{}{},
				lookupEnv: func(_ string) (string, bool) { return "", false },
			},
			want:    nil,
			wantErr: envstruct.ErrInvalidValue,
		},
		{
			name: "empty struct",
			args: args{
				v:         &struct{}{},
				lookupEnv: func(_ string) (string, bool) { return "", false },
			},
			want:    &struct{}{},
			wantErr: nil,
		},
		{
			name: "empty env",
			args: args{
				v: &struct { //nolint:exhaustruct // populated later
					EnvVar string `env:"ENV_VAR"`
				}{},
				lookupEnv: func(_ string) (string, bool) { return "", false },
			},
			want:    nil,
			wantErr: envstruct.ErrEnvNotSet,
		},
		{
			name: "env is set",
			args: args{
				v: &struct { //nolint:exhaustruct // populated later
					EnvVar string `env:"ENV_VAR"`
				}{},
				lookupEnv: func(key string) (string, bool) {
					if key == "ENV_VAR" {
						return "value", true
					}
					return "", false
				},
			},
			want: &struct {
				EnvVar string `env:"ENV_VAR"`
			}{EnvVar: "value"},
			wantErr: nil,
		},
		{
			name: "default value",
			args: args{
				v: &struct { //nolint:exhaustruct // populated later
					EnvVar string `env:"ENV_VAR" envDefault:"fallback"`
				}{},
				lookupEnv: func(_ string) (string, bool) { return "", false },
			},
			want: &struct {
				EnvVar string `env:"ENV_VAR" envDefault:"fallback"`
			}{EnvVar: "fallback"},
			wantErr: nil,
		},
		{
			name: "int field",
			args: args{
				v: &struct { //nolint:exhaustruct // populated later
					Threshold int `env:"THRESHOLD" envDefault:"200"`
				}{},
				lookupEnv: func(_ string) (string, bool) { return "", false },
			},
			want: &struct {
				Threshold int `env:"THRESHOLD" envDefault:"200"`
			}{Threshold: 200},
			wantErr: nil,
		},
		{
			name: "invalid int",
			args: args{
				v: &struct { //nolint:exhaustruct // populated later
					Threshold int `env:"THRESHOLD"`
				}{},
				lookupEnv: func(_ string) (string, bool) { return "not-a-number", true },
			},
			want:    nil,
			wantErr: envstruct.ErrInvalidValue,
		},
		{
			name: "bool field",
			args: args{
				v: &struct { //nolint:exhaustruct // populated later
					Debug bool `env:"DEBUG" envDefault:"true"`
				}{},
				lookupEnv: func(_ string) (string, bool) { return "", false },
			},
			want: &struct {
				Debug bool `env:"DEBUG" envDefault:"true"`
			}{Debug: true},
			wantErr: nil,
		},
		{
			name: "duration field",
			args: args{
				v: &struct { //nolint:exhaustruct // populated later
					Tick time.Duration `env:"TICK" envDefault:"1s"`
				}{},
				lookupEnv: func(_ string) (string, bool) { return "", false },
			},
			want: &struct {
				Tick time.Duration `env:"TICK" envDefault:"1s"`
			}{Tick: time.Second},
			wantErr: nil,
		},
		{
			name: "unsupported field type",
			args: args{
				v: &struct { //nolint:exhaustruct // populated later
					Floating float64 `env:"FLOATING"`
				}{},
				lookupEnv: func(_ string) (string, bool) { return "1.5", true },
			},
			want:    nil,
			wantErr: envstruct.ErrInvalidValue,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := envstruct.Populate(tt.args.v, tt.args.lookupEnv)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, tt.args.v)
		})
	}
}
