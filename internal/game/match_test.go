package game_test

import (
	"testing"

	"github.com/jvirtane/barfeud/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	t.Parallel()
	bank := []game.BankEntry{
		{Text: "Budweiser", Points: 45},
		{Text: "Coors", Points: 20},
		{Text: "Miller", Points: 15},
		{Text: "Corona", Points: 10},
		{Text: "Heineken", Points: 5},
	}

	tests := []struct {
		name       string
		raw        string
		wantPoints int
		wantText   string
	}{
		{name: "case and whitespace insensitive", raw: "BUDWEISER ", wantPoints: 45, wantText: "Budweiser"},
		{name: "exact", raw: "Coors", wantPoints: 20, wantText: "Coors"},
		{name: "leading whitespace", raw: "  heineken", wantPoints: 5, wantText: "Heineken"},
		{name: "no fuzzy matching", raw: "bud light", wantPoints: 0, wantText: ""},
		{name: "substring is not a match", raw: "Bud", wantPoints: 0, wantText: ""},
		{name: "empty answer", raw: "", wantPoints: 0, wantText: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := game.Match(tt.raw, bank)
			assert.Equal(t, tt.wantPoints, result.Points)
			if tt.wantText == "" {
				assert.Nil(t, result.Entry)
				return
			}
			require.NotNil(t, result.Entry)
			assert.Equal(t, tt.wantText, result.Entry.Text)
		})
	}
}

func TestBestAnswerIndex(t *testing.T) {
	t.Parallel()

	assert.Equal(t, -1, game.BestAnswerIndex(nil))

	bank := []game.BankEntry{
		{Text: "Darts", Points: 30},
		{Text: "Pool", Points: 50},
		{Text: "Trivia", Points: 50},
	}
	assert.Equal(t, 1, game.BestAnswerIndex(bank), "ties break by bank order")
}

func TestCueForAction(t *testing.T) {
	t.Parallel()

	assert.Equal(t, game.CueCorrect, game.CueForAction(game.ActionRevealAnswer))
	assert.Equal(t, game.CueStrike, game.CueForAction(game.ActionAddStrike))
	assert.Equal(t, game.CueVictory, game.CueForAction(game.ActionDeclareWinner))
	assert.Equal(t, game.CueNone, game.CueForAction(game.Action("unknown")))
}
