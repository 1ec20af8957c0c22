package repositories_test

import (
	_ "embed"
	"context"
	"io"
	"testing"

	"github.com/jvirtane/barfeud/internal/sqlite"
	"github.com/jvirtane/barfeud/internal/testhelpers"
)

//go:embed testdata/fixtures.sql
var testFixtures string

// newTestDB creates a new in-memory database with test fixtures loaded.
func newTestDB(t *testing.T) *sqlite.Database {
	t.Helper()
	ctx := context.Background()

	db, err := sqlite.NewDatabase(ctx, ":memory:", testhelpers.NewLogger(io.Discard))
	if err != nil {
		t.Fatal(err)
	}

	if _, err = db.ReadWrite.ExecContext(ctx, testFixtures); err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		if err = db.Close(); err != nil {
			t.Fatal(err)
		}
	})

	return db
}
