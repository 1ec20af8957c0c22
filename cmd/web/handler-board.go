package main

import (
	"net/http"

	"github.com/jvirtane/barfeud/internal/errors"
	"github.com/jvirtane/barfeud/internal/repositories"
	"github.com/jvirtane/barfeud/internal/session"
)

type boardTemplateData struct {
	BaseTemplateData
	Snapshot session.Snapshot
}

// board renders the audience display. It hydrates from the latest snapshot
// and then follows the stream endpoint for live updates.
func (app *application) board(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	var snapshot session.Snapshot
	sess, err := app.games.Get(code)
	switch {
	case err == nil:
		snapshot = sess.CurrentSnapshot()
	case errors.Is(err, session.ErrSessionNotFound):
		// The game may predate a server restart. Fall back to the
		// replicated snapshot so the final board is still visible.
		snapshot, err = app.snapshots.Load(r.Context(), code)
		if errors.Is(err, repositories.ErrSnapshotNotFound) {
			app.notFound(w, r)
			return
		}
		if err != nil {
			app.serverError(w, r, err)
			return
		}
	default:
		app.serverError(w, r, err)
		return
	}

	data := boardTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Snapshot:         snapshot,
	}

	app.render(w, r, http.StatusOK, "board", data)
}
