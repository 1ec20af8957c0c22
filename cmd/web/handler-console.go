package main

import (
	"net/http"

	"github.com/jvirtane/barfeud/internal/errors"
	"github.com/jvirtane/barfeud/internal/game"
	"github.com/jvirtane/barfeud/internal/session"
)

type consoleTemplateData struct {
	BaseTemplateData
	Snapshot  session.Snapshot
	Questions []game.Question
	AIEnabled bool
}

// console renders the host control surface: the question library, the
// board state, and the fast money controls.
func (app *application) console(w http.ResponseWriter, r *http.Request) {
	sess, err := app.games.Get(r.PathValue("code"))
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			app.notFound(w, r)
			return
		}
		app.serverError(w, r, err)
		return
	}

	questions, err := app.questions.ListQuestions(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	data := consoleTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Snapshot:         sess.CurrentSnapshot(),
		Questions:        questions,
		AIEnabled:        app.aiEnabled,
	}

	app.render(w, r, http.StatusOK, "console", data)
}
