package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jvirtane/barfeud/internal/errors"
	"github.com/jvirtane/barfeud/internal/repositories"
)

type homeTemplateData struct {
	BaseTemplateData
	Sets []repositories.QuestionSet
}

func (app *application) home(w http.ResponseWriter, r *http.Request) {
	sets, err := app.questions.ListSets(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	data := homeTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Sets:             sets,
	}

	app.render(w, r, http.StatusOK, "home", data)
}

// joinGame sends a viewer from the home page join form to the board for
// the code they typed.
func (app *application) joinGame(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("code")))
	if code == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/games/%s", code), http.StatusSeeOther)
}

// createGame starts a new game session and makes this browser session its
// host.
func (app *application) createGame(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	fastMoneyQuestions, err := app.questions.FastMoney(ctx)
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "load fast money pack"))
		return
	}

	sess, err := app.games.Create(ctx, fastMoneyQuestions)
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "create game"))
		return
	}

	app.sessionManager.Put(ctx, hostOfSessionKey, sess.Code())

	http.Redirect(w, r, fmt.Sprintf("/games/%s/console", sess.Code()), http.StatusSeeOther)
}
