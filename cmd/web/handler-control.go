package main

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/jvirtane/barfeud/internal/errors"
	"github.com/jvirtane/barfeud/internal/session"
)

// control dispatches a host action to the game session and redirects back
// to the console. Engine validation failures come back as 422 so a busy
// host notices a mistap instead of silently losing it.
func (app *application) control(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	sess, err := app.games.Get(code)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			app.notFound(w, r)
			return
		}
		app.serverError(w, r, err)
		return
	}

	if err = r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	switch r.PathValue("action") {
	case "select-question":
		question, questionErr := app.questions.GetQuestion(ctx, r.PostForm.Get("question_id"))
		if questionErr != nil {
			app.clientError(w, r, http.StatusBadRequest)
			return
		}
		_, err = sess.SelectQuestion(ctx, question)

	case "reveal-answer":
		answerID, parseErr := strconv.Atoi(r.PostForm.Get("answer_id"))
		if parseErr != nil {
			app.clientError(w, r, http.StatusBadRequest)
			return
		}
		sess.RevealAnswer(ctx, answerID)

	case "add-strike":
		sess.AddStrike(ctx)

	case "reset-strikes":
		sess.ResetStrikes(ctx)

	case "award-points":
		team, parseErr := strconv.Atoi(r.PostForm.Get("team"))
		if parseErr != nil {
			app.clientError(w, r, http.StatusBadRequest)
			return
		}
		sess.AwardPoints(ctx, team)

	case "buzz-in":
		team, parseErr := strconv.Atoi(r.PostForm.Get("team"))
		if parseErr != nil {
			app.clientError(w, r, http.StatusBadRequest)
			return
		}
		sess.SetActiveTeam(ctx, team)

	case "team-names":
		sess.UpdateTeamNames(ctx, r.PostForm.Get("team1"), r.PostForm.Get("team2"))

	case "reset-game":
		sess.ResetGame(ctx)

	case "show-fast-money":
		sess.ShowFastMoney(ctx, r.PostForm.Get("show") == "true")

	case "start-player":
		sess.StartPlayer(ctx, r.PostForm.Get("name"))

	case "submit-answer":
		prompt, parseErr := strconv.Atoi(r.PostForm.Get("prompt"))
		if parseErr != nil {
			app.clientError(w, r, http.StatusBadRequest)
			return
		}
		var manualPoints *int
		if manual := r.PostForm.Get("points"); manual != "" {
			points, pointsErr := strconv.Atoi(manual)
			if pointsErr != nil {
				app.clientError(w, r, http.StatusBadRequest)
				return
			}
			manualPoints = &points
		}
		_, err = sess.SubmitAnswer(ctx, prompt, r.PostForm.Get("text"), manualPoints)

	case "end-player-turn":
		sess.EndPlayerTurn(ctx)

	case "reveal-points":
		prompt, parseErr := strconv.Atoi(r.PostForm.Get("prompt"))
		if parseErr != nil {
			app.clientError(w, r, http.StatusBadRequest)
			return
		}
		_, err = sess.RevealPoints(ctx, prompt)

	case "reveal-best-answer":
		prompt, parseErr := strconv.Atoi(r.PostForm.Get("prompt"))
		if parseErr != nil {
			app.clientError(w, r, http.StatusBadRequest)
			return
		}
		_, err = sess.RevealBestAnswer(ctx, prompt)

	case "adjust-points":
		prompt, parseErr := strconv.Atoi(r.PostForm.Get("prompt"))
		if parseErr != nil {
			app.clientError(w, r, http.StatusBadRequest)
			return
		}
		points, parseErr := strconv.Atoi(r.PostForm.Get("points"))
		if parseErr != nil {
			app.clientError(w, r, http.StatusBadRequest)
			return
		}
		_, err = sess.AdjustPoints(ctx, prompt, points)

	case "next-player":
		sess.NextPlayer(ctx)

	case "end-fast-money":
		sess.EndFastMoney(ctx)

	case "reset-fast-money":
		sess.ResetFastMoney(ctx)

	case "end-session":
		app.games.Remove(code)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return

	default:
		app.notFound(w, r)
		return
	}

	if err != nil {
		// Engine validation failures carry a message worth showing the host.
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/games/%s/console", code), http.StatusSeeOther)
}
