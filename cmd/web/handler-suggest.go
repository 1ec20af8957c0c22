package main

import (
	"encoding/json"
	"net/http"
)

// suggestQuestion drafts a question about the posted topic with the AI
// client and returns it as JSON for the host to review and edit before use.
func (app *application) suggestQuestion(w http.ResponseWriter, r *http.Request) {
	if !app.aiEnabled {
		app.clientError(w, r, http.StatusServiceUnavailable)
		return
	}

	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	topic := r.PostForm.Get("topic")
	if topic == "" {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	question, err := app.aiClient.SuggestQuestion(r.Context(), topic)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(question); err != nil {
		app.serverError(w, r, err)
		return
	}
}
