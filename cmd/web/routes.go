package main

import (
	"net/http"

	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	fileServer := http.FileServer(http.Dir("./ui/static/"))
	mux.Handle("GET /static/", cacheForeverHeaders(http.StripPrefix("/static", fileServer)))

	mux.HandleFunc("GET /api/healthy", app.healthy)

	session := alice.New(app.sessionManager.LoadAndSave, app.authenticateHost, commonContext)
	host := session.Append(app.hostOnly)

	mux.Handle("GET /{$}", session.ThenFunc(app.home))
	mux.Handle("POST /games", session.ThenFunc(app.createGame))
	mux.Handle("GET /games", session.ThenFunc(app.joinGame))
	mux.Handle("GET /games/{code}", session.ThenFunc(app.board))
	mux.Handle("GET /games/{code}/console", host.ThenFunc(app.console))
	mux.Handle("POST /games/{code}/questions/suggest", host.ThenFunc(app.suggestQuestion))
	mux.Handle("POST /games/{code}/{action}", host.ThenFunc(app.control))

	// The SSE stream keeps its connection open, which doesn't work with
	// LoadAndSave's response wrapping.
	sse := alice.New(app.serverSentEventMiddleware, app.authenticateHost)
	mux.Handle("GET /games/{code}/stream", sse.ThenFunc(app.stream))

	return app.recoverPanic(app.logRequest(secureHeaders(noSurf(mux))))
}
