package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jvirtane/barfeud/internal/errors"
	"github.com/jvirtane/barfeud/internal/session"
)

// stream pushes game snapshots to the display over Server-Sent Events. The
// first event is the latest snapshot, so a display that reconnects
// mid-game paints the current board immediately.
func (app *application) stream(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if _, err := app.games.Get(code); err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			app.notFound(w, r)
			return
		}
		app.serverError(w, r, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		app.serverError(w, r, errors.New("response writer does not support flushing"))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	subscription := app.broker.Subscribe(code)
	defer app.broker.Unsubscribe(subscription)

	// Proxies and browsers drop idle connections, so keep a comment-only
	// heartbeat flowing between snapshots.
	heartbeat := time.NewTicker(15 * time.Second)
	defer heartbeat.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": heartbeat\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case snapshot, open := <-subscription.C:
			if !open {
				return
			}
			payload, err := json.Marshal(snapshot)
			if err != nil {
				app.logger.LogAttrs(ctx, slog.LevelError, "marshal snapshot failed", errors.SlogError(err))
				return
			}
			if _, err = fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", payload); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
