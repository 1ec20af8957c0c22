package contexthelpers

import (
	"context"
	"net/http"
)

// AuthenticateHost marks the request as coming from the host of the given session code.
func AuthenticateHost(r *http.Request, code string) *http.Request {
	ctx := r.Context()
	ctx = context.WithValue(ctx, isHostContextKey, true)
	ctx = context.WithValue(ctx, sessionCodeContextKey, code)
	return r.WithContext(ctx)
}

func SetSessionCode(r *http.Request, code string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), sessionCodeContextKey, code))
}

func SetCurrentPath(r *http.Request, currentPath string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentPathContextKey, currentPath))
}

func SetCSRFToken(r *http.Request, token string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), csrfTokenContextKey, token))
}
