package contexthelpers

import (
	"context"
)

func IsHost(ctx context.Context) bool {
	isHost, ok := ctx.Value(isHostContextKey).(bool)
	if !ok {
		return false
	}

	return isHost
}

func SessionCode(ctx context.Context) string {
	code, ok := ctx.Value(sessionCodeContextKey).(string)
	if !ok {
		return ""
	}

	return code
}

func CurrentPath(ctx context.Context) string {
	currentPath, ok := ctx.Value(currentPathContextKey).(string)
	if !ok {
		return ""
	}

	return currentPath
}

func CSRFToken(ctx context.Context) string {
	csrfToken, ok := ctx.Value(csrfTokenContextKey).(string)
	if !ok {
		return ""
	}

	return csrfToken
}
