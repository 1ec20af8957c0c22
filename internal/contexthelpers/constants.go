package contexthelpers

type contextKey string

const isHostContextKey = contextKey("isHost")
const sessionCodeContextKey = contextKey("sessionCode")
const currentPathContextKey = contextKey("currentPath")
const csrfTokenContextKey = contextKey("csrfToken")
