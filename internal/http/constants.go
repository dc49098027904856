package httpx

// SessionCookieName is the cookie carrying the session snapshot key.
const SessionCookieName = "session_id"

// Pagination query parameter defaults shared by list handlers.
const (
	defaultListLimit = 50
	maxListLimit     = 1000
)
