package common

const (
	// AuthorizationHeader carries the session token as "Bearer <token>".
	AuthorizationHeader = "Authorization"

	// BearerPrefix precedes the token in AuthorizationHeader.
	BearerPrefix = "Bearer "

	// MemoryContextLimit is the number of prior entries rendered into the
	// memory context sent along with a reflection request.
	MemoryContextLimit = 5
)
