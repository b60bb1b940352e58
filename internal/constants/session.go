package constants

// Redis key layout of console sessions. Every session is one hash.
const (
	RedisSessionPrefix = "console:session:"

	SessionFieldToken = "token"
	SessionFieldActor = "actor"
	SessionFieldFlash = "flash"
	// SessionViewPrefix prefixes the field holding a view snapshot.
	SessionViewPrefix = "view:"
)

// Fiber locals set by the session middleware.
const (
	LocalSessionID = "session_id"
	LocalConn      = "conn"
	LocalActor     = "actor"
)
