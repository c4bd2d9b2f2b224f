package globals

// Context keys
type ContextKey string

const (
	SessionKey ContextKey = "session"
	TokenIDKey ContextKey = "jti"
)
