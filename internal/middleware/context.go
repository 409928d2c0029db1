package middleware

// Context keys used to store authentication metadata.
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUsername  = "username"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"
	// ContextKeyError holds an internal error a handler answered with a generic message.
	ContextKeyError = "handler_error"
)
