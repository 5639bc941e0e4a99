package domain

// Error is an intentional failure produced by the repository or service
// layer. Code is the HTTP status the API maps it to; Details optionally
// names the offending fields. Anything that is not a *domain.Error is
// treated as unexpected by the handlers and never reaches the client.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func (e *Error) Error() string { return e.Message }

func NewError(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

func NewErrorWithDetails(code int, message string, details any) *Error {
	return &Error{Code: code, Message: message, Details: details}
}
