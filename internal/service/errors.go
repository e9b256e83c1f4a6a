package service

type ErrorCode string

const (
	ErrorCodeNotFound          ErrorCode = "NOT_FOUND"
	ErrorCodeUnspecified       ErrorCode = "UNSPECIFIED"
	ErrorCodeInvalidBody       ErrorCode = "INVALID_BODY"
	ErrorCodeInvalidParameter  ErrorCode = "INVALID_PARAMETER"
	ErrorCodeDependencyFailure ErrorCode = "DEPENDENCY_FAILURE"
	ErrorCodeUnauthorized      ErrorCode = "UNAUTHORIZED"
)

// Error is the error every service method returns. It is written to the
// client as is, so Cause carries the text of the triggering error and Schema
// the expected input shape when validation failed.
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Cause   string    `json:"error,omitempty"`
	Schema  any       `json:"schema,omitempty"`
}

func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

func (e *Error) WithCause(err error) *Error {
	if err != nil {
		e.Cause = err.Error()
	}
	return e
}

func (e *Error) WithSchema(schema any) *Error {
	e.Schema = schema
	return e
}

func (e *Error) Error() string {
	if e.Cause != "" {
		return e.Message + ": " + e.Cause
	}
	return e.Message
}
