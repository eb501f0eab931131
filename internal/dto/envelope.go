package dto

// Error codes carried by failed envelopes.
const (
	CodeValidationFailed = "validation_failed"
	CodeNotFound         = "not_found"
	CodeInvalidRequest   = "invalid_request"
	CodeUnauthorized     = "unauthorized"
	CodeInternalError    = "internal_error"
)

// Envelope is the uniform response body of every user endpoint.
// On failure Data holds the message shown to the user.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
	Field   string `json:"field,omitempty"`
}

// OK wraps a successful payload.
func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

// Fail wraps a failure message.
func Fail(code, message string) Envelope {
	return Envelope{Success: false, Data: message, Code: code}
}

// FieldFail wraps a validation failure on field.
func FieldFail(field, message string) Envelope {
	return Envelope{Success: false, Data: message, Code: CodeValidationFailed, Field: field}
}
