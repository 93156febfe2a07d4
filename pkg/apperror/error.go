package apperror

import "net/http"

type AppError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Err     error       `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithDetails attaches client-safe details, such as validation messages
func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

func Conflict(message string, err error) *AppError {
	return New(http.StatusConflict, message, err)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message, nil)
}

func ServiceUnavailable(message string, err error) *AppError {
	return New(http.StatusServiceUnavailable, message, err)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, "Internal Server Error", err)
}
