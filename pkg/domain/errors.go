package domain

import "errors"

// ValidationError rejects a submission locally, before any solver call.
type ValidationError struct {
	Msg string
}

func (e ValidationError) Error() string { return e.Msg }

// AppError is a well-formed error payload from the solver backend, as opposed
// to a transport failure reaching it.
type AppError struct {
	Message string `json:"error"`
	Details string `json:"details,omitempty"`
}

func (e AppError) Error() string {
	if e.Details == "" {
		return e.Message
	}
	return e.Message + ": " + e.Details
}

func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

const (
	ErrMsgNoInput          = "No input provided"
	ErrMsgInvalidImageData = "Invalid image data"
)
