// Package failure carries an HTTP status alongside an error message so that
// handlers can answer without knowing where the error came from.
package failure

import (
	"errors"
	"net/http"
)

type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Failure) Error() string {
	return e.Message
}

func New(code int, message string) error {
	return &Failure{Code: code, Message: message}
}

// wrap keeps only the message of err. A nil err stays nil.
func wrap(code int, err error) error {
	if err == nil {
		return nil
	}

	return New(code, err.Error())
}

func BadRequest(err error) error {
	return wrap(http.StatusBadRequest, err)
}

func BadRequestFromString(message string) error {
	return New(http.StatusBadRequest, message)
}

func NotFound(message string) error {
	return New(http.StatusNotFound, message)
}

func Conflict(message string) error {
	return New(http.StatusConflict, message)
}

// PreconditionRequired marks a request that must be repeated with explicit confirmation.
func PreconditionRequired(message string) error {
	return New(http.StatusPreconditionRequired, message)
}

// GetCode reports the status carried by err, or 500 for anything else.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}
