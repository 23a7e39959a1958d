package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"hotel/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "bad request", err: failure.BadRequest(errors.New("malformed body")), code: http.StatusBadRequest, message: "malformed body"},
		{name: "bad request from string", err: failure.BadRequestFromString("room_number is required"), code: http.StatusBadRequest, message: "room_number is required"},
		{name: "not found", err: failure.NotFound("room not found"), code: http.StatusNotFound, message: "room not found"},
		{name: "conflict", err: failure.Conflict("room number is already in use"), code: http.StatusConflict, message: "room number is already in use"},
		{name: "precondition", err: failure.PreconditionRequired("confirm first"), code: http.StatusPreconditionRequired, message: "confirm first"},
		{name: "custom", err: failure.New(http.StatusTeapot, "short and stout"), code: http.StatusTeapot, message: "short and stout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fail *failure.Failure

			require.ErrorAs(t, tt.err, &fail)
			assert.Equal(t, tt.code, fail.Code)
			assert.EqualError(t, tt.err, tt.message)
		})
	}
}

func TestBadRequestKeepsNil(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{name: "failure", err: failure.NotFound("booking not found"), code: http.StatusNotFound},
		{name: "wrapped failure", err: fmt.Errorf("loading booking: %w", failure.Conflict("taken")), code: http.StatusConflict},
		{name: "plain error", err: errors.New("connection reset"), code: http.StatusInternalServerError},
		{name: "nil", err: nil, code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
		})
	}
}
