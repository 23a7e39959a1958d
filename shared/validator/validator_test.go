package validator_test

import (
	"errors"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"testing"

	"hotel/shared/failure"
	"hotel/shared/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roomPayload struct {
	RoomNumber int    `json:"room_number" validate:"required,min=1,max=9999"`
	RoomTypeID int    `json:"room_type_id" validate:"required,min=1"`
	Status     string `json:"status" validate:"omitempty,oneof=not_reserved reserved"`
	Since      string `json:"since" validate:"omitempty,dateonly"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		data        roomPayload
		expectError bool
		message     string
	}{
		{
			name:        "valid payload",
			data:        roomPayload{RoomNumber: 101, RoomTypeID: 2, Status: "reserved", Since: "2024-05-01"},
			expectError: false,
		},
		{
			name:        "missing room number",
			data:        roomPayload{RoomTypeID: 1},
			expectError: true,
			message:     "RoomNumber is required",
		},
		{
			name:        "room number above range",
			data:        roomPayload{RoomNumber: 10000, RoomTypeID: 1},
			expectError: true,
			message:     "RoomNumber must be less than or equal to 9999",
		},
		{
			name:        "unknown status",
			data:        roomPayload{RoomNumber: 5, RoomTypeID: 1, Status: "cleaning"},
			expectError: true,
			message:     "Status must be one of not_reserved reserved",
		},
		{
			name:        "malformed date",
			data:        roomPayload{RoomNumber: 5, RoomTypeID: 1, Since: "05/01/2024"},
			expectError: true,
			message:     "Since must be a date formatted as YYYY-MM-DD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)

			if !tt.expectError {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.message, err.Error())
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("2024-02-29", "dateonly"))
	assert.Error(t, validator.ValidateVar("2023-02-29", "dateonly"))
	assert.NoError(t, validator.ValidateVar("8a6e0804-2bd0-4672-b79d-d97027f9071a", "uuid"))
	assert.Error(t, validator.ValidateVar("room-1", "uuid"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{name: "valid JSON", jsonBody: `{"room_number":204,"room_type_id":1}`, expectError: false},
		{name: "fails validation", jsonBody: `{"room_number":0,"room_type_id":1}`, expectError: true},
		{name: "malformed JSON", jsonBody: `{"room_number":}`, expectError: true},
		{name: "empty JSON", jsonBody: `{}`, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data roomPayload

			err := validator.Validate(strings.NewReader(tt.jsonBody), &data)
			if tt.expectError {
				assert.Error(t, err)

				var fail *failure.Failure
				assert.True(t, errors.As(err, &fail))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, 204, data.RoomNumber)
		})
	}
}

type upload struct {
	Image *multipart.FileHeader `validate:"omitempty,mimetypes=image/png image/jpeg,maxfilesize=1"`
}

func fileHeader(contentType string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: "room.png",
		Header:   textproto.MIMEHeader{"Content-Type": []string{contentType}},
		Size:     size,
	}
}

func TestValidateStructFile(t *testing.T) {
	tests := []struct {
		name    string
		data    upload
		message string
	}{
		{name: "no file", data: upload{}},
		{name: "png within limit", data: upload{Image: fileHeader("image/png", 512*1024)}},
		{name: "wrong type", data: upload{Image: fileHeader("application/pdf", 10)}, message: "Image must be one of image/png image/jpeg"},
		{name: "too large", data: upload{Image: fileHeader("image/jpeg", 2<<20)}, message: "Image must not exceed 1 MB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)

			if tt.message == "" {
				assert.NoError(t, err)

				return
			}

			assert.EqualError(t, err, tt.message)
		})
	}
}
