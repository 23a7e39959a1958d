package validation_test

import (
	"testing"
	"time"

	"hotel/internal/domains/booking/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2024, 6, 10, 15, 30, 0, 0, time.FixedZone("WIB", 7*60*60))

func validInput() validation.Input {
	return validation.Input{
		CustomerName:  "Alice",
		CustomerPhone: "555-0100",
		RoomID:        "8a6e0804-2bd0-4672-b79d-d97027f9071a",
		CheckInDate:   "2024-06-10",
		CheckOutDate:  "2024-06-12",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(in *validation.Input)
		today   time.Time
		wantErr error
	}{
		{name: "valid booking", mutate: func(*validation.Input) {}, today: today},
		{name: "missing name", mutate: func(in *validation.Input) { in.CustomerName = "  " }, today: today, wantErr: validation.ErrMissingCustomerInfo},
		{name: "missing phone", mutate: func(in *validation.Input) { in.CustomerPhone = "" }, today: today, wantErr: validation.ErrMissingCustomerInfo},
		{name: "no room", mutate: func(in *validation.Input) { in.RoomID = "" }, today: today, wantErr: validation.ErrNoRoomSelected},
		{name: "same day stay", mutate: func(in *validation.Input) { in.CheckOutDate = in.CheckInDate }, today: today, wantErr: validation.ErrInvalidDateRange},
		{name: "check-out before check-in", mutate: func(in *validation.Input) { in.CheckOutDate = "2024-06-09" }, today: today, wantErr: validation.ErrInvalidDateRange},
		{name: "unparseable check-in", mutate: func(in *validation.Input) { in.CheckInDate = "10/06/2024" }, today: today, wantErr: validation.ErrInvalidDateRange},
		{name: "missing check-out", mutate: func(in *validation.Input) { in.CheckOutDate = "" }, today: today, wantErr: validation.ErrInvalidDateRange},
		{
			name: "check-in yesterday",
			mutate: func(in *validation.Input) {
				in.CheckInDate = "2024-06-09"
			},
			today:   today,
			wantErr: validation.ErrCheckInInPast,
		},
		{
			name: "past check-in allowed without a reference date",
			mutate: func(in *validation.Input) {
				in.CheckInDate = "2020-01-01"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			booking, err := validation.Validate(in, tt.today)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.True(t, booking.CheckOut.After(booking.CheckIn))
		})
	}
}

func TestValidate_ReportsFirstFailingRule(t *testing.T) {
	in := validation.Input{CheckInDate: "2024-06-12", CheckOutDate: "2024-06-10"}

	_, err := validation.Validate(in, today)
	assert.ErrorIs(t, err, validation.ErrMissingCustomerInfo)

	in.CustomerName, in.CustomerPhone = "Bob", "555"

	_, err = validation.Validate(in, today)
	assert.ErrorIs(t, err, validation.ErrNoRoomSelected)

	in.RoomID = "room"

	_, err = validation.Validate(in, today)
	assert.ErrorIs(t, err, validation.ErrInvalidDateRange)

	in.CheckInDate = "2024-01-01"

	_, err = validation.Validate(in, today)
	assert.ErrorIs(t, err, validation.ErrCheckInInPast)
}

func TestValidate_TrimsAndParses(t *testing.T) {
	in := validInput()
	in.CustomerName = "  Alice  "

	booking, err := validation.Validate(in, today)
	require.NoError(t, err)

	assert.Equal(t, "Alice", booking.CustomerName)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), booking.CheckIn)
	assert.Equal(t, time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC), booking.CheckOut)
}

func TestDateHelpers(t *testing.T) {
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), validation.DateOf(today))
	assert.Equal(t, "2024-06-10", validation.FormatDate(today))
}
