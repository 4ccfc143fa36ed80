package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
	"github.com/m04kA/SMC-SessionBooking/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeSlots struct {
	slots []types.TimeString
	err   error
	calls int
}

func (f *fakeSlots) GetSlots(ctx context.Context, hostID int64, date time.Time) ([]types.TimeString, error) {
	f.calls++
	return f.slots, f.err
}

type fakeBookings struct {
	bookings []*domain.Booking
	err      error
	calls    int
}

func (f *fakeBookings) GetByHostWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	f.calls++
	return f.bookings, f.err
}

var (
	now  = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	date = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
)

func daySlots() []types.TimeString {
	return []types.TimeString{"10:00", "10:30", "11:00", "11:30"}
}

func TestUseCase_Execute(t *testing.T) {
	provider := &fakeSlots{slots: daySlots()}
	bookings := &fakeBookings{}
	uc := NewUseCase(provider, bookings, fixedClock{now}, false, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{HostID: 1, Date: date})

	require.NoError(t, err)
	assert.Equal(t, daySlots(), resp.Slots)
	assert.Zero(t, bookings.calls)
}

func TestUseCase_Execute_HideBookedSlots(t *testing.T) {
	tests := []struct {
		name     string
		duration int
		bookings []*domain.Booking
		want     []types.TimeString
	}{
		{
			name:     "booking removes overlapping slots",
			duration: 60,
			bookings: []*domain.Booking{{StartTime: "11:00", DurationMinutes: 30, Status: domain.StatusConfirmed}},
			// 10:00-11:00 только граничит с бронированием
			want: []types.TimeString{"10:00", "11:30"},
		},
		{
			name:     "booking inside a long session hides it",
			duration: 60,
			bookings: []*domain.Booking{{StartTime: "10:45", DurationMinutes: 15, Status: domain.StatusConfirmed}},
			want:     []types.TimeString{"11:00", "11:30"},
		},
		{
			name:     "adjacent booking does not overlap",
			duration: 30,
			bookings: []*domain.Booking{{StartTime: "09:30", DurationMinutes: 30, Status: domain.StatusConfirmed}},
			want:     daySlots(),
		},
		{
			name:     "cancelled booking ignored",
			duration: 30,
			bookings: []*domain.Booking{{StartTime: "10:00", DurationMinutes: 60, Status: domain.StatusCancelled}},
			want:     daySlots(),
		},
		{
			name:     "default duration is one slot step",
			bookings: []*domain.Booking{{StartTime: "10:30", DurationMinutes: 30, Status: domain.StatusConfirmed}},
			want:     []types.TimeString{"10:00", "11:00", "11:30"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewUseCase(&fakeSlots{slots: daySlots()}, &fakeBookings{bookings: tt.bookings}, fixedClock{now}, true, nopLogger{})

			resp, err := uc.Execute(context.Background(), &Request{HostID: 1, Date: date, DurationMinutes: tt.duration})

			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.Slots)
		})
	}
}

func TestUseCase_Execute_PastDate(t *testing.T) {
	provider := &fakeSlots{slots: daySlots()}
	uc := NewUseCase(provider, &fakeBookings{}, fixedClock{now}, false, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{HostID: 1, Date: now.AddDate(0, 0, -1)})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	assert.Zero(t, provider.calls)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	t.Run("invalid host", func(t *testing.T) {
		uc := NewUseCase(&fakeSlots{}, &fakeBookings{}, fixedClock{now}, false, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{HostID: 0, Date: date})

		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("slots provider failure is passed through", func(t *testing.T) {
		providerErr := errors.New("rules unavailable")
		uc := NewUseCase(&fakeSlots{err: providerErr}, &fakeBookings{}, fixedClock{now}, false, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{HostID: 1, Date: date})

		assert.ErrorIs(t, err, providerErr)
	})

	t.Run("bookings failure", func(t *testing.T) {
		uc := NewUseCase(&fakeSlots{slots: daySlots()}, &fakeBookings{err: errors.New("db down")}, fixedClock{now}, true, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{HostID: 1, Date: date})

		assert.ErrorIs(t, err, ErrInternal)
	})
}
