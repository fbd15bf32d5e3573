package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateBookingFromTicket(t *testing.T) {
	ticket := NewMovieTicket("A2", 10000)

	booking := CreateBookingFromTicket("bk-1", "ITSL", ticket, 1000)

	assert.Equal(t, "bk-1", booking.ID())
	assert.Equal(t, "ITSL", booking.MovieCode())
	assert.Equal(t, "A2", booking.SeatNumber())
	assert.Equal(t, float64(10000), booking.PriceAmount())
	assert.Equal(t, float64(1000), booking.PaidAmount())
	assert.Equal(t, BookingStatusBooked, booking.Status())
	assert.True(t, booking.CanBePaid())
}

func TestBookingRemainingPrice(t *testing.T) {
	booking := NewBooking("bk-1", "ITSL", "A2", 10000, 1000, BookingStatusBooked)

	assert.Equal(t, float64(9000), booking.RemainingPrice())
}

func TestBookingMarkAsPaid(t *testing.T) {
	booking := NewBooking("bk-1", "ITSL", "A2", 10000, 1000, BookingStatusBooked)

	booking.MarkAsPaid()

	assert.True(t, booking.IsPaid())
	assert.False(t, booking.CanBePaid())
	assert.Equal(t, float64(10000), booking.PaidAmount())
	assert.Equal(t, float64(0), booking.RemainingPrice())
}

func TestBookingCancel(t *testing.T) {
	booking := NewBooking("bk-1", "ITSL", "A2", 10000, 1000, BookingStatusBooked)

	booking.Cancel()

	assert.True(t, booking.IsCancelled())
	assert.False(t, booking.IsPaid())
	assert.False(t, booking.CanBePaid())
	// The paid amount stays as it was; cancellation is a status change only.
	assert.Equal(t, float64(1000), booking.PaidAmount())
}

func TestCancelledBookingCannotBePaid(t *testing.T) {
	booking := NewBooking("bk-1", "ITSL", "A2", 10000, 10000, BookingStatusCancelled)

	assert.False(t, booking.CanBePaid())
}
