package messaging

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atherlangga/dddtix/internal/domain"
)

type nopEventing struct{}

func (nopEventing) Raise(domain.Event)                       {}
func (nopEventing) Receive(domain.Topic, func(domain.Event)) {}

func testCustomer(deposit float64) *domain.Customer {
	return domain.NewCustomer("john@somewhere", nil, deposit, domain.DefaultRatePolicy(), nopEventing{})
}

func TestEnvelopeForBookingSucceeded(t *testing.T) {
	customer := testCustomer(100)
	ticket := domain.NewMovieTicket("A2", 5)
	screening := domain.NewMovieScreening("ITSL", "Interstellar",
		time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC),
		[]domain.MovieTicket{ticket})
	booking := domain.CreateBookingFromTicket("bk-1", "ITSL", ticket, 0.5)

	envelope := NewEnvelope(domain.BookingSucceeded{
		Customer:  customer,
		Screening: screening,
		Ticket:    ticket,
		Booking:   booking,
	})

	assert.Equal(t, "customer.booking_succeeded", envelope.Name)
	require.NotNil(t, envelope.Customer)
	assert.Equal(t, "john@somewhere", envelope.Customer.ID)
	require.NotNil(t, envelope.MovieScreening)
	assert.Equal(t, "ITSL", envelope.MovieScreening.MovieCode)
	assert.Equal(t, "2015-01-01 00:00:00", envelope.MovieScreening.ScreeningDate)
	require.NotNil(t, envelope.MovieTicket)
	assert.Equal(t, "A2", envelope.MovieTicket.Seat)
	require.NotNil(t, envelope.Booking)
	assert.Equal(t, "bk-1", envelope.Booking.ID)
}

func TestEnvelopeForDepositReducedWireShape(t *testing.T) {
	envelope := NewEnvelope(domain.DepositReduced{
		Customer: testCustomer(99.5),
		By:       0.5,
	})

	body, err := json.Marshal(envelope)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))

	assert.Equal(t, "customer.deposit_reduced", decoded["name"])
	assert.Equal(t, 0.5, decoded["by"])
	customer, ok := decoded["customer"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "john@somewhere", customer["id"])
	assert.Equal(t, 99.5, customer["deposit"])

	// Unused fields stay off the wire entirely.
	assert.NotContains(t, decoded, "amount")
	assert.NotContains(t, decoded, "booking")
	assert.NotContains(t, decoded, "bookingId")
	assert.NotContains(t, decoded, "message")
}

func TestEnvelopeForCancellationSucceeded(t *testing.T) {
	envelope := NewEnvelope(domain.CancellationSucceeded{
		Customer:  testCustomer(100),
		BookingID: "bk-1",
	})

	assert.Equal(t, "customer.cancellation_succeeded", envelope.Name)
	assert.Equal(t, "bk-1", envelope.BookingID)
}

func TestEnvelopeForFailureCarriesMessage(t *testing.T) {
	envelope := NewEnvelope(domain.BookingFailed{
		Customer: testCustomer(100),
		Message:  "Failed to book 'A2'.",
	})

	assert.Equal(t, "customer.booking_failed", envelope.Name)
	assert.Equal(t, "Failed to book 'A2'.", envelope.Message)
	assert.Nil(t, envelope.MovieTicket)
}

func TestEnvelopeRoundTripsThroughConsumerDecode(t *testing.T) {
	amount := 3.75
	body, err := json.Marshal(Envelope{
		Name:     "customer.deposit_refunded",
		Customer: &domain.CustomerSnapshot{ID: "jane@somewhere", Deposit: 153.75},
		Amount:   &amount,
	})
	require.NoError(t, err)

	var decoded Envelope
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, "customer.deposit_refunded", decoded.Name)
	require.NotNil(t, decoded.Amount)
	assert.Equal(t, 3.75, *decoded.Amount)
	require.NotNil(t, decoded.Customer)
	assert.Equal(t, "jane@somewhere", decoded.Customer.ID)
}
