// Package messaging connects the domain's event channel to a RabbitMQ
// broker: a publish-only Eventing backend on the raising side and a
// reconnecting consumer for out-of-process listeners on the receiving side.
package messaging

import "github.com/atherlangga/dddtix/internal/domain"

// Envelope is the JSON body published for every domain event: the topic under
// "name" plus the snapshots of whatever entities the event carries. Fields
// that a given event kind does not use are omitted.
type Envelope struct {
	Name           string                    `json:"name"`
	Customer       *domain.CustomerSnapshot  `json:"customer,omitempty"`
	MovieScreening *domain.ScreeningSnapshot `json:"movieScreening,omitempty"`
	MovieTicket    *domain.TicketSnapshot    `json:"movieTicket,omitempty"`
	Booking        *domain.BookingSnapshot   `json:"booking,omitempty"`
	BookingID      string                    `json:"bookingId,omitempty"`
	Message        string                    `json:"message,omitempty"`
	By             *float64                  `json:"by,omitempty"`
	Amount         *float64                  `json:"amount,omitempty"`
}

// NewEnvelope flattens a typed domain event into its wire form.
func NewEnvelope(event domain.Event) Envelope {
	envelope := Envelope{Name: string(event.Topic())}

	customer := func(c *domain.Customer) *domain.CustomerSnapshot {
		if c == nil {
			return nil
		}
		snapshot := c.Snapshot()
		return &snapshot
	}
	booking := func(b *domain.Booking) *domain.BookingSnapshot {
		if b == nil {
			return nil
		}
		snapshot := b.Snapshot()
		return &snapshot
	}

	switch e := event.(type) {
	case domain.BookingSucceeded:
		envelope.Customer = customer(e.Customer)
		if e.Screening != nil {
			snapshot := e.Screening.Snapshot()
			envelope.MovieScreening = &snapshot
		}
		ticket := e.Ticket.Snapshot()
		envelope.MovieTicket = &ticket
		envelope.Booking = booking(e.Booking)
	case domain.BookingFailed:
		envelope.Customer = customer(e.Customer)
		if e.Ticket != nil {
			ticket := e.Ticket.Snapshot()
			envelope.MovieTicket = &ticket
		}
		envelope.Message = e.Message
	case domain.PaymentSucceeded:
		envelope.Customer = customer(e.Customer)
		envelope.Booking = booking(e.Booking)
	case domain.PaymentFailed:
		envelope.Customer = customer(e.Customer)
		envelope.Booking = booking(e.Booking)
		envelope.Message = e.Message
	case domain.CancellationSucceeded:
		envelope.Customer = customer(e.Customer)
		envelope.BookingID = e.BookingID
	case domain.CancellationFailed:
		envelope.Customer = customer(e.Customer)
		envelope.Message = e.Message
	case domain.DepositReduced:
		envelope.Customer = customer(e.Customer)
		by := e.By
		envelope.By = &by
	case domain.DepositRefunded:
		envelope.Customer = customer(e.Customer)
		amount := e.Amount
		envelope.Amount = &amount
	}

	return envelope
}
