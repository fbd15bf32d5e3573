package domain

import "strings"

// Topic is a dotted, hierarchical event name. Subscriptions match by prefix,
// so a listener on TopicCustomer receives every customer event while a
// listener on TopicBookingSucceeded receives exactly one kind.
type Topic string

const (
	TopicCustomer Topic = "customer"

	TopicBookingSucceeded      Topic = "customer.booking_succeeded"
	TopicBookingFailed         Topic = "customer.booking_failed"
	TopicPaymentSucceeded      Topic = "customer.payment_succeeded"
	TopicPaymentFailed         Topic = "customer.payment_failed"
	TopicCancellationSucceeded Topic = "customer.cancellation_succeeded"
	TopicCancellationFailed    Topic = "customer.cancellation_failed"
	TopicDepositReduced        Topic = "customer.deposit_reduced"
	TopicDepositRefunded       Topic = "customer.deposit_refunded"
)

// Matches reports whether an event on this topic should reach a listener
// subscribed with the given filter.
func (t Topic) Matches(filter Topic) bool {
	return strings.HasPrefix(string(t), string(filter))
}

// Event is a notification of something that happened inside the model. The
// set of implementations is closed: one struct per outcome, each carrying
// typed fields instead of a generic payload map.
type Event interface {
	Topic() Topic
}

// Eventing mediates between event raisers and their listeners. Raising is
// fire-and-forget from the model's point of view: every listener whose filter
// matches is invoked synchronously, in registration order, before Raise
// returns.
type Eventing interface {
	Raise(event Event)
	Receive(filter Topic, fn func(Event))
}

// BookingSucceeded is raised after a seat has been reserved and the booking
// deposit debited. It always follows a DepositReduced for the same customer.
type BookingSucceeded struct {
	Customer  *Customer
	Screening *MovieScreening
	Ticket    MovieTicket
	Booking   *Booking
}

func (BookingSucceeded) Topic() Topic { return TopicBookingSucceeded }

// BookingFailed is raised when a book operation is rejected. Ticket is nil
// when the requested seat does not exist on the screening.
type BookingFailed struct {
	Customer *Customer
	Ticket   *MovieTicket
	Message  string
}

func (BookingFailed) Topic() Topic { return TopicBookingFailed }

// PaymentSucceeded is raised after a booking's remaining balance has been
// settled. It always follows a DepositReduced for the same customer.
type PaymentSucceeded struct {
	Customer *Customer
	Booking  *Booking
}

func (PaymentSucceeded) Topic() Topic { return TopicPaymentSucceeded }

// PaymentFailed is raised when a pay operation is rejected. Booking is nil
// when no booking with the requested id exists.
type PaymentFailed struct {
	Customer *Customer
	Booking  *Booking
	Message  string
}

func (PaymentFailed) Topic() Topic { return TopicPaymentFailed }

// CancellationSucceeded is raised after a booking has been refunded and
// dropped from the customer's collection.
type CancellationSucceeded struct {
	Customer  *Customer
	BookingID string
}

func (CancellationSucceeded) Topic() Topic { return TopicCancellationSucceeded }

// CancellationFailed is raised when a cancel operation is rejected.
type CancellationFailed struct {
	Customer *Customer
	Message  string
}

func (CancellationFailed) Topic() Topic { return TopicCancellationFailed }

// DepositReduced is raised whenever money leaves the customer's deposit.
type DepositReduced struct {
	Customer *Customer
	By       float64
}

func (DepositReduced) Topic() Topic { return TopicDepositReduced }

// DepositRefunded is raised whenever money returns to the customer's deposit.
type DepositRefunded struct {
	Customer *Customer
	Amount   float64
}

func (DepositRefunded) Topic() Topic { return TopicDepositRefunded }
