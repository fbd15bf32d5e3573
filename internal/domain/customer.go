package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// RatePolicy carries the two money rates the customer operations apply. The
// rates are injected per customer rather than read from package globals, so
// different policies can coexist and tests can vary them.
type RatePolicy struct {
	// BookingRate is the fraction of the ticket price required up front to
	// reserve a seat.
	BookingRate float64
	// RefundRate is the fraction of the original ticket price returned when a
	// booking is cancelled.
	RefundRate float64
}

// DefaultRatePolicy returns the standard 10% booking deposit and 75% refund.
func DefaultRatePolicy() RatePolicy {
	return RatePolicy{
		BookingRate: 0.10,
		RefundRate:  0.75,
	}
}

func (p RatePolicy) Validate() error {
	if p.BookingRate < 0 || p.BookingRate > 1 {
		return fmt.Errorf("booking rate %v: %w", p.BookingRate, ErrInvalidRate)
	}
	if p.RefundRate < 0 || p.RefundRate > 1 {
		return fmt.Errorf("refund rate %v: %w", p.RefundRate, ErrInvalidRate)
	}
	return nil
}

// Customer owns a prepaid deposit and the bookings made against it, and is
// the one place the booking business rules live. Every operation either fully
// applies its mutation or applies none, keeps the deposit non-negative, and
// announces its outcome through the injected Eventing; expected business-rule
// rejections are reported as a false return plus a failure event, never as an
// error.
type Customer struct {
	id       string
	bookings map[string]*Booking
	deposit  float64
	policy   RatePolicy
	eventing Eventing
}

// NewCustomer builds a customer with an initial deposit. The bookings slice
// is for reconstruction from storage and may be nil for a fresh customer.
func NewCustomer(id string, bookings []*Booking, deposit float64, policy RatePolicy, eventing Eventing) *Customer {
	owned := make(map[string]*Booking, len(bookings))
	for _, booking := range bookings {
		owned[booking.ID()] = booking
	}
	return &Customer{
		id:       id,
		bookings: owned,
		deposit:  deposit,
		policy:   policy,
		eventing: eventing,
	}
}

// Book reserves the given seat on the screening against this customer's
// deposit. The deposit is checked before the seat is touched, so a customer
// who cannot afford the booking never takes a seat out of the inventory.
func (c *Customer) Book(screening *MovieScreening, seat string) bool {
	ticket, ok := screening.GetTicket(seat)
	if !ok {
		c.eventing.Raise(BookingFailed{
			Customer: c,
			Message:  fmt.Sprintf("Seat '%s' is not a valid seat for movie '%s'", seat, screening.MovieCode()),
		})
		return false
	}

	bookingPrice := ticket.Price() * c.policy.BookingRate

	if c.deposit < bookingPrice {
		c.eventing.Raise(BookingFailed{
			Customer: c,
			Ticket:   &ticket,
			Message:  fmt.Sprintf("Not enough deposit. The price is '%v', but the deposit contains only '%v'.", bookingPrice, c.deposit),
		})
		return false
	}

	if !screening.Book(ticket) {
		c.eventing.Raise(BookingFailed{
			Customer: c,
			Ticket:   &ticket,
			Message:  fmt.Sprintf("Failed to book '%s'.", ticket.Seat()),
		})
		return false
	}

	newBookingID := uuid.NewString()
	newBooking := CreateBookingFromTicket(newBookingID, screening.MovieCode(), ticket, bookingPrice)
	c.bookings[newBookingID] = newBooking

	c.deposit -= bookingPrice

	c.eventing.Raise(DepositReduced{
		Customer: c,
		By:       bookingPrice,
	})
	c.eventing.Raise(BookingSucceeded{
		Customer:  c,
		Screening: screening,
		Ticket:    ticket,
		Booking:   newBooking,
	})

	return true
}

// Pay settles the remaining balance of one of this customer's bookings.
func (c *Customer) Pay(bookingID string) bool {
	bookingToPay, ok := c.bookings[bookingID]
	if !ok {
		c.eventing.Raise(PaymentFailed{
			Customer: c,
			Message:  fmt.Sprintf("Booking ID '%s' is not found", bookingID),
		})
		return false
	}

	if !bookingToPay.CanBePaid() {
		c.eventing.Raise(PaymentFailed{
			Customer: c,
			Booking:  bookingToPay,
			Message:  fmt.Sprintf("Booking ID '%s' cannot be paid", bookingID),
		})
		return false
	}

	remainingPrice := bookingToPay.RemainingPrice()
	if c.deposit < remainingPrice {
		c.eventing.Raise(PaymentFailed{
			Customer: c,
			Booking:  bookingToPay,
			Message:  fmt.Sprintf("Not enough deposit. The remaining price is '%v', but the deposit contains only '%v'.", remainingPrice, c.deposit),
		})
		return false
	}

	bookingToPay.MarkAsPaid()
	c.deposit -= remainingPrice

	c.eventing.Raise(DepositReduced{
		Customer: c,
		By:       remainingPrice,
	})
	c.eventing.Raise(PaymentSucceeded{
		Customer: c,
		Booking:  bookingToPay,
	})

	return true
}

// Cancel drops one of this customer's bookings and refunds RefundRate of the
// original ticket price, whatever amount was actually paid. Cancellation only
// affects money: the screening's seat stays booked and is never put back into
// the bookable inventory.
func (c *Customer) Cancel(bookingID string) bool {
	bookingToCancel, ok := c.bookings[bookingID]
	if !ok {
		c.eventing.Raise(CancellationFailed{
			Customer: c,
			Message:  fmt.Sprintf("Booking ID '%s' is not found", bookingID),
		})
		return false
	}

	refund := bookingToCancel.PriceAmount() * c.policy.RefundRate

	c.deposit += refund

	c.eventing.Raise(DepositRefunded{
		Customer: c,
		Amount:   refund,
	})

	bookingToCancel.Cancel()
	delete(c.bookings, bookingID)

	c.eventing.Raise(CancellationSucceeded{
		Customer:  c,
		BookingID: bookingID,
	})

	return true
}

func (c *Customer) ID() string       { return c.id }
func (c *Customer) Deposit() float64 { return c.deposit }

// Booking looks up one of the customer's bookings by id.
func (c *Customer) Booking(bookingID string) (*Booking, bool) {
	booking, ok := c.bookings[bookingID]
	return booking, ok
}

// Bookings returns the customer's current bookings. The order is not
// specified.
func (c *Customer) Bookings() []*Booking {
	bookings := make([]*Booking, 0, len(c.bookings))
	for _, booking := range c.bookings {
		bookings = append(bookings, booking)
	}
	return bookings
}
