package domain

type BookingStatus string

const (
	BookingStatusBooked    BookingStatus = "booked"
	BookingStatusPaid      BookingStatus = "paid"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking records the financial state of one reservation: how much the seat
// costs, how much has been paid so far, and where the record is in its
// lifecycle. The only transitions are booked → paid and booked → cancelled,
// and neither is reversible.
type Booking struct {
	id          string
	movieCode   string
	seatNumber  string
	priceAmount float64
	paidAmount  float64
	status      BookingStatus
}

// NewBooking rebuilds a Booking from stored state. New reservations should go
// through CreateBookingFromTicket instead.
func NewBooking(id, movieCode, seatNumber string, priceAmount, paidAmount float64, status BookingStatus) *Booking {
	return &Booking{
		id:          id,
		movieCode:   movieCode,
		seatNumber:  seatNumber,
		priceAmount: priceAmount,
		paidAmount:  paidAmount,
		status:      status,
	}
}

// CreateBookingFromTicket opens a booking for a ticket with the up-front
// deposit amount already counted as paid.
func CreateBookingFromTicket(id, movieCode string, ticket MovieTicket, paidAmount float64) *Booking {
	return NewBooking(id, movieCode, ticket.Seat(), ticket.Price(), paidAmount, BookingStatusBooked)
}

// MarkAsPaid settles the booking in full. Payment is all-or-nothing for the
// remaining balance, so the paid amount always lands exactly on the price.
func (b *Booking) MarkAsPaid() {
	b.paidAmount = b.priceAmount
	b.status = BookingStatusPaid
}

// Cancel moves the booking to its cancelled terminal state. It does not touch
// the paid amount; refund arithmetic is the Customer's concern and works off
// the original ticket price.
func (b *Booking) Cancel() {
	b.status = BookingStatusCancelled
}

func (b *Booking) IsPaid() bool      { return b.status == BookingStatusPaid }
func (b *Booking) IsCancelled() bool { return b.status == BookingStatusCancelled }

// CanBePaid reports whether the booking still has an open balance to settle.
func (b *Booking) CanBePaid() bool {
	return !b.IsCancelled() && !b.IsPaid()
}

// RemainingPrice is the balance left to pay. Callers must check CanBePaid
// first; on a paid or cancelled booking the value is not meaningful for
// further payment.
func (b *Booking) RemainingPrice() float64 {
	return b.priceAmount - b.paidAmount
}

func (b *Booking) ID() string            { return b.id }
func (b *Booking) MovieCode() string     { return b.movieCode }
func (b *Booking) SeatNumber() string    { return b.seatNumber }
func (b *Booking) PriceAmount() float64  { return b.priceAmount }
func (b *Booking) PaidAmount() float64   { return b.paidAmount }
func (b *Booking) Status() BookingStatus { return b.status }
