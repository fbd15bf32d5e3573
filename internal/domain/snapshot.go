package domain

import (
	"fmt"
	"time"
)

// ScreeningDateLayout is the serialized form of a screening date.
const ScreeningDateLayout = "2006-01-02 15:04:05"

// Snapshots are the serialized representations of the model, used by the
// repositories and the wire envelope. They are plain data: rebuilding the
// live entities from them goes through the Restore* helpers below.

type TicketSnapshot struct {
	Seat  string  `json:"seat"`
	Price float64 `json:"price"`
}

type ScreeningSnapshot struct {
	MovieCode       string           `json:"movieCode"`
	MovieName       string           `json:"movieName"`
	ScreeningDate   string           `json:"screeningDate"`
	BookableTickets []TicketSnapshot `json:"bookableTickets"`
	BookedTickets   []TicketSnapshot `json:"bookedTickets"`
}

type BookingSnapshot struct {
	ID          string  `json:"id"`
	MovieCode   string  `json:"movieCode"`
	SeatNumber  string  `json:"seatNumber"`
	PriceAmount float64 `json:"priceAmount"`
	PaidAmount  float64 `json:"paidAmount"`
	Status      string  `json:"status"`
}

type CustomerSnapshot struct {
	ID       string            `json:"id"`
	Bookings []BookingSnapshot `json:"bookings"`
	Deposit  float64           `json:"deposit"`
}

func (t MovieTicket) Snapshot() TicketSnapshot {
	return TicketSnapshot{
		Seat:  t.seat,
		Price: t.price,
	}
}

func (s *MovieScreening) Snapshot() ScreeningSnapshot {
	snapshotAll := func(tickets []MovieTicket) []TicketSnapshot {
		snapshots := make([]TicketSnapshot, 0, len(tickets))
		for _, ticket := range tickets {
			snapshots = append(snapshots, ticket.Snapshot())
		}
		return snapshots
	}

	return ScreeningSnapshot{
		MovieCode:       s.movieCode,
		MovieName:       s.movieName,
		ScreeningDate:   s.screeningDate.Format(ScreeningDateLayout),
		BookableTickets: snapshotAll(s.BookableTickets()),
		BookedTickets:   snapshotAll(s.BookedTickets()),
	}
}

func (b *Booking) Snapshot() BookingSnapshot {
	return BookingSnapshot{
		ID:          b.id,
		MovieCode:   b.movieCode,
		SeatNumber:  b.seatNumber,
		PriceAmount: b.priceAmount,
		PaidAmount:  b.paidAmount,
		Status:      string(b.status),
	}
}

func (c *Customer) Snapshot() CustomerSnapshot {
	bookings := make([]BookingSnapshot, 0, len(c.bookings))
	for _, booking := range c.Bookings() {
		bookings = append(bookings, booking.Snapshot())
	}
	return CustomerSnapshot{
		ID:       c.id,
		Bookings: bookings,
		Deposit:  c.deposit,
	}
}

// RestoreScreeningFromSnapshot rebuilds a screening, with the bookable
// tickets first and the booked ones after them. The original interleaving of
// the ticket order is not recorded in the snapshot.
func RestoreScreeningFromSnapshot(snapshot ScreeningSnapshot) (*MovieScreening, error) {
	screeningDate, err := time.Parse(ScreeningDateLayout, snapshot.ScreeningDate)
	if err != nil {
		return nil, fmt.Errorf("parse screening date %q: %w", snapshot.ScreeningDate, err)
	}

	tickets := make([]MovieTicket, 0, len(snapshot.BookableTickets)+len(snapshot.BookedTickets))
	availability := make(map[string]bool, cap(tickets))
	for _, ts := range snapshot.BookableTickets {
		tickets = append(tickets, NewMovieTicket(ts.Seat, ts.Price))
		availability[ts.Seat] = true
	}
	for _, ts := range snapshot.BookedTickets {
		tickets = append(tickets, NewMovieTicket(ts.Seat, ts.Price))
		availability[ts.Seat] = false
	}

	return RestoreMovieScreening(snapshot.MovieCode, snapshot.MovieName, screeningDate, tickets, availability), nil
}

// RestoreBookingFromSnapshot rebuilds a booking record.
func RestoreBookingFromSnapshot(snapshot BookingSnapshot) *Booking {
	return NewBooking(
		snapshot.ID,
		snapshot.MovieCode,
		snapshot.SeatNumber,
		snapshot.PriceAmount,
		snapshot.PaidAmount,
		BookingStatus(snapshot.Status),
	)
}

// RestoreCustomerFromSnapshot rebuilds a customer with the given policy and
// eventing, which are not part of the serialized state.
func RestoreCustomerFromSnapshot(snapshot CustomerSnapshot, policy RatePolicy, eventing Eventing) *Customer {
	bookings := make([]*Booking, 0, len(snapshot.Bookings))
	for _, bs := range snapshot.Bookings {
		bookings = append(bookings, RestoreBookingFromSnapshot(bs))
	}
	return NewCustomer(snapshot.ID, bookings, snapshot.Deposit, policy, eventing)
}
