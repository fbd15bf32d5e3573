package domain

import (
	"sync"
	"time"
)

// MovieScreening is one scheduled showing of a movie together with its seat
// ledger: a fixed, ordered ticket set and one availability flag per seat.
// Seats are never added or removed after construction.
//
// The availability map is guarded by a per-screening mutex, so Book is an
// atomic check-and-flip even when several callers share the same instance.
type MovieScreening struct {
	mu sync.Mutex

	movieCode     string
	movieName     string
	screeningDate time.Time
	tickets       []MovieTicket
	availability  map[string]bool
}

// NewMovieScreening creates a screening with every seat available.
func NewMovieScreening(movieCode, movieName string, screeningDate time.Time, tickets []MovieTicket) *MovieScreening {
	availability := make(map[string]bool, len(tickets))
	for _, ticket := range tickets {
		availability[ticket.Seat()] = true
	}
	return &MovieScreening{
		movieCode:     movieCode,
		movieName:     movieName,
		screeningDate: screeningDate,
		tickets:       tickets,
		availability:  availability,
	}
}

// RestoreMovieScreening rebuilds a screening from stored state, keeping the
// supplied availability flags. Seats missing from the map count as available.
func RestoreMovieScreening(movieCode, movieName string, screeningDate time.Time, tickets []MovieTicket, availability map[string]bool) *MovieScreening {
	s := NewMovieScreening(movieCode, movieName, screeningDate, tickets)
	for seat, available := range availability {
		if _, ok := s.availability[seat]; ok {
			s.availability[seat] = available
		}
	}
	return s
}

// GetTicket resolves a seat label to its ticket.
func (s *MovieScreening) GetTicket(seat string) (MovieTicket, bool) {
	for _, ticket := range s.tickets {
		if ticket.Seat() == seat {
			return ticket, true
		}
	}
	return MovieTicket{}, false
}

// Book reserves the given ticket. It succeeds only when the ticket belongs to
// this screening and its seat is still available; the seat is then flipped to
// unavailable in the same critical section. Any failure leaves the ledger
// untouched, and a second Book on the same seat always fails.
func (s *MovieScreening) Book(ticket MovieTicket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	owned := false
	for _, t := range s.tickets {
		if t == ticket {
			owned = true
			break
		}
	}
	if !owned {
		return false
	}

	if !s.availability[ticket.Seat()] {
		return false
	}

	s.availability[ticket.Seat()] = false
	return true
}

// BookableTickets returns the tickets that can still be booked, in the
// screening's original ticket order.
func (s *MovieScreening) BookableTickets() []MovieTicket {
	return s.ticketsWhere(true)
}

// BookedTickets returns the tickets that have been booked, in the screening's
// original ticket order.
func (s *MovieScreening) BookedTickets() []MovieTicket {
	return s.ticketsWhere(false)
}

func (s *MovieScreening) ticketsWhere(available bool) []MovieTicket {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []MovieTicket
	for _, ticket := range s.tickets {
		if s.availability[ticket.Seat()] == available {
			matched = append(matched, ticket)
		}
	}
	return matched
}

func (s *MovieScreening) MovieCode() string        { return s.movieCode }
func (s *MovieScreening) MovieName() string        { return s.movieName }
func (s *MovieScreening) ScreeningDate() time.Time { return s.screeningDate }

// AllTickets returns the full ticket set in its fixed order.
func (s *MovieScreening) AllTickets() []MovieTicket {
	tickets := make([]MovieTicket, len(s.tickets))
	copy(tickets, s.tickets)
	return tickets
}
