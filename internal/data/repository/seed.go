package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atherlangga/dddtix/internal/domain"
)

// Seed loads the sample catalog: two screenings sharing a six-seat A1–B3
// layout at price 5, and two customers with prepaid deposits. Existing
// records are left alone, so seeding an already-seeded store is a no-op.
func Seed(ctx context.Context, repo *Repository, policy domain.RatePolicy, eventing domain.Eventing) error {
	tickets := SampleTickets(5)

	screenings := []*domain.MovieScreening{
		domain.NewMovieScreening("ITSL", "Interstellar",
			time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC), tickets),
		domain.NewMovieScreening("THFA", "The Hobbits and the Five Armies",
			time.Date(2015, 1, 2, 0, 0, 0, 0, time.UTC), tickets),
	}
	for _, screening := range screenings {
		if _, err := repo.Screening.Find(ctx, screening.MovieCode()); err == nil {
			continue
		} else if !errors.Is(err, domain.ErrScreeningNotFound) {
			return fmt.Errorf("seed screening %s: %w", screening.MovieCode(), err)
		}
		if err := repo.Screening.Save(ctx, screening); err != nil {
			return fmt.Errorf("seed screening %s: %w", screening.MovieCode(), err)
		}
	}

	customers := []*domain.Customer{
		domain.NewCustomer("john@somewhere", nil, 100, policy, eventing),
		domain.NewCustomer("jane@somewhere", nil, 150, policy, eventing),
	}
	for _, customer := range customers {
		if _, err := repo.Customer.Find(ctx, customer.ID()); err == nil {
			continue
		} else if !errors.Is(err, domain.ErrCustomerNotFound) {
			return fmt.Errorf("seed customer %s: %w", customer.ID(), err)
		}
		if err := repo.Customer.Save(ctx, customer); err != nil {
			return fmt.Errorf("seed customer %s: %w", customer.ID(), err)
		}
	}

	return nil
}

// SampleTickets builds the A1 through B3 seat layout with a uniform price.
func SampleTickets(price float64) []domain.MovieTicket {
	var tickets []domain.MovieTicket
	for row := byte('A'); row <= 'B'; row++ {
		for column := byte('1'); column <= '3'; column++ {
			seat := string([]byte{row, column})
			tickets = append(tickets, domain.NewMovieTicket(seat, price))
		}
	}
	return tickets
}
