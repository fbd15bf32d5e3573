package repository

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/atherlangga/dddtix/internal/domain"
	"github.com/atherlangga/dddtix/pkg/database"
)

// ScreeningRepository stores MovieScreenings. The model never calls it;
// persistence is driven from event subscriptions outside the model.
type ScreeningRepository interface {
	// Find fetches the screening with the given movie code, or
	// domain.ErrScreeningNotFound.
	Find(ctx context.Context, movieCode string) (*domain.MovieScreening, error)
	// FindAfter returns the screenings playing strictly after the given date.
	FindAfter(ctx context.Context, date time.Time) ([]*domain.MovieScreening, error)
	// FindBetween returns the screenings playing after begin and up to and
	// including end.
	FindBetween(ctx context.Context, begin, end time.Time) ([]*domain.MovieScreening, error)
	// Save creates or replaces a screening.
	Save(ctx context.Context, screening *domain.MovieScreening) error
}

// CustomerRepository stores Customers together with their bookings.
type CustomerRepository interface {
	// Find fetches the customer with the given id, or
	// domain.ErrCustomerNotFound. The returned customer is wired to the
	// repository's eventing and rate policy.
	Find(ctx context.Context, id string) (*domain.Customer, error)
	// Save creates or replaces a customer and its booking set.
	Save(ctx context.Context, customer *domain.Customer) error
}

// Repository bundles the two stores behind one handle.
type Repository struct {
	Screening ScreeningRepository
	Customer  CustomerRepository
}

// NewFileRepository wires file-serialization stores under dataDir.
func NewFileRepository(dataDir string, policy domain.RatePolicy, eventing domain.Eventing, log *zap.Logger) *Repository {
	return &Repository{
		Screening: NewFileScreeningRepository(dataDir, log),
		Customer:  NewFileCustomerRepository(dataDir, policy, eventing, log),
	}
}

// NewPostgresRepository wires postgres-backed stores.
func NewPostgresRepository(db database.PgxIface, policy domain.RatePolicy, eventing domain.Eventing, log *zap.Logger) *Repository {
	return &Repository{
		Screening: NewPostgresScreeningRepository(db, log),
		Customer:  NewPostgresCustomerRepository(db, policy, eventing, log),
	}
}
