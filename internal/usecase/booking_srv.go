package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/atherlangga/dddtix/internal/data/repository"
	"github.com/atherlangga/dddtix/internal/domain"
)

// BookingService runs the booking workflow: it loads the customer and the
// screening, hands them to the domain operation, and reports the domain's
// own success signal. It never saves anything directly; the constructor
// registers event subscriptions that persist whichever aggregate an event
// says has changed.
type BookingService interface {
	// Book reserves a seat. The boolean is the business outcome; the error
	// reports infrastructure trouble (unknown customer or screening included).
	Book(ctx context.Context, customerID, movieCode, seat string) (bool, error)
	// Pay settles the remaining balance of a booking.
	Pay(ctx context.Context, customerID, bookingID string) (bool, error)
	// Cancel drops a booking and refunds part of the original price.
	Cancel(ctx context.Context, customerID, bookingID string) (bool, error)
	// GetCustomer fetches a customer for the read views.
	GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error)
}

type bookingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewBookingService(repo *repository.Repository, eventing domain.Eventing, log *zap.Logger) BookingService {
	s := &bookingService{
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
	}
	s.registerPersistence(eventing)
	return s
}

// registerPersistence makes the repositories react to the model instead of
// being called by it. Save failures cannot fail the operation that raised
// the event, so they are logged and left to the next save.
func (s *bookingService) registerPersistence(eventing domain.Eventing) {
	eventing.Receive(domain.TopicBookingSucceeded, func(event domain.Event) {
		if e, ok := event.(domain.BookingSucceeded); ok && e.Screening != nil {
			if err := s.repo.Screening.Save(context.Background(), e.Screening); err != nil {
				s.log.Error("Failed to persist screening after booking",
					zap.Error(err),
					zap.String("movie_code", e.Screening.MovieCode()),
				)
			}
		}
	})

	saveCustomer := func(customer *domain.Customer) {
		if customer == nil {
			return
		}
		if err := s.repo.Customer.Save(context.Background(), customer); err != nil {
			s.log.Error("Failed to persist customer",
				zap.Error(err),
				zap.String("customer_id", customer.ID()),
			)
		}
	}
	eventing.Receive(domain.TopicDepositReduced, func(event domain.Event) {
		if e, ok := event.(domain.DepositReduced); ok {
			saveCustomer(e.Customer)
		}
	})
	eventing.Receive(domain.TopicDepositRefunded, func(event domain.Event) {
		if e, ok := event.(domain.DepositRefunded); ok {
			saveCustomer(e.Customer)
		}
	})
	eventing.Receive(domain.TopicCancellationSucceeded, func(event domain.Event) {
		if e, ok := event.(domain.CancellationSucceeded); ok {
			saveCustomer(e.Customer)
		}
	})
}

func (s *bookingService) Book(ctx context.Context, customerID, movieCode, seat string) (bool, error) {
	customer, err := s.repo.Customer.Find(ctx, customerID)
	if err != nil {
		return false, fmt.Errorf("load customer: %w", err)
	}

	screening, err := s.repo.Screening.Find(ctx, movieCode)
	if err != nil {
		return false, fmt.Errorf("load screening: %w", err)
	}

	booked := customer.Book(screening, seat)

	s.log.Info("Book attempt",
		zap.String("customer_id", customerID),
		zap.String("movie_code", movieCode),
		zap.String("seat", seat),
		zap.Bool("succeeded", booked),
	)
	return booked, nil
}

func (s *bookingService) Pay(ctx context.Context, customerID, bookingID string) (bool, error) {
	customer, err := s.repo.Customer.Find(ctx, customerID)
	if err != nil {
		return false, fmt.Errorf("load customer: %w", err)
	}

	paid := customer.Pay(bookingID)

	s.log.Info("Pay attempt",
		zap.String("customer_id", customerID),
		zap.String("booking_id", bookingID),
		zap.Bool("succeeded", paid),
	)
	return paid, nil
}

func (s *bookingService) Cancel(ctx context.Context, customerID, bookingID string) (bool, error) {
	customer, err := s.repo.Customer.Find(ctx, customerID)
	if err != nil {
		return false, fmt.Errorf("load customer: %w", err)
	}

	cancelled := customer.Cancel(bookingID)

	s.log.Info("Cancel attempt",
		zap.String("customer_id", customerID),
		zap.String("booking_id", bookingID),
		zap.Bool("succeeded", cancelled),
	)
	return cancelled, nil
}

func (s *bookingService) GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error) {
	customer, err := s.repo.Customer.Find(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("load customer: %w", err)
	}
	return customer, nil
}
