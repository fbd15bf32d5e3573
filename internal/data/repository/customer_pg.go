package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/atherlangga/dddtix/internal/domain"
	"github.com/atherlangga/dddtix/pkg/database"
)

type postgresCustomerRepository struct {
	db       database.PgxIface
	policy   domain.RatePolicy
	eventing domain.Eventing
	log      *zap.Logger
}

func NewPostgresCustomerRepository(db database.PgxIface, policy domain.RatePolicy, eventing domain.Eventing, log *zap.Logger) CustomerRepository {
	return &postgresCustomerRepository{
		db:       db,
		policy:   policy,
		eventing: eventing,
		log:      log.With(zap.String("repository", "customer-pg")),
	}
}

func (r *postgresCustomerRepository) Find(ctx context.Context, id string) (*domain.Customer, error) {
	var deposit float64
	err := r.db.QueryRow(ctx, `SELECT deposit FROM customers WHERE id = $1`, id).Scan(&deposit)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("customer id %s: %w", id, domain.ErrCustomerNotFound)
	}
	if err != nil {
		r.log.Error("Failed to find customer",
			zap.Error(err),
			zap.String("customer_id", id),
		)
		return nil, fmt.Errorf("find customer %s: %w", id, err)
	}

	query := `
		SELECT id, movie_code, seat_number, price_amount, paid_amount, status
		FROM bookings
		WHERE customer_id = $1
	`
	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("query bookings for %s: %w", id, err)
	}
	defer rows.Close()

	var bookings []*domain.Booking
	for rows.Next() {
		var snapshot domain.BookingSnapshot
		if err := rows.Scan(
			&snapshot.ID,
			&snapshot.MovieCode,
			&snapshot.SeatNumber,
			&snapshot.PriceAmount,
			&snapshot.PaidAmount,
			&snapshot.Status,
		); err != nil {
			return nil, fmt.Errorf("scan booking for %s: %w", id, err)
		}
		bookings = append(bookings, domain.RestoreBookingFromSnapshot(snapshot))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings for %s: %w", id, err)
	}

	return domain.NewCustomer(id, bookings, deposit, r.policy, r.eventing), nil
}

func (r *postgresCustomerRepository) Save(ctx context.Context, customer *domain.Customer) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin save customer: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	upsertCustomer := `
		INSERT INTO customers (id, deposit)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET deposit = EXCLUDED.deposit
	`
	if _, err := tx.Exec(ctx, upsertCustomer, customer.ID(), customer.Deposit()); err != nil {
		r.log.Error("Failed to upsert customer",
			zap.Error(err),
			zap.String("customer_id", customer.ID()),
		)
		return fmt.Errorf("upsert customer %s: %w", customer.ID(), err)
	}

	// Replace the customer's booking rows wholesale, so cancelled bookings do
	// not linger in storage.
	if _, err := tx.Exec(ctx, `DELETE FROM bookings WHERE customer_id = $1`, customer.ID()); err != nil {
		return fmt.Errorf("clear bookings for %s: %w", customer.ID(), err)
	}

	insertBooking := `
		INSERT INTO bookings (id, customer_id, movie_code, seat_number, price_amount, paid_amount, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, booking := range customer.Bookings() {
		if _, err := tx.Exec(ctx, insertBooking,
			booking.ID(),
			customer.ID(),
			booking.MovieCode(),
			booking.SeatNumber(),
			booking.PriceAmount(),
			booking.PaidAmount(),
			string(booking.Status()),
		); err != nil {
			return fmt.Errorf("insert booking %s: %w", booking.ID(), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit save customer %s: %w", customer.ID(), err)
	}
	return nil
}
