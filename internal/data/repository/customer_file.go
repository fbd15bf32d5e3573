package repository

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/atherlangga/dddtix/internal/domain"
)

const (
	customersFileName = "customers.txt"
	bookingsFileName  = "bookings.txt"
)

type customerRecord struct {
	ID      string  `json:"id"`
	Deposit float64 `json:"deposit"`
}

// bookingRecord is a booking snapshot joined to its owner.
type bookingRecord struct {
	domain.BookingSnapshot
	CustomerID string `json:"customer_id"`
}

// fileCustomerRepository splits customer state over two JSON files: the
// customers themselves and, separately, every booking tagged with its
// customer id. Find joins the two back together and wires the rebuilt
// customer to the repository's eventing and rate policy.
type fileCustomerRepository struct {
	customersPath string
	bookingsPath  string
	policy        domain.RatePolicy
	eventing      domain.Eventing
	log           *zap.Logger
}

func NewFileCustomerRepository(dataDir string, policy domain.RatePolicy, eventing domain.Eventing, log *zap.Logger) CustomerRepository {
	return &fileCustomerRepository{
		customersPath: filepath.Join(dataDir, customersFileName),
		bookingsPath:  filepath.Join(dataDir, bookingsFileName),
		policy:        policy,
		eventing:      eventing,
		log:           log.With(zap.String("repository", "customer-file")),
	}
}

func (r *fileCustomerRepository) Find(ctx context.Context, id string) (*domain.Customer, error) {
	customers, err := r.fetchCustomerRecords()
	if err != nil {
		return nil, err
	}
	bookingRecords, err := r.fetchBookingRecords()
	if err != nil {
		return nil, err
	}

	for _, record := range customers {
		if record.ID != id {
			continue
		}

		var bookings []*domain.Booking
		for _, bookingRecord := range bookingRecords {
			if bookingRecord.CustomerID == id {
				bookings = append(bookings, domain.RestoreBookingFromSnapshot(bookingRecord.BookingSnapshot))
			}
		}

		return domain.NewCustomer(record.ID, bookings, record.Deposit, r.policy, r.eventing), nil
	}

	return nil, fmt.Errorf("customer id %s: %w", id, domain.ErrCustomerNotFound)
}

func (r *fileCustomerRepository) Save(ctx context.Context, customer *domain.Customer) error {
	customers, err := r.fetchCustomerRecords()
	if err != nil {
		return err
	}

	updated := make([]customerRecord, 0, len(customers)+1)
	replaced := false
	for _, record := range customers {
		if record.ID == customer.ID() {
			updated = append(updated, customerRecord{ID: customer.ID(), Deposit: customer.Deposit()})
			replaced = true
			continue
		}
		updated = append(updated, record)
	}
	if !replaced {
		updated = append(updated, customerRecord{ID: customer.ID(), Deposit: customer.Deposit()})
	}

	if err := writeJSONFile(r.customersPath, updated); err != nil {
		r.log.Error("Failed to save customers file", zap.Error(err))
		return fmt.Errorf("save customer %s: %w", customer.ID(), err)
	}

	bookingRecords, err := r.fetchBookingRecords()
	if err != nil {
		return err
	}

	// Replace this customer's booking set wholesale, so bookings dropped by a
	// cancellation disappear from storage too.
	updatedBookings := make([]bookingRecord, 0, len(bookingRecords))
	for _, record := range bookingRecords {
		if record.CustomerID != customer.ID() {
			updatedBookings = append(updatedBookings, record)
		}
	}
	for _, booking := range customer.Bookings() {
		updatedBookings = append(updatedBookings, bookingRecord{
			BookingSnapshot: booking.Snapshot(),
			CustomerID:      customer.ID(),
		})
	}

	if err := writeJSONFile(r.bookingsPath, updatedBookings); err != nil {
		r.log.Error("Failed to save bookings file", zap.Error(err))
		return fmt.Errorf("save bookings for customer %s: %w", customer.ID(), err)
	}
	return nil
}

func (r *fileCustomerRepository) fetchCustomerRecords() ([]customerRecord, error) {
	var records []customerRecord
	if err := readJSONFile(r.customersPath, &records); err != nil {
		return nil, fmt.Errorf("read customers file: %w", err)
	}
	return records, nil
}

func (r *fileCustomerRepository) fetchBookingRecords() ([]bookingRecord, error) {
	var records []bookingRecord
	if err := readJSONFile(r.bookingsPath, &records); err != nil {
		return nil, fmt.Errorf("read bookings file: %w", err)
	}
	return records, nil
}
