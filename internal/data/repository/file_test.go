package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/atherlangga/dddtix/internal/domain"
)

type nopEventing struct{}

func (nopEventing) Raise(domain.Event)                       {}
func (nopEventing) Receive(domain.Topic, func(domain.Event)) {}

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	return NewFileRepository(t.TempDir(), domain.DefaultRatePolicy(), nopEventing{}, zap.NewNop())
}

func TestFileScreeningRoundTrip(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	screening := domain.NewMovieScreening("ITSL", "Interstellar",
		time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC), SampleTickets(5))
	ticket, _ := screening.GetTicket("A2")
	require.True(t, screening.Book(ticket))

	require.NoError(t, repo.Screening.Save(ctx, screening))

	loaded, err := repo.Screening.Find(ctx, "ITSL")
	require.NoError(t, err)
	assert.Equal(t, "Interstellar", loaded.MovieName())
	assert.Equal(t, screening.ScreeningDate(), loaded.ScreeningDate())
	assert.Len(t, loaded.BookableTickets(), 5)

	booked := loaded.BookedTickets()
	require.Len(t, booked, 1)
	assert.Equal(t, "A2", booked[0].Seat())
}

func TestFileScreeningFindUnknown(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.Screening.Find(context.Background(), "NOPE")
	assert.ErrorIs(t, err, domain.ErrScreeningNotFound)
}

func TestFileScreeningSaveReplacesExisting(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	screening := domain.NewMovieScreening("ITSL", "Interstellar",
		time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC), SampleTickets(5))
	require.NoError(t, repo.Screening.Save(ctx, screening))

	ticket, _ := screening.GetTicket("B3")
	require.True(t, screening.Book(ticket))
	require.NoError(t, repo.Screening.Save(ctx, screening))

	loaded, err := repo.Screening.Find(ctx, "ITSL")
	require.NoError(t, err)
	assert.Len(t, loaded.BookedTickets(), 1)

	all, err := repo.Screening.FindAfter(ctx, time.Time{})
	require.NoError(t, err)
	assert.Len(t, all, 1, "saving twice must not duplicate the screening")
}

func TestFileScreeningDateFilters(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first := domain.NewMovieScreening("ITSL", "Interstellar",
		time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC), SampleTickets(5))
	second := domain.NewMovieScreening("THFA", "The Hobbits and the Five Armies",
		time.Date(2015, 1, 2, 0, 0, 0, 0, time.UTC), SampleTickets(5))
	require.NoError(t, repo.Screening.Save(ctx, first))
	require.NoError(t, repo.Screening.Save(ctx, second))

	after, err := repo.Screening.FindAfter(ctx, time.Date(2015, 1, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, "THFA", after[0].MovieCode())

	between, err := repo.Screening.FindBetween(ctx,
		time.Date(2014, 12, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, between, 1)
	assert.Equal(t, "ITSL", between[0].MovieCode(), "the end of the range is inclusive")
}

func TestFileCustomerRoundTrip(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	booking := domain.NewBooking("bk-1", "ITSL", "A2", 5, 0.5, domain.BookingStatusBooked)
	customer := domain.NewCustomer("john@somewhere", []*domain.Booking{booking}, 99.5,
		domain.DefaultRatePolicy(), nopEventing{})
	require.NoError(t, repo.Customer.Save(ctx, customer))

	loaded, err := repo.Customer.Find(ctx, "john@somewhere")
	require.NoError(t, err)
	assert.Equal(t, 99.5, loaded.Deposit())

	loadedBooking, ok := loaded.Booking("bk-1")
	require.True(t, ok)
	assert.Equal(t, "A2", loadedBooking.SeatNumber())
	assert.Equal(t, float64(5), loadedBooking.PriceAmount())
	assert.Equal(t, 0.5, loadedBooking.PaidAmount())
	assert.Equal(t, domain.BookingStatusBooked, loadedBooking.Status())
}

func TestFileCustomerFindUnknown(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.Customer.Find(context.Background(), "nobody@nowhere")
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestFileCustomerSaveDropsRemovedBookings(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	booking := domain.NewBooking("bk-1", "ITSL", "A2", 5, 0.5, domain.BookingStatusBooked)
	customer := domain.NewCustomer("john@somewhere", []*domain.Booking{booking}, 99.5,
		domain.DefaultRatePolicy(), nopEventing{})
	require.NoError(t, repo.Customer.Save(ctx, customer))

	// A later save without the booking clears it from storage too.
	require.NoError(t, repo.Customer.Save(ctx,
		domain.NewCustomer("john@somewhere", nil, 103.25, domain.DefaultRatePolicy(), nopEventing{})))

	loaded, err := repo.Customer.Find(ctx, "john@somewhere")
	require.NoError(t, err)
	assert.Equal(t, 103.25, loaded.Deposit())
	assert.Empty(t, loaded.Bookings())
}

func TestFileCustomerSaveKeepsOtherCustomersBookings(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	johnsBooking := domain.NewBooking("bk-1", "ITSL", "A2", 5, 0.5, domain.BookingStatusBooked)
	john := domain.NewCustomer("john@somewhere", []*domain.Booking{johnsBooking}, 99.5,
		domain.DefaultRatePolicy(), nopEventing{})
	require.NoError(t, repo.Customer.Save(ctx, john))

	jane := domain.NewCustomer("jane@somewhere", nil, 150, domain.DefaultRatePolicy(), nopEventing{})
	require.NoError(t, repo.Customer.Save(ctx, jane))

	loaded, err := repo.Customer.Find(ctx, "john@somewhere")
	require.NoError(t, err)
	assert.Len(t, loaded.Bookings(), 1)
}

func TestSeedIsIdempotent(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	policy := domain.DefaultRatePolicy()

	require.NoError(t, Seed(ctx, repo, policy, nopEventing{}))

	// Spend some of john's deposit, then seed again; the change must survive.
	john, err := repo.Customer.Find(ctx, "john@somewhere")
	require.NoError(t, err)
	require.NoError(t, repo.Customer.Save(ctx,
		domain.NewCustomer(john.ID(), nil, 42, policy, nopEventing{})))

	require.NoError(t, Seed(ctx, repo, policy, nopEventing{}))

	screenings, err := repo.Screening.FindAfter(ctx, time.Time{})
	require.NoError(t, err)
	assert.Len(t, screenings, 2)

	john, err = repo.Customer.Find(ctx, "john@somewhere")
	require.NoError(t, err)
	assert.Equal(t, float64(42), john.Deposit())

	jane, err := repo.Customer.Find(ctx, "jane@somewhere")
	require.NoError(t, err)
	assert.Equal(t, float64(150), jane.Deposit())
}
