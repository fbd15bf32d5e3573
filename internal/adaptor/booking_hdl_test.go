package adaptor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/atherlangga/dddtix/internal/data/repository"
	"github.com/atherlangga/dddtix/internal/domain"
	"github.com/atherlangga/dddtix/internal/eventing"
	"github.com/atherlangga/dddtix/internal/usecase"
	"github.com/atherlangga/dddtix/pkg/utils"
)

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	logger := zap.NewNop()
	events := eventing.NewInProcessEventing(logger)
	policy := domain.DefaultRatePolicy()
	repo := repository.NewFileRepository(t.TempDir(), policy, events, logger)
	require.NoError(t, repository.Seed(context.Background(), repo, policy, events))

	handler := NewHandler(usecase.NewService(repo, events, logger), logger)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/bookings", handler.Booking.CreateBooking)
		r.Post("/bookings/{id}/pay", handler.Booking.PayBooking)
		r.Post("/bookings/{id}/cancel", handler.Booking.CancelBooking)
		r.Get("/screenings", handler.Screening.ListScreenings)
		r.Get("/screenings/{movieCode}", handler.Screening.GetScreening)
		r.Get("/customers/{id}", handler.Customer.GetCustomer)
	})
	return r
}

func doJSON(t *testing.T, router *chi.Mux, method, path, body string) (*httptest.ResponseRecorder, utils.Response) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var response utils.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	return rec, response
}

func TestCreateBooking(t *testing.T) {
	router := newTestRouter(t)

	rec, response := doJSON(t, router, http.MethodPost, "/api/bookings",
		`{"customer_id":"john@somewhere","movie_code":"ITSL","seat":"A2"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, response.Status)

	outcome := decodeOutcome(t, response.Data)
	assert.True(t, outcome.Succeeded)
	assert.InDelta(t, 99.5, outcome.Customer.Deposit, 1e-9)
	require.Len(t, outcome.Customer.Bookings, 1)
	assert.Equal(t, "A2", outcome.Customer.Bookings[0].SeatNumber)
}

func TestCreateBookingRejected(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doJSON(t, router, http.MethodPost, "/api/bookings",
		`{"customer_id":"john@somewhere","movie_code":"ITSL","seat":"A2"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Same seat again: the business says no, the transport says conflict.
	rec, response := doJSON(t, router, http.MethodPost, "/api/bookings",
		`{"customer_id":"jane@somewhere","movie_code":"ITSL","seat":"A2"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, response.Status)
	outcome := decodeOutcome(t, response.Data)
	assert.False(t, outcome.Succeeded)
	assert.Equal(t, float64(150), outcome.Customer.Deposit)
}

func TestCreateBookingValidation(t *testing.T) {
	router := newTestRouter(t)

	rec, response := doJSON(t, router, http.MethodPost, "/api/bookings",
		`{"movie_code":"ITSL"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, response.Status)
	assert.NotNil(t, response.Errors)
}

func TestCreateBookingUnknownScreening(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doJSON(t, router, http.MethodPost, "/api/bookings",
		`{"customer_id":"john@somewhere","movie_code":"NOPE","seat":"A2"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPayAndCancelBooking(t *testing.T) {
	router := newTestRouter(t)

	_, response := doJSON(t, router, http.MethodPost, "/api/bookings",
		`{"customer_id":"john@somewhere","movie_code":"ITSL","seat":"A2"}`)
	bookingID := decodeOutcome(t, response.Data).Customer.Bookings[0].ID

	rec, response := doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/bookings/%s/pay", bookingID),
		`{"customer_id":"john@somewhere"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	outcome := decodeOutcome(t, response.Data)
	assert.True(t, outcome.Succeeded)
	assert.InDelta(t, 95, outcome.Customer.Deposit, 1e-9)

	rec, response = doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/bookings/%s/cancel", bookingID),
		`{"customer_id":"john@somewhere"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	outcome = decodeOutcome(t, response.Data)
	assert.True(t, outcome.Succeeded)
	assert.InDelta(t, 98.75, outcome.Customer.Deposit, 1e-9)
	assert.Empty(t, outcome.Customer.Bookings)
}

func TestPayUnknownBookingConflict(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doJSON(t, router, http.MethodPost, "/api/bookings/no-such-booking/pay",
		`{"customer_id":"john@somewhere"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetCustomer(t *testing.T) {
	router := newTestRouter(t)

	rec, response := doJSON(t, router, http.MethodGet, "/api/customers/jane@somewhere", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var snapshot domain.CustomerSnapshot
	reencode(t, response.Data, &snapshot)
	assert.Equal(t, "jane@somewhere", snapshot.ID)
	assert.Equal(t, float64(150), snapshot.Deposit)

	rec, _ = doJSON(t, router, http.MethodGet, "/api/customers/nobody@nowhere", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListAndGetScreenings(t *testing.T) {
	router := newTestRouter(t)

	rec, response := doJSON(t, router, http.MethodGet, "/api/screenings", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	var listed []domain.ScreeningSnapshot
	reencode(t, response.Data, &listed)
	assert.Len(t, listed, 2)

	rec, response = doJSON(t, router, http.MethodGet, "/api/screenings?after=2015-01-01", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	reencode(t, response.Data, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, "THFA", listed[0].MovieCode)

	rec, response = doJSON(t, router, http.MethodGet, "/api/screenings/ITSL", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	var single domain.ScreeningSnapshot
	reencode(t, response.Data, &single)
	assert.Equal(t, "Interstellar", single.MovieName)
	assert.Len(t, single.BookableTickets, 6)

	rec, _ = doJSON(t, router, http.MethodGet, "/api/screenings/NOPE", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// decodeOutcome re-marshals the generic response data into the outcome shape.
func decodeOutcome(t *testing.T, data any) bookingOutcome {
	t.Helper()
	var outcome bookingOutcome
	reencode(t, data, &outcome)
	return outcome
}

func reencode(t *testing.T, data any, out any) {
	t.Helper()
	body, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, out))
}

type bookingOutcome struct {
	Succeeded bool                    `json:"succeeded"`
	Customer  domain.CustomerSnapshot `json:"customer"`
}
