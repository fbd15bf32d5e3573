package wire

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/atherlangga/dddtix/internal/adaptor"
	"github.com/atherlangga/dddtix/internal/usecase"
	"github.com/atherlangga/dddtix/pkg/middleware"
)

// App holds the composed application
type App struct {
	Router *chi.Mux
}

// Wiring builds the handlers on top of the services and mounts the routes.
func Wiring(service *usecase.Service, logger *zap.Logger) *App {
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(handler *adaptor.Handler, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))

	r.Route("/api", func(r chi.Router) {
		r.Post("/bookings", handler.Booking.CreateBooking)
		r.Post("/bookings/{id}/pay", handler.Booking.PayBooking)
		r.Post("/bookings/{id}/cancel", handler.Booking.CancelBooking)

		r.Get("/screenings", handler.Screening.ListScreenings)
		r.Get("/screenings/{movieCode}", handler.Screening.GetScreening)

		r.Get("/customers/{id}", handler.Customer.GetCustomer)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
