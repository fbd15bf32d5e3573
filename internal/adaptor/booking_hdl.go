package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/atherlangga/dddtix/internal/domain"
	"github.com/atherlangga/dddtix/internal/dto/request"
	"github.com/atherlangga/dddtix/internal/dto/response"
	"github.com/atherlangga/dddtix/internal/usecase"
	"github.com/atherlangga/dddtix/pkg/utils"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booked, err := h.service.Book(r.Context(), req.CustomerID, req.MovieCode, req.Seat)
	if err != nil {
		h.handleServiceError(w, err, "create booking")
		return
	}

	customer, err := h.service.GetCustomer(r.Context(), req.CustomerID)
	if err != nil {
		h.handleServiceError(w, err, "create booking")
		return
	}

	if !booked {
		utils.ResponseJSON(w, http.StatusConflict, false, "booking rejected", response.NewBookingOutcome(false, customer), nil)
		return
	}
	utils.ResponseCreated(w, "success", response.NewBookingOutcome(true, customer))
}

// PayBooking handles POST /api/bookings/{id}/pay
func (h *BookingHandler) PayBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	var req request.PayBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	paid, err := h.service.Pay(r.Context(), req.CustomerID, bookingID)
	if err != nil {
		h.handleServiceError(w, err, "pay booking")
		return
	}

	customer, err := h.service.GetCustomer(r.Context(), req.CustomerID)
	if err != nil {
		h.handleServiceError(w, err, "pay booking")
		return
	}

	if !paid {
		utils.ResponseJSON(w, http.StatusConflict, false, "payment rejected", response.NewBookingOutcome(false, customer), nil)
		return
	}
	utils.ResponseSuccess(w, "success", response.NewBookingOutcome(true, customer))
}

// CancelBooking handles POST /api/bookings/{id}/cancel
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	var req request.CancelBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	cancelled, err := h.service.Cancel(r.Context(), req.CustomerID, bookingID)
	if err != nil {
		h.handleServiceError(w, err, "cancel booking")
		return
	}

	customer, err := h.service.GetCustomer(r.Context(), req.CustomerID)
	if err != nil {
		h.handleServiceError(w, err, "cancel booking")
		return
	}

	if !cancelled {
		utils.ResponseJSON(w, http.StatusConflict, false, "cancellation rejected", response.NewBookingOutcome(false, customer), nil)
		return
	}
	utils.ResponseSuccess(w, "success", response.NewBookingOutcome(true, customer))
}

func (h *BookingHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, domain.ErrCustomerNotFound), errors.Is(err, domain.ErrScreeningNotFound):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, err.Error())

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
