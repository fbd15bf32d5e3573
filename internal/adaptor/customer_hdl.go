package adaptor

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/atherlangga/dddtix/internal/domain"
	"github.com/atherlangga/dddtix/internal/usecase"
	"github.com/atherlangga/dddtix/pkg/utils"
)

type CustomerHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewCustomerHandler(service usecase.BookingService, log *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		service: service,
		log:     log.With(zap.String("handler", "customer")),
	}
}

// GetCustomer handles GET /api/customers/{id}: the customer with their
// bookings and deposit, in serialized form.
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "id")
	if customerID == "" {
		utils.ResponseBadRequest(w, "Customer ID is required", nil)
		return
	}

	customer, err := h.service.GetCustomer(r.Context(), customerID)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			utils.ResponseNotFound(w, err.Error())
			return
		}
		h.log.Error("Failed to get customer",
			zap.Error(err),
			zap.String("customer_id", customerID))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseSuccess(w, "success", customer.Snapshot())
}
