package adaptor

import (
	"go.uber.org/zap"

	"github.com/atherlangga/dddtix/internal/usecase"
)

type Handler struct {
	Booking   *BookingHandler
	Screening *ScreeningHandler
	Customer  *CustomerHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Booking:   NewBookingHandler(service.Booking, log),
		Screening: NewScreeningHandler(service.Screening, log),
		Customer:  NewCustomerHandler(service.Booking, log),
	}
}
