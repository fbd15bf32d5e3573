package usecase

import (
	"go.uber.org/zap"

	"github.com/atherlangga/dddtix/internal/data/repository"
	"github.com/atherlangga/dddtix/internal/domain"
)

type Service struct {
	Booking   BookingService
	Screening ScreeningService
}

func NewService(repo *repository.Repository, eventing domain.Eventing, log *zap.Logger) *Service {
	return &Service{
		Booking:   NewBookingService(repo, eventing, log),
		Screening: NewScreeningService(repo.Screening, log),
	}
}
