package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/atherlangga/dddtix/internal/data/repository"
	"github.com/atherlangga/dddtix/internal/domain"
)

// ScreeningService exposes the screening catalog queries.
type ScreeningService interface {
	GetByCode(ctx context.Context, movieCode string) (*domain.MovieScreening, error)
	GetAfter(ctx context.Context, date time.Time) ([]*domain.MovieScreening, error)
	GetBetween(ctx context.Context, begin, end time.Time) ([]*domain.MovieScreening, error)
}

type screeningService struct {
	screenings repository.ScreeningRepository
	log        *zap.Logger
}

func NewScreeningService(screenings repository.ScreeningRepository, log *zap.Logger) ScreeningService {
	return &screeningService{
		screenings: screenings,
		log:        log.With(zap.String("service", "screening")),
	}
}

func (s *screeningService) GetByCode(ctx context.Context, movieCode string) (*domain.MovieScreening, error) {
	screening, err := s.screenings.Find(ctx, movieCode)
	if err != nil {
		return nil, fmt.Errorf("get screening %s: %w", movieCode, err)
	}
	return screening, nil
}

func (s *screeningService) GetAfter(ctx context.Context, date time.Time) ([]*domain.MovieScreening, error) {
	screenings, err := s.screenings.FindAfter(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("get screenings after %s: %w", date.Format(domain.ScreeningDateLayout), err)
	}
	return screenings, nil
}

func (s *screeningService) GetBetween(ctx context.Context, begin, end time.Time) ([]*domain.MovieScreening, error) {
	screenings, err := s.screenings.FindBetween(ctx, begin, end)
	if err != nil {
		return nil, fmt.Errorf("get screenings between %s and %s: %w",
			begin.Format(domain.ScreeningDateLayout), end.Format(domain.ScreeningDateLayout), err)
	}
	return screenings, nil
}
