package response

import "github.com/atherlangga/dddtix/internal/domain"

// Screenings are served in their serialized snapshot form.
func ScreeningToResponse(screening *domain.MovieScreening) domain.ScreeningSnapshot {
	return screening.Snapshot()
}

func ScreeningsToResponse(screenings []*domain.MovieScreening) []domain.ScreeningSnapshot {
	snapshots := make([]domain.ScreeningSnapshot, 0, len(screenings))
	for _, screening := range screenings {
		snapshots = append(snapshots, screening.Snapshot())
	}
	return snapshots
}
