package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/atherlangga/dddtix/internal/domain"
)

const screeningsFileName = "movie_screenings.txt"

// fileScreeningRepository keeps every screening snapshot in one JSON file.
// Save is read-modify-write over the whole file; this is the
// zero-infrastructure backend, not a concurrent store.
type fileScreeningRepository struct {
	path string
	log  *zap.Logger
}

func NewFileScreeningRepository(dataDir string, log *zap.Logger) ScreeningRepository {
	return &fileScreeningRepository{
		path: filepath.Join(dataDir, screeningsFileName),
		log:  log.With(zap.String("repository", "screening-file")),
	}
}

func (r *fileScreeningRepository) Find(ctx context.Context, movieCode string) (*domain.MovieScreening, error) {
	screenings, err := r.fetchAll()
	if err != nil {
		return nil, err
	}

	for _, screening := range screenings {
		if screening.MovieCode() == movieCode {
			return screening, nil
		}
	}
	return nil, fmt.Errorf("movie code %s: %w", movieCode, domain.ErrScreeningNotFound)
}

func (r *fileScreeningRepository) FindAfter(ctx context.Context, date time.Time) ([]*domain.MovieScreening, error) {
	return r.filter(func(screening *domain.MovieScreening) bool {
		return screening.ScreeningDate().After(date)
	})
}

func (r *fileScreeningRepository) FindBetween(ctx context.Context, begin, end time.Time) ([]*domain.MovieScreening, error) {
	return r.filter(func(screening *domain.MovieScreening) bool {
		screeningDate := screening.ScreeningDate()
		return screeningDate.After(begin) && !screeningDate.After(end)
	})
}

func (r *fileScreeningRepository) Save(ctx context.Context, screening *domain.MovieScreening) error {
	screenings, err := r.fetchAll()
	if err != nil {
		return err
	}

	snapshots := make([]domain.ScreeningSnapshot, 0, len(screenings)+1)
	replaced := false
	for _, existing := range screenings {
		if existing.MovieCode() == screening.MovieCode() {
			snapshots = append(snapshots, screening.Snapshot())
			replaced = true
			continue
		}
		snapshots = append(snapshots, existing.Snapshot())
	}
	if !replaced {
		snapshots = append(snapshots, screening.Snapshot())
	}

	if err := writeJSONFile(r.path, snapshots); err != nil {
		r.log.Error("Failed to save screenings file", zap.Error(err))
		return fmt.Errorf("save screening %s: %w", screening.MovieCode(), err)
	}
	return nil
}

func (r *fileScreeningRepository) filter(keep func(*domain.MovieScreening) bool) ([]*domain.MovieScreening, error) {
	screenings, err := r.fetchAll()
	if err != nil {
		return nil, err
	}

	var matched []*domain.MovieScreening
	for _, screening := range screenings {
		if keep(screening) {
			matched = append(matched, screening)
		}
	}
	return matched, nil
}

func (r *fileScreeningRepository) fetchAll() ([]*domain.MovieScreening, error) {
	var snapshots []domain.ScreeningSnapshot
	if err := readJSONFile(r.path, &snapshots); err != nil {
		return nil, fmt.Errorf("read screenings file: %w", err)
	}

	screenings := make([]*domain.MovieScreening, 0, len(snapshots))
	for _, snapshot := range snapshots {
		screening, err := domain.RestoreScreeningFromSnapshot(snapshot)
		if err != nil {
			return nil, fmt.Errorf("restore screening %s: %w", snapshot.MovieCode, err)
		}
		screenings = append(screenings, screening)
	}
	return screenings, nil
}

// readJSONFile decodes a JSON file into out. A missing or empty file is not
// an error; out is left as-is.
func readJSONFile(path string, out any) error {
	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(content) == 0 {
		return nil
	}
	return json.Unmarshal(content, out)
}

func writeJSONFile(path string, in any) error {
	content, err := json.MarshalIndent(in, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, content, 0o644)
}
