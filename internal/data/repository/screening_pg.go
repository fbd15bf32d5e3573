package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/atherlangga/dddtix/internal/domain"
	"github.com/atherlangga/dddtix/pkg/database"
)

type postgresScreeningRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPostgresScreeningRepository(db database.PgxIface, log *zap.Logger) ScreeningRepository {
	return &postgresScreeningRepository{
		db:  db,
		log: log.With(zap.String("repository", "screening-pg")),
	}
}

func (r *postgresScreeningRepository) Find(ctx context.Context, movieCode string) (*domain.MovieScreening, error) {
	query := `
		SELECT movie_code, movie_name, screening_date
		FROM screenings
		WHERE movie_code = $1
	`

	var (
		code, name    string
		screeningDate time.Time
	)
	err := r.db.QueryRow(ctx, query, movieCode).Scan(&code, &name, &screeningDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("movie code %s: %w", movieCode, domain.ErrScreeningNotFound)
	}
	if err != nil {
		r.log.Error("Failed to find screening",
			zap.Error(err),
			zap.String("movie_code", movieCode),
		)
		return nil, fmt.Errorf("find screening %s: %w", movieCode, err)
	}

	return r.loadWithTickets(ctx, code, name, screeningDate)
}

func (r *postgresScreeningRepository) FindAfter(ctx context.Context, date time.Time) ([]*domain.MovieScreening, error) {
	query := `
		SELECT movie_code, movie_name, screening_date
		FROM screenings
		WHERE screening_date > $1
		ORDER BY screening_date
	`
	return r.queryMany(ctx, query, date)
}

func (r *postgresScreeningRepository) FindBetween(ctx context.Context, begin, end time.Time) ([]*domain.MovieScreening, error) {
	query := `
		SELECT movie_code, movie_name, screening_date
		FROM screenings
		WHERE screening_date > $1 AND screening_date <= $2
		ORDER BY screening_date
	`
	return r.queryMany(ctx, query, begin, end)
}

func (r *postgresScreeningRepository) Save(ctx context.Context, screening *domain.MovieScreening) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin save screening: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	upsertScreening := `
		INSERT INTO screenings (movie_code, movie_name, screening_date)
		VALUES ($1, $2, $3)
		ON CONFLICT (movie_code) DO UPDATE
		SET movie_name = EXCLUDED.movie_name, screening_date = EXCLUDED.screening_date
	`
	if _, err := tx.Exec(ctx, upsertScreening, screening.MovieCode(), screening.MovieName(), screening.ScreeningDate()); err != nil {
		r.log.Error("Failed to upsert screening",
			zap.Error(err),
			zap.String("movie_code", screening.MovieCode()),
		)
		return fmt.Errorf("upsert screening %s: %w", screening.MovieCode(), err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM screening_tickets WHERE movie_code = $1`, screening.MovieCode()); err != nil {
		return fmt.Errorf("clear tickets for %s: %w", screening.MovieCode(), err)
	}

	insertTicket := `
		INSERT INTO screening_tickets (movie_code, position, seat, price, available)
		VALUES ($1, $2, $3, $4, $5)
	`
	booked := make(map[string]bool)
	for _, ticket := range screening.BookedTickets() {
		booked[ticket.Seat()] = true
	}
	for position, ticket := range screening.AllTickets() {
		if _, err := tx.Exec(ctx, insertTicket,
			screening.MovieCode(), position, ticket.Seat(), ticket.Price(), !booked[ticket.Seat()],
		); err != nil {
			return fmt.Errorf("insert ticket %s/%s: %w", screening.MovieCode(), ticket.Seat(), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit save screening %s: %w", screening.MovieCode(), err)
	}
	return nil
}

func (r *postgresScreeningRepository) queryMany(ctx context.Context, query string, args ...any) ([]*domain.MovieScreening, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query screenings", zap.Error(err))
		return nil, fmt.Errorf("query screenings: %w", err)
	}
	defer rows.Close()

	type header struct {
		code, name    string
		screeningDate time.Time
	}
	var headers []header
	for rows.Next() {
		var h header
		if err := rows.Scan(&h.code, &h.name, &h.screeningDate); err != nil {
			return nil, fmt.Errorf("scan screening: %w", err)
		}
		headers = append(headers, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate screenings: %w", err)
	}

	screenings := make([]*domain.MovieScreening, 0, len(headers))
	for _, h := range headers {
		screening, err := r.loadWithTickets(ctx, h.code, h.name, h.screeningDate)
		if err != nil {
			return nil, err
		}
		screenings = append(screenings, screening)
	}
	return screenings, nil
}

func (r *postgresScreeningRepository) loadWithTickets(ctx context.Context, movieCode, movieName string, screeningDate time.Time) (*domain.MovieScreening, error) {
	query := `
		SELECT seat, price, available
		FROM screening_tickets
		WHERE movie_code = $1
		ORDER BY position
	`
	rows, err := r.db.Query(ctx, query, movieCode)
	if err != nil {
		return nil, fmt.Errorf("query tickets for %s: %w", movieCode, err)
	}
	defer rows.Close()

	var (
		tickets      []domain.MovieTicket
		availability = make(map[string]bool)
	)
	for rows.Next() {
		var (
			seat      string
			price     float64
			available bool
		)
		if err := rows.Scan(&seat, &price, &available); err != nil {
			return nil, fmt.Errorf("scan ticket for %s: %w", movieCode, err)
		}
		tickets = append(tickets, domain.NewMovieTicket(seat, price))
		availability[seat] = available
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tickets for %s: %w", movieCode, err)
	}

	return domain.RestoreMovieScreening(movieCode, movieName, screeningDate, tickets, availability), nil
}
