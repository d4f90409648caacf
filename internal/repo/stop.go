package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/iotinerary/planner/internal/domain"
)

// StopRepo persists the ordered stops of an itinerary's days.
// A day's stops are always written as a whole so the stored order is exactly
// the visiting sequence the caller supplied.
type StopRepo interface {
	// ListDays returns every non-empty day of an itinerary ordered by day
	// number, each with its stops in visiting order.
	ListDays(ctx context.Context, itineraryID uuid.UUID) ([]domain.Day, error)

	// ListByDay returns the stops of one day in visiting order.
	// An empty day yields an empty slice, not an error.
	ListByDay(ctx context.Context, itineraryID uuid.UUID, day int) ([]domain.Stop, error)

	// ReplaceDay atomically replaces every stop of one day with stops, keeping
	// their order. Passing no stops clears the day.
	ReplaceDay(ctx context.Context, itineraryID uuid.UUID, day int, stops []domain.Stop) error
}

// pgStopRepo is the Postgres implementation of StopRepo.
type pgStopRepo struct {
	db db
}

// NewStopRepo constructs a StopRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewStopRepo(db db) StopRepo {
	return &pgStopRepo{db: db}
}

var stopCopyColumns = []string{
	"itinerary_id", "day", "position", "name", "lat", "lon", "visit_minutes", "locked",
}

func (r *pgStopRepo) ListDays(ctx context.Context, itineraryID uuid.UUID) ([]domain.Day, error) {
	const q = `
		SELECT day, name, lat, lon, visit_minutes, locked
		FROM itinerary_stops
		WHERE itinerary_id = @itinerary_id
		ORDER BY day, position`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"itinerary_id": itineraryID})
	if err != nil {
		return nil, fmt.Errorf("repo.StopRepo.ListDays: %w", err)
	}
	defer rows.Close()

	var days []domain.Day
	for rows.Next() {
		var (
			day  int
			stop domain.Stop
		)
		if err := rows.Scan(&day, &stop.Name, &stop.Coordinate.Lat, &stop.Coordinate.Lon,
			&stop.VisitDurationMinutes, &stop.Locked); err != nil {
			return nil, fmt.Errorf("repo.StopRepo.ListDays: scan: %w", err)
		}
		if len(days) == 0 || days[len(days)-1].Number != day {
			days = append(days, domain.Day{Number: day})
		}
		last := &days[len(days)-1]
		last.Stops = append(last.Stops, stop)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.StopRepo.ListDays: rows: %w", err)
	}
	return days, nil
}

func (r *pgStopRepo) ListByDay(ctx context.Context, itineraryID uuid.UUID, day int) ([]domain.Stop, error) {
	const q = `
		SELECT name, lat, lon, visit_minutes, locked
		FROM itinerary_stops
		WHERE itinerary_id = @itinerary_id AND day = @day
		ORDER BY position`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"itinerary_id": itineraryID, "day": day})
	if err != nil {
		return nil, fmt.Errorf("repo.StopRepo.ListByDay: %w", err)
	}
	defer rows.Close()

	stops := []domain.Stop{}
	for rows.Next() {
		var s domain.Stop
		if err := rows.Scan(&s.Name, &s.Coordinate.Lat, &s.Coordinate.Lon,
			&s.VisitDurationMinutes, &s.Locked); err != nil {
			return nil, fmt.Errorf("repo.StopRepo.ListByDay: scan: %w", err)
		}
		stops = append(stops, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.StopRepo.ListByDay: rows: %w", err)
	}
	return stops, nil
}

// ReplaceDay deletes the day's rows and bulk-loads the new sequence with
// COPY inside one transaction, so readers never observe a half-written day.
func (r *pgStopRepo) ReplaceDay(ctx context.Context, itineraryID uuid.UUID, day int, stops []domain.Stop) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.StopRepo.ReplaceDay: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const del = `DELETE FROM itinerary_stops WHERE itinerary_id = @itinerary_id AND day = @day`
	if _, err := tx.Exec(ctx, del, pgx.NamedArgs{"itinerary_id": itineraryID, "day": day}); err != nil {
		return fmt.Errorf("repo.StopRepo.ReplaceDay: delete: %w", err)
	}

	if len(stops) > 0 {
		rows := make([][]any, len(stops))
		for i, s := range stops {
			rows[i] = []any{
				itineraryID, day, i, s.Name,
				s.Coordinate.Lat, s.Coordinate.Lon, s.VisitDurationMinutes, s.Locked,
			}
		}
		if _, err := tx.CopyFrom(ctx, pgx.Identifier{"itinerary_stops"}, stopCopyColumns, pgx.CopyFromRows(rows)); err != nil {
			return fmt.Errorf("repo.StopRepo.ReplaceDay: copy: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.StopRepo.ReplaceDay: commit: %w", err)
	}
	return nil
}
