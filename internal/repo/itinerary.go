// Package repo contains all database access logic for the trip planner.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iotinerary/planner/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, *pgx.Conn, and pgx.Tx.
// Accepting it instead of *pgxpool.Pool lets integration tests pass a
// transaction that is rolled back after each test. Begin on a pgx.Tx opens a
// savepoint, so repos that need their own transaction still nest correctly.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// ItineraryRepo defines the persistence operations for itinerary headers.
// Day stops live in StopRepo.
type ItineraryRepo interface {
	// Create inserts a new itinerary and returns the persisted record with
	// DB-generated id, created_at and updated_at.
	Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)

	// GetByID retrieves one itinerary header.
	// Returns domain.ErrNotFound if no itinerary with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Itinerary, error)

	// ListPaged returns one page of itineraries ordered by start_date descending,
	// plus the total number of itineraries.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Itinerary, int64, error)

	// Update overwrites the mutable header fields and bumps updated_at.
	// Returns domain.ErrNotFound if no itinerary with that ID exists.
	Update(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)

	// Delete removes an itinerary and, by cascade, all of its stops.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgItineraryRepo is the Postgres implementation of ItineraryRepo.
type pgItineraryRepo struct {
	db db
}

// NewItineraryRepo constructs an ItineraryRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewItineraryRepo(db db) ItineraryRepo {
	return &pgItineraryRepo{db: db}
}

const itineraryColumns = `id, name, hub_name, start_date, end_date, budget,
		adults, children, seniors, preferences, created_at, updated_at`

func (r *pgItineraryRepo) Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	const q = `
		INSERT INTO itineraries (name, hub_name, start_date, end_date, budget,
		                         adults, children, seniors, preferences)
		VALUES (@name, @hub_name, @start_date, @end_date, @budget,
		        @adults, @children, @seniors, @preferences)
		RETURNING ` + itineraryColumns

	row := r.db.QueryRow(ctx, q, itineraryArgs(it))
	result, err := scanItinerary(row)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgItineraryRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Itinerary, error) {
	const q = `SELECT ` + itineraryColumns + ` FROM itineraries WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanItinerary(row)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged uses a window count so the page and the total come back in one
// round trip. An empty page still reports the total via a separate count.
func (r *pgItineraryRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Itinerary, int64, error) {
	const q = `
		SELECT ` + itineraryColumns + `, COUNT(*) OVER () AS total
		FROM itineraries
		ORDER BY start_date DESC, created_at DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ItineraryRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	var (
		out   []domain.Itinerary
		total int64
	)
	for rows.Next() {
		it, err := scanItinerary(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.ItineraryRepo.ListPaged: scan: %w", err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.ItineraryRepo.ListPaged: rows: %w", err)
	}

	if len(out) == 0 && p.Offset() > 0 {
		if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM itineraries`).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("repo.ItineraryRepo.ListPaged: count: %w", err)
		}
	}

	return out, total, nil
}

func (r *pgItineraryRepo) Update(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	const q = `
		UPDATE itineraries
		SET name        = @name,
		    hub_name    = @hub_name,
		    start_date  = @start_date,
		    end_date    = @end_date,
		    budget      = @budget,
		    adults      = @adults,
		    children    = @children,
		    seniors     = @seniors,
		    preferences = @preferences,
		    updated_at  = now()
		WHERE id = @id
		RETURNING ` + itineraryColumns

	args := itineraryArgs(it)
	args["id"] = it.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanItinerary(row)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgItineraryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM itineraries WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ItineraryRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ItineraryRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func itineraryArgs(it domain.Itinerary) pgx.NamedArgs {
	prefs := it.Preferences
	if prefs == nil {
		prefs = []string{}
	}
	return pgx.NamedArgs{
		"name":        it.Name,
		"hub_name":    it.HubName,
		"start_date":  it.StartDate,
		"end_date":    it.EndDate, // nil becomes NULL
		"budget":      it.Budget,
		"adults":      it.Travelers.Adults,
		"children":    it.Travelers.Children,
		"seniors":     it.Travelers.Seniors,
		"preferences": prefs,
	}
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanItinerary maps one row into a domain.Itinerary. Extra destinations
// (such as a window count) are scanned after the itinerary columns.
func scanItinerary(s scanner, extra ...any) (domain.Itinerary, error) {
	var (
		it        domain.Itinerary
		id        pgtype.UUID
		startDate pgtype.Date
		endDate   pgtype.Date
	)

	dest := []any{
		&id, &it.Name, &it.HubName, &startDate, &endDate, &it.Budget,
		&it.Travelers.Adults, &it.Travelers.Children, &it.Travelers.Seniors,
		&it.Preferences, &it.CreatedAt, &it.UpdatedAt,
	}
	if err := s.Scan(append(dest, extra...)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Itinerary{}, domain.ErrNotFound
		}
		return domain.Itinerary{}, err
	}

	it.ID = uuid.UUID(id.Bytes)
	it.StartDate = startDate.Time
	if endDate.Valid {
		ed := endDate.Time
		it.EndDate = &ed
	}
	return it, nil
}
