package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/iotinerary/planner/internal/domain"
)

// HubRepo reads the hub catalogue. Hubs are seeded by migration and are
// identified by name.
type HubRepo interface {
	// List returns every hub ordered by name.
	List(ctx context.Context) ([]domain.Hub, error)

	// GetByName returns the hub with the given name.
	// Returns domain.ErrNotFound if no such hub exists.
	GetByName(ctx context.Context, name string) (domain.Hub, error)
}

// pgHubRepo is the Postgres implementation of HubRepo.
type pgHubRepo struct {
	db db
}

// NewHubRepo constructs a HubRepo backed by the provided db connection.
func NewHubRepo(db db) HubRepo {
	return &pgHubRepo{db: db}
}

func (r *pgHubRepo) List(ctx context.Context) ([]domain.Hub, error) {
	const q = `SELECT name, lat, lon, description FROM hubs ORDER BY name`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.HubRepo.List: %w", err)
	}
	defer rows.Close()

	var hubs []domain.Hub
	for rows.Next() {
		h, err := scanHub(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.HubRepo.List: scan: %w", err)
		}
		hubs = append(hubs, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.HubRepo.List: rows: %w", err)
	}
	return hubs, nil
}

func (r *pgHubRepo) GetByName(ctx context.Context, name string) (domain.Hub, error) {
	const q = `SELECT name, lat, lon, description FROM hubs WHERE name = @name`

	h, err := scanHub(r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": name}))
	if err != nil {
		return domain.Hub{}, fmt.Errorf("repo.HubRepo.GetByName: %w", err)
	}
	return h, nil
}

func scanHub(s scanner) (domain.Hub, error) {
	var (
		h     domain.Hub
		coord domain.Coordinate
	)
	if err := s.Scan(&h.Name, &coord.Lat, &coord.Lon, &h.Description); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Hub{}, domain.ErrNotFound
		}
		return domain.Hub{}, err
	}
	h.Coordinate = &coord
	return h, nil
}
