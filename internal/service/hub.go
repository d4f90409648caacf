// Package service contains the business logic for the trip planner.
// Services validate inputs, enforce business rules, and orchestrate repo and
// planner calls. No SQL lives here: services depend on repo interfaces.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/iotinerary/planner/internal/domain"
	"github.com/iotinerary/planner/internal/repo"
)

// HubService exposes the hub catalogue.
type HubService struct {
	hubs repo.HubRepo
}

// NewHubService constructs a HubService backed by the provided HubRepo.
func NewHubService(r repo.HubRepo) *HubService {
	return &HubService{hubs: r}
}

// List returns every hub. Always returns a non-nil slice.
func (s *HubService) List(ctx context.Context) ([]domain.Hub, error) {
	hubs, err := s.hubs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.HubService.List: %w", err)
	}
	if hubs == nil {
		return []domain.Hub{}, nil
	}
	return hubs, nil
}

// GetByName returns one hub.
// Returns domain.ErrValidation for a blank name and domain.ErrNotFound for an
// unknown one.
func (s *HubService) GetByName(ctx context.Context, name string) (domain.Hub, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Hub{}, fmt.Errorf("service.HubService.GetByName: %w: hub name is required", domain.ErrValidation)
	}
	h, err := s.hubs.GetByName(ctx, name)
	if err != nil {
		return domain.Hub{}, fmt.Errorf("service.HubService.GetByName: %w", err)
	}
	return h, nil
}

// lookupHub resolves a hub named in a request body. An empty name means "no
// hub selected" and yields nil. An unknown name is a validation failure
// rather than a missing resource, because the name came from the body.
func lookupHub(ctx context.Context, hubs repo.HubRepo, name string) (*domain.Hub, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	h, err := hubs.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown hub %q", domain.ErrValidation, name)
		}
		return nil, err
	}
	return &h, nil
}
