package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iotinerary/planner/internal/domain"
	"github.com/iotinerary/planner/internal/service"
)

func TestHubService_List_OK(t *testing.T) {
	svc := service.NewHubService(hubsWith(equatorHub()))

	got, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Equator", got[0].Name)
}

func TestHubService_List_NilBecomesEmpty(t *testing.T) {
	svc := service.NewHubService(&mockHubRepo{
		list: func(context.Context) ([]domain.Hub, error) { return nil, nil },
	})

	got, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestHubService_List_RepoError(t *testing.T) {
	svc := service.NewHubService(&mockHubRepo{
		list: func(context.Context) ([]domain.Hub, error) { return nil, errors.New("db down") },
	})

	_, err := svc.List(context.Background())

	assert.ErrorContains(t, err, "service.HubService.List")
}

func TestHubService_GetByName(t *testing.T) {
	svc := service.NewHubService(hubsWith(equatorHub()))

	got, err := svc.GetByName(context.Background(), "  Equator ")
	require.NoError(t, err)
	assert.Equal(t, "Equator", got.Name)

	_, err = svc.GetByName(context.Background(), "Atlantis")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.GetByName(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
