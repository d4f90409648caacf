package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iotinerary/planner/internal/domain"
	"github.com/iotinerary/planner/internal/repo"
	"github.com/iotinerary/planner/testutil"
)

func TestHubRepo_List_Seeded(t *testing.T) {
	r := repo.NewHubRepo(testutil.NewTx(t))

	hubs, err := r.List(context.Background())

	require.NoError(t, err)
	names := make([]string, 0, len(hubs))
	for _, h := range hubs {
		require.NotNil(t, h.Coordinate, "hub %q has no coordinate", h.Name)
		names = append(names, h.Name)
	}
	assert.Subset(t, names, []string{"San Andres", "Virac"})
}

func TestHubRepo_GetByName(t *testing.T) {
	r := repo.NewHubRepo(testutil.NewTx(t))

	h, err := r.GetByName(context.Background(), "Virac")

	require.NoError(t, err)
	require.NotNil(t, h.Coordinate)
	assert.InDelta(t, 13.583, h.Coordinate.Lat, 0.001)
	assert.InDelta(t, 124.233, h.Coordinate.Lon, 0.001)
}

func TestHubRepo_GetByName_NotFound(t *testing.T) {
	r := repo.NewHubRepo(testutil.NewTx(t))

	_, err := r.GetByName(context.Background(), "Atlantis")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
