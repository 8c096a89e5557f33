package progress

import (
	"context"
	"os"
	"testing"

	"github.com/careerpath/roadmappdf/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These run against live servers and are skipped unless
// ROADMAP_TEST_REDIS_ADDR or ROADMAP_TEST_DATABASE_URL is set.

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	role := "Integration " + t.Name()
	t.Cleanup(func() { _ = s.Save(ctx, role, model.NewProgressState()) })

	require.NoError(t, s.Save(ctx, role, model.NewProgressState("Kubernetes", "Go")))
	got, err := s.Load(ctx, role)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Kubernetes"}, got.Skills())

	// save replaces rather than merges
	require.NoError(t, s.Save(ctx, role, model.NewProgressState("Terraform")))
	got, err = s.Load(ctx, role)
	require.NoError(t, err)
	assert.Equal(t, []string{"Terraform"}, got.Skills())

	done, state, err := Toggle(ctx, s, role, "Terraform")
	require.NoError(t, err)
	assert.False(t, done)
	assert.Empty(t, state.Skills())
}

func TestRedis_Integration(t *testing.T) {
	addr := os.Getenv("ROADMAP_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("ROADMAP_TEST_REDIS_ADDR not set")
	}
	s, err := NewRedis(context.Background(), addr, os.Getenv("ROADMAP_TEST_REDIS_PASSWORD"), 0, nil)
	require.NoError(t, err)
	defer s.Close()
	exerciseStore(t, s)
}

func TestPostgres_Integration(t *testing.T) {
	url := os.Getenv("ROADMAP_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("ROADMAP_TEST_DATABASE_URL not set")
	}
	s, err := ConnectPostgres(context.Background(), url)
	require.NoError(t, err)
	defer s.Close()
	exerciseStore(t, s)
}

func TestNewRedis_Unreachable(t *testing.T) {
	if testing.Short() {
		t.Skip("dials the network")
	}
	_, err := NewRedis(context.Background(), "127.0.0.1:1", "", 0, nil)
	require.Error(t, err)
}
