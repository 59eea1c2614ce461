package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/domain/entities"
	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/infrastructure/logger"
)

func TestPreferencesDefaultOff(t *testing.T) {
	repo := newTestRepo(t, "alice")
	svc := NewPreferenceService(repo, logger.NewNop())

	prefs, err := svc.Get(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, entities.Preferences{}, prefs)
}

func TestSetSinglePreference(t *testing.T) {
	repo := newTestRepo(t, "alice")
	svc := NewPreferenceService(repo, logger.NewNop())
	ctx := context.Background()

	prefs, err := svc.Set(ctx, "alice", "vegan", true)
	require.NoError(t, err)
	assert.True(t, prefs.Vegan)

	// Persisted, and the other flags are untouched.
	prefs, err = svc.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, entities.Preferences{Vegan: true}, prefs)

	prefs, err = svc.Set(ctx, "alice", "vegan", false)
	require.NoError(t, err)
	assert.Equal(t, entities.Preferences{}, prefs)
}

func TestSetUnknownPreference(t *testing.T) {
	repo := newTestRepo(t, "alice")
	svc := NewPreferenceService(repo, logger.NewNop())

	_, err := svc.Set(context.Background(), "alice", "paleo", true)
	assert.ErrorIs(t, err, entities.ErrUnknownPreference)
}

func TestUpdateBatch(t *testing.T) {
	repo := newTestRepo(t, "alice")
	svc := NewPreferenceService(repo, logger.NewNop())
	ctx := context.Background()

	prefs, err := svc.Update(ctx, "alice", map[string]bool{
		"vegetarian": true,
		"glutenFree": true,
	})
	require.NoError(t, err)
	assert.True(t, prefs.Vegetarian)
	assert.True(t, prefs.GlutenFree)
	assert.False(t, prefs.Vegan)
}

func TestUpdateBatchRejectsUnknownKeyAtomically(t *testing.T) {
	repo := newTestRepo(t, "alice")
	svc := NewPreferenceService(repo, logger.NewNop())
	ctx := context.Background()

	_, err := svc.Update(ctx, "alice", map[string]bool{
		"vegan": true,
		"paleo": true,
	})
	assert.ErrorIs(t, err, entities.ErrUnknownPreference)

	// One bad key rejects the whole batch; nothing was persisted.
	prefs, err := svc.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, entities.Preferences{}, prefs)
}

func TestPreferencesUnknownUser(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewPreferenceService(repo, logger.NewNop())

	_, err := svc.Get(context.Background(), "nobody")
	assert.ErrorIs(t, err, entities.ErrUserNotFound)
}
