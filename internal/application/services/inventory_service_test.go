package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/adapters/repository"
	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/domain/entities"
	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/infrastructure/config"
	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/infrastructure/logger"
	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/infrastructure/storage"
	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/ports"
)

func newTestRepo(t *testing.T, usernames ...string) ports.UserRepository {
	t.Helper()
	store, err := storage.New(config.StorageConfig{Path: filepath.Join(t.TempDir(), "users.json")})
	require.NoError(t, err)
	repo := repository.NewUserRepository(store)
	for _, name := range usernames {
		require.NoError(t, repo.Create(context.Background(), name, "pw"))
	}
	return repo
}

func fixedClock(value string) func() time.Time {
	return func() time.Time {
		ts, err := time.Parse(time.RFC3339, value)
		if err != nil {
			panic(err)
		}
		return ts
	}
}

func intPtr(v int) *int { return &v }

func TestAddItemDefaultExpiry(t *testing.T) {
	repo := newTestRepo(t, "alice")
	svc := NewInventoryService(repo, logger.NewNop())
	svc.now = fixedClock("2026-08-31T10:00:00Z")

	name, item, err := svc.AddItem(context.Background(), "alice", ports.AddKitchenItemRequest{
		Name:     "  toMAto ",
		Quantity: 2,
		Unit:     "pcs",
	})
	require.NoError(t, err)

	assert.Equal(t, "Tomato", name)
	assert.Equal(t, "2026-09-07", item.Expiry)
	assert.Equal(t, 2.0, item.Quantity)

	items, err := svc.ListItems(context.Background(), "alice")
	require.NoError(t, err)
	assert.Contains(t, items, "Tomato")
}

func TestAddItemExplicitExpiry(t *testing.T) {
	repo := newTestRepo(t, "alice")
	svc := NewInventoryService(repo, logger.NewNop())
	svc.now = fixedClock("2026-08-31T10:00:00Z")

	_, item, err := svc.AddItem(context.Background(), "alice", ports.AddKitchenItemRequest{
		Name:       "Milk",
		Quantity:   1,
		Unit:       "l",
		ExpiryDays: intPtr(2),
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-09-02", item.Expiry)

	// Zero days means it expires today.
	_, item, err = svc.AddItem(context.Background(), "alice", ports.AddKitchenItemRequest{
		Name:       "Yogurt",
		Quantity:   1,
		Unit:       "cup",
		ExpiryDays: intPtr(0),
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-08-31", item.Expiry)
}

func TestAddItemValidation(t *testing.T) {
	repo := newTestRepo(t, "alice")
	svc := NewInventoryService(repo, logger.NewNop())

	_, _, err := svc.AddItem(context.Background(), "alice", ports.AddKitchenItemRequest{Name: "  ", Quantity: 1, Unit: "pcs"})
	assert.ErrorIs(t, err, entities.ErrEmptyField)

	_, _, err = svc.AddItem(context.Background(), "alice", ports.AddKitchenItemRequest{Name: "Tomato", Quantity: 1})
	assert.ErrorIs(t, err, entities.ErrEmptyField)

	_, _, err = svc.AddItem(context.Background(), "alice", ports.AddKitchenItemRequest{Name: "Tomato", Quantity: 0, Unit: "pcs"})
	assert.ErrorIs(t, err, entities.ErrInvalidQuantity)

	_, _, err = svc.AddItem(context.Background(), "alice", ports.AddKitchenItemRequest{Name: "Tomato", Quantity: -3, Unit: "pcs"})
	assert.ErrorIs(t, err, entities.ErrInvalidQuantity)

	_, _, err = svc.AddItem(context.Background(), "alice", ports.AddKitchenItemRequest{Name: "Tomato", Quantity: 1, Unit: "pcs", ExpiryDays: intPtr(-1)})
	assert.ErrorIs(t, err, entities.ErrInvalidQuantity)

	items, err := svc.ListItems(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestAddItemReplacesExisting(t *testing.T) {
	repo := newTestRepo(t, "alice")
	svc := NewInventoryService(repo, logger.NewNop())
	svc.now = fixedClock("2026-08-31T10:00:00Z")

	_, _, err := svc.AddItem(context.Background(), "alice", ports.AddKitchenItemRequest{Name: "tomato", Quantity: 2, Unit: "pcs"})
	require.NoError(t, err)

	// Same normalized name; the whole entry is replaced, not merged.
	_, _, err = svc.AddItem(context.Background(), "alice", ports.AddKitchenItemRequest{Name: "TOMATO", Quantity: 5, Unit: "kg", ExpiryDays: intPtr(1)})
	require.NoError(t, err)

	items, err := svc.ListItems(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, entities.KitchenItem{Quantity: 5, Unit: "kg", Expiry: "2026-09-01"}, items["Tomato"])
}

func TestRemoveItemNormalizesName(t *testing.T) {
	repo := newTestRepo(t, "alice")
	svc := NewInventoryService(repo, logger.NewNop())
	svc.now = fixedClock("2026-08-31T10:00:00Z")

	_, _, err := svc.AddItem(context.Background(), "alice", ports.AddKitchenItemRequest{Name: "Tomato", Quantity: 2, Unit: "pcs"})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveItem(context.Background(), "alice", "  toMAto "))

	err = svc.RemoveItem(context.Background(), "alice", "Tomato")
	assert.ErrorIs(t, err, entities.ErrItemNotFound)
}

func TestExpiringSoon(t *testing.T) {
	repo := newTestRepo(t, "alice")
	svc := NewInventoryService(repo, logger.NewNop())
	svc.now = fixedClock("2026-08-31T10:00:00Z")

	ctx := context.Background()
	add := func(name string, days int) {
		_, _, err := svc.AddItem(ctx, "alice", ports.AddKitchenItemRequest{
			Name: name, Quantity: 1, Unit: "pcs", ExpiryDays: intPtr(days),
		})
		require.NoError(t, err)
	}
	add("Yogurt", 1)   // 2026-09-01
	add("Milk", 3)     // 2026-09-03
	add("Bread", 3)    // 2026-09-03
	add("Potatoes", 4) // 2026-09-04, outside the window

	expiring, err := svc.ExpiringSoon(ctx, "alice", 3)
	require.NoError(t, err)
	require.Len(t, expiring, 3)

	// Soonest first, ties broken by name.
	assert.Equal(t, "Yogurt", expiring[0].Name)
	assert.Equal(t, "Bread", expiring[1].Name)
	assert.Equal(t, "Milk", expiring[2].Name)
}

func TestExpiringSoonUnknownUser(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewInventoryService(repo, logger.NewNop())

	_, err := svc.ExpiringSoon(context.Background(), "nobody", 3)
	assert.ErrorIs(t, err, entities.ErrUserNotFound)
}
