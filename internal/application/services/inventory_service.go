package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/domain/entities"
	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/infrastructure/logger"
	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/ports"
)

const defaultExpiryDays = 7

const expiryDateLayout = "2006-01-02"

// InventoryService manages the kitchen section of a user record.
type InventoryService struct {
	userRepo ports.UserRepository
	logger   *logger.Logger
	now      func() time.Time
}

// NewInventoryService creates a new inventory service
func NewInventoryService(userRepo ports.UserRepository, logger *logger.Logger) *InventoryService {
	return &InventoryService{
		userRepo: userRepo,
		logger:   logger,
		now:      time.Now,
	}
}

// AddItem upserts one kitchen item. The entry for a name is always replaced
// whole; there is no merging of sub-fields.
func (s *InventoryService) AddItem(ctx context.Context, username string, req ports.AddKitchenItemRequest) (string, entities.KitchenItem, error) {
	name := entities.NormalizeItemName(req.Name)
	if name == "" || req.Unit == "" {
		return "", entities.KitchenItem{}, fmt.Errorf("%w: item name and unit are required", entities.ErrEmptyField)
	}
	if req.Quantity <= 0 {
		return "", entities.KitchenItem{}, entities.ErrInvalidQuantity
	}

	days := defaultExpiryDays
	if req.ExpiryDays != nil {
		if *req.ExpiryDays < 0 {
			return "", entities.KitchenItem{}, fmt.Errorf("%w: expiry days cannot be negative", entities.ErrInvalidQuantity)
		}
		days = *req.ExpiryDays
	}

	item := entities.KitchenItem{
		Quantity: req.Quantity,
		Unit:     req.Unit,
		Expiry:   s.now().AddDate(0, 0, days).Format(expiryDateLayout),
	}

	if err := s.userRepo.PutKitchenItem(ctx, username, name, item); err != nil {
		return "", entities.KitchenItem{}, err
	}

	s.logger.LogUserAction(username, "kitchen_item_added", map[string]interface{}{
		"item":     name,
		"quantity": item.Quantity,
		"unit":     item.Unit,
		"expiry":   item.Expiry,
	})
	return name, item, nil
}

// ListItems returns the user's kitchen inventory.
func (s *InventoryService) ListItems(ctx context.Context, username string) (map[string]entities.KitchenItem, error) {
	value, err := s.userRepo.ReadSection(ctx, username, entities.SectionKitchen)
	if err != nil {
		return nil, err
	}
	return value.(map[string]entities.KitchenItem), nil
}

// RemoveItem deletes exactly one kitchen item. A missing name is reported
// as ErrItemNotFound and leaves the section unchanged.
func (s *InventoryService) RemoveItem(ctx context.Context, username, name string) error {
	name = entities.NormalizeItemName(name)
	if err := s.userRepo.RemoveKitchenItem(ctx, username, name); err != nil {
		return err
	}
	s.logger.LogUserAction(username, "kitchen_item_removed", map[string]interface{}{"item": name})
	return nil
}

// ExpiringSoon lists kitchen items whose expiry date falls within the next
// `days` days, soonest first. Items with an unparseable expiry are skipped.
func (s *InventoryService) ExpiringSoon(ctx context.Context, username string, days int) ([]ports.ExpiringItem, error) {
	if days <= 0 {
		days = defaultExpiryDays
	}

	items, err := s.ListItems(ctx, username)
	if err != nil {
		return nil, err
	}

	today := s.now().Truncate(24 * time.Hour)
	cutoff := today.AddDate(0, 0, days)

	var out []ports.ExpiringItem
	for name, item := range items {
		expiry, err := time.Parse(expiryDateLayout, item.Expiry)
		if err != nil {
			continue
		}
		if !expiry.After(cutoff) {
			out = append(out, ports.ExpiringItem{Name: name, Item: item})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Item.Expiry == out[j].Item.Expiry {
			return out[i].Name < out[j].Name
		}
		return out[i].Item.Expiry < out[j].Item.Expiry
	})
	return out, nil
}
