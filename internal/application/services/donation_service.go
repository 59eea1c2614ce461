package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/domain/entities"
	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/infrastructure/logger"
	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/ports"
)

// DonationService manages the donation section of a user record and the
// cross-user community view.
type DonationService struct {
	userRepo ports.UserRepository
	logger   *logger.Logger
}

// NewDonationService creates a new donation service
func NewDonationService(userRepo ports.UserRepository, logger *logger.Logger) *DonationService {
	return &DonationService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// AddItem upserts one donation listing for the user.
func (s *DonationService) AddItem(ctx context.Context, username string, req ports.AddDonationItemRequest) (string, entities.DonationItem, error) {
	name := entities.NormalizeItemName(req.Name)
	if name == "" || req.Pickup == "" {
		return "", entities.DonationItem{}, fmt.Errorf("%w: item name and pickup location are required", entities.ErrEmptyField)
	}
	if req.Quantity <= 0 {
		return "", entities.DonationItem{}, entities.ErrInvalidQuantity
	}

	item := entities.DonationItem{
		Quantity: req.Quantity,
		Pickup:   req.Pickup,
	}

	if err := s.userRepo.PutDonationItem(ctx, username, name, item); err != nil {
		return "", entities.DonationItem{}, err
	}

	s.logger.LogUserAction(username, "donation_added", map[string]interface{}{
		"item":     name,
		"quantity": item.Quantity,
		"pickup":   item.Pickup,
	})
	return name, item, nil
}

// ListItems returns the user's own donation listing.
func (s *DonationService) ListItems(ctx context.Context, username string) (map[string]entities.DonationItem, error) {
	value, err := s.userRepo.ReadSection(ctx, username, entities.SectionDonations)
	if err != nil {
		return nil, err
	}
	return value.(map[string]entities.DonationItem), nil
}

// RemoveItem deletes one donation listing; missing names are reported as
// ErrItemNotFound without touching anything else.
func (s *DonationService) RemoveItem(ctx context.Context, username, name string) error {
	name = entities.NormalizeItemName(name)
	if err := s.userRepo.RemoveDonationItem(ctx, username, name); err != nil {
		return err
	}
	s.logger.LogUserAction(username, "donation_removed", map[string]interface{}{"item": name})
	return nil
}

// Community aggregates donation listings across all users, with the
// contributor attached, ordered by contributor then item name.
func (s *DonationService) Community(ctx context.Context) ([]ports.CommunityDonation, error) {
	byUser, err := s.userRepo.AllDonations(ctx)
	if err != nil {
		return nil, err
	}

	var out []ports.CommunityDonation
	for username, items := range byUser {
		for name, item := range items {
			out = append(out, ports.CommunityDonation{
				Username: username,
				Name:     name,
				Item:     item,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Username == out[j].Username {
			return out[i].Name < out[j].Name
		}
		return out[i].Username < out[j].Username
	})
	return out, nil
}
