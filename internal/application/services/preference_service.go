package services

import (
	"context"

	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/domain/entities"
	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/infrastructure/logger"
	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/ports"
)

// PreferenceService manages the fixed dietary preference set.
type PreferenceService struct {
	userRepo ports.UserRepository
	logger   *logger.Logger
}

// NewPreferenceService creates a new preference service
func NewPreferenceService(userRepo ports.UserRepository, logger *logger.Logger) *PreferenceService {
	return &PreferenceService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Get returns the user's preference set.
func (s *PreferenceService) Get(ctx context.Context, username string) (entities.Preferences, error) {
	value, err := s.userRepo.ReadSection(ctx, username, entities.SectionPreferences)
	if err != nil {
		return entities.Preferences{}, err
	}
	return value.(entities.Preferences), nil
}

// Set toggles a single preference flag. Unknown keys fail with
// ErrUnknownPreference and the stored set is unchanged.
func (s *PreferenceService) Set(ctx context.Context, username, key string, value bool) (entities.Preferences, error) {
	prefs, err := s.Get(ctx, username)
	if err != nil {
		return entities.Preferences{}, err
	}

	if err := prefs.Set(key, value); err != nil {
		return entities.Preferences{}, err
	}

	if err := s.userRepo.WriteSection(ctx, username, entities.SectionPreferences, prefs); err != nil {
		return entities.Preferences{}, err
	}

	s.logger.LogUserAction(username, "preference_set", map[string]interface{}{"key": key, "value": value})
	return prefs, nil
}

// Update applies a batch of preference flags. Keys are validated up front;
// one unknown key rejects the whole batch and nothing is persisted.
func (s *PreferenceService) Update(ctx context.Context, username string, updates map[string]bool) (entities.Preferences, error) {
	prefs, err := s.Get(ctx, username)
	if err != nil {
		return entities.Preferences{}, err
	}

	for key, value := range updates {
		if err := prefs.Set(key, value); err != nil {
			return entities.Preferences{}, err
		}
	}

	if err := s.userRepo.WriteSection(ctx, username, entities.SectionPreferences, prefs); err != nil {
		return entities.Preferences{}, err
	}

	s.logger.LogUserAction(username, "preferences_updated", map[string]interface{}{"count": len(updates)})
	return prefs, nil
}
