package repository

import (
	"context"
	"fmt"
	"sort"

	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/domain/entities"
	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/infrastructure/storage"
	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/ports"
)

// UserRepositoryImpl implements the UserRepository interface over the JSON
// document store. Every operation is one full load -> mutate -> save cycle;
// the store serializes those cycles, so a write can only ever replace the
// section it targets.
type UserRepositoryImpl struct {
	store *storage.Store
}

// NewUserRepository creates a new user repository
func NewUserRepository(store *storage.Store) ports.UserRepository {
	return &UserRepositoryImpl{store: store}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, username, password string) error {
	err := r.store.Update(func(doc entities.Document) error {
		if _, ok := doc[username]; ok {
			return entities.ErrUserExists
		}
		doc[username] = entities.NewUserRecord(password)
		return nil
	})
	if err != nil {
		return fmt.Errorf("create user %q: %w", username, err)
	}
	return nil
}

func (r *UserRepositoryImpl) Exists(ctx context.Context, username string) (bool, error) {
	doc, err := r.store.Load()
	if err != nil {
		return false, fmt.Errorf("check user %q: %w", username, err)
	}
	_, ok := doc[username]
	return ok, nil
}

func (r *UserRepositoryImpl) Get(ctx context.Context, username string) (*entities.UserRecord, error) {
	doc, err := r.store.Load()
	if err != nil {
		return nil, fmt.Errorf("get user %q: %w", username, err)
	}
	rec, ok := doc[username]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	return rec, nil
}

func (r *UserRepositoryImpl) List(ctx context.Context) ([]string, error) {
	doc, err := r.store.Load()
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	names := make([]string, 0, len(doc))
	for name := range doc {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (r *UserRepositoryImpl) ReadSection(ctx context.Context, username string, section entities.Section) (any, error) {
	rec, err := r.Get(ctx, username)
	if err != nil {
		return nil, err
	}

	switch section {
	case entities.SectionKitchen:
		return rec.KitchenItems, nil
	case entities.SectionDonations:
		return rec.DonationItems, nil
	case entities.SectionSavedRecipes:
		return rec.SavedRecipes, nil
	case entities.SectionPreferences:
		return rec.Preferences, nil
	default:
		return nil, entities.ErrUnknownSection
	}
}

func (r *UserRepositoryImpl) WriteSection(ctx context.Context, username string, section entities.Section, value any) error {
	err := r.store.Update(func(doc entities.Document) error {
		rec, ok := doc[username]
		if !ok {
			return entities.ErrUserNotFound
		}

		switch section {
		case entities.SectionKitchen:
			items, ok := value.(map[string]entities.KitchenItem)
			if !ok {
				return fmt.Errorf("%w: kitchen section takes a map of kitchen items", entities.ErrInvalidSectionValue)
			}
			rec.KitchenItems = items
		case entities.SectionDonations:
			items, ok := value.(map[string]entities.DonationItem)
			if !ok {
				return fmt.Errorf("%w: donations section takes a map of donation items", entities.ErrInvalidSectionValue)
			}
			rec.DonationItems = items
		case entities.SectionSavedRecipes:
			recipes, ok := value.([]entities.SavedRecipe)
			if !ok {
				return fmt.Errorf("%w: saved_recipes section takes a recipe list", entities.ErrInvalidSectionValue)
			}
			rec.SavedRecipes = recipes
		case entities.SectionPreferences:
			prefs, ok := value.(entities.Preferences)
			if !ok {
				return fmt.Errorf("%w: preferences section takes a preference set", entities.ErrInvalidSectionValue)
			}
			rec.Preferences = prefs
		default:
			return entities.ErrUnknownSection
		}
		rec.Normalize()
		return nil
	})
	if err != nil {
		return fmt.Errorf("write %s for %q: %w", section, username, err)
	}
	return nil
}

func (r *UserRepositoryImpl) PutKitchenItem(ctx context.Context, username, name string, item entities.KitchenItem) error {
	err := r.store.Update(func(doc entities.Document) error {
		rec, ok := doc[username]
		if !ok {
			return entities.ErrUserNotFound
		}
		// Last write wins for a given name; the whole entry is replaced.
		rec.KitchenItems[name] = item
		return nil
	})
	if err != nil {
		return fmt.Errorf("put kitchen item %q for %q: %w", name, username, err)
	}
	return nil
}

func (r *UserRepositoryImpl) RemoveKitchenItem(ctx context.Context, username, name string) error {
	err := r.store.Update(func(doc entities.Document) error {
		rec, ok := doc[username]
		if !ok {
			return entities.ErrUserNotFound
		}
		if _, ok := rec.KitchenItems[name]; !ok {
			return entities.ErrItemNotFound
		}
		delete(rec.KitchenItems, name)
		return nil
	})
	if err != nil {
		return fmt.Errorf("remove kitchen item %q for %q: %w", name, username, err)
	}
	return nil
}

func (r *UserRepositoryImpl) PutDonationItem(ctx context.Context, username, name string, item entities.DonationItem) error {
	err := r.store.Update(func(doc entities.Document) error {
		rec, ok := doc[username]
		if !ok {
			return entities.ErrUserNotFound
		}
		rec.DonationItems[name] = item
		return nil
	})
	if err != nil {
		return fmt.Errorf("put donation item %q for %q: %w", name, username, err)
	}
	return nil
}

func (r *UserRepositoryImpl) RemoveDonationItem(ctx context.Context, username, name string) error {
	err := r.store.Update(func(doc entities.Document) error {
		rec, ok := doc[username]
		if !ok {
			return entities.ErrUserNotFound
		}
		if _, ok := rec.DonationItems[name]; !ok {
			return entities.ErrItemNotFound
		}
		delete(rec.DonationItems, name)
		return nil
	})
	if err != nil {
		return fmt.Errorf("remove donation item %q for %q: %w", name, username, err)
	}
	return nil
}

func (r *UserRepositoryImpl) SaveRecipe(ctx context.Context, username string, recipe entities.SavedRecipe) error {
	err := r.store.Update(func(doc entities.Document) error {
		rec, ok := doc[username]
		if !ok {
			return entities.ErrUserNotFound
		}
		if rec.HasSavedRecipe(recipe.Title) {
			return entities.ErrRecipeExists
		}
		rec.SavedRecipes = append(rec.SavedRecipes, recipe)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save recipe %q for %q: %w", recipe.Title, username, err)
	}
	return nil
}

func (r *UserRepositoryImpl) RemoveRecipe(ctx context.Context, username, title string) error {
	err := r.store.Update(func(doc entities.Document) error {
		rec, ok := doc[username]
		if !ok {
			return entities.ErrUserNotFound
		}
		for i, s := range rec.SavedRecipes {
			if s.Title == title {
				rec.SavedRecipes = append(rec.SavedRecipes[:i], rec.SavedRecipes[i+1:]...)
				return nil
			}
		}
		return entities.ErrRecipeNotFound
	})
	if err != nil {
		return fmt.Errorf("remove recipe %q for %q: %w", title, username, err)
	}
	return nil
}

func (r *UserRepositoryImpl) AllDonations(ctx context.Context) (map[string]map[string]entities.DonationItem, error) {
	doc, err := r.store.Load()
	if err != nil {
		return nil, fmt.Errorf("list all donations: %w", err)
	}

	out := make(map[string]map[string]entities.DonationItem)
	for username, rec := range doc {
		if len(rec.DonationItems) == 0 {
			continue
		}
		out[username] = rec.DonationItems
	}
	return out, nil
}
