package ports

import (
	"context"

	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/domain/entities"
)

// UserRepository defines the interface for user record operations over the
// document store. Creation is explicit: looking up or opening an unknown
// user never creates it, so a login can never silently mint an account.
type UserRepository interface {
	// Create inserts a default record for username. ErrUserExists if taken.
	Create(ctx context.Context, username, password string) error
	Exists(ctx context.Context, username string) (bool, error)
	// Get returns the full record, ErrUserNotFound if absent.
	Get(ctx context.Context, username string) (*entities.UserRecord, error)
	List(ctx context.Context) ([]string, error)

	// ReadSection loads fresh and returns one section of the user's record.
	ReadSection(ctx context.Context, username string, section entities.Section) (any, error)
	// WriteSection loads fresh, replaces exactly one section of the user's
	// record with value, and saves the whole document. Other sections and
	// other users are untouched. The value type must match the section.
	WriteSection(ctx context.Context, username string, section entities.Section, value any) error

	// Item upsert/remove, shared policy of the kitchen and donation
	// sections: an upsert overwrites the whole entry for that name, a
	// remove of a missing name reports ErrItemNotFound without modifying
	// anything.
	PutKitchenItem(ctx context.Context, username, name string, item entities.KitchenItem) error
	RemoveKitchenItem(ctx context.Context, username, name string) error
	PutDonationItem(ctx context.Context, username, name string, item entities.DonationItem) error
	RemoveDonationItem(ctx context.Context, username, name string) error

	// SaveRecipe appends unless a recipe with the same title is already
	// saved, in which case it reports ErrRecipeExists and changes nothing.
	SaveRecipe(ctx context.Context, username string, recipe entities.SavedRecipe) error
	RemoveRecipe(ctx context.Context, username, title string) error

	// AllDonations returns every user's donation listing keyed by
	// contributor username.
	AllDonations(ctx context.Context) (map[string]map[string]entities.DonationItem, error)
}
