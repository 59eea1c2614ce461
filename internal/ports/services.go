package ports

import (
	"context"

	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/domain/entities"
)

// Auth types

type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	Username    string `json:"username"`
}

// Claims carries the authenticated identity through the request context.
type Claims struct {
	Username string
}

// Inventory types

type AddKitchenItemRequest struct {
	Name     string  `json:"name" validate:"required"`
	Quantity float64 `json:"quantity" validate:"required,gt=0"`
	Unit     string  `json:"unit" validate:"required"`
	// Days until expiry; defaults to 7 when omitted.
	ExpiryDays *int `json:"expiry_days" validate:"omitempty,gte=0"`
}

type AddDonationItemRequest struct {
	Name     string  `json:"name" validate:"required"`
	Quantity float64 `json:"quantity" validate:"required,gt=0"`
	Pickup   string  `json:"pickup" validate:"required"`
}

// CommunityDonation is one donated item with its contributor.
type CommunityDonation struct {
	Username string                `json:"username"`
	Name     string                `json:"name"`
	Item     entities.DonationItem `json:"item"`
}

// ExpiringItem is a kitchen item close to its expiry date.
type ExpiringItem struct {
	Name string               `json:"name"`
	Item entities.KitchenItem `json:"item"`
}

// Recipe types

type SaveRecipeRequest struct {
	Title string `json:"title" validate:"required"`
	Link  string `json:"link" validate:"omitempty,url"`
	// Spoonacular recipe id; used to build the link when none is given.
	ID int `json:"id" validate:"omitempty,gt=0"`
}

// RecipeCandidate is one suggestion from the recipe lookup collaborator.
type RecipeCandidate struct {
	Title              string   `json:"title"`
	Link               string   `json:"link"`
	UsedIngredients    []string `json:"used_ingredients"`
	MissingIngredients []string `json:"missing_ingredients"`
}

// Preference types

type UpdatePreferencesRequest struct {
	Preferences map[string]bool `json:"preferences" validate:"required"`
}

type SetPreferenceRequest struct {
	Value bool `json:"value"`
}

// RecipeLookup is the external collaborator that turns an ingredient
// snapshot plus dietary constraints into recipe candidates. Network and
// non-success responses are surfaced to the caller, never swallowed.
type RecipeLookup interface {
	FindByIngredients(ctx context.Context, query RecipeQuery) ([]RecipeResult, error)
}

// RecipeQuery is the lookup input: ingredient names, at most one diet tag
// (vegan, vegetarian or ketogenic) and any intolerance tags (dairy, gluten).
type RecipeQuery struct {
	Ingredients  []string
	Number       int
	Diet         string
	Intolerances []string
}

// RecipeResult is one raw recipe from the collaborator.
type RecipeResult struct {
	ID                 int
	Title              string
	UsedIngredients    []string
	MissingIngredients []string
}
