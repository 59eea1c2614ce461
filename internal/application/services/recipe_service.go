package services

import (
	"context"

	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/adapters/spoonacular"
	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/domain/entities"
	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/infrastructure/logger"
	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/ports"
)

// RecipeService suggests recipes from the kitchen snapshot and manages the
// saved_recipes section.
type RecipeService struct {
	userRepo    ports.UserRepository
	lookup      ports.RecipeLookup
	resultCount int
	logger      *logger.Logger
}

// NewRecipeService creates a new recipe service
func NewRecipeService(userRepo ports.UserRepository, lookup ports.RecipeLookup, resultCount int, logger *logger.Logger) *RecipeService {
	return &RecipeService{
		userRepo:    userRepo,
		lookup:      lookup,
		resultCount: resultCount,
		logger:      logger,
	}
}

// Suggest fetches recipe candidates for the user's current kitchen snapshot,
// filtered by their dietary preferences. An empty kitchen yields an empty
// result without calling the collaborator.
func (s *RecipeService) Suggest(ctx context.Context, username string) ([]ports.RecipeCandidate, error) {
	rec, err := s.userRepo.Get(ctx, username)
	if err != nil {
		return nil, err
	}

	if len(rec.KitchenItems) == 0 {
		return []ports.RecipeCandidate{}, nil
	}

	query := ports.RecipeQuery{
		Number: s.resultCount,
	}
	for name := range rec.KitchenItems {
		query.Ingredients = append(query.Ingredients, name)
	}

	// At most one diet tag; vegan wins over vegetarian over ketogenic.
	prefs := rec.Preferences
	switch {
	case prefs.Vegan:
		query.Diet = "vegan"
	case prefs.Vegetarian:
		query.Diet = "vegetarian"
	case prefs.Ketogenic:
		query.Diet = "ketogenic"
	}
	if prefs.DairyFree {
		query.Intolerances = append(query.Intolerances, "dairy")
	}
	if prefs.GlutenFree {
		query.Intolerances = append(query.Intolerances, "gluten")
	}

	results, err := s.lookup.FindByIngredients(ctx, query)
	if err != nil {
		s.logger.Error("Recipe lookup failed", "error", err, "username", username)
		return nil, err
	}

	candidates := make([]ports.RecipeCandidate, 0, len(results))
	for _, r := range results {
		candidates = append(candidates, ports.RecipeCandidate{
			Title:              r.Title,
			Link:               spoonacular.RecipeLink(r.Title, r.ID),
			UsedIngredients:    r.UsedIngredients,
			MissingIngredients: r.MissingIngredients,
		})
	}

	s.logger.LogUserAction(username, "recipes_suggested", map[string]interface{}{
		"ingredients": len(query.Ingredients),
		"results":     len(candidates),
		"diet":        query.Diet,
	})
	return candidates, nil
}

// Save bookmarks a recipe for the user. Saving a title that is already
// bookmarked reports ErrRecipeExists and leaves the list unchanged.
func (s *RecipeService) Save(ctx context.Context, username string, req ports.SaveRecipeRequest) (entities.SavedRecipe, error) {
	recipe := entities.SavedRecipe{
		Title: req.Title,
		Link:  req.Link,
	}
	if recipe.Link == "" && req.ID > 0 {
		recipe.Link = spoonacular.RecipeLink(req.Title, req.ID)
	}

	if err := s.userRepo.SaveRecipe(ctx, username, recipe); err != nil {
		return entities.SavedRecipe{}, err
	}

	s.logger.LogUserAction(username, "recipe_saved", map[string]interface{}{"title": recipe.Title})
	return recipe, nil
}

// ListSaved returns the user's bookmarked recipes in save order.
func (s *RecipeService) ListSaved(ctx context.Context, username string) ([]entities.SavedRecipe, error) {
	value, err := s.userRepo.ReadSection(ctx, username, entities.SectionSavedRecipes)
	if err != nil {
		return nil, err
	}
	return value.([]entities.SavedRecipe), nil
}

// Remove deletes one bookmarked recipe by title; unknown titles are
// reported as ErrRecipeNotFound.
func (s *RecipeService) Remove(ctx context.Context, username, title string) error {
	if err := s.userRepo.RemoveRecipe(ctx, username, title); err != nil {
		return err
	}
	s.logger.LogUserAction(username, "recipe_removed", map[string]interface{}{"title": title})
	return nil
}
