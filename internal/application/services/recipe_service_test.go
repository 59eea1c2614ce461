package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/domain/entities"
	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/infrastructure/logger"
	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/ports"
)

// fakeLookup records the last query and returns canned results.
type fakeLookup struct {
	lastQuery *ports.RecipeQuery
	results   []ports.RecipeResult
	err       error
	calls     int
}

func (f *fakeLookup) FindByIngredients(ctx context.Context, query ports.RecipeQuery) ([]ports.RecipeResult, error) {
	f.calls++
	f.lastQuery = &query
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func TestSuggestBuildsQueryFromKitchenAndPreferences(t *testing.T) {
	repo := newTestRepo(t, "alice")
	ctx := context.Background()

	require.NoError(t, repo.PutKitchenItem(ctx, "alice", "Tomato", entities.KitchenItem{Quantity: 2, Unit: "pcs", Expiry: "2026-09-07"}))
	require.NoError(t, repo.WriteSection(ctx, "alice", entities.SectionPreferences, entities.Preferences{
		Vegan:      true,
		Vegetarian: true, // vegan wins
		Ketogenic:  true,
		DairyFree:  true,
		GlutenFree: true,
	}))

	lookup := &fakeLookup{
		results: []ports.RecipeResult{
			{ID: 716429, Title: "Tomato Soup", UsedIngredients: []string{"2 tomatoes"}, MissingIngredients: []string{"stock"}},
		},
	}
	svc := NewRecipeService(repo, lookup, 5, logger.NewNop())

	candidates, err := svc.Suggest(ctx, "alice")
	require.NoError(t, err)

	require.NotNil(t, lookup.lastQuery)
	assert.Equal(t, []string{"Tomato"}, lookup.lastQuery.Ingredients)
	assert.Equal(t, 5, lookup.lastQuery.Number)
	assert.Equal(t, "vegan", lookup.lastQuery.Diet)
	assert.Equal(t, []string{"dairy", "gluten"}, lookup.lastQuery.Intolerances)

	require.Len(t, candidates, 1)
	assert.Equal(t, "Tomato Soup", candidates[0].Title)
	assert.Equal(t, "https://spoonacular.com/recipes/Tomato-Soup-716429", candidates[0].Link)
	assert.Equal(t, []string{"2 tomatoes"}, candidates[0].UsedIngredients)
	assert.Equal(t, []string{"stock"}, candidates[0].MissingIngredients)
}

func TestSuggestDietPriority(t *testing.T) {
	tests := []struct {
		name  string
		prefs entities.Preferences
		diet  string
	}{
		{"vegetarian over ketogenic", entities.Preferences{Vegetarian: true, Ketogenic: true}, "vegetarian"},
		{"ketogenic alone", entities.Preferences{Ketogenic: true}, "ketogenic"},
		{"no diet", entities.Preferences{DairyFree: true}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newTestRepo(t, "alice")
			ctx := context.Background()
			require.NoError(t, repo.PutKitchenItem(ctx, "alice", "Egg", entities.KitchenItem{Quantity: 6, Unit: "pcs", Expiry: "2026-09-05"}))
			require.NoError(t, repo.WriteSection(ctx, "alice", entities.SectionPreferences, tt.prefs))

			lookup := &fakeLookup{}
			svc := NewRecipeService(repo, lookup, 3, logger.NewNop())

			_, err := svc.Suggest(ctx, "alice")
			require.NoError(t, err)
			require.NotNil(t, lookup.lastQuery)
			assert.Equal(t, tt.diet, lookup.lastQuery.Diet)
		})
	}
}

func TestSuggestEmptyKitchenSkipsLookup(t *testing.T) {
	repo := newTestRepo(t, "alice")
	lookup := &fakeLookup{}
	svc := NewRecipeService(repo, lookup, 5, logger.NewNop())

	candidates, err := svc.Suggest(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, candidates)
	assert.Zero(t, lookup.calls)
}

func TestSuggestLookupFailure(t *testing.T) {
	repo := newTestRepo(t, "alice")
	ctx := context.Background()
	require.NoError(t, repo.PutKitchenItem(ctx, "alice", "Tomato", entities.KitchenItem{Quantity: 1, Unit: "pcs", Expiry: "2026-09-05"}))

	lookup := &fakeLookup{err: assert.AnError}
	svc := NewRecipeService(repo, lookup, 5, logger.NewNop())

	_, err := svc.Suggest(ctx, "alice")
	assert.ErrorIs(t, err, assert.AnError)
}

func TestSuggestUnknownUser(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewRecipeService(repo, &fakeLookup{}, 5, logger.NewNop())

	_, err := svc.Suggest(context.Background(), "nobody")
	assert.ErrorIs(t, err, entities.ErrUserNotFound)
}

func TestSaveRecipeBuildsLinkFromID(t *testing.T) {
	repo := newTestRepo(t, "alice")
	svc := NewRecipeService(repo, &fakeLookup{}, 5, logger.NewNop())
	ctx := context.Background()

	recipe, err := svc.Save(ctx, "alice", ports.SaveRecipeRequest{Title: "Tomato Soup", ID: 716429})
	require.NoError(t, err)
	assert.Equal(t, "https://spoonacular.com/recipes/Tomato-Soup-716429", recipe.Link)

	// An explicit link is kept as given.
	recipe, err = svc.Save(ctx, "alice", ports.SaveRecipeRequest{Title: "Stew", Link: "https://example.com/stew", ID: 99})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/stew", recipe.Link)
}

func TestSaveRecipeDeduplicatesByTitle(t *testing.T) {
	repo := newTestRepo(t, "alice")
	svc := NewRecipeService(repo, &fakeLookup{}, 5, logger.NewNop())
	ctx := context.Background()

	_, err := svc.Save(ctx, "alice", ports.SaveRecipeRequest{Title: "Tomato Soup", ID: 716429})
	require.NoError(t, err)

	_, err = svc.Save(ctx, "alice", ports.SaveRecipeRequest{Title: "Tomato Soup", ID: 1})
	assert.ErrorIs(t, err, entities.ErrRecipeExists)

	saved, err := svc.ListSaved(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, saved, 1)
}

func TestRemoveSavedRecipe(t *testing.T) {
	repo := newTestRepo(t, "alice")
	svc := NewRecipeService(repo, &fakeLookup{}, 5, logger.NewNop())
	ctx := context.Background()

	_, err := svc.Save(ctx, "alice", ports.SaveRecipeRequest{Title: "Tomato Soup", ID: 716429})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, "alice", "Tomato Soup"))

	err = svc.Remove(ctx, "alice", "Tomato Soup")
	assert.ErrorIs(t, err, entities.ErrRecipeNotFound)
}
