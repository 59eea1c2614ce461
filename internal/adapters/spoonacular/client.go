// Package spoonacular talks to the recipe lookup collaborator. The store
// treats it as opaque: errors and non-success responses are reported to the
// caller, never swallowed.
package spoonacular

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/infrastructure/config"
	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/ports"
)

// Client calls the Spoonacular findByIngredients endpoint.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// New creates a new recipe lookup client with an explicit request timeout.
func New(cfg config.SpoonacularConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type ingredientRef struct {
	Original string `json:"original"`
}

type findByIngredientsItem struct {
	ID                int             `json:"id"`
	Title             string          `json:"title"`
	UsedIngredients   []ingredientRef `json:"usedIngredients"`
	MissedIngredients []ingredientRef `json:"missedIngredients"`
}

// FindByIngredients fetches recipe candidates for the given ingredient set
// and dietary constraints.
func (c *Client) FindByIngredients(ctx context.Context, query ports.RecipeQuery) ([]ports.RecipeResult, error) {
	u, err := url.Parse(c.baseURL + "/recipes/findByIngredients")
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("apiKey", c.apiKey)
	q.Set("ingredients", strings.Join(query.Ingredients, ","))
	q.Set("number", strconv.Itoa(query.Number))
	q.Set("ranking", "1")
	if query.Diet != "" {
		q.Set("diet", query.Diet)
	}
	if len(query.Intolerances) > 0 {
		q.Set("intolerances", strings.Join(query.Intolerances, ","))
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("recipe lookup request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("recipe lookup returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var items []findByIngredientsItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode recipe response: %w", err)
	}

	results := make([]ports.RecipeResult, 0, len(items))
	for _, it := range items {
		r := ports.RecipeResult{
			ID:    it.ID,
			Title: it.Title,
		}
		for _, ing := range it.UsedIngredients {
			r.UsedIngredients = append(r.UsedIngredients, ing.Original)
		}
		for _, ing := range it.MissedIngredients {
			r.MissingIngredients = append(r.MissingIngredients, ing.Original)
		}
		results = append(results, r)
	}
	return results, nil
}

// RecipeLink builds the public recipe page URL the way the app always has.
func RecipeLink(title string, id int) string {
	return fmt.Sprintf("https://spoonacular.com/recipes/%s-%d", strings.ReplaceAll(title, " ", "-"), id)
}
