package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/application/services"
	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/domain/entities"
	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/infrastructure/logger"
	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/ports"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	authService *services.AuthService
	logger      *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register handles sign-up
func (h *AuthHandler) Register(c echo.Context) error {
	var req ports.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	response, err := h.authService.SignUp(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, entities.ErrUserExists) {
			return echo.NewHTTPError(http.StatusConflict, "Username already exists")
		}
		if errors.Is(err, entities.ErrEmptyField) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		h.logger.Error("Sign-up failed", "error", err, "username", req.Username)
		return err
	}

	return c.JSON(http.StatusCreated, response)
}

// Login handles user login
func (h *AuthHandler) Login(c echo.Context) error {
	var req ports.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	response, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, entities.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid username or password")
		}
		h.logger.Error("Login failed", "error", err, "username", req.Username)
		return err
	}

	return c.JSON(http.StatusOK, response)
}

// InventoryHandler handles kitchen inventory requests
type InventoryHandler struct {
	inventoryService *services.InventoryService
	logger           *logger.Logger
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventoryService *services.InventoryService, logger *logger.Logger) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
		logger:           logger,
	}
}

// ListItems returns the caller's kitchen inventory
func (h *InventoryHandler) ListItems(c echo.Context) error {
	items, err := h.inventoryService.ListItems(c.Request().Context(), usernameFromContext(c))
	if err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, items)
}

// AddItem upserts one kitchen item
func (h *InventoryHandler) AddItem(c echo.Context) error {
	var req ports.AddKitchenItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	name, item, err := h.inventoryService.AddItem(c.Request().Context(), usernameFromContext(c), req)
	if err != nil {
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, map[string]any{"name": name, "item": item})
}

// RemoveItem deletes one kitchen item
func (h *InventoryHandler) RemoveItem(c echo.Context) error {
	name := c.Param("name")

	err := h.inventoryService.RemoveItem(c.Request().Context(), usernameFromContext(c), name)
	if err != nil {
		if errors.Is(err, entities.ErrItemNotFound) {
			// Not-found removal is a no-op result, not a failure.
			return c.JSON(http.StatusOK, RemoveResponse{Removed: false})
		}
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, RemoveResponse{Removed: true})
}

// ExpiringSoon lists items expiring within the requested number of days
func (h *InventoryHandler) ExpiringSoon(c echo.Context) error {
	days := 0
	if daysStr := c.QueryParam("days"); daysStr != "" {
		parsed, err := strconv.Atoi(daysStr)
		if err != nil || parsed < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid days parameter")
		}
		days = parsed
	}

	items, err := h.inventoryService.ExpiringSoon(c.Request().Context(), usernameFromContext(c), days)
	if err != nil {
		return mapDomainError(err)
	}
	if items == nil {
		items = []ports.ExpiringItem{}
	}
	return c.JSON(http.StatusOK, items)
}

// DonationHandler handles donation listing requests
type DonationHandler struct {
	donationService *services.DonationService
	logger          *logger.Logger
}

// NewDonationHandler creates a new donation handler
func NewDonationHandler(donationService *services.DonationService, logger *logger.Logger) *DonationHandler {
	return &DonationHandler{
		donationService: donationService,
		logger:          logger,
	}
}

// ListItems returns the caller's own donation listing
func (h *DonationHandler) ListItems(c echo.Context) error {
	items, err := h.donationService.ListItems(c.Request().Context(), usernameFromContext(c))
	if err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, items)
}

// AddItem upserts one donation listing
func (h *DonationHandler) AddItem(c echo.Context) error {
	var req ports.AddDonationItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	name, item, err := h.donationService.AddItem(c.Request().Context(), usernameFromContext(c), req)
	if err != nil {
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, map[string]any{"name": name, "item": item})
}

// RemoveItem deletes one donation listing
func (h *DonationHandler) RemoveItem(c echo.Context) error {
	name := c.Param("name")

	err := h.donationService.RemoveItem(c.Request().Context(), usernameFromContext(c), name)
	if err != nil {
		if errors.Is(err, entities.ErrItemNotFound) {
			return c.JSON(http.StatusOK, RemoveResponse{Removed: false})
		}
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, RemoveResponse{Removed: true})
}

// Community returns every user's donation listings
func (h *DonationHandler) Community(c echo.Context) error {
	donations, err := h.donationService.Community(c.Request().Context())
	if err != nil {
		return mapDomainError(err)
	}
	if donations == nil {
		donations = []ports.CommunityDonation{}
	}
	return c.JSON(http.StatusOK, donations)
}

// RecipeHandler handles recipe suggestion and bookmark requests
type RecipeHandler struct {
	recipeService *services.RecipeService
	logger        *logger.Logger
}

// NewRecipeHandler creates a new recipe handler
func NewRecipeHandler(recipeService *services.RecipeService, logger *logger.Logger) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		logger:        logger,
	}
}

// Suggest fetches recipe candidates for the caller's kitchen
func (h *RecipeHandler) Suggest(c echo.Context) error {
	candidates, err := h.recipeService.Suggest(c.Request().Context(), usernameFromContext(c))
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		h.logger.Error("Recipe suggestion failed", "error", err)
		return echo.NewHTTPError(http.StatusBadGateway, "Recipe lookup failed: "+err.Error())
	}
	return c.JSON(http.StatusOK, candidates)
}

// ListSaved returns the caller's bookmarked recipes
func (h *RecipeHandler) ListSaved(c echo.Context) error {
	saved, err := h.recipeService.ListSaved(c.Request().Context(), usernameFromContext(c))
	if err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, saved)
}

// Save bookmarks a recipe
func (h *RecipeHandler) Save(c echo.Context) error {
	var req ports.SaveRecipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	recipe, err := h.recipeService.Save(c.Request().Context(), usernameFromContext(c), req)
	if err != nil {
		if errors.Is(err, entities.ErrRecipeExists) {
			return c.JSON(http.StatusOK, MessageResponse{Message: "Recipe already saved"})
		}
		return mapDomainError(err)
	}

	return c.JSON(http.StatusCreated, recipe)
}

// Remove deletes one bookmarked recipe by title
func (h *RecipeHandler) Remove(c echo.Context) error {
	title := c.Param("title")

	err := h.recipeService.Remove(c.Request().Context(), usernameFromContext(c), title)
	if err != nil {
		if errors.Is(err, entities.ErrRecipeNotFound) {
			return c.JSON(http.StatusOK, RemoveResponse{Removed: false})
		}
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, RemoveResponse{Removed: true})
}

// PreferenceHandler handles dietary preference requests
type PreferenceHandler struct {
	preferenceService *services.PreferenceService
	logger            *logger.Logger
}

// NewPreferenceHandler creates a new preference handler
func NewPreferenceHandler(preferenceService *services.PreferenceService, logger *logger.Logger) *PreferenceHandler {
	return &PreferenceHandler{
		preferenceService: preferenceService,
		logger:            logger,
	}
}

// Get returns the caller's preference set
func (h *PreferenceHandler) Get(c echo.Context) error {
	prefs, err := h.preferenceService.Get(c.Request().Context(), usernameFromContext(c))
	if err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, prefs)
}

// Update replaces preference flags from a batch
func (h *PreferenceHandler) Update(c echo.Context) error {
	var req ports.UpdatePreferencesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	prefs, err := h.preferenceService.Update(c.Request().Context(), usernameFromContext(c), req.Preferences)
	if err != nil {
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, prefs)
}

// Set toggles a single preference flag
func (h *PreferenceHandler) Set(c echo.Context) error {
	key := c.Param("key")

	var req ports.SetPreferenceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	prefs, err := h.preferenceService.Set(c.Request().Context(), usernameFromContext(c), key, req.Value)
	if err != nil {
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, prefs)
}

// Utility functions and helper types

func usernameFromContext(c echo.Context) string {
	if username, ok := c.Get("username").(string); ok {
		return username
	}
	return ""
}

// mapDomainError translates store and validation errors into HTTP errors.
func mapDomainError(err error) error {
	switch {
	case errors.Is(err, entities.ErrUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	case errors.Is(err, entities.ErrUnknownPreference):
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown preference key")
	case errors.Is(err, entities.ErrUnknownSection), errors.Is(err, entities.ErrInvalidSectionValue):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, entities.ErrInvalidQuantity), errors.Is(err, entities.ErrEmptyField):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, entities.ErrStoreCorrupted):
		return echo.NewHTTPError(http.StatusInternalServerError, "User store corrupted")
	case errors.Is(err, entities.ErrStoreUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "User store unavailable")
	default:
		return err
	}
}

// Request/Response types

type MessageResponse struct {
	Message string `json:"message"`
}

type RemoveResponse struct {
	Removed bool `json:"removed"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
