package entities

import (
	"errors"
	"strings"
	"unicode"
)

// Common errors
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUserExists          = errors.New("user already exists")
	ErrItemNotFound        = errors.New("item not found")
	ErrRecipeNotFound      = errors.New("saved recipe not found")
	ErrRecipeExists        = errors.New("recipe already saved")
	ErrUnknownPreference   = errors.New("unknown preference key")
	ErrUnknownSection      = errors.New("unknown section")
	ErrInvalidSectionValue = errors.New("value type does not match section")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrInvalidQuantity     = errors.New("quantity must be a positive number")
	ErrEmptyField          = errors.New("required field is empty")
	ErrStoreUnavailable    = errors.New("user store unavailable")
	ErrStoreCorrupted      = errors.New("user store corrupted")
	ErrRevisionConflict    = errors.New("document revision conflict")
)

// Section identifies one of the four independently addressable parts of a
// user record.
type Section string

const (
	SectionKitchen      Section = "kitchen"
	SectionDonations    Section = "donations"
	SectionSavedRecipes Section = "saved_recipes"
	SectionPreferences  Section = "preferences"
)

// IsValid reports whether the section is one of the four known sections.
func (s Section) IsValid() bool {
	switch s {
	case SectionKitchen, SectionDonations, SectionSavedRecipes, SectionPreferences:
		return true
	default:
		return false
	}
}

// ParseSection resolves a section name. Only the four canonical names are
// accepted; anything else is ErrUnknownSection.
func ParseSection(name string) (Section, error) {
	s := Section(name)
	if !s.IsValid() {
		return "", ErrUnknownSection
	}
	return s, nil
}

// KitchenItem is one entry in a user's kitchen inventory.
type KitchenItem struct {
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Expiry   string  `json:"expiry"` // YYYY-MM-DD
}

// DonationItem is one entry in a user's donation listing.
type DonationItem struct {
	Quantity float64 `json:"quantity"`
	Pickup   string  `json:"pickup"`
}

// SavedRecipe is a recipe bookmarked by a user, unique by title.
type SavedRecipe struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// Preferences is the fixed set of dietary preference flags.
type Preferences struct {
	Vegetarian bool `json:"vegetarian"`
	Vegan      bool `json:"vegan"`
	GlutenFree bool `json:"glutenFree"`
	DairyFree  bool `json:"dairyFree"`
	Ketogenic  bool `json:"ketogenic"`
}

// PreferenceKeys lists the valid preference keys in a stable order.
var PreferenceKeys = []string{"vegetarian", "vegan", "glutenFree", "dairyFree", "ketogenic"}

// Get returns the flag for key, or ErrUnknownPreference.
func (p *Preferences) Get(key string) (bool, error) {
	switch key {
	case "vegetarian":
		return p.Vegetarian, nil
	case "vegan":
		return p.Vegan, nil
	case "glutenFree":
		return p.GlutenFree, nil
	case "dairyFree":
		return p.DairyFree, nil
	case "ketogenic":
		return p.Ketogenic, nil
	default:
		return false, ErrUnknownPreference
	}
}

// Set updates the flag for key. Unknown keys are rejected: the old UI only
// ever offered the five known checkboxes, but this is a library boundary now.
func (p *Preferences) Set(key string, value bool) error {
	switch key {
	case "vegetarian":
		p.Vegetarian = value
	case "vegan":
		p.Vegan = value
	case "glutenFree":
		p.GlutenFree = value
	case "dairyFree":
		p.DairyFree = value
	case "ketogenic":
		p.Ketogenic = value
	default:
		return ErrUnknownPreference
	}
	return nil
}

// UserRecord is the per-username sub-object of the document. All five fields
// are always present once a record is stored.
type UserRecord struct {
	Password      string                  `json:"password"`
	KitchenItems  map[string]KitchenItem  `json:"kitchen_items"`
	DonationItems map[string]DonationItem `json:"donation_items"`
	SavedRecipes  []SavedRecipe           `json:"saved_recipes"`
	Preferences   Preferences             `json:"preferences"`
}

// NewUserRecord returns a record with all sections at their defaults.
func NewUserRecord(password string) *UserRecord {
	return &UserRecord{
		Password:      password,
		KitchenItems:  map[string]KitchenItem{},
		DonationItems: map[string]DonationItem{},
		SavedRecipes:  []SavedRecipe{},
	}
}

// Normalize backfills any section missing from the on-disk record so that a
// loaded record always carries all five fields.
func (r *UserRecord) Normalize() {
	if r.KitchenItems == nil {
		r.KitchenItems = map[string]KitchenItem{}
	}
	if r.DonationItems == nil {
		r.DonationItems = map[string]DonationItem{}
	}
	if r.SavedRecipes == nil {
		r.SavedRecipes = []SavedRecipe{}
	}
}

// HasSavedRecipe reports whether a recipe with the given title is already
// bookmarked.
func (r *UserRecord) HasSavedRecipe(title string) bool {
	for _, s := range r.SavedRecipes {
		if s.Title == title {
			return true
		}
	}
	return false
}

// Document is the full user database: one JSON object keyed by username.
type Document map[string]*UserRecord

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for name, rec := range d {
		cp := *rec
		cp.KitchenItems = make(map[string]KitchenItem, len(rec.KitchenItems))
		for k, v := range rec.KitchenItems {
			cp.KitchenItems[k] = v
		}
		cp.DonationItems = make(map[string]DonationItem, len(rec.DonationItems))
		for k, v := range rec.DonationItems {
			cp.DonationItems[k] = v
		}
		cp.SavedRecipes = append([]SavedRecipe(nil), rec.SavedRecipes...)
		out[name] = &cp
	}
	return out
}

// NormalizeItemName canonicalizes an item name the way every version of the
// app has: first letter upper-cased, the rest lowered, surrounding
// whitespace stripped.
func NormalizeItemName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	runes := []rune(strings.ToLower(name))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
