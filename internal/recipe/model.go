package recipe

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"recipebox/internal/ingredient"
)

// ErrRecipeNotFound is returned when a recipe does not exist or the viewer may not see it.
var ErrRecipeNotFound = errors.New("recipe not found")

// ErrInvalidSearchQuery is returned when PostgreSQL rejects the full-text query.
var ErrInvalidSearchQuery = errors.New("invalid search query")

// Recipe is a stored recipe with its ingredient lines in recipe order.
type Recipe struct {
	ID            uuid.UUID                  `json:"id" db:"id"`
	AuthorID      uuid.UUID                  `json:"authorId" db:"author_id"`
	Title         string                     `json:"title" db:"title"`
	Description   string                     `json:"description" db:"description"`
	Cuisine       string                     `json:"cuisine" db:"cuisine"`
	Difficulty    string                     `json:"difficulty" db:"difficulty"`
	PrepTime      *int                       `json:"prepTime" db:"prep_time"`
	CookTime      *int                       `json:"cookTime" db:"cook_time"`
	Servings      int                        `json:"servings" db:"servings"`
	DietaryTags   pq.StringArray             `json:"dietaryTags" db:"dietary_tags"`
	IsPublic      bool                       `json:"isPublic" db:"is_public"`
	AverageRating *float64                   `json:"averageRating" db:"average_rating"`
	CreatedAt     time.Time                  `json:"createdAt" db:"created_at"`
	Ingredients   []ingredient.RawIngredient `json:"ingredients" db:"-"`
}

// VisibleTo reports whether viewer may read the recipe. Public recipes are visible to everyone,
// private ones only to their author.
func (r *Recipe) VisibleTo(viewer *uuid.UUID) bool {
	if r.IsPublic {
		return true
	}
	return viewer != nil && *viewer == r.AuthorID
}

// Summary is a search result row.
type Summary struct {
	ID            uuid.UUID      `json:"id" db:"id"`
	AuthorID      uuid.UUID      `json:"authorId" db:"author_id"`
	Title         string         `json:"title" db:"title"`
	Description   string         `json:"description" db:"description"`
	Cuisine       string         `json:"cuisine" db:"cuisine"`
	Difficulty    string         `json:"difficulty" db:"difficulty"`
	PrepTime      *int           `json:"prepTime" db:"prep_time"`
	CookTime      *int           `json:"cookTime" db:"cook_time"`
	Servings      int            `json:"servings" db:"servings"`
	DietaryTags   pq.StringArray `json:"dietaryTags" db:"dietary_tags"`
	IsPublic      bool           `json:"isPublic" db:"is_public"`
	AverageRating *float64       `json:"averageRating" db:"average_rating"`
	CreatedAt     time.Time      `json:"createdAt" db:"created_at"`
}

// SearchResult is one page of a recipe search.
type SearchResult struct {
	Recipes []Summary `json:"recipes"`
	Total   int       `json:"total"`
	Page    int       `json:"page"`
	Limit   int       `json:"limit"`
}

// RecipeIngredients is the ingredient list of one recipe, used to build shopping lists.
type RecipeIngredients struct {
	RecipeID    uuid.UUID
	Title       string
	Servings    int
	Ingredients []ingredient.RawIngredient
}
