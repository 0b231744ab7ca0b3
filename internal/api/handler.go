package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"recipebox/internal/ingredient"
	"recipebox/internal/platform/metrics"
	"recipebox/internal/recipe"
	"recipebox/internal/search"
)

// ViewerHeader carries the authenticated user id, set by the auth gateway in front of the API.
const ViewerHeader = "X-User-ID"

// DefaultTimeout bounds store calls when no timeout is configured.
const DefaultTimeout = 5 * time.Second

// RecipeStore defines the recipe reads the handlers need.
type RecipeStore interface {
	GetRecipe(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error)
	ListIngredients(ctx context.Context, ids []uuid.UUID, viewer *uuid.UUID) ([]recipe.RecipeIngredients, error)
	SearchRecipes(ctx context.Context, in search.SearchFilterInput, viewer *uuid.UUID) (*recipe.SearchResult, error)
	Ping(ctx context.Context) error
}

// Handler handles HTTP requests.
type Handler struct {
	RecipeStore RecipeStore
	Logger      *zap.Logger
	Metrics     *metrics.Metrics
	Timeout     time.Duration
}

// NewHandler creates a new Handler.
func NewHandler(recipeStore RecipeStore, logger *zap.Logger, m *metrics.Metrics, timeout time.Duration) *Handler {
	RegisterValidators()
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Handler{RecipeStore: recipeStore, Logger: logger, Metrics: m, Timeout: timeout}
}

// viewer returns the caller's user id, or nil for anonymous callers and malformed ids.
func viewer(c *gin.Context) *uuid.UUID {
	raw := strings.TrimSpace(c.GetHeader(ViewerHeader))
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

func (h *Handler) badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// storeError maps a store failure to a response.
func (h *Handler) storeError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusRequestTimeout, gin.H{"error": "Database query timed out"})
	case errors.Is(err, recipe.ErrRecipeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
	case errors.Is(err, recipe.ErrInvalidSearchQuery):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid search query"})
	default:
		h.Logger.Error(op+" failed",
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
	}
}

// SearchRecipes handles full-text and filtered recipe search.
func (h *Handler) SearchRecipes(c *gin.Context) {
	var in search.SearchFilterInput
	if err := c.ShouldBindQuery(&in); err != nil {
		h.badRequest(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.Timeout)
	defer cancel()

	result, err := h.RecipeStore.SearchRecipes(ctx, in, viewer(c))
	if err != nil {
		h.storeError(c, "search recipes", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

type scaledRecipe struct {
	*recipe.Recipe
	ScaleFactor float64 `json:"scaleFactor"`
}

// GetRecipe returns a recipe, optionally scaled with ?servings=N or ?scale=F.
// Private recipes of other authors are reported as not found.
func (h *Handler) GetRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	servings, factor, err := scaleParams(c)
	if err != nil {
		h.badRequest(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.Timeout)
	defer cancel()

	r, err := h.RecipeStore.GetRecipe(ctx, id)
	if err != nil {
		h.storeError(c, "get recipe", err)
		return
	}
	if !r.VisibleTo(viewer(c)) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	if servings > 0 {
		factor = ingredient.ScaleFactor(r.Servings, servings)
		if r.Servings > 0 {
			r.Servings = servings
		}
	}
	r.Ingredients = ingredient.ScaleIngredients(r.Ingredients, factor)

	c.JSON(http.StatusOK, scaledRecipe{Recipe: r, ScaleFactor: factor})
}

// scaleParams reads ?servings and ?scale. servings wins when both are present.
func scaleParams(c *gin.Context) (int, float64, error) {
	servings := 0
	if raw := c.Query("servings"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return 0, 0, errors.New("servings must be a positive integer")
		}
		servings = n
	}

	factor := 1.0
	if raw := c.Query("scale"); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || !(f > 0) || f > 100 {
			return 0, 0, errors.New("scale must be a number between 0 and 100")
		}
		factor = f
	}
	return servings, factor, nil
}

type shoppingListRecipe struct {
	ID       string `json:"id" binding:"required,uuid"`
	Servings int    `json:"servings" binding:"omitempty,min=1,max=100"`
}

type shoppingListRequest struct {
	Recipes []shoppingListRecipe `json:"recipes" binding:"required,min=1,max=20,dive"`
}

type shoppingListResponse struct {
	Items    []ingredient.AggregatedItem `json:"items"`
	Sections []ingredient.CategoryGroup  `json:"sections"`
}

// ShoppingList merges the ingredients of several recipes, each scaled to the requested servings,
// into one categorized list.
func (h *Handler) ShoppingList(c *gin.Context) {
	var req shoppingListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	ids := make([]uuid.UUID, 0, len(req.Recipes))
	seen := make(map[uuid.UUID]bool, len(req.Recipes))
	for _, entry := range req.Recipes {
		id, err := uuid.Parse(entry.ID)
		if err != nil {
			h.badRequest(c, err)
			return
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.Timeout)
	defer cancel()

	lists, err := h.RecipeStore.ListIngredients(ctx, ids, viewer(c))
	if err != nil {
		h.storeError(c, "list ingredients", err)
		return
	}

	byID := make(map[uuid.UUID]recipe.RecipeIngredients, len(lists))
	for _, list := range lists {
		byID[list.RecipeID] = list
	}

	var missing []string
	var raw []ingredient.RawIngredient
	for _, entry := range req.Recipes {
		list, ok := byID[uuid.MustParse(entry.ID)]
		if !ok {
			missing = append(missing, entry.ID)
			continue
		}
		factor := 1.0
		if entry.Servings > 0 {
			factor = ingredient.ScaleFactor(list.Servings, entry.Servings)
		}
		raw = append(raw, ingredient.ScaleIngredients(list.Ingredients, factor)...)
	}
	if len(missing) > 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found", "missing": missing})
		return
	}

	items := ingredient.AggregateIngredients(raw)
	h.Metrics.RecordAggregation("shopping_list", len(items))

	c.JSON(http.StatusOK, shoppingListResponse{Items: items, Sections: ingredient.GroupByCategory(items)})
}

type ingredientsRequest struct {
	Ingredients []ingredient.RawIngredient `json:"ingredients" binding:"required,max=500,dive"`
}

// AggregateIngredients merges a caller-supplied ingredient list.
func (h *Handler) AggregateIngredients(c *gin.Context) {
	var req ingredientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	items := ingredient.AggregateIngredients(req.Ingredients)
	h.Metrics.RecordAggregation("ingredients", len(items))

	c.JSON(http.StatusOK, gin.H{"items": items, "sections": ingredient.GroupByCategory(items)})
}

type scaleRequest struct {
	Ingredients []ingredient.RawIngredient `json:"ingredients" binding:"required,max=500,dive"`
	Factor      float64                    `json:"factor" binding:"required,gt=0,lte=100"`
}

// ScaleIngredients multiplies every quantity in a caller-supplied list by factor.
func (h *Handler) ScaleIngredients(c *gin.Context) {
	var req scaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"factor":      req.Factor,
		"ingredients": ingredient.ScaleIngredients(req.Ingredients, req.Factor),
	})
}

// CategorizeIngredient reports the shopping category of ?name.
func (h *Handler) CategorizeIngredient(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		h.badRequest(c, errors.New("name is required"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"name": name, "category": ingredient.CategorizeIngredient(name)})
}

// Health reports whether the database is reachable.
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.Timeout)
	defer cancel()

	if err := h.RecipeStore.Ping(ctx); err != nil {
		h.Logger.Warn("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
