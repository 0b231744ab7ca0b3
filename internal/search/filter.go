package search

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Pagination bounds.
const (
	DefaultLimit = 20
	MaxLimit     = 50
)

// Sort options.
const (
	SortRelevance = "relevance"
	SortNewest    = "newest"
	SortOldest    = "oldest"
	SortRating    = "rating"
	SortPrepTime  = "prep_time"
	SortTitle     = "title"
)

// SearchFilterInput is the validated query string of a recipe search.
type SearchFilterInput struct {
	Q           string   `form:"q" json:"q" binding:"omitempty,max=500"`
	Cuisine     string   `form:"cuisine" json:"cuisine" binding:"omitempty,max=50"`
	Difficulty  string   `form:"difficulty" json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	MaxPrepTime *int     `form:"maxPrepTime" json:"maxPrepTime" binding:"omitempty,min=0"`
	MaxCookTime *int     `form:"maxCookTime" json:"maxCookTime" binding:"omitempty,min=0"`
	MinRating   *float64 `form:"minRating" json:"minRating" binding:"omitempty,min=1,max=5"`
	Dietary     []string `form:"dietary" json:"dietary" binding:"omitempty,max=10,dive,dietary_tag"`
	Sort        string   `form:"sort" json:"sort"`
	Page        int      `form:"page" json:"page" binding:"omitempty,min=1"`
	Limit       int      `form:"limit" json:"limit" binding:"omitempty,min=1,max=50"`
}

// Pagination returns the LIMIT and OFFSET for the requested page.
func (in SearchFilterInput) Pagination() (limit, offset int) {
	limit = in.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	page := in.Page
	if page < 1 {
		page = 1
	}
	return limit, (page - 1) * limit
}

// WhereClause is a list of AND-ed SQL conditions with positional ($n) arguments.
type WhereClause struct {
	Conditions []string
	Args       []interface{}
}

// Add appends a condition. format must contain one %d for the placeholder index of arg.
func (w *WhereClause) Add(format string, arg interface{}) {
	w.Args = append(w.Args, arg)
	w.Conditions = append(w.Conditions, fmt.Sprintf(format, len(w.Args)))
}

// Next is the index of the next free placeholder.
func (w *WhereClause) Next() int {
	return len(w.Args) + 1
}

// SQL joins the conditions with AND.
func (w *WhereClause) SQL() string {
	if len(w.Conditions) == 0 {
		return "TRUE"
	}
	return strings.Join(w.Conditions, " AND ")
}

// BuildSearchWhereClause builds the visibility rule and the optional filters of a search over the
// recipes table aliased as r. A signed-in viewer sees their own recipes and public ones; an
// anonymous viewer only public ones. Full-text matching is added by the caller.
func BuildSearchWhereClause(in SearchFilterInput, viewer *uuid.UUID) WhereClause {
	var w WhereClause

	if viewer != nil {
		w.Add("(r.author_id = $%d OR r.is_public = TRUE)", *viewer)
	} else {
		w.Conditions = append(w.Conditions, "r.is_public = TRUE")
	}

	if cuisine := strings.TrimSpace(in.Cuisine); cuisine != "" {
		w.Add("LOWER(r.cuisine) = LOWER($%d)", cuisine)
	}
	if difficulty := strings.TrimSpace(in.Difficulty); difficulty != "" {
		w.Add("r.difficulty = $%d", strings.ToLower(difficulty))
	}
	if in.MaxPrepTime != nil {
		w.Add("r.prep_time <= $%d", *in.MaxPrepTime)
	}
	if in.MaxCookTime != nil {
		w.Add("r.cook_time <= $%d", *in.MaxCookTime)
	}
	if in.MinRating != nil {
		w.Add("r.average_rating >= $%d", *in.MinRating)
	}
	if tags := normalizeTags(in.Dietary); len(tags) > 0 {
		w.Add("r.dietary_tags @> $%d", pq.Array(tags))
	}

	return w
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.ToLower(strings.TrimSpace(tag)); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// BuildSearchOrderBy returns the ORDER BY expression for sort. Relevance returns "" because the
// rank depends on the full-text query and is computed by the caller. Unknown values sort newest first.
func BuildSearchOrderBy(sort string) string {
	switch strings.ToLower(strings.TrimSpace(sort)) {
	case SortRelevance:
		return ""
	case SortOldest:
		return "r.created_at ASC"
	case SortRating:
		return "r.average_rating DESC NULLS LAST"
	case SortPrepTime:
		return "r.prep_time ASC NULLS LAST"
	case SortTitle:
		return "r.title ASC"
	default:
		return "r.created_at DESC"
	}
}
