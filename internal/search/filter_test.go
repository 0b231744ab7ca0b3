package search

import (
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestBuildSearchWhereClause_Anonymous(t *testing.T) {
	w := BuildSearchWhereClause(SearchFilterInput{}, nil)

	assert.Equal(t, "r.is_public = TRUE", w.SQL())
	assert.Empty(t, w.Args)
	assert.Equal(t, 1, w.Next())
}

func TestBuildSearchWhereClause_Viewer(t *testing.T) {
	viewer := uuid.New()

	w := BuildSearchWhereClause(SearchFilterInput{}, &viewer)

	assert.Equal(t, "(r.author_id = $1 OR r.is_public = TRUE)", w.SQL())
	assert.Equal(t, []interface{}{viewer}, w.Args)
	assert.Equal(t, 2, w.Next())
}

func TestBuildSearchWhereClause_AllFilters(t *testing.T) {
	viewer := uuid.New()
	in := SearchFilterInput{
		Cuisine:     "Italian",
		Difficulty:  "Easy",
		MaxPrepTime: intPtr(15),
		MaxCookTime: intPtr(30),
		MinRating:   floatPtr(4),
		Dietary:     []string{"Vegan", " gluten-free ", ""},
	}

	w := BuildSearchWhereClause(in, &viewer)

	assert.Equal(t, []string{
		"(r.author_id = $1 OR r.is_public = TRUE)",
		"LOWER(r.cuisine) = LOWER($2)",
		"r.difficulty = $3",
		"r.prep_time <= $4",
		"r.cook_time <= $5",
		"r.average_rating >= $6",
		"r.dietary_tags @> $7",
	}, w.Conditions)
	require.Len(t, w.Args, 7)
	assert.Equal(t, "Italian", w.Args[1])
	assert.Equal(t, "easy", w.Args[2])
	assert.Equal(t, 15, w.Args[3])
	assert.Equal(t, 30, w.Args[4])
	assert.Equal(t, 4.0, w.Args[5])
	assert.Equal(t, pq.Array([]string{"vegan", "gluten-free"}), w.Args[6])
	assert.Equal(t, 8, w.Next())
}

func TestBuildSearchWhereClause_AnonymousFiltersStayPublic(t *testing.T) {
	w := BuildSearchWhereClause(SearchFilterInput{Cuisine: "thai", MaxPrepTime: intPtr(0)}, nil)

	require.NotEmpty(t, w.Conditions)
	assert.Equal(t, "r.is_public = TRUE", w.Conditions[0])
	assert.Equal(t, "r.is_public = TRUE AND LOWER(r.cuisine) = LOWER($1) AND r.prep_time <= $2", w.SQL())
	assert.Equal(t, []interface{}{"thai", 0}, w.Args)
}

func TestBuildSearchWhereClause_BlankStringsOmitted(t *testing.T) {
	w := BuildSearchWhereClause(SearchFilterInput{Cuisine: "  ", Difficulty: "", Dietary: []string{" "}}, nil)

	assert.Equal(t, []string{"r.is_public = TRUE"}, w.Conditions)
}

func TestBuildSearchOrderBy(t *testing.T) {
	tests := []struct {
		sort string
		want string
	}{
		{SortRelevance, ""},
		{SortNewest, "r.created_at DESC"},
		{SortOldest, "r.created_at ASC"},
		{SortRating, "r.average_rating DESC NULLS LAST"},
		{SortPrepTime, "r.prep_time ASC NULLS LAST"},
		{SortTitle, "r.title ASC"},
		{"", "r.created_at DESC"},
		{"popularity", "r.created_at DESC"},
		{"RATING", "r.average_rating DESC NULLS LAST"},
	}

	for _, tt := range tests {
		t.Run(tt.sort, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildSearchOrderBy(tt.sort))
		})
	}
}

func TestPagination(t *testing.T) {
	tests := []struct {
		name       string
		in         SearchFilterInput
		wantLimit  int
		wantOffset int
	}{
		{"defaults", SearchFilterInput{}, DefaultLimit, 0},
		{"third page", SearchFilterInput{Page: 3, Limit: 10}, 10, 20},
		{"limit capped", SearchFilterInput{Page: 2, Limit: 500}, MaxLimit, MaxLimit},
		{"negative page", SearchFilterInput{Page: -1, Limit: 5}, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset := tt.in.Pagination()
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}
