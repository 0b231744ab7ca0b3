package recipe

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"recipebox/internal/ingredient"
	"recipebox/internal/search"
)

// Store defines the read operations on recipes.
type Store interface {
	GetRecipe(ctx context.Context, id uuid.UUID) (*Recipe, error)
	ListIngredients(ctx context.Context, ids []uuid.UUID, viewer *uuid.UUID) ([]RecipeIngredients, error)
	SearchRecipes(ctx context.Context, in search.SearchFilterInput, viewer *uuid.UUID) (*SearchResult, error)
	Ping(ctx context.Context) error
}

// PostgresStore implements Store for PostgreSQL.
type PostgresStore struct {
	db *sqlx.DB
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS recipes (
		id UUID PRIMARY KEY,
		author_id UUID NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		cuisine TEXT NOT NULL DEFAULT '',
		difficulty TEXT NOT NULL DEFAULT 'medium',
		prep_time INTEGER,
		cook_time INTEGER,
		servings INTEGER NOT NULL DEFAULT 1,
		dietary_tags TEXT[] NOT NULL DEFAULT '{}',
		is_public BOOLEAN NOT NULL DEFAULT FALSE,
		average_rating DOUBLE PRECISION,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		search_vector TSVECTOR GENERATED ALWAYS AS (
			setweight(to_tsvector('english', coalesce(title, '')), 'A') ||
			setweight(to_tsvector('english', coalesce(description, '')), 'B') ||
			setweight(to_tsvector('english', coalesce(cuisine, '')), 'C')
		) STORED
	)`,
	`CREATE INDEX IF NOT EXISTS recipes_search_vector_idx ON recipes USING GIN (search_vector)`,
	`CREATE INDEX IF NOT EXISTS recipes_dietary_tags_idx ON recipes USING GIN (dietary_tags)`,
	`CREATE TABLE IF NOT EXISTS recipe_ingredients (
		id BIGSERIAL PRIMARY KEY,
		recipe_id UUID NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		quantity TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS recipe_ingredients_recipe_idx ON recipe_ingredients (recipe_id, position)`,
}

const recipeColumns = `r.id, r.author_id, r.title, r.description, r.cuisine, r.difficulty, r.prep_time,
	r.cook_time, r.servings, r.dietary_tags, r.is_public, r.average_rating, r.created_at`

// NewPostgresStore connects to dataSourceName and makes sure the recipe tables exist.
func NewPostgresStore(dataSourceName string) (*PostgresStore, error) {
	db, err := sqlx.Connect("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return &PostgresStore{db: db}, nil
}

// Close closes the underlying connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// Ping checks the database connection.
func (s *PostgresStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

type ingredientRow struct {
	RecipeID uuid.UUID      `db:"recipe_id"`
	Title    string         `db:"title"`
	Servings int            `db:"servings"`
	Name     sql.NullString `db:"name"`
	Quantity *string        `db:"quantity"`
}

// GetRecipe retrieves a recipe and its ingredients by id.
func (s *PostgresStore) GetRecipe(ctx context.Context, id uuid.UUID) (*Recipe, error) {
	var r Recipe
	err := s.db.GetContext(ctx, &r, "SELECT "+recipeColumns+" FROM recipes r WHERE r.id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to get recipe %s: %w", id, err)
	}

	var rows []ingredientRow
	err = s.db.SelectContext(ctx, &rows,
		`SELECT ri.recipe_id, ri.name, ri.quantity
		FROM recipe_ingredients ri WHERE ri.recipe_id = $1 ORDER BY ri.position, ri.id`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get ingredients of recipe %s: %w", id, err)
	}

	r.Ingredients = make([]ingredient.RawIngredient, 0, len(rows))
	for _, row := range rows {
		r.Ingredients = append(r.Ingredients, ingredient.RawIngredient{Name: row.Name.String, Quantity: row.Quantity})
	}

	return &r, nil
}

// ListIngredients returns the ingredient lists of the recipes in ids that viewer may see, in the
// order of ids. Unknown and hidden recipes are left out.
func (s *PostgresStore) ListIngredients(ctx context.Context, ids []uuid.UUID, viewer *uuid.UUID) ([]RecipeIngredients, error) {
	if len(ids) == 0 {
		return []RecipeIngredients{}, nil
	}

	query, args := ingredientsQuery(ids, viewer)

	var rows []ingredientRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}

	return groupIngredientRows(rows), nil
}

func ingredientsQuery(ids []uuid.UUID, viewer *uuid.UUID) (string, []interface{}) {
	w := search.BuildSearchWhereClause(search.SearchFilterInput{}, viewer)

	idStrings := make([]string, len(ids))
	for i, id := range ids {
		idStrings[i] = id.String()
	}
	idx := w.Next()
	w.Add("r.id = ANY($%d::uuid[])", pq.Array(idStrings))

	query := fmt.Sprintf(`SELECT r.id AS recipe_id, r.title, r.servings, ri.name, ri.quantity
		FROM recipes r LEFT JOIN recipe_ingredients ri ON ri.recipe_id = r.id
		WHERE %s
		ORDER BY array_position($%d::uuid[], r.id), ri.position, ri.id`, w.SQL(), idx)
	return query, w.Args
}

// groupIngredientRows folds joined rows into one entry per recipe, keeping row order.
func groupIngredientRows(rows []ingredientRow) []RecipeIngredients {
	out := []RecipeIngredients{}
	for _, row := range rows {
		if len(out) == 0 || out[len(out)-1].RecipeID != row.RecipeID {
			out = append(out, RecipeIngredients{
				RecipeID:    row.RecipeID,
				Title:       row.Title,
				Servings:    row.Servings,
				Ingredients: []ingredient.RawIngredient{},
			})
		}
		if !row.Name.Valid {
			continue
		}
		last := &out[len(out)-1]
		last.Ingredients = append(last.Ingredients, ingredient.RawIngredient{Name: row.Name.String, Quantity: row.Quantity})
	}
	return out
}

// SearchRecipes returns one page of the recipes matching in that viewer may see.
func (s *PostgresStore) SearchRecipes(ctx context.Context, in search.SearchFilterInput, viewer *uuid.UUID) (*SearchResult, error) {
	q := searchQuery(in, viewer)

	var total int
	if err := s.db.GetContext(ctx, &total, q.count, q.args...); err != nil {
		return nil, fmt.Errorf("failed to count recipes: %w", classifyQueryError(err))
	}

	recipes := []Summary{}
	if err := s.db.SelectContext(ctx, &recipes, q.list, q.listArgs...); err != nil {
		return nil, fmt.Errorf("failed to search recipes: %w", classifyQueryError(err))
	}

	return &SearchResult{Recipes: recipes, Total: total, Page: q.page, Limit: q.limit}, nil
}

// syntaxErrorCode is the SQLSTATE to_tsquery raises for malformed input.
const syntaxErrorCode = pq.ErrorCode("42601")

func classifyQueryError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == syntaxErrorCode {
		return fmt.Errorf("%w: %s", ErrInvalidSearchQuery, pqErr.Message)
	}
	return err
}

type builtSearch struct {
	count    string
	list     string
	args     []interface{}
	listArgs []interface{}
	page     int
	limit    int
}

// searchQuery assembles the count and page queries of a search. Relevance ordering needs a
// full-text query; without one it falls back to newest first.
func searchQuery(in search.SearchFilterInput, viewer *uuid.UUID) builtSearch {
	w := search.BuildSearchWhereClause(in, viewer)

	tsIdx := 0
	if ts := search.BuildTsQueryString(in.Q); ts != "" {
		tsIdx = w.Next()
		w.Add("r.search_vector @@ to_tsquery('english', $%d)", ts)
	}

	order := search.BuildSearchOrderBy(in.Sort)
	if order == "" {
		if tsIdx > 0 {
			order = fmt.Sprintf("ts_rank(r.search_vector, to_tsquery('english', $%d)) DESC, r.created_at DESC", tsIdx)
		} else {
			order = search.BuildSearchOrderBy(search.SortNewest)
		}
	}

	limit, offset := in.Pagination()
	next := w.Next()

	listArgs := make([]interface{}, 0, len(w.Args)+2)
	listArgs = append(listArgs, w.Args...)
	listArgs = append(listArgs, limit, offset)

	return builtSearch{
		count: "SELECT COUNT(*) FROM recipes r WHERE " + w.SQL(),
		list: fmt.Sprintf("SELECT %s FROM recipes r WHERE %s ORDER BY %s, r.id LIMIT $%d OFFSET $%d",
			recipeColumns, w.SQL(), order, next, next+1),
		args:     w.Args,
		listArgs: listArgs,
		page:     offset/limit + 1,
		limit:    limit,
	}
}
