package ingredient

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Flour", "flour"},
		{"  Eggs ", "egg"},
		{"Cherries", "cherry"},
		{"tomatoes", "tomato"},
		{"sauces", "sauce"},
		{"glass", "glass"},
		{"Swiss", "swiss"},
		{"carrots", "carrot"},
		{"cherry tomatoes", "cherry tomato"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.in))
		})
	}
}

func TestAggregateIngredients_SumsSameUnit(t *testing.T) {
	got := AggregateIngredients([]RawIngredient{
		{Name: "Flour", Quantity: strPtr("2 cups")},
		{Name: "flour", Quantity: strPtr("1 cups")},
	})

	require.Len(t, got, 1)
	assert.Equal(t, "Flour", got[0].IngredientName)
	require.NotNil(t, got[0].Quantity)
	assert.Equal(t, "3 cups", *got[0].Quantity)
	assert.Equal(t, CategoryBaking, got[0].Category)
}

func TestAggregateIngredients_JoinsDifferentUnits(t *testing.T) {
	got := AggregateIngredients([]RawIngredient{
		{Name: "Butter", Quantity: strPtr("2 tbsp")},
		{Name: "butter", Quantity: strPtr("1 cup")},
	})

	require.Len(t, got, 1)
	assert.Equal(t, "Butter", got[0].IngredientName)
	require.NotNil(t, got[0].Quantity)
	assert.Equal(t, "2 tbsp + 1 cup", *got[0].Quantity)
	assert.Equal(t, CategoryDairyEggs, got[0].Category)
}

func TestAggregateIngredients_UnitSpellingIsLiteral(t *testing.T) {
	got := AggregateIngredients([]RawIngredient{
		{Name: "milk", Quantity: strPtr("1 cup")},
		{Name: "milk", Quantity: strPtr("2 cups")},
	})

	require.Len(t, got, 1)
	assert.Equal(t, "1 cup + 2 cups", *got[0].Quantity)
}

func TestAggregateIngredients_UnparsedFallsBackToJoin(t *testing.T) {
	got := AggregateIngredients([]RawIngredient{
		{Name: "Sugar", Quantity: strPtr("1 cup")},
		{Name: "sugar", Quantity: strPtr("1/2 cup")},
		{Name: "sugar", Quantity: strPtr("1 cup")},
	})

	require.Len(t, got, 1)
	assert.Equal(t, "1 cup + 1/2 cup + 1 cup", *got[0].Quantity)
}

func TestAggregateIngredients_Decimals(t *testing.T) {
	got := AggregateIngredients([]RawIngredient{
		{Name: "olive oil", Quantity: strPtr("1.5 tbsp")},
		{Name: "Olive Oil", Quantity: strPtr("0.25 tbsp")},
		{Name: "olive oil", Quantity: strPtr("0.013 tbsp")},
	})

	require.Len(t, got, 1)
	assert.Equal(t, "olive oil", got[0].IngredientName)
	assert.Equal(t, "1.76 tbsp", *got[0].Quantity)
	assert.Equal(t, CategoryOils, got[0].Category)
}

func TestAggregateIngredients_Unitless(t *testing.T) {
	got := AggregateIngredients([]RawIngredient{
		{Name: "Eggs", Quantity: strPtr("2")},
		{Name: "egg", Quantity: strPtr("1")},
	})

	require.Len(t, got, 1)
	assert.Equal(t, "Eggs", got[0].IngredientName)
	assert.Equal(t, "3", *got[0].Quantity)
}

func TestAggregateIngredients_NullQuantities(t *testing.T) {
	got := AggregateIngredients([]RawIngredient{
		{Name: "Salt", Quantity: nil},
		{Name: "salt", Quantity: nil},
		{Name: "Pepper", Quantity: nil},
		{Name: "pepper", Quantity: strPtr("1 tsp")},
		{Name: "Water", Quantity: strPtr("  ")},
	})

	require.Len(t, got, 3)
	assert.Nil(t, got[0].Quantity)
	require.NotNil(t, got[1].Quantity)
	assert.Equal(t, "1 tsp", *got[1].Quantity)
	assert.Nil(t, got[2].Quantity)
}

func TestAggregateIngredients_FirstSeenOrder(t *testing.T) {
	got := AggregateIngredients([]RawIngredient{
		{Name: "Onions", Quantity: strPtr("2")},
		{Name: "Garlic", Quantity: strPtr("3 cloves")},
		{Name: "onion", Quantity: strPtr("1")},
		{Name: "Carrots", Quantity: strPtr("4")},
	})

	names := make([]string, len(got))
	for i, item := range got {
		names[i] = item.IngredientName
	}
	assert.Equal(t, []string{"Onions", "Garlic", "Carrots"}, names)
	assert.Equal(t, "3", *got[0].Quantity)
}

func TestAggregateIngredients_Empty(t *testing.T) {
	got := AggregateIngredients(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAggregateIngredients_KeepsEveryQuantity(t *testing.T) {
	items := []RawIngredient{
		{Name: "Rice", Quantity: strPtr("1 cup")},
		{Name: "rice", Quantity: strPtr("200 g")},
		{Name: "rice", Quantity: strPtr("a handful")},
		{Name: "Beans", Quantity: strPtr("2-3 cans")},
		{Name: "beans", Quantity: strPtr("1 can")},
		{Name: "Lime", Quantity: strPtr("1")},
	}

	got := AggregateIngredients(items)

	var parts int
	for _, item := range got {
		require.NotNil(t, item.Quantity)
		parts += len(strings.Split(*item.Quantity, " + "))
	}
	assert.Equal(t, len(items), parts)
}
