package ingredient

import "strings"

// Shopping list categories.
const (
	CategoryProduce   = "Produce"
	CategoryDairyEggs = "Dairy & Eggs"
	CategoryProteins  = "Proteins"
	CategoryPantry    = "Pantry"
	CategorySpices    = "Spices & Seasonings"
	CategoryBaking    = "Baking"
	CategoryOils      = "Oils & Condiments"
	CategoryOther     = "Other"
)

type categoryKeyword struct {
	keyword  string
	category string
}

// categoryTable is scanned in order, so a phrase must come before any shorter keyword it contains
// ("peanut butter" before "butter", "eggplant" before "egg").
var categoryTable = []categoryKeyword{
	{"peanut butter", CategoryPantry},
	{"almond butter", CategoryPantry},
	{"coconut milk", CategoryPantry},
	{"chicken broth", CategoryPantry},
	{"chicken stock", CategoryPantry},
	{"beef broth", CategoryPantry},
	{"beef stock", CategoryPantry},
	{"vegetable broth", CategoryPantry},
	{"vegetable stock", CategoryPantry},
	{"veggie broth", CategoryPantry},
	{"tomato paste", CategoryPantry},
	{"tomato sauce", CategoryPantry},
	{"canned tomato", CategoryPantry},
	{"crushed tomato", CategoryPantry},
	{"chickpea", CategoryPantry},
	{"graham cracker", CategoryPantry},

	{"garlic powder", CategorySpices},
	{"garlic salt", CategorySpices},
	{"onion powder", CategorySpices},
	{"ground ginger", CategorySpices},
	{"chili powder", CategorySpices},
	{"chili flakes", CategorySpices},
	{"curry powder", CategorySpices},
	{"red pepper flakes", CategorySpices},
	{"black pepper", CategorySpices},
	{"white pepper", CategorySpices},
	{"cayenne", CategorySpices},
	{"peppercorn", CategorySpices},
	{"bay leaf", CategorySpices},
	{"bay leaves", CategorySpices},

	{"baking powder", CategoryBaking},
	{"baking soda", CategoryBaking},
	{"brown sugar", CategoryBaking},
	{"powdered sugar", CategoryBaking},
	{"cocoa powder", CategoryBaking},
	{"cornstarch", CategoryBaking},
	{"cornmeal", CategoryBaking},
	{"corn syrup", CategoryBaking},
	{"cream of tartar", CategoryBaking},
	{"vanilla extract", CategoryBaking},
	{"chocolate chip", CategoryBaking},

	{"olive oil", CategoryOils},
	{"sesame oil", CategoryOils},
	{"vegetable oil", CategoryOils},
	{"coconut oil", CategoryOils},
	{"rice vinegar", CategoryOils},
	{"cider vinegar", CategoryOils},
	{"wine vinegar", CategoryOils},
	{"soy sauce", CategoryOils},
	{"fish sauce", CategoryOils},
	{"hot sauce", CategoryOils},
	{"chili sauce", CategoryOils},
	{"worcestershire", CategoryOils},

	{"bell pepper", CategoryProduce},
	{"green pepper", CategoryProduce},
	{"red pepper", CategoryProduce},
	{"eggplant", CategoryProduce},
	{"butternut squash", CategoryProduce},
	{"green bean", CategoryProduce},
	{"green onion", CategoryProduce},
	{"sugar snap", CategoryProduce},
	{"veggie", CategoryProduce},

	{"butter", CategoryDairyEggs},
	{"milk", CategoryDairyEggs},
	{"cheese", CategoryDairyEggs},
	{"cheddar", CategoryDairyEggs},
	{"mozzarella", CategoryDairyEggs},
	{"parmesan", CategoryDairyEggs},
	{"cream", CategoryDairyEggs},
	{"yogurt", CategoryDairyEggs},
	{"egg", CategoryDairyEggs},

	{"chicken", CategoryProteins},
	{"beef", CategoryProteins},
	{"pork", CategoryProteins},
	{"turkey", CategoryProteins},
	{"lamb", CategoryProteins},
	{"bacon", CategoryProteins},
	{"sausage", CategoryProteins},
	{"ham", CategoryProteins},
	{"steak", CategoryProteins},
	{"shrimp", CategoryProteins},
	{"prawn", CategoryProteins},
	{"salmon", CategoryProteins},
	{"tuna", CategoryProteins},
	{"cod", CategoryProteins},
	{"crab", CategoryProteins},
	{"fish", CategoryProteins},
	{"tofu", CategoryProteins},

	{"tomato", CategoryProduce},
	{"onion", CategoryProduce},
	{"garlic", CategoryProduce},
	{"ginger", CategoryProduce},
	{"shallot", CategoryProduce},
	{"chili", CategoryProduce},
	{"jalapeno", CategoryProduce},
	{"potato", CategoryProduce},
	{"carrot", CategoryProduce},
	{"celery", CategoryProduce},
	{"lettuce", CategoryProduce},
	{"spinach", CategoryProduce},
	{"kale", CategoryProduce},
	{"cabbage", CategoryProduce},
	{"broccoli", CategoryProduce},
	{"cauliflower", CategoryProduce},
	{"zucchini", CategoryProduce},
	{"cucumber", CategoryProduce},
	{"mushroom", CategoryProduce},
	{"corn", CategoryProduce},
	{"peas", CategoryProduce},
	{"avocado", CategoryProduce},
	{"lemon", CategoryProduce},
	{"lime", CategoryProduce},
	{"orange", CategoryProduce},
	{"apple", CategoryProduce},
	{"banana", CategoryProduce},
	{"berry", CategoryProduce},
	{"berries", CategoryProduce},
	{"cilantro", CategoryProduce},
	{"parsley", CategoryProduce},
	{"basil", CategoryProduce},
	{"mint", CategoryProduce},
	{"scallion", CategoryProduce},

	{"flour", CategoryBaking},
	{"sugar", CategoryBaking},
	{"yeast", CategoryBaking},
	{"vanilla", CategoryBaking},
	{"chocolate", CategoryBaking},
	{"cocoa", CategoryBaking},

	{"rice", CategoryPantry},
	{"pasta", CategoryPantry},
	{"spaghetti", CategoryPantry},
	{"noodle", CategoryPantry},
	{"quinoa", CategoryPantry},
	{"oats", CategoryPantry},
	{"bread", CategoryPantry},
	{"tortilla", CategoryPantry},
	{"beans", CategoryPantry},
	{"lentil", CategoryPantry},
	{"broth", CategoryPantry},
	{"stock", CategoryPantry},
	{"almond", CategoryPantry},
	{"walnut", CategoryPantry},
	{"pecan", CategoryPantry},
	{"peanut", CategoryPantry},
	{"coconut", CategoryPantry},

	{"oil", CategoryOils},
	{"vinegar", CategoryOils},
	{"ketchup", CategoryOils},
	{"mayonnaise", CategoryOils},
	{"mustard", CategoryOils},
	{"sriracha", CategoryOils},
	{"honey", CategoryOils},
	{"maple syrup", CategoryOils},
	{"salsa", CategoryOils},
	{"dressing", CategoryOils},
	{"sauce", CategoryOils},

	{"salt", CategorySpices},
	{"pepper", CategorySpices},
	{"cumin", CategorySpices},
	{"paprika", CategorySpices},
	{"cinnamon", CategorySpices},
	{"nutmeg", CategorySpices},
	{"oregano", CategorySpices},
	{"thyme", CategorySpices},
	{"rosemary", CategorySpices},
	{"turmeric", CategorySpices},
	{"coriander", CategorySpices},
	{"cloves", CategorySpices},
	{"seasoning", CategorySpices},
	{"spice", CategorySpices},
}

var exactCategories = func() map[string]string {
	m := make(map[string]string, len(categoryTable))
	for _, kw := range categoryTable {
		if _, ok := m[kw.keyword]; !ok {
			m[kw.keyword] = kw.category
		}
	}
	return m
}()

// CategorizeIngredient maps an ingredient name to a shopping list category, or "Other".
func CategorizeIngredient(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return CategoryOther
	}
	if category, ok := exactCategories[key]; ok {
		return category
	}
	for _, kw := range categoryTable {
		if strings.Contains(key, kw.keyword) {
			return kw.category
		}
	}
	return CategoryOther
}

var categoryOrder = []string{
	CategoryProduce,
	CategoryProteins,
	CategoryDairyEggs,
	CategoryBaking,
	CategoryPantry,
	CategorySpices,
	CategoryOils,
	CategoryOther,
}

// Categories lists every category in shopping list display order.
func Categories() []string {
	out := make([]string, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// CategoryGroup is one section of a shopping list.
type CategoryGroup struct {
	Category string           `json:"category"`
	Items    []AggregatedItem `json:"items"`
}

// GroupByCategory splits items into sections in display order, skipping empty ones.
func GroupByCategory(items []AggregatedItem) []CategoryGroup {
	byCategory := make(map[string][]AggregatedItem)
	for _, item := range items {
		category := item.Category
		if category == "" {
			category = CategoryOther
		}
		byCategory[category] = append(byCategory[category], item)
	}

	groups := make([]CategoryGroup, 0, len(byCategory))
	for _, category := range categoryOrder {
		if grouped, ok := byCategory[category]; ok {
			groups = append(groups, CategoryGroup{Category: category, Items: grouped})
		}
	}
	return groups
}
