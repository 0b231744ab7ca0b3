package api

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// DietaryTags are the dietary labels accepted by search filters.
var DietaryTags = []string{
	"vegetarian",
	"vegan",
	"pescatarian",
	"gluten-free",
	"dairy-free",
	"nut-free",
	"egg-free",
	"low-carb",
	"keto",
	"paleo",
	"halal",
	"kosher",
}

var (
	dietaryTagSet = func() map[string]bool {
		set := make(map[string]bool, len(DietaryTags))
		for _, tag := range DietaryTags {
			set[tag] = true
		}
		return set
	}()

	registerOnce sync.Once
)

// RegisterValidators adds the custom binding rules to gin's validator. Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("dietary_tag", validateDietaryTag)
	})
}

func validateDietaryTag(fl validator.FieldLevel) bool {
	return dietaryTagSet[strings.ToLower(strings.TrimSpace(fl.Field().String()))]
}
