package models

type DesignStyle string

const (
	StylePersonCentered    DesignStyle = "person_centered"
	StyleProductCentered   DesignStyle = "product_centered"
	StyleIngredientFocused DesignStyle = "ingredient_focused"
	StyleLifestyle         DesignStyle = "lifestyle"
	StyleMinimalGraphic    DesignStyle = "minimal_graphic"
)

const DefaultDesignStyle = StyleProductCentered

type DesignStyleOption struct {
	Value       DesignStyle `json:"value"`
	Label       string      `json:"label"`
	Description string      `json:"description"`
}

var designStyleOptions = []DesignStyleOption{
	{StylePersonCentered, "Person centered", "A model using the product takes the lead"},
	{StyleProductCentered, "Product centered", "The product itself is the hero of the shot"},
	{StyleIngredientFocused, "Ingredient focused", "Highlights key ingredients and composition"},
	{StyleLifestyle, "Lifestyle", "The product placed in an everyday scene"},
	{StyleMinimalGraphic, "Minimal graphic", "Clean layout with typography and flat color"},
}

// DesignStyleOptions returns the selectable styles in display order.
func DesignStyleOptions() []DesignStyleOption {
	out := make([]DesignStyleOption, len(designStyleOptions))
	copy(out, designStyleOptions)
	return out
}

// Valid reports whether s is one of the known styles.
func (s DesignStyle) Valid() bool {
	for _, o := range designStyleOptions {
		if o.Value == s {
			return true
		}
	}
	return false
}
