package models

// Category groups catalog products for browsing and intent matching
type Category string

const (
	CategoryPizza    Category = "pizza"
	CategoryPasta    Category = "pasta"
	CategorySides    Category = "sides"
	CategoryDrinks   Category = "drinks"
	CategoryDesserts Category = "desserts"
)

// Product is a single immutable catalog entry. Prices are in minor
// currency units.
type Product struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Price    int      `json:"price"`
	Category Category `json:"category"`
	Glyph    string   `json:"glyph"`
}
