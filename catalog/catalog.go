// Package catalog holds the fixed product catalog. The catalog is
// created at process start and never mutated; every accessor returns
// copies so callers cannot reach the backing slice.
package catalog

import (
	"strings"

	"shopbot/models"
)

var products = []models.Product{
	{ID: 1, Name: "Margherita Pizza", Price: 199, Glyph: "🍕", Category: models.CategoryPizza},
	{ID: 2, Name: "BBQ Chicken Pizza", Price: 299, Glyph: "🍕", Category: models.CategoryPizza},
	{ID: 3, Name: "Pepperoni Pizza", Price: 249, Glyph: "🍕", Category: models.CategoryPizza},
	{ID: 4, Name: "Farmhouse Pizza", Price: 279, Glyph: "🍕", Category: models.CategoryPizza},
	{ID: 5, Name: "Creamy Alfredo Pasta", Price: 179, Glyph: "🍝", Category: models.CategoryPasta},
	{ID: 6, Name: "Penne Arrabbiata", Price: 149, Glyph: "🍝", Category: models.CategoryPasta},
	{ID: 7, Name: "Mac & Cheese", Price: 169, Glyph: "🍝", Category: models.CategoryPasta},
	{ID: 8, Name: "Garlic Bread", Price: 59, Glyph: "🥖", Category: models.CategorySides},
	{ID: 9, Name: "Cheesy Fries", Price: 89, Glyph: "🍟", Category: models.CategorySides},
	{ID: 10, Name: "Chicken Wings", Price: 199, Glyph: "🍗", Category: models.CategorySides},
	{ID: 11, Name: "Coke", Price: 49, Glyph: "🥤", Category: models.CategoryDrinks},
	{ID: 12, Name: "Lemonade", Price: 59, Glyph: "🍋", Category: models.CategoryDrinks},
	{ID: 13, Name: "Iced Tea", Price: 69, Glyph: "🧊", Category: models.CategoryDrinks},
	{ID: 14, Name: "Chocolate Brownie", Price: 99, Glyph: "🍫", Category: models.CategoryDesserts},
	{ID: 15, Name: "Tiramisu", Price: 149, Glyph: "🍰", Category: models.CategoryDesserts},
}

// All returns every catalog product in display order.
func All() []models.Product {
	out := make([]models.Product, len(products))
	copy(out, products)
	return out
}

// ByCategory returns the products of a single category in display order.
func ByCategory(c models.Category) []models.Product {
	var out []models.Product
	for _, p := range products {
		if p.Category == c {
			out = append(out, p)
		}
	}
	return out
}

// ByID looks a product up by its id.
func ByID(id int) (models.Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// ByIDs returns the products whose ids appear in ids, in display order.
// Unknown ids are skipped. An empty filter returns the whole catalog.
func ByIDs(ids []int) []models.Product {
	if len(ids) == 0 {
		return All()
	}
	want := make(map[int]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []models.Product
	for _, p := range products {
		if want[p.ID] {
			out = append(out, p)
		}
	}
	return out
}

// FindByName returns the first product whose name contains the given
// fragment, case-insensitively. Used for price inquiries; with a
// multi-word catalog this can match an unintended product when names
// overlap, which is the observed demo behavior.
func FindByName(fragment string) (models.Product, bool) {
	fragment = strings.ToLower(strings.TrimSpace(fragment))
	if fragment == "" {
		return models.Product{}, false
	}
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), fragment) {
			return p, true
		}
	}
	return models.Product{}, false
}

// FindForAdd resolves the product named inside an "add" message: the
// message must contain either the full lowercase product name or just
// its first word. First catalog entry wins on overlapping first words.
func FindForAdd(message string) (models.Product, bool) {
	msg := strings.ToLower(message)
	for _, p := range products {
		name := strings.ToLower(p.Name)
		firstWord := strings.SplitN(name, " ", 2)[0]
		if strings.Contains(msg, name) || strings.Contains(msg, firstWord) {
			return p, true
		}
	}
	return models.Product{}, false
}
