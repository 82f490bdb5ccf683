package catalog_test

import (
	"testing"

	"shopbot/catalog"
	"shopbot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogShape(t *testing.T) {
	all := catalog.All()
	require.Len(t, all, 15)

	seen := make(map[int]bool)
	for _, p := range all {
		assert.GreaterOrEqual(t, p.ID, 1)
		assert.False(t, seen[p.ID], "duplicate product id %d", p.ID)
		seen[p.ID] = true
		assert.NotEmpty(t, p.Name)
		assert.Greater(t, p.Price, 0)
	}
}

func TestByCategory(t *testing.T) {
	tests := []struct {
		category models.Category
		want     int
	}{
		{models.CategoryPizza, 4},
		{models.CategoryPasta, 3},
		{models.CategorySides, 3},
		{models.CategoryDrinks, 3},
		{models.CategoryDesserts, 2},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			products := catalog.ByCategory(tt.category)
			assert.Len(t, products, tt.want)
			for _, p := range products {
				assert.Equal(t, tt.category, p.Category)
			}
		})
	}
}

func TestByIDs(t *testing.T) {
	products := catalog.ByIDs([]int{1, 11, 999})
	require.Len(t, products, 2)
	assert.Equal(t, "Margherita Pizza", products[0].Name)
	assert.Equal(t, "Coke", products[1].Name)

	// Empty filter means the whole catalog
	assert.Len(t, catalog.ByIDs(nil), 15)
}

func TestFindByName(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
		want     string
		found    bool
	}{
		{"exact name", "Garlic Bread", "Garlic Bread", true},
		{"case insensitive", "garlic bread", "Garlic Bread", true},
		{"partial", "tiramisu", "Tiramisu", true},
		{"substring inside name", "alfredo", "Creamy Alfredo Pasta", true},
		{"shared word matches first entry", "pizza", "Margherita Pizza", true},
		{"miss", "sushi", "", false},
		{"blank", "   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := catalog.FindByName(tt.fragment)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.want, p.Name)
			}
		})
	}
}

func TestFindForAdd(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
		found   bool
	}{
		{"full name", "add bbq chicken pizza please", "BBQ Chicken Pizza", true},
		{"first word only", "add pepperoni", "Pepperoni Pizza", true},
		{"ampersand name", "add mac & cheese", "Mac & Cheese", true},
		// "chicken" is not a first word of BBQ Chicken Pizza, so the
		// first-word scan lands on Chicken Wings further down
		{"overlapping word", "add chicken", "Chicken Wings", true},
		{"no match", "add unobtainium", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := catalog.FindForAdd(tt.message)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.want, p.Name)
			}
		})
	}
}

func TestAllReturnsCopy(t *testing.T) {
	first := catalog.All()
	first[0].Name = "Mutated"

	again := catalog.All()
	assert.Equal(t, "Margherita Pizza", again[0].Name)
}
