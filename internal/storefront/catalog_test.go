package storefront_test

import (
	"testing"
	"time"

	"storefront/internal/models"
	"storefront/internal/storefront"

	"github.com/stretchr/testify/assert"
)

func catalog() []models.Product {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	return []models.Product{
		{ID: "1", Name: "Laptop Pro", Brand: "Lumen", Category: "Computers", Price: 1200, Featured: true, CreatedAt: base},
		{ID: "2", Name: "Keyboard", Brand: "Clacky", Category: "Accessories", Price: 75, Featured: true, CreatedAt: base.Add(time.Hour)},
		{ID: "3", Name: "Mouse", Brand: "Clacky", Category: "accessories", Price: 25, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "4", Name: "Monitor", Brand: "Lumen", Category: "", Price: 320, Featured: true, CreatedAt: base.Add(3 * time.Hour)},
	}
}

func ids(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestApply(t *testing.T) {
	tests := []struct {
		name   string
		filter storefront.Filter
		want   []string
	}{
		{name: "default is most recent first", filter: storefront.Filter{}, want: []string{"4", "3", "2", "1"}},
		{name: "unknown sort falls back to recent", filter: storefront.Filter{Sort: "name"}, want: []string{"4", "3", "2", "1"}},
		{name: "price ascending", filter: storefront.Filter{Sort: storefront.SortPriceAsc}, want: []string{"3", "2", "4", "1"}},
		{name: "price descending", filter: storefront.Filter{Sort: storefront.SortPriceDesc}, want: []string{"1", "4", "2", "3"}},
		{name: "term matches brand", filter: storefront.Filter{Term: "CLACKY"}, want: []string{"3", "2"}},
		{name: "term matches name", filter: storefront.Filter{Term: "pro"}, want: []string{"1"}},
		{name: "category ignores case", filter: storefront.Filter{Category: "Accessories", Sort: storefront.SortPriceAsc}, want: []string{"3", "2"}},
		{name: "term and category", filter: storefront.Filter{Term: "lumen", Category: "computers"}, want: []string{"1"}},
		{name: "no match", filter: storefront.Filter{Term: "phone"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(storefront.Apply(catalog(), tt.filter)))
		})
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	products := catalog()
	storefront.Apply(products, storefront.Filter{Sort: storefront.SortPriceDesc})
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(products))
}

func TestCategories(t *testing.T) {
	assert.Equal(t, []string{"Computers", "Accessories", "accessories"}, storefront.Categories(catalog()))
	assert.Empty(t, storefront.Categories(nil))
}

func TestFeatured(t *testing.T) {
	assert.Equal(t, []string{"1", "2"}, ids(storefront.Featured(catalog(), 2)))
	assert.Equal(t, []string{"1", "2", "4"}, ids(storefront.Featured(catalog(), 4)))
	assert.Equal(t, []string{"1", "2", "4"}, ids(storefront.Featured(catalog(), 0)))
}

func TestFind(t *testing.T) {
	p, ok := storefront.Find(catalog(), "3")
	assert.True(t, ok)
	assert.Equal(t, "Mouse", p.Name)

	_, ok = storefront.Find(catalog(), "nope")
	assert.False(t, ok)
}
