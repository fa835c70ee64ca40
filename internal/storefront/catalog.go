// Package storefront holds the catalog logic of the shop front: search,
// category filtering, sorting and the featured row. It runs over the full
// product list fetched from the API.
package storefront

import (
	"sort"
	"strings"

	"storefront/internal/models"
)

// Sort orders accepted by Filter.
const (
	SortRecent    = "recent"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
)

// Filter narrows and orders a product list.
type Filter struct {
	Term     string // matched against name and brand
	Category string
	Sort     string // one of the Sort constants; anything else means SortRecent
}

// Apply returns the products matching f in the requested order. The input
// slice is left untouched.
func Apply(products []models.Product, f Filter) []models.Product {
	term := strings.ToLower(strings.TrimSpace(f.Term))

	list := make([]models.Product, 0, len(products))
	for _, p := range products {
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Brand), term) {
			continue
		}
		if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
			continue
		}
		list = append(list, p)
	}

	switch f.Sort {
	case SortPriceAsc:
		sort.SliceStable(list, func(i, j int) bool { return list[i].Price < list[j].Price })
	case SortPriceDesc:
		sort.SliceStable(list, func(i, j int) bool { return list[i].Price > list[j].Price })
	default:
		sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	}
	return list
}

// Categories returns the distinct non-empty categories in first-seen order.
func Categories(products []models.Product) []string {
	seen := make(map[string]struct{})
	var categories []string
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	return categories
}

// Featured returns the first limit featured products, in list order.
func Featured(products []models.Product, limit int) []models.Product {
	var featured []models.Product
	for _, p := range products {
		if limit > 0 && len(featured) == limit {
			break
		}
		if p.Featured {
			featured = append(featured, p)
		}
	}
	return featured
}

// Find returns the product with the given id.
func Find(products []models.Product, id string) (models.Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}
