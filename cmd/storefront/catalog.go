package main

import (
	"fmt"
	"strings"

	"storefront/internal/storefront"

	"github.com/spf13/cobra"
)

func newProductsCmd(app *cli) *cobra.Command {
	var filter storefront.Filter

	cmd := &cobra.Command{
		Use:   "products",
		Short: "List the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			products, err := app.api().Products(false)
			if err != nil {
				return fmt.Errorf("could not load products: %w", err)
			}

			printProducts(app.out, storefront.Apply(products, filter))
			if categories := storefront.Categories(products); len(categories) > 0 {
				app.printf("\nCategories: %s\n", strings.Join(categories, ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&filter.Term, "search", "", "match name or brand")
	cmd.Flags().StringVar(&filter.Category, "category", "", "only this category")
	cmd.Flags().StringVar(&filter.Sort, "sort", storefront.SortRecent, "recent, price-asc or price-desc")
	return cmd
}

func newFeaturedCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "featured",
		Short: "List the featured products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			products, err := app.api().Featured()
			if err != nil {
				return fmt.Errorf("could not load featured products: %w", err)
			}
			printProducts(app.out, products)
			return nil
		},
	}
}
