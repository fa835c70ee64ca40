package main

import (
	"errors"
	"fmt"

	"storefront/internal/cart"
	"storefront/internal/models"
	"storefront/internal/storefront"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newCartCmd(app *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show and edit the local cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := app.cart()
			if err != nil {
				return err
			}
			printCart(app.out, c)
			return nil
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the cart",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				c, err := app.cart()
				if err != nil {
					return err
				}
				printCart(app.out, c)
				return nil
			},
		},
		&cobra.Command{
			Use:   "add <product-id>",
			Short: "Add one unit of a product",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				products, err := app.api().Products(false)
				if err != nil {
					return fmt.Errorf("could not load products: %w", err)
				}
				product, ok := storefront.Find(products, args[0])
				if !ok {
					return fmt.Errorf("product %s not found", args[0])
				}

				c, err := app.cart()
				if err != nil {
					return err
				}
				if err := c.Add(product); err != nil {
					return err
				}
				app.printf("Added %s.\n", product.Name)
				printCart(app.out, c)
				return nil
			},
		},
		newQuantityCmd(app, "inc", "Add one unit of a cart entry", 1),
		newQuantityCmd(app, "dec", "Remove one unit of a cart entry", -1),
		&cobra.Command{
			Use:   "clear",
			Short: "Empty the cart",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				c, err := app.cart()
				if err != nil {
					return err
				}
				if err := c.Clear(); err != nil {
					return err
				}
				app.printf("Cart cleared.\n")
				return nil
			},
		},
	)
	return cmd
}

func newQuantityCmd(app *cli, use, short string, delta int) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <product-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.cart()
			if err != nil {
				return err
			}

			// without a catalog the entry's snapshot stock is used
			var catalog []models.Product
			if delta > 0 {
				catalog, err = app.api().Products(false)
				if err != nil {
					log.Warn().Err(err).Msg("Could not refresh stock; using the cart snapshot")
				}
			}

			err = c.ChangeQuantity(args[0], delta, catalog)
			if errors.Is(err, cart.ErrNoMoreUnits) {
				app.printf("No more units available.\n")
			} else if err != nil {
				return err
			}
			printCart(app.out, c)
			return nil
		},
	}
}

func newCheckoutCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "checkout",
		Short: "Simulate paying for the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := app.cart()
			if err != nil {
				return err
			}

			app.printf("Processing simulated payment...\n")
			receipt, err := c.Checkout(cmd.Context())
			if err != nil {
				return err
			}
			app.printf("%s\nItems: %d  Total: %s\n", receipt.Message, receipt.Items, money(receipt.Total))
			return nil
		},
	}
}
