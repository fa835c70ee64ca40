package main

import (
	"fmt"

	"storefront/internal/models"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newAdminCmd(app *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administer products and users (requires --token)",
	}

	cmd.AddCommand(
		newAdminLoginCmd(app),
		&cobra.Command{
			Use:   "products",
			Short: "List every product with inventory statistics",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				list, err := app.api().AdminProducts()
				if err != nil {
					return err
				}
				printProducts(app.out, list.Products)
				app.printf("\n")
				printStats(app.out, list.Stats)
				return nil
			},
		},
		newAdminCreateCmd(app),
		newAdminUpdateCmd(app),
		&cobra.Command{
			Use:   "delete <product-id>",
			Short: "Delete a product",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.api().DeleteProduct(args[0]); err != nil {
					return err
				}
				app.printf("Product %s deleted.\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "users",
			Short: "List registered users",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				users, err := app.api().Users()
				if err != nil {
					return err
				}
				printUsers(app.out, users)
				return nil
			},
		},
		&cobra.Command{
			Use:   "rename-user <user-id> <name>",
			Short: "Change a user's name",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				user, err := app.api().RenameUser(args[0], args[1])
				if err != nil {
					return err
				}
				app.printf("User %s is now %q.\n", user.ID, user.Name)
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete-user <user-id>",
			Short: "Delete a user",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.api().DeleteUser(args[0]); err != nil {
					return err
				}
				app.printf("User %s deleted.\n", args[0])
				return nil
			},
		},
	)
	return cmd
}

func newAdminLoginCmd(app *cli) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as administrator and print the token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, err := app.api().AdminLogin(username, password)
			if err != nil {
				return fmt.Errorf("admin login failed: %w", err)
			}
			app.printf("export STOREFRONT_TOKEN=%s\n", token)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "admin user")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

// productFlags binds the editable product fields to a flag set.
type productFlags struct {
	name, brand, category, imageURL, description string
	price                                        float64
	stock                                        int
	featured                                     bool
}

func (f *productFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.name, "name", "", "product name")
	fs.StringVar(&f.brand, "brand", "", "brand")
	fs.StringVar(&f.category, "category", "", "category")
	fs.Float64Var(&f.price, "price", 0, "unit price")
	fs.IntVar(&f.stock, "stock", 0, "units in stock")
	fs.StringVar(&f.imageURL, "image-url", "", "image URL")
	fs.StringVar(&f.description, "description", "", "description")
	fs.BoolVar(&f.featured, "featured", false, "show in the featured row")
}

// apply copies every flag that was set onto in.
func (f *productFlags) apply(fs *pflag.FlagSet, in *models.ProductInput) {
	if fs.Changed("name") {
		in.Name = f.name
	}
	if fs.Changed("brand") {
		in.Brand = f.brand
	}
	if fs.Changed("category") {
		in.Category = f.category
	}
	if fs.Changed("price") {
		price := f.price
		in.Price = &price
	}
	if fs.Changed("stock") {
		stock := f.stock
		in.Stock = &stock
	}
	if fs.Changed("image-url") {
		in.ImageURL = f.imageURL
	}
	if fs.Changed("description") {
		in.Description = f.description
	}
	if fs.Changed("featured") {
		in.Featured = f.featured
	}
}

func newAdminCreateCmd(app *cli) *cobra.Command {
	var flags productFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var in models.ProductInput
			flags.apply(cmd.Flags(), &in)

			product, err := app.api().CreateProduct(in)
			if err != nil {
				return err
			}
			app.printf("Product %s created.\n", product.ID)
			return nil
		},
	}
	flags.register(cmd.Flags())
	return cmd
}

func newAdminUpdateCmd(app *cli) *cobra.Command {
	var flags productFlags

	cmd := &cobra.Command{
		Use:   "update <product-id>",
		Short: "Change the given fields of a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api := app.api()
			current, err := api.AdminProduct(args[0])
			if err != nil {
				return err
			}

			// the API replaces the whole product, so start from its current state
			price, stock := current.Price, current.Stock
			in := models.ProductInput{
				Name:        current.Name,
				Brand:       current.Brand,
				Category:    current.Category,
				Price:       &price,
				Stock:       &stock,
				ImageURL:    current.ImageURL,
				Description: current.Description,
				Featured:    current.Featured,
			}
			flags.apply(cmd.Flags(), &in)

			product, err := api.UpdateProduct(args[0], in)
			if err != nil {
				return err
			}
			app.printf("Product %s updated.\n", product.ID)
			return nil
		},
	}
	flags.register(cmd.Flags())
	return cmd
}
