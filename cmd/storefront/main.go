// Command storefront is a terminal client for the storefront API: it browses
// the catalog, keeps a local cart and drives the admin panel.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"storefront/internal/cart"
	"storefront/pkg/client"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// cli carries the resolved settings shared by every command.
type cli struct {
	v   *viper.Viper
	out io.Writer
}

func (a *cli) api() *client.Client {
	return client.New(a.v.GetString("api"), client.WithToken(a.v.GetString("token")))
}

func (a *cli) cart() (*cart.Cart, error) {
	return cart.New(cart.NewFileStore(a.v.GetString("cart-file")))
}

func (a *cli) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

func defaultCartFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".storefront-cart.json"
	}
	return filepath.Join(home, ".storefront", "cart.json")
}

func newRootCmd(out io.Writer) *cobra.Command {
	app := &cli{v: viper.New(), out: out}

	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Browse the store, manage your cart and administer the catalog",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.String("api", "http://localhost:4000", "storefront API base URL")
	flags.String("cart-file", defaultCartFile(), "file the cart is kept in")
	flags.String("token", "", "bearer token for admin commands")

	for key, env := range map[string]string{
		"api":       "STOREFRONT_API",
		"cart-file": "STOREFRONT_CART_FILE",
		"token":     "STOREFRONT_TOKEN",
	} {
		_ = app.v.BindPFlag(key, flags.Lookup(key))
		_ = app.v.BindEnv(key, env)
	}

	root.AddCommand(
		newProductsCmd(app),
		newFeaturedCmd(app),
		newCartCmd(app),
		newCheckoutCmd(app),
		newRegisterCmd(app),
		newLoginCmd(app),
		newRecoverCmd(app),
		newAdminCmd(app),
	)
	return root
}
