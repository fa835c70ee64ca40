package main

import (
	"bytes"
	"context"
	"net"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"storefront/internal/config"
	"storefront/internal/handlers"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	t        *testing.T
	baseURL  string
	cartFile string
	products map[string]models.Product
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	zerolog.SetGlobalLevel(zerolog.Disabled)

	store := repositories.NewMemoryStore()
	products := map[string]models.Product{}
	for _, p := range []models.Product{
		{Name: "Laptop", Brand: "Lumen", Category: "Computers", Price: 1200, Stock: 2, Featured: true},
		{Name: "Mouse", Brand: "Clacky", Category: "Accessories", Price: 25, Stock: 10},
		{Name: "Cable", Brand: "Wired", Category: "Accessories", Price: 5, Stock: 0},
	} {
		p := p
		require.NoError(t, store.Products.Create(context.Background(), &p))
		products[p.Name] = p
	}

	app := handlers.NewApp(handlers.AppOptions{
		Products: services.NewProductService(store.Products, nil, 4),
		Auth: services.NewAuthService(store.Users, config.AuthConfig{
			AdminUser:     "admin",
			AdminPass:     "admin-pass",
			JWTSecret:     "cli-secret",
			AdminTokenTTL: time.Hour,
			UserTokenTTL:  time.Hour,
		}, nil),
		Users: services.NewUserService(store.Users),
	})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	return &harness{
		t:        t,
		baseURL:  "http://" + ln.Addr().String(),
		cartFile: filepath.Join(t.TempDir(), "cart.json"),
		products: products,
	}
}

func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--api", h.baseURL, "--cart-file", h.cartFile}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestProductsCommand(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("products", "--category", "accessories", "--sort", "price-asc")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "Cable"), strings.Index(out, "Mouse"))
	assert.NotContains(t, out, "Laptop")
	assert.Contains(t, out, "Categories: Computers, Accessories")

	out, err = h.run("featured")
	require.NoError(t, err)
	assert.Contains(t, out, "Laptop")
	assert.NotContains(t, out, "Mouse")
}

func TestCartCommands(t *testing.T) {
	h := newHarness(t)
	laptop := h.products["Laptop"].ID

	out, err := h.run("cart")
	require.NoError(t, err)
	assert.Contains(t, out, "Your cart is empty.")

	_, err = h.run("cart", "add", h.products["Cable"].ID)
	assert.Error(t, err)

	_, err = h.run("cart", "add", laptop)
	require.NoError(t, err)
	_, err = h.run("cart", "inc", laptop)
	require.NoError(t, err)

	out, err = h.run("cart", "inc", laptop)
	require.NoError(t, err)
	assert.Contains(t, out, "No more units available.")
	assert.Contains(t, out, "Items: 2")

	_, err = h.run("cart", "dec", laptop)
	require.NoError(t, err)
	out, err = h.run("cart", "dec", laptop)
	require.NoError(t, err)
	assert.Contains(t, out, "Your cart is empty.")

	_, err = h.run("checkout")
	assert.Error(t, err)

	_, err = h.run("cart", "add", h.products["Mouse"].ID)
	require.NoError(t, err)
	out, err = h.run("checkout")
	require.NoError(t, err)
	assert.Contains(t, out, "Total: $ 25.00")

	out, err = h.run("cart", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Your cart is empty.")
}

func TestAccountAndAdminCommands(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("register", "--name", "Ana", "--email", "ana@example.com", "--password", "secret123")
	require.NoError(t, err)
	assert.Contains(t, out, "Account created")

	out, err = h.run("login", "--email", "ana@example.com", "--password", "secret123")
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome, Ana.")

	out, err = h.run("recover", "--email", "ana@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, services.RecoverMessage)

	_, err = h.run("admin", "products")
	assert.Error(t, err)

	out, err = h.run("admin", "login", "--username", "admin", "--password", "admin-pass")
	require.NoError(t, err)
	token := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(out), "export STOREFRONT_TOKEN="))
	require.NotEmpty(t, token)

	out, err = h.run("--token", token, "admin", "create", "--name", "Webcam", "--price", "40", "--stock", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "created")

	mouse := h.products["Mouse"].ID
	_, err = h.run("--token", token, "admin", "update", mouse, "--featured")
	require.NoError(t, err)

	out, err = h.run("--token", token, "admin", "products")
	require.NoError(t, err)
	assert.Contains(t, out, "Webcam")
	assert.Contains(t, out, "Products: 4  Stock: 15  Inventory value: $ 2770.00  Featured: 2")

	_, err = h.run("--token", token, "admin", "delete", mouse)
	require.NoError(t, err)

	out, err = h.run("--token", token, "admin", "users")
	require.NoError(t, err)
	assert.Contains(t, out, "ana@example.com")
}
