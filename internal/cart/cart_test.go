package cart_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"storefront/internal/cart"
	"storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	laptop = models.Product{ID: "p1", Name: "Laptop", Price: 1000, Stock: 2}
	mouse  = models.Product{ID: "p2", Name: "Mouse", Price: 25.5, Stock: 10}
	empty  = models.Product{ID: "p3", Name: "Sold out", Price: 5, Stock: 0}
)

func newCart(t *testing.T) (*cart.Cart, *cart.MemoryStore) {
	t.Helper()
	store := &cart.MemoryStore{}
	c, err := cart.New(store)
	require.NoError(t, err)
	c.CheckoutDelay = time.Millisecond
	return c, store
}

func TestAdd(t *testing.T) {
	c, store := newCart(t)

	require.NoError(t, c.Add(laptop))
	require.NoError(t, c.Add(laptop))
	assert.ErrorIs(t, c.Add(laptop), cart.ErrNoMoreUnits)
	assert.ErrorIs(t, c.Add(empty), cart.ErrOutOfStock)

	entries := c.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, cart.Entry{ID: "p1", Name: "Laptop", Price: 1000, Stock: 2, Quantity: 2}, entries[0])
	assert.Equal(t, 2, store.Saves())
}

func TestAdd_UsesCurrentStockForExistingEntry(t *testing.T) {
	c, _ := newCart(t)
	require.NoError(t, c.Add(laptop))

	restocked := laptop
	restocked.Stock = 5
	require.NoError(t, c.Add(restocked))
	require.NoError(t, c.Add(restocked))

	entries := c.Entries()
	assert.Equal(t, 3, entries[0].Quantity)
	assert.Equal(t, 2, entries[0].Stock, "snapshot is not refreshed")
}

func TestChangeQuantity_IncrementNeverExceedsStock(t *testing.T) {
	c, _ := newCart(t)
	require.NoError(t, c.Add(laptop))
	catalog := []models.Product{laptop, mouse}

	require.NoError(t, c.ChangeQuantity("p1", 1, catalog))
	assert.ErrorIs(t, c.ChangeQuantity("p1", 1, catalog), cart.ErrNoMoreUnits)
	assert.ErrorIs(t, c.ChangeQuantity("p1", 5, catalog), cart.ErrNoMoreUnits)
	assert.Equal(t, 2, c.Entries()[0].Quantity)
}

func TestChangeQuantity_FallsBackToSnapshotStock(t *testing.T) {
	c, _ := newCart(t)
	require.NoError(t, c.Add(laptop))

	assert.ErrorIs(t, c.ChangeQuantity("p1", 10, nil), cart.ErrNoMoreUnits)
	assert.Equal(t, 2, c.Entries()[0].Quantity)
}

func TestChangeQuantity_CatalogStockWins(t *testing.T) {
	c, _ := newCart(t)
	require.NoError(t, c.Add(mouse))

	lowered := mouse
	lowered.Stock = 3
	assert.ErrorIs(t, c.ChangeQuantity("p2", 7, []models.Product{lowered}), cart.ErrNoMoreUnits)
	assert.Equal(t, 3, c.Entries()[0].Quantity)

	soldOut := mouse
	soldOut.Stock = 0
	assert.ErrorIs(t, c.ChangeQuantity("p2", 1, []models.Product{soldOut}), cart.ErrNoMoreUnits)
	assert.Empty(t, c.Entries(), "no zero-quantity rows")
}

func TestChangeQuantity_DecrementToZeroRemoves(t *testing.T) {
	c, _ := newCart(t)
	require.NoError(t, c.Add(laptop))
	require.NoError(t, c.Add(mouse))

	require.NoError(t, c.ChangeQuantity("p1", -1, nil))
	entries := c.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "p2", entries[0].ID)

	require.NoError(t, c.ChangeQuantity("p2", -5, nil))
	assert.Empty(t, c.Entries())
}

func TestChangeQuantity_NotInCart(t *testing.T) {
	c, _ := newCart(t)
	assert.ErrorIs(t, c.ChangeQuantity("missing", 1, nil), cart.ErrNotInCart)
}

func TestTotalsAndClear(t *testing.T) {
	c, _ := newCart(t)
	require.NoError(t, c.Add(laptop))
	require.NoError(t, c.Add(mouse))
	require.NoError(t, c.Add(mouse))

	total, count := c.Totals()
	assert.Equal(t, 1051.0, total)
	assert.Equal(t, 3, count)

	require.NoError(t, c.Clear())
	total, count = c.Totals()
	assert.Zero(t, total)
	assert.Zero(t, count)
}

func TestCheckout(t *testing.T) {
	c, store := newCart(t)

	_, err := c.Checkout(context.Background())
	assert.ErrorIs(t, err, cart.ErrEmptyCart)

	require.NoError(t, c.Add(mouse))
	receipt, err := c.Checkout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &cart.Receipt{Total: 25.5, Items: 1, Message: cart.CheckoutMessage}, receipt)
	assert.Empty(t, c.Entries())

	persisted, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, persisted)
}

func TestCheckout_Cancelled(t *testing.T) {
	c, _ := newCart(t)
	c.CheckoutDelay = time.Minute
	require.NoError(t, c.Add(mouse))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Checkout(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, c.Entries(), 1)
}

func TestCheckout_KeepsUnitsAddedDuringPayment(t *testing.T) {
	c, store := newCart(t)
	c.CheckoutDelay = 200 * time.Millisecond
	require.NoError(t, c.Add(mouse))

	type result struct {
		receipt *cart.Receipt
		err     error
	}
	done := make(chan result, 1)
	go func() {
		receipt, err := c.Checkout(context.Background())
		done <- result{receipt, err}
	}()

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, c.Add(laptop))
	require.NoError(t, c.Add(mouse))

	res := <-done
	require.NoError(t, res.err)
	assert.Equal(t, &cart.Receipt{Total: 25.5, Items: 1, Message: cart.CheckoutMessage}, res.receipt)

	entries := c.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "p2", entries[0].ID)
	assert.Equal(t, 1, entries[0].Quantity)
	assert.Equal(t, "p1", entries[1].ID)
	assert.Equal(t, 1, entries[1].Quantity)

	persisted, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, entries, persisted)
}

func TestCheckout_SharedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	buyer, err := cart.New(cart.NewFileStore(path))
	require.NoError(t, err)
	buyer.CheckoutDelay = 200 * time.Millisecond
	require.NoError(t, buyer.Add(mouse))

	done := make(chan error, 1)
	go func() {
		_, err := buyer.Checkout(context.Background())
		done <- err
	}()

	time.Sleep(20 * time.Millisecond)
	other, err := cart.New(cart.NewFileStore(path))
	require.NoError(t, err)
	require.NoError(t, other.Add(laptop))

	require.NoError(t, <-done)

	reloaded, err := cart.New(cart.NewFileStore(path))
	require.NoError(t, err)
	entries := reloaded.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "p1", entries[0].ID)
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cart.json")
	store := cart.NewFileStore(path)

	c, err := cart.New(store)
	require.NoError(t, err)
	assert.Empty(t, c.Entries())

	require.NoError(t, c.Add(laptop))
	require.NoError(t, c.Add(mouse))

	reloaded, err := cart.New(cart.NewFileStore(path))
	require.NoError(t, err)
	assert.Equal(t, c.Entries(), reloaded.Entries())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"_id": "p1"`)
}

func TestFileStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := cart.New(cart.NewFileStore(path))
	assert.Error(t, err)
}
