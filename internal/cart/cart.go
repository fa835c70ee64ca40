// Package cart implements the shopper's cart: entries snapshot the product
// at the time it was added, quantities are capped by the last known stock,
// and checkout is simulated. Snapshots are never reconciled with the server.
package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"storefront/internal/models"
	"storefront/internal/storefront"
)

// DefaultCheckoutDelay is how long the simulated payment takes.
const DefaultCheckoutDelay = 900 * time.Millisecond

// CheckoutMessage is returned with every simulated purchase.
const CheckoutMessage = "Purchase completed (simulated). Thank you for your order!"

var (
	// ErrOutOfStock is returned when adding a product without stock.
	ErrOutOfStock = errors.New("product is out of stock")
	// ErrNoMoreUnits is returned when a quantity would exceed the known stock.
	ErrNoMoreUnits = errors.New("no more units available")
	// ErrNotInCart is returned when changing a product that is not in the cart.
	ErrNotInCart = errors.New("product is not in the cart")
	// ErrEmptyCart is returned when checking out an empty cart.
	ErrEmptyCart = errors.New("cart is empty")
)

// Entry is one cart row. Name, Price and Stock are copied from the product
// when it is first added.
type Entry struct {
	ID       string  `json:"_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	Quantity int     `json:"quantity"`
}

// Subtotal is price times quantity.
func (e Entry) Subtotal() float64 {
	return e.Price * float64(e.Quantity)
}

// Receipt describes a completed simulated checkout.
type Receipt struct {
	Total   float64 `json:"total"`
	Items   int     `json:"items"`
	Message string  `json:"message"`
}

// Cart is safe for concurrent use. Every mutation is persisted through its Store.
type Cart struct {
	// CheckoutDelay overrides DefaultCheckoutDelay when non-zero.
	CheckoutDelay time.Duration

	mu      sync.Mutex
	entries []Entry
	store   Store
}

// New loads the cart persisted in store.
func New(store Store) (*Cart, error) {
	entries, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return &Cart{entries: entries, store: store}, nil
}

// Add puts one unit of p in the cart.
func (c *Cart) Add(p models.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.index(p.ID); i >= 0 {
		if c.entries[i].Quantity >= p.Stock {
			return ErrNoMoreUnits
		}
		c.entries[i].Quantity++
		return c.save()
	}

	if p.Stock <= 0 {
		return ErrOutOfStock
	}
	c.entries = append(c.entries, Entry{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Stock:    p.Stock,
		Quantity: 1,
	})
	return c.save()
}

// ChangeQuantity adds delta to the quantity of the entry id. A quantity that
// drops to zero removes the entry. A quantity above the last known stock is
// capped and reported with ErrNoMoreUnits; the stock comes from catalog when
// it lists the product, otherwise from the entry's snapshot.
func (c *Cart) ChangeQuantity(id string, delta int, catalog []models.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.index(id)
	if i < 0 {
		return ErrNotInCart
	}

	quantity := c.entries[i].Quantity + delta
	if quantity <= 0 {
		c.remove(i)
		return c.save()
	}

	stock := c.entries[i].Stock
	if p, ok := storefront.Find(catalog, id); ok {
		stock = p.Stock
	}

	var capped error
	if quantity > stock {
		quantity = stock
		capped = ErrNoMoreUnits
	}
	if quantity <= 0 {
		c.remove(i)
	} else {
		c.entries[i].Quantity = quantity
	}

	if err := c.save(); err != nil {
		return err
	}
	return capped
}

// Clear empties the cart.
func (c *Cart) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = nil
	return c.save()
}

// Entries returns a copy of the cart rows.
func (c *Cart) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Totals returns the cart total and the number of units in it.
func (c *Cart) Totals() (total float64, count int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.entries {
		total += e.Subtotal()
		count += e.Quantity
	}
	return total, count
}

// Checkout simulates a payment: it waits CheckoutDelay, then removes the
// units it charged for. Units added while the payment is pending stay in the
// cart. No inventory is decremented. Cancelling ctx aborts the checkout and
// leaves the cart untouched.
func (c *Cart) Checkout(ctx context.Context) (*Receipt, error) {
	charged := c.Entries()
	receipt := &Receipt{Message: CheckoutMessage}
	for _, e := range charged {
		receipt.Total += e.Subtotal()
		receipt.Items += e.Quantity
	}
	if receipt.Items == 0 {
		return nil, ErrEmptyCart
	}

	delay := c.CheckoutDelay
	if delay == 0 {
		delay = DefaultCheckoutDelay
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	if err := c.settle(charged); err != nil {
		return nil, err
	}
	return receipt, nil
}

// settle subtracts the charged quantities from the persisted cart, which may
// have been changed by another process during the payment.
func (c *Cart) settle(charged []Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	current, err := c.store.Load()
	if err != nil {
		return fmt.Errorf("failed to reload cart: %w", err)
	}

	paid := make(map[string]int, len(charged))
	for _, e := range charged {
		paid[e.ID] += e.Quantity
	}

	remaining := make([]Entry, 0, len(current))
	for _, e := range current {
		e.Quantity -= paid[e.ID]
		if e.Quantity > 0 {
			remaining = append(remaining, e)
		}
	}
	c.entries = remaining
	return c.save()
}

func (c *Cart) index(id string) int {
	for i, e := range c.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (c *Cart) remove(i int) {
	c.entries = append(c.entries[:i], c.entries[i+1:]...)
}

func (c *Cart) save() error {
	if err := c.store.Save(c.entries); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}
