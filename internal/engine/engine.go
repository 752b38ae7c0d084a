// Package engine composes the catalog, cart, wishlist, and order stores
// behind a single API for the presentation layer. Every successful
// mutation runs the same sequence: apply, notify subscribers, persist.
// Refused mutations do neither.
package engine

import (
	"log/slog"
	"sync"

	"github.com/abgdnv/storefront/internal/catalog"
	"github.com/abgdnv/storefront/internal/persistence"
	"github.com/abgdnv/storefront/internal/store"
)

// Listener is a change-notification callback. It receives no arguments;
// subscribers re-read whatever state they render.
type Listener func()

type subscriber struct {
	id int
	fn Listener
}

// Engine is the storefront facade. It is safe for use by one logical
// writer at a time; a single mutex guards all mutable state, since none
// of the stores are designed for concurrent mutation.
type Engine struct {
	mu      sync.Mutex
	catalog *catalog.Catalog
	cart    *store.Cart
	wish    *store.Wishlist
	orders  *store.Orders
	gateway persistence.Gateway
	logger  *slog.Logger

	subs   []subscriber
	nextID int
}

// New builds an Engine over the given catalog and persistence gateway,
// rehydrating cart, wishlist, and orders from the last snapshot.
func New(cat *catalog.Catalog, gw persistence.Gateway, logger *slog.Logger) *Engine {
	cart := store.NewCart(cat)
	e := &Engine{
		catalog: cat,
		cart:    cart,
		wish:    store.NewWishlist(cat),
		orders:  store.NewOrders(cart),
		gateway: gw,
		logger:  logger.With("component", "engine"),
	}
	snap := gw.Load()
	e.cart.Restore(snap.Cart)
	e.wish.Restore(snap.Wishlist)
	e.orders.Restore(snap.Orders)
	return e
}

// Subscribe registers a listener invoked synchronously, in registration
// order, after every successful mutation. The returned function removes
// the listener; calling it during a notification is safe and calling it
// twice is a no-op.
func (e *Engine) Subscribe(l Listener) func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.nextID
	e.nextID++
	e.subs = append(e.subs, subscriber{id: id, fn: l})
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		for i, s := range e.subs {
			if s.id == id {
				e.subs = append(e.subs[:i], e.subs[i+1:]...)
				return
			}
		}
	}
}

// --- catalog queries (pass-through) ---

// Products returns the full catalog.
func (e *Engine) Products() []catalog.Product { return e.catalog.All() }

// ProductByID returns a product and whether it exists.
func (e *Engine) ProductByID(id string) (catalog.Product, bool) { return e.catalog.ByID(id) }

// SearchProducts matches the term against product names and descriptions.
func (e *Engine) SearchProducts(term string) []catalog.Product { return e.catalog.Search(term) }

// ProductsByCategory filters the catalog by category.
func (e *Engine) ProductsByCategory(cat catalog.Category) []catalog.Product {
	return e.catalog.ByCategory(cat)
}

// ProductsByPriceRange filters by inclusive price bounds, in cents.
func (e *Engine) ProductsByPriceRange(min, max int64) []catalog.Product {
	return e.catalog.ByPriceRange(min, max)
}

// ProductsByMinRating filters by minimum rating.
func (e *Engine) ProductsByMinRating(r float64) []catalog.Product {
	return e.catalog.ByMinRating(r)
}

// FilterProducts applies a composed AND filter.
func (e *Engine) FilterProducts(q catalog.Query) []catalog.Product { return e.catalog.Filter(q) }

// --- cart ---

// Cart returns the resolved cart items.
func (e *Engine) Cart() []store.CartItem {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cart.Items()
}

// CartTotal returns the cart total in cents at current catalog prices.
func (e *Engine) CartTotal() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cart.Total()
}

// CartItemCount returns the total number of units in the cart.
func (e *Engine) CartItemCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cart.ItemCount()
}

// AddToCart adds qty units of a product.
func (e *Engine) AddToCart(productID string, qty int) error {
	return e.mutate("add_to_cart", func() error {
		return e.cart.Add(productID, qty)
	})
}

// UpdateCartQuantity overwrites a line's quantity; qty <= 0 removes it.
func (e *Engine) UpdateCartQuantity(productID string, qty int) error {
	return e.mutate("update_cart_quantity", func() error {
		return e.cart.SetQuantity(productID, qty)
	})
}

// RemoveFromCart removes a line and reports whether it existed.
func (e *Engine) RemoveFromCart(productID string) bool {
	removed := false
	_ = e.mutate("remove_from_cart", func() error {
		if !e.cart.Remove(productID) {
			return store.ErrNotInCart
		}
		removed = true
		return nil
	})
	return removed
}

// ClearCart empties the cart.
func (e *Engine) ClearCart() {
	_ = e.mutate("clear_cart", func() error {
		e.cart.Clear()
		return nil
	})
}

// --- wishlist ---

// Wishlist returns the wishlist product ids in insertion order.
func (e *Engine) Wishlist() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.wish.IDs()
}

// WishlistProducts resolves the wishlist against the catalog.
func (e *Engine) WishlistProducts() []catalog.Product {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.wish.Products()
}

// IsInWishlist reports wishlist membership.
func (e *Engine) IsInWishlist(productID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.wish.Contains(productID)
}

// ToggleWishlist flips wishlist membership and returns the new state.
func (e *Engine) ToggleWishlist(productID string) bool {
	added := false
	_ = e.mutate("toggle_wishlist", func() error {
		added = e.wish.Toggle(productID)
		return nil
	})
	return added
}

// --- orders ---

// Orders returns the order history, most recent first.
func (e *Engine) Orders() []store.Order {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.orders.List()
}

// OrderByID returns an order and whether it exists.
func (e *Engine) OrderByID(id string) (*store.Order, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.orders.ByID(id)
}

// CreateOrder turns the current cart into a pending order and clears
// the cart in the same step. Returns ErrEmptyCart on an empty cart.
func (e *Engine) CreateOrder(info store.CustomerInfo) (*store.Order, error) {
	var order *store.Order
	err := e.mutate("create_order", func() error {
		var createErr error
		order, createErr = e.orders.Create(info)
		return createErr
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateOrderStatus overwrites an order's status.
func (e *Engine) UpdateOrderStatus(id string, status store.Status) error {
	return e.mutate("update_order_status", func() error {
		return e.orders.UpdateStatus(id, status)
	})
}

// mutate runs op under the write lock. On success it takes a state
// snapshot, then notifies subscribers and persists outside the lock,
// in that order. On refusal neither happens.
func (e *Engine) mutate(name string, op func() error) error {
	e.mu.Lock()
	if err := op(); err != nil {
		e.mu.Unlock()
		e.logger.Debug("mutation refused", "op", name, "error", err)
		return err
	}
	snap := persistence.Snapshot{
		Cart:     e.cart.Lines(),
		Wishlist: e.wish.IDs(),
		Orders:   e.orders.List(),
	}
	subs := make([]subscriber, len(e.subs))
	copy(subs, e.subs)
	e.mu.Unlock()

	e.logger.Debug("mutation applied", "op", name)
	for _, s := range subs {
		s.fn()
	}
	if err := e.gateway.Save(snap); err != nil {
		// State stays correct in memory; the next successful write heals.
		e.logger.Error("failed to persist snapshot", "op", name, "error", err)
	}
	return nil
}
