package store

import "github.com/abgdnv/storefront/internal/catalog"

// Wishlist is a set of product identifiers. Insertion order is preserved
// for display stability; membership is the only semantic.
type Wishlist struct {
	catalog *catalog.Catalog
	ids     []string
}

// NewWishlist creates an empty wishlist backed by the given catalog.
func NewWishlist(c *catalog.Catalog) *Wishlist {
	return &Wishlist{catalog: c}
}

// Toggle flips membership for the id and returns the new state:
// true if the id is now on the wishlist, false if it was removed.
// Two consecutive calls restore the original state.
func (w *Wishlist) Toggle(productID string) bool {
	if w.Remove(productID) {
		return false
	}
	w.ids = append(w.ids, productID)
	return true
}

// Contains reports whether the id is on the wishlist.
func (w *Wishlist) Contains(productID string) bool {
	return w.indexOf(productID) >= 0
}

// Add puts the id on the wishlist. It reports false if the id was
// already present, leaving the wishlist unchanged.
func (w *Wishlist) Add(productID string) bool {
	if w.Contains(productID) {
		return false
	}
	w.ids = append(w.ids, productID)
	return true
}

// Remove deletes the id and reports whether it was present.
func (w *Wishlist) Remove(productID string) bool {
	i := w.indexOf(productID)
	if i < 0 {
		return false
	}
	w.ids = append(w.ids[:i], w.ids[i+1:]...)
	return true
}

// IDs returns a copy of the wishlist ids in insertion order.
func (w *Wishlist) IDs() []string {
	ids := make([]string, len(w.ids))
	copy(ids, w.ids)
	return ids
}

// Products resolves the wishlist against the catalog. Identifiers whose
// product no longer exists are silently dropped, so a stale persisted
// wishlist never surfaces phantom entries.
func (w *Wishlist) Products() []catalog.Product {
	list := make([]catalog.Product, 0, len(w.ids))
	for _, id := range w.ids {
		if p, ok := w.catalog.ByID(id); ok {
			list = append(list, p)
		}
	}
	return list
}

// Restore replaces the wishlist from a persisted snapshot, dropping
// duplicates while keeping first-seen order.
func (w *Wishlist) Restore(ids []string) {
	w.ids = nil
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		w.ids = append(w.ids, id)
	}
}

func (w *Wishlist) indexOf(productID string) int {
	for i, id := range w.ids {
		if id == productID {
			return i
		}
	}
	return -1
}
