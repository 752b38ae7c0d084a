package store

import "github.com/abgdnv/storefront/internal/catalog"

// CartLine is the persisted form of a cart entry: a product reference
// plus a quantity. Product details are resolved against the catalog on
// demand so the cart always prices at current catalog prices.
type CartLine struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CartItem is a resolved cart entry handed to callers.
type CartItem struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Cart holds the in-progress selection for the current session. Lines are
// ordered by insertion and unique per product id, and every quantity is
// bounded by the product's stock.
type Cart struct {
	catalog *catalog.Catalog
	lines   []CartLine
}

// NewCart creates an empty cart backed by the given catalog.
func NewCart(c *catalog.Catalog) *Cart {
	return &Cart{catalog: c}
}

// Add puts qty units of the product into the cart, incrementing an
// existing line in place. It refuses with ErrProductNotFound for unknown
// ids, ErrInvalidQuantity for qty < 1, and ErrInsufficientStock when the
// resulting quantity would exceed the product's stock. On refusal the
// cart is unchanged.
func (c *Cart) Add(productID string, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}
	p, ok := c.catalog.ByID(productID)
	if !ok {
		return ErrProductNotFound
	}
	i := c.indexOf(productID)
	current := 0
	if i >= 0 {
		current = c.lines[i].Quantity
	}
	if current+qty > p.Stock {
		return ErrInsufficientStock
	}
	if i >= 0 {
		c.lines[i].Quantity = current + qty
		return nil
	}
	c.lines = append(c.lines, CartLine{ProductID: productID, Quantity: qty})
	return nil
}

// SetQuantity overwrites the quantity of an existing line. A qty <= 0
// removes the line. It refuses with ErrNotInCart if the product has no
// line and ErrInsufficientStock if qty exceeds stock.
func (c *Cart) SetQuantity(productID string, qty int) error {
	if qty <= 0 {
		c.Remove(productID)
		return nil
	}
	i := c.indexOf(productID)
	if i < 0 {
		return ErrNotInCart
	}
	p, ok := c.catalog.ByID(productID)
	if !ok {
		return ErrProductNotFound
	}
	if qty > p.Stock {
		return ErrInsufficientStock
	}
	c.lines[i].Quantity = qty
	return nil
}

// Remove deletes the line for the product and reports whether a line
// was actually removed.
func (c *Cart) Remove(productID string) bool {
	i := c.indexOf(productID)
	if i < 0 {
		return false
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	return true
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear() {
	c.lines = nil
}

// Items resolves every line against the catalog and returns the result.
// Lines whose product is missing from the catalog are skipped.
func (c *Cart) Items() []CartItem {
	items := make([]CartItem, 0, len(c.lines))
	for _, l := range c.lines {
		p, ok := c.catalog.ByID(l.ProductID)
		if !ok {
			continue
		}
		items = append(items, CartItem{Product: p, Quantity: l.Quantity})
	}
	return items
}

// Lines returns a copy of the raw cart lines, the unit of persistence.
func (c *Cart) Lines() []CartLine {
	lines := make([]CartLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// Total returns the sum of price x quantity over all lines, in cents,
// priced at the current catalog price.
func (c *Cart) Total() int64 {
	var total int64
	for _, l := range c.lines {
		if p, ok := c.catalog.ByID(l.ProductID); ok {
			total += p.Price * int64(l.Quantity)
		}
	}
	return total
}

// ItemCount returns the sum of quantities across all lines. Used for the
// cart badge, so it counts units, not lines.
func (c *Cart) ItemCount() int {
	count := 0
	for _, l := range c.lines {
		count += l.Quantity
	}
	return count
}

// Restore replaces the cart contents from a persisted snapshot.
// Unknown product ids are dropped, duplicate lines merged, and
// quantities clamped to current stock, so a stale snapshot cannot
// violate the cart invariants.
func (c *Cart) Restore(lines []CartLine) {
	c.lines = nil
	for _, l := range lines {
		p, ok := c.catalog.ByID(l.ProductID)
		if !ok || l.Quantity < 1 || p.Stock < 1 {
			continue
		}
		qty := l.Quantity
		if qty > p.Stock {
			qty = p.Stock
		}
		if i := c.indexOf(l.ProductID); i >= 0 {
			merged := c.lines[i].Quantity + qty
			if merged > p.Stock {
				merged = p.Stock
			}
			c.lines[i].Quantity = merged
			continue
		}
		c.lines = append(c.lines, CartLine{ProductID: l.ProductID, Quantity: qty})
	}
}

func (c *Cart) indexOf(productID string) int {
	for i, l := range c.lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}
