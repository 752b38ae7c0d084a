// Package catalog provides the read-only product catalog and its query
// operations. The catalog is populated once at startup and never mutated.
package catalog

import "strings"

// Category is a closed enumeration of product categories.
type Category string

const (
	CategoryElectronics Category = "electronics"
	CategoryClothing    Category = "clothing"
	CategoryBooks       Category = "books"
	CategoryHome        Category = "home"
	CategorySports      Category = "sports"
	CategoryBeauty      Category = "beauty"
)

// Product represents a single catalog entry. Prices are in cents.
// OriginalPrice, when present, is the pre-discount reference price and
// must be greater than Price.
type Product struct {
	ID            string   `json:"id"             koanf:"id"            validate:"required"`
	Name          string   `json:"name"           koanf:"name"          validate:"required,max=100"`
	Description   string   `json:"description"    koanf:"description"`
	Price         int64    `json:"price"          koanf:"price"         validate:"min=0"`
	OriginalPrice *int64   `json:"original_price,omitempty" koanf:"originalPrice"`
	Category      Category `json:"category"       koanf:"category"      validate:"required,oneof=electronics clothing books home sports beauty"`
	Rating        float64  `json:"rating"         koanf:"rating"        validate:"min=0,max=5"`
	Reviews       int      `json:"reviews"        koanf:"reviews"       validate:"min=0"`
	Glyph         string   `json:"glyph"          koanf:"glyph"`
	Stock         int      `json:"stock"          koanf:"stock"         validate:"min=0"`
}

// Clone returns a deep copy of the product. Product is almost a plain value;
// only the optional original price needs an explicit copy.
func (p Product) Clone() Product {
	if p.OriginalPrice != nil {
		op := *p.OriginalPrice
		p.OriginalPrice = &op
	}
	return p
}

// Catalog is an immutable collection of products with lookup and filter
// queries. All query results are copies; callers cannot reach the
// internal slice through them.
type Catalog struct {
	products []Product
	byID     map[string]int
}

// New creates a Catalog from the given products. The slice is copied, so
// the caller keeps no handle into the catalog's state.
func New(products []Product) *Catalog {
	c := &Catalog{
		products: make([]Product, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	for i, p := range products {
		c.products[i] = p.Clone()
		c.byID[p.ID] = i
	}
	return c
}

// Len returns the number of products in the catalog.
func (c *Catalog) Len() int {
	return len(c.products)
}

// All returns every product in catalog order.
func (c *Catalog) All() []Product {
	return c.cloneAll(func(Product) bool { return true })
}

// ByID returns the product with the given identifier.
// The second return value reports whether it exists.
func (c *Catalog) ByID(id string) (Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i].Clone(), true
}

// Search returns products whose name or description contains the term,
// case-insensitively. An empty term matches everything.
func (c *Catalog) Search(term string) []Product {
	term = strings.ToLower(strings.TrimSpace(term))
	return c.cloneAll(func(p Product) bool {
		if term == "" {
			return true
		}
		return strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Description), term)
	})
}

// ByCategory returns products in the given category.
func (c *Catalog) ByCategory(cat Category) []Product {
	return c.cloneAll(func(p Product) bool { return p.Category == cat })
}

// ByPriceRange returns products with min <= price <= max. Bounds are
// inclusive on both ends.
func (c *Catalog) ByPriceRange(min, max int64) []Product {
	return c.cloneAll(func(p Product) bool { return p.Price >= min && p.Price <= max })
}

// ByMinRating returns products rated at least r.
func (c *Catalog) ByMinRating(r float64) []Product {
	return c.cloneAll(func(p Product) bool { return p.Rating >= r })
}

// Query describes a composed filter: every set field narrows the result,
// combined as a logical AND. It mirrors how a presentation layer stacks
// search, category, price, and rating filters.
type Query struct {
	Term      string
	Category  Category // empty means any
	MinPrice  int64
	MaxPrice  int64 // zero means unbounded
	MinRating float64
}

// Filter returns products matching every populated field of q.
func (c *Catalog) Filter(q Query) []Product {
	term := strings.ToLower(strings.TrimSpace(q.Term))
	return c.cloneAll(func(p Product) bool {
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			return false
		}
		if q.Category != "" && p.Category != q.Category {
			return false
		}
		if p.Price < q.MinPrice {
			return false
		}
		if q.MaxPrice > 0 && p.Price > q.MaxPrice {
			return false
		}
		if p.Rating < q.MinRating {
			return false
		}
		return true
	})
}

func (c *Catalog) cloneAll(keep func(Product) bool) []Product {
	list := make([]Product, 0, len(c.products))
	for _, p := range c.products {
		if keep(p) {
			list = append(list, p.Clone())
		}
	}
	return list
}
