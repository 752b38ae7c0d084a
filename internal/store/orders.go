package store

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of an order. Any known status may be
// assigned from any other; there is no transition graph.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// ParseStatus converts a string into a Status.
// Returns ErrUnknownStatus for values outside the enumeration.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return Status(s), nil
	}
	return "", ErrUnknownStatus
}

// CustomerInfo is the checkout contact data recorded on an order.
// Field validation happens at the presentation boundary before the
// data reaches the stores.
type CustomerInfo struct {
	Name       string `json:"name"        validate:"required"`
	Email      string `json:"email"       validate:"required,email"`
	Phone      string `json:"phone"       validate:"required"`
	Address    string `json:"address"     validate:"required"`
	City       string `json:"city"        validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
}

// Order is an immutable historical record created from the cart at
// checkout. Items, Total, CreatedAt, and Customer are frozen at
// creation; only Status may change afterwards.
type Order struct {
	ID        string       `json:"id"`
	Items     []CartItem   `json:"items"`
	Total     int64        `json:"total"`
	Status    Status       `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	Customer  CustomerInfo `json:"customer"`
}

func (o Order) clone() Order {
	items := make([]CartItem, len(o.Items))
	for i, it := range o.Items {
		items[i] = CartItem{Product: it.Product.Clone(), Quantity: it.Quantity}
	}
	o.Items = items
	return o
}

// Orders is the append-only order history. It owns the checkout
// transaction: creating an order snapshots the cart and clears it in
// one step, so no caller ever observes the items in both places.
type Orders struct {
	cart   *Cart
	orders []Order
}

// NewOrders creates an empty order history drawing from the given cart.
func NewOrders(cart *Cart) *Orders {
	return &Orders{cart: cart}
}

// Create builds a new pending order from the current cart and clears
// the cart. It refuses with ErrEmptyCart when there is nothing to order.
// The returned order is a copy; the stored record cannot be reached
// through it.
func (o *Orders) Create(info CustomerInfo) (*Order, error) {
	items := o.cart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	var total int64
	for _, it := range items {
		total += it.Product.Price * int64(it.Quantity)
	}
	order := Order{
		ID:        uuid.NewString(),
		Items:     items,
		Total:     total,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
		Customer:  info,
	}
	o.orders = append(o.orders, order)
	o.cart.Clear()

	out := order.clone()
	return &out, nil
}

// List returns all orders, most recent first. The result is a deep
// copy, not a live view.
func (o *Orders) List() []Order {
	list := make([]Order, len(o.orders))
	for i, ord := range o.orders {
		list[i] = ord.clone()
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list
}

// ByID returns a copy of the order with the given identifier.
// The second return value reports whether it exists.
func (o *Orders) ByID(id string) (*Order, bool) {
	for _, ord := range o.orders {
		if ord.ID == id {
			out := ord.clone()
			return &out, true
		}
	}
	return nil, false
}

// UpdateStatus overwrites the status of an order. It refuses with
// ErrOrderNotFound for unknown ids and ErrUnknownStatus for values
// outside the enumeration. Everything else on the order stays frozen.
func (o *Orders) UpdateStatus(id string, status Status) error {
	if _, err := ParseStatus(string(status)); err != nil {
		return err
	}
	for i := range o.orders {
		if o.orders[i].ID == id {
			o.orders[i].Status = status
			return nil
		}
	}
	return ErrOrderNotFound
}

// Len returns the number of orders in the history.
func (o *Orders) Len() int {
	return len(o.orders)
}

// Restore replaces the order history from a persisted snapshot.
// Records without an id are dropped; duplicate ids keep the first
// occurrence so identifier uniqueness survives a corrupt snapshot.
func (o *Orders) Restore(orders []Order) {
	o.orders = nil
	seen := make(map[string]bool, len(orders))
	for _, ord := range orders {
		if ord.ID == "" || seen[ord.ID] {
			continue
		}
		if _, err := ParseStatus(string(ord.Status)); err != nil {
			ord.Status = StatusPending
		}
		seen[ord.ID] = true
		o.orders = append(o.orders, ord.clone())
	}
}
