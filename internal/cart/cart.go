package cart

import (
	"github.com/google/uuid"

	"github.com/fordpartsdz/shop/internal/models"
)

// Snapshot is the slice of a product a cart line holds on to. Price and name
// are copied at add time, so catalog edits never move an open cart's total;
// the order materializer relies on the same fields downstream.
type Snapshot struct {
	ProductID uint                 `json:"product_id"`
	Name      models.LocalizedText `json:"name"`
	Image     string               `json:"image"`
	Price     int64                `json:"price"`
}

type Line struct {
	Snapshot
	Qty uint `json:"qty"`
}

// Cart is the session-scoped basket. One browsing session owns it; there is
// no cross-request mutation, so no locking.
type Cart struct {
	ID    uuid.UUID
	lines []Line
}

func New() *Cart {
	return &Cart{ID: uuid.New()}
}

// AddItem merges qty into the existing line for the product, or appends a new
// line snapshotting the product as it is right now. Quantity floors at 1.
func (c *Cart) AddItem(p *models.Product, qty uint) {
	if qty < 1 {
		qty = 1
	}
	for i := range c.lines {
		if c.lines[i].ProductID == p.ID {
			c.lines[i].Qty += qty
			return
		}
	}
	c.lines = append(c.lines, Line{
		Snapshot: Snapshot{
			ProductID: p.ID,
			Name:      cloneText(p.Name),
			Image:     p.PrimaryImage(),
			Price:     p.Price,
		},
		Qty: qty,
	})
}

// RemoveItem drops the whole line for productID, not a single unit.
func (c *Cart) RemoveItem(productID uint) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// SetQuantity clamps qty to at least 1 and is a no-op for absent products.
func (c *Cart) SetQuantity(productID uint, qty uint) {
	if qty < 1 {
		qty = 1
	}
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Qty = qty
			return
		}
	}
}

func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Subtotal sums qty × snapshot price over all lines.
func (c *Cart) Subtotal() int64 {
	var total int64
	for i := range c.lines {
		total += int64(c.lines[i].Qty) * c.lines[i].Price
	}
	return total
}

func cloneText(t models.LocalizedText) models.LocalizedText {
	out := make(models.LocalizedText, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}
