package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/fordpartsdz/shop/internal/models"
)

func product(id uint, price int64) *models.Product {
	return &models.Product{
		ID:        id,
		OEMNumber: "F-001",
		Name:      models.LocalizedText{"en": "Brake Pad"},
		Price:     price,
		Images:    models.StringList{"/img/pad.jpg"},
	}
}

func TestNewAssignsSessionID(t *testing.T) {
	a := New()
	b := New()

	require.NotEqual(t, uuid.Nil, a.ID)
	require.NotEqual(t, uuid.Nil, b.ID)
	require.NotEqual(t, a.ID, b.ID)
}

func TestAddItemMergesLines(t *testing.T) {
	c := New()
	p := product(1, 1000)

	c.AddItem(p, 2)
	c.AddItem(p, 3)

	lines := c.Lines()
	require.Len(t, lines, 1)
	require.Equal(t, uint(5), lines[0].Qty)
}

func TestAddItemFloorsQuantity(t *testing.T) {
	c := New()
	c.AddItem(product(1, 1000), 0)

	lines := c.Lines()
	require.Len(t, lines, 1)
	require.Equal(t, uint(1), lines[0].Qty)
}

func TestRemoveItemDeletesWholeLine(t *testing.T) {
	c := New()
	c.AddItem(product(1, 1000), 5)
	c.AddItem(product(2, 500), 1)

	c.RemoveItem(1)

	require.Equal(t, 1, c.Len())
	require.Equal(t, uint(2), c.Lines()[0].ProductID)
	require.Equal(t, int64(500), c.Subtotal())
}

func TestSetQuantityClampsAndIgnoresAbsent(t *testing.T) {
	c := New()
	c.AddItem(product(1, 1000), 2)

	c.SetQuantity(1, 0)
	require.Equal(t, uint(1), c.Lines()[0].Qty)

	c.SetQuantity(1, 7)
	require.Equal(t, uint(7), c.Lines()[0].Qty)

	c.SetQuantity(99, 3)
	require.Equal(t, 1, c.Len())
}

func TestSubtotal(t *testing.T) {
	c := New()
	c.AddItem(product(1, 1000), 2)
	c.AddItem(product(2, 500), 1)

	require.Equal(t, int64(2500), c.Subtotal())
}

func TestSnapshotIgnoresLaterProductEdits(t *testing.T) {
	c := New()
	p := product(1, 1000)
	c.AddItem(p, 2)

	p.Price = 9999
	p.Name["en"] = "Renamed"

	line := c.Lines()[0]
	require.Equal(t, int64(1000), line.Price)
	require.Equal(t, "Brake Pad", line.Name["en"])
	require.Equal(t, int64(2000), c.Subtotal())
}

func TestClear(t *testing.T) {
	c := New()
	c.AddItem(product(1, 1000), 2)
	c.Clear()

	require.True(t, c.IsEmpty())
	require.Equal(t, int64(0), c.Subtotal())
}
