package orders

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fordpartsdz/shop/internal/cart"
	"github.com/fordpartsdz/shop/internal/models"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Order{}, &models.OrderItem{}))

	prices := map[string]int64{"Alger": 400, "Oran": 600}
	return &Service{
		DB:            db,
		ShippingPrice: func(w string) int64 { return prices[w] },
	}
}

func testAddress() models.ShippingAddress {
	return models.ShippingAddress{
		FullName:   "Karim B",
		Address:    "12 Rue Didouche",
		City:       "Alger",
		PostalCode: "16000",
		Country:    "Algeria",
		Phone:      "0550123456",
		Wilaya:     "Alger",
	}
}

var oemSeq int

func seedProduct(t *testing.T, s *Service, price int64) *models.Product {
	t.Helper()
	oemSeq++
	p := &models.Product{
		OEMNumber: fmt.Sprintf("F-%03d", oemSeq),
		Name:      models.LocalizedText{"en": "Part", "fr": "Pièce"},
		Category:  "Brakes",
		Price:     price,
		Images:    models.StringList{"/img/part.jpg"},
	}
	require.NoError(t, s.DB.Create(p).Error)
	return p
}

func placeTestOrder(t *testing.T, s *Service) *models.Order {
	t.Helper()
	basket := cart.New()
	basket.AddItem(seedProduct(t, s, 1000), 2)

	o, err := s.Place(context.Background(), basket, testAddress(), models.PaymentCOD, nil)
	require.NoError(t, err)
	return o
}

func TestPlaceComputesTotals(t *testing.T) {
	s := newTestService(t)
	basket := cart.New()
	basket.AddItem(seedProduct(t, s, 1000), 2)
	basket.AddItem(seedProduct(t, s, 500), 1)
	require.Equal(t, int64(2500), basket.Subtotal())

	addr := testAddress()
	addr.Wilaya = "Oran"
	o, err := s.Place(context.Background(), basket, addr, models.PaymentCOD, nil)
	require.NoError(t, err)

	require.Equal(t, int64(2500), o.ItemsPrice)
	require.Equal(t, int64(600), o.ShippingPrice)
	require.Equal(t, int64(0), o.TaxPrice)
	require.Equal(t, int64(3100), o.TotalPrice)
	require.Equal(t, models.OrderStatusPending, o.Status)
	require.False(t, o.IsPaid)
	require.False(t, o.IsDelivered)
	require.Len(t, o.Items, 2)
}

func TestPlaceEmptyCart(t *testing.T) {
	s := newTestService(t)
	_, err := s.Place(context.Background(), cart.New(), testAddress(), models.PaymentCOD, nil)
	require.ErrorIs(t, err, ErrEmptyCart)

	_, err = s.Place(context.Background(), nil, testAddress(), models.PaymentCOD, nil)
	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestPlaceRejectsMissingAddressField(t *testing.T) {
	s := newTestService(t)
	basket := cart.New()
	basket.AddItem(seedProduct(t, s, 1000), 1)

	addr := testAddress()
	addr.Phone = ""
	_, err := s.Place(context.Background(), basket, addr, models.PaymentCOD, nil)
	require.ErrorIs(t, err, ErrValidation)
	require.Contains(t, err.Error(), "phone")

	// Nothing was persisted and the cart is untouched.
	var n int64
	require.NoError(t, s.DB.Model(&models.Order{}).Count(&n).Error)
	require.Equal(t, int64(0), n)
	require.Equal(t, 1, basket.Len())
}

func TestPlaceRejectsUnknownPaymentMethod(t *testing.T) {
	s := newTestService(t)
	basket := cart.New()
	basket.AddItem(seedProduct(t, s, 1000), 1)

	_, err := s.Place(context.Background(), basket, testAddress(), "PayPal", nil)
	require.ErrorIs(t, err, ErrValidation)
}

func TestPlaceUnknownWilayaShipsFree(t *testing.T) {
	s := newTestService(t)
	basket := cart.New()
	basket.AddItem(seedProduct(t, s, 1000), 1)

	addr := testAddress()
	addr.Wilaya = "Atlantis"
	o, err := s.Place(context.Background(), basket, addr, models.PaymentBankTransfer, nil)
	require.NoError(t, err)
	require.Equal(t, int64(0), o.ShippingPrice)
	require.Equal(t, int64(1000), o.TotalPrice)
}

func TestOrderSnapshotSurvivesProductEdits(t *testing.T) {
	s := newTestService(t)
	p := seedProduct(t, s, 1000)

	basket := cart.New()
	basket.AddItem(p, 2)
	o, err := s.Place(context.Background(), basket, testAddress(), models.PaymentCOD, nil)
	require.NoError(t, err)

	// Rewrite the live product after the order exists.
	p.Price = 9999
	p.Name = models.LocalizedText{"en": "Renamed"}
	require.NoError(t, s.DB.Save(p).Error)

	got, err := s.Get(context.Background(), o.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1000), got.Items[0].Price)
	require.Equal(t, "Part", got.Items[0].Name["en"])
	require.Equal(t, "Pièce", got.Items[0].Name["fr"])
	require.Equal(t, int64(2000), got.ItemsPrice)
}

func TestAcceptFromPending(t *testing.T) {
	s := newTestService(t)
	o := placeTestOrder(t, s)

	got, err := s.Accept(context.Background(), o.ID)
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusAccepted, got.Status)
}

func TestAcceptTwiceFails(t *testing.T) {
	s := newTestService(t)
	o := placeTestOrder(t, s)

	_, err := s.Accept(context.Background(), o.ID)
	require.NoError(t, err)

	_, err = s.Accept(context.Background(), o.ID)
	var ste *StateTransitionError
	require.ErrorAs(t, err, &ste)
	require.Equal(t, models.OrderStatusAccepted, ste.From)
	require.Equal(t, models.OrderStatusAccepted, ste.To)
}

func TestMarkDeliveredRequiresAcceptance(t *testing.T) {
	s := newTestService(t)
	o := placeTestOrder(t, s)

	_, err := s.MarkDelivered(context.Background(), o.ID)
	var ste *StateTransitionError
	require.ErrorAs(t, err, &ste)
	require.Equal(t, models.OrderStatusPending, ste.From)
	require.Equal(t, models.OrderStatusDelivered, ste.To)
}

func TestAcceptThenDeliver(t *testing.T) {
	s := newTestService(t)
	o := placeTestOrder(t, s)

	_, err := s.Accept(context.Background(), o.ID)
	require.NoError(t, err)

	got, err := s.MarkDelivered(context.Background(), o.ID)
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusDelivered, got.Status)
	require.True(t, got.IsDelivered)
	require.NotNil(t, got.DeliveredAt)
}

func TestDeclineFromPendingAndAccepted(t *testing.T) {
	s := newTestService(t)

	o1 := placeTestOrder(t, s)
	got, err := s.Decline(context.Background(), o1.ID)
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusCancelled, got.Status)

	o2 := placeTestOrder(t, s)
	_, err = s.Accept(context.Background(), o2.ID)
	require.NoError(t, err)
	got, err = s.Decline(context.Background(), o2.ID)
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusCancelled, got.Status)
}

func TestTerminalStatesAreAbsorbing(t *testing.T) {
	s := newTestService(t)

	o := placeTestOrder(t, s)
	_, err := s.Accept(context.Background(), o.ID)
	require.NoError(t, err)
	_, err = s.MarkDelivered(context.Background(), o.ID)
	require.NoError(t, err)

	var ste *StateTransitionError
	_, err = s.Accept(context.Background(), o.ID)
	require.ErrorAs(t, err, &ste)
	_, err = s.Decline(context.Background(), o.ID)
	require.ErrorAs(t, err, &ste)
	_, err = s.MarkDelivered(context.Background(), o.ID)
	require.ErrorAs(t, err, &ste)

	cancelled := placeTestOrder(t, s)
	_, err = s.Decline(context.Background(), cancelled.ID)
	require.NoError(t, err)
	_, err = s.Accept(context.Background(), cancelled.ID)
	require.ErrorAs(t, err, &ste)
	require.Equal(t, models.OrderStatusCancelled, ste.From)
}

func TestMarkPaid(t *testing.T) {
	s := newTestService(t)
	o := placeTestOrder(t, s)

	got, err := s.MarkPaid(context.Background(), o.ID)
	require.NoError(t, err)
	require.True(t, got.IsPaid)
	require.NotNil(t, got.PaidAt)
	firstPaidAt := *got.PaidAt

	// Idempotent: the timestamp is written once.
	got, err = s.MarkPaid(context.Background(), o.ID)
	require.NoError(t, err)
	require.Equal(t, firstPaidAt, *got.PaidAt)
}

func TestMarkPaidConcurrentPaymentWins(t *testing.T) {
	s := newTestService(t)
	sqlDB, err := s.DB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	o := placeTestOrder(t, s)

	// Flip the paid flag right before the guarded update runs, as a second
	// admin finishing MarkPaid first would.
	raced := false
	now := time.Now().UTC()
	require.NoError(t, s.DB.Callback().Update().Before("gorm:update").Register("concurrent_payment", func(tx *gorm.DB) {
		if raced {
			return
		}
		raced = true
		s.DB.Model(&models.Order{}).
			Where("id = ?", o.ID).
			UpdateColumns(map[string]any{"is_paid": true, "paid_at": &now})
	}))

	got, err := s.MarkPaid(context.Background(), o.ID)
	require.NoError(t, err)
	require.True(t, raced)
	require.True(t, got.IsPaid)
	require.NotNil(t, got.PaidAt)
}

func TestMarkPaidRejectsCancelled(t *testing.T) {
	s := newTestService(t)
	o := placeTestOrder(t, s)
	_, err := s.Decline(context.Background(), o.ID)
	require.NoError(t, err)

	_, err = s.MarkPaid(context.Background(), o.ID)
	var ste *StateTransitionError
	require.ErrorAs(t, err, &ste)
}

func TestGetMissingOrder(t *testing.T) {
	s := newTestService(t)
	_, err := s.Get(context.Background(), 42)
	require.ErrorIs(t, err, ErrNotFound)
}
