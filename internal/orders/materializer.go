package orders

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/fordpartsdz/shop/internal/cart"
	"github.com/fordpartsdz/shop/internal/models"
	"github.com/fordpartsdz/shop/internal/shipping"
)

var (
	ErrValidation = errors.New("validation") // 400
	ErrNotFound   = errors.New("not found")  // 404
	ErrEmptyCart  = errors.New("cart is empty")
)

// StateTransitionError reports an illegal order-status transition. It always
// names both ends so the admin UI can show what was attempted.
type StateTransitionError struct {
	From string
	To   string
}

func (e *StateTransitionError) Error() string {
	return fmt.Sprintf("illegal order transition %s -> %s", e.From, e.To)
}

type Service struct {
	DB            *gorm.DB
	ShippingPrice shipping.PriceFunc
}

// Place materializes a cart into a persisted order. Every line is written
// from the cart's add-time snapshot, so the order is immune to later catalog
// edits. The order row and all item rows go in one transaction; on any error
// nothing is written and the caller keeps the cart as it was.
func (s *Service) Place(ctx context.Context, c *cart.Cart, addr models.ShippingAddress, paymentMethod string, userID *uint) (*models.Order, error) {
	if c == nil || c.IsEmpty() {
		return nil, ErrEmptyCart
	}
	if err := validateAddress(addr); err != nil {
		return nil, err
	}
	if paymentMethod != models.PaymentCOD && paymentMethod != models.PaymentBankTransfer {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrValidation, paymentMethod)
	}

	lines := c.Lines()
	items := make([]models.OrderItem, 0, len(lines))
	var itemsPrice int64
	for _, line := range lines {
		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Image:     line.Image,
			Qty:       line.Qty,
			Price:     line.Price,
		})
		itemsPrice += int64(line.Qty) * line.Price
	}

	shippingPrice := int64(0)
	if s.ShippingPrice != nil {
		shippingPrice = s.ShippingPrice(addr.Wilaya)
	}
	const taxPrice = 0

	order := &models.Order{
		UserID:         userID,
		Items:          items,
		ShipFullName:   addr.FullName,
		ShipAddress:    addr.Address,
		ShipCity:       addr.City,
		ShipPostalCode: addr.PostalCode,
		ShipCountry:    addr.Country,
		ShipPhone:      addr.Phone,
		ShipWilaya:     addr.Wilaya,
		PaymentMethod:  paymentMethod,
		ItemsPrice:     itemsPrice,
		ShippingPrice:  shippingPrice,
		TaxPrice:       taxPrice,
		TotalPrice:     itemsPrice + shippingPrice + taxPrice,
		Status:         models.OrderStatusPending,
	}

	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
	if txErr != nil {
		return nil, txErr
	}

	return order, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*models.Order, error) {
	var o models.Order
	if err := s.DB.WithContext(ctx).Preload("Items").First(&o, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, id)
		}
		return nil, err
	}
	return &o, nil
}

// List returns orders newest-first for the admin back office.
func (s *Service) List(ctx context.Context, limit, offset int) ([]models.Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var out []models.Order
	if err := s.DB.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func validateAddress(addr models.ShippingAddress) error {
	fields := []struct {
		name  string
		value string
	}{
		{"full_name", addr.FullName},
		{"address", addr.Address},
		{"city", addr.City},
		{"postal_code", addr.PostalCode},
		{"country", addr.Country},
		{"phone", addr.Phone},
		{"wilaya", addr.Wilaya},
	}
	for _, f := range fields {
		if f.value == "" {
			return fmt.Errorf("%w: shipping %s required", ErrValidation, f.name)
		}
	}
	return nil
}
