package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

const (
	FuelEssence = "Essence"
	FuelDiesel  = "Diesel"
)

const (
	PaymentCOD          = "COD"
	PaymentBankTransfer = "BankTransfer"
)

const (
	OrderStatusPending   = "Pending"
	OrderStatusAccepted  = "Accepted"
	OrderStatusDelivered = "Delivered"
	OrderStatusCancelled = "Cancelled"
)

// LocalizedText maps a language code (en, fr, ar) to a translation.
// The "en" entry is always populated and serves as the fallback.
type LocalizedText map[string]string

// Get returns the translation for lang, falling back to English.
func (t LocalizedText) Get(lang string) string {
	if v, ok := t[lang]; ok && v != "" {
		return v
	}
	return t["en"]
}

func (t LocalizedText) Value() (driver.Value, error) {
	if t == nil {
		t = LocalizedText{}
	}
	return json.Marshal(t)
}

func (t *LocalizedText) Scan(src any) error {
	return scanJSON(src, t)
}

func (LocalizedText) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "JSONB"
	}
	return "TEXT"
}

// CompatEntry declares one vehicle configuration a part fits.
type CompatEntry struct {
	Year  int    `json:"year"`
	Model string `json:"model"`
	Make  string `json:"make"`
}

type CompatList []CompatEntry

func (l CompatList) Value() (driver.Value, error) {
	if l == nil {
		l = CompatList{}
	}
	return json.Marshal(l)
}

func (l *CompatList) Scan(src any) error {
	return scanJSON(src, l)
}

func (CompatList) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "JSONB"
	}
	return "TEXT"
}

type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(src any) error {
	return scanJSON(src, l)
}

func (StringList) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "JSONB"
	}
	return "TEXT"
}

func scanJSON(src, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("cannot scan %T into %T", src, dst)
	}
}

type Product struct {
	ID            uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	OEMNumber     string        `gorm:"column:oem_number;uniqueIndex;not null" json:"oem_number"`
	SKU           string        `gorm:"column:sku;index" json:"sku"`
	Name          LocalizedText `gorm:"not null" json:"name"`
	Description   LocalizedText `json:"description"`
	Category      string        `gorm:"index;not null" json:"category"`
	Price         int64         `gorm:"not null;check:price >= 0" json:"price"`
	Stock         uint          `gorm:"default:0" json:"stock"`
	Compatibility CompatList    `json:"compatibility"`
	Images        StringList    `json:"images"`
	FuelType      string        `gorm:"default:Essence" json:"fuel_type"`
	IsFeatured    bool          `gorm:"index;default:false" json:"is_featured"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// PrimaryImage is the first image URL, shown on cards and copied into
// order-line snapshots.
func (p *Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

type Category struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type CarModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// OrderItem is a denormalized snapshot of a product taken at order time.
// Name, image and price are copied, never joined back to the live product,
// so catalog edits do not rewrite order history.
type OrderItem struct {
	ID        uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint          `gorm:"index;not null" json:"order_id"`
	ProductID uint          `gorm:"not null" json:"product_id"`
	Name      LocalizedText `gorm:"not null" json:"name"`
	Image     string        `json:"image"`
	Qty       uint          `gorm:"not null;check:qty > 0" json:"qty"`
	Price     int64         `gorm:"not null" json:"price"`
}

type ShippingAddress struct {
	FullName   string `json:"full_name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
	Wilaya     string `json:"wilaya"`
}

type Order struct {
	ID     uint  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID *uint `gorm:"index" json:"user_id,omitempty"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`

	ShipFullName   string `gorm:"not null" json:"-"`
	ShipAddress    string `gorm:"not null" json:"-"`
	ShipCity       string `gorm:"not null" json:"-"`
	ShipPostalCode string `gorm:"not null" json:"-"`
	ShipCountry    string `gorm:"not null" json:"-"`
	ShipPhone      string `gorm:"not null" json:"-"`
	ShipWilaya     string `gorm:"not null" json:"-"`

	PaymentMethod string `gorm:"not null" json:"payment_method"`

	ItemsPrice    int64 `gorm:"not null" json:"items_price"`
	ShippingPrice int64 `gorm:"not null" json:"shipping_price"`
	TaxPrice      int64 `gorm:"not null" json:"tax_price"`
	TotalPrice    int64 `gorm:"not null" json:"total_price"`

	Status string `gorm:"not null;default:Pending" json:"status"`

	IsPaid      bool       `gorm:"not null;default:false" json:"is_paid"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	IsDelivered bool       `gorm:"not null;default:false" json:"is_delivered"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (o *Order) ShippingAddress() ShippingAddress {
	return ShippingAddress{
		FullName:   o.ShipFullName,
		Address:    o.ShipAddress,
		City:       o.ShipCity,
		PostalCode: o.ShipPostalCode,
		Country:    o.ShipCountry,
		Phone:      o.ShipPhone,
		Wilaya:     o.ShipWilaya,
	}
}

// MarshalJSON inlines the shipping address as a nested object.
func (o Order) MarshalJSON() ([]byte, error) {
	type alias Order
	return json.Marshal(struct {
		alias
		ShippingAddress ShippingAddress `json:"shipping_address"`
	}{alias(o), o.ShippingAddress()})
}

type Message struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null" json:"email"`
	Phone     string    `json:"phone"`
	Body      string    `gorm:"column:message;not null" json:"message"`
	Read      bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
