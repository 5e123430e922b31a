package catalog

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/fordpartsdz/shop/internal/models"
)

var (
	ErrValidation = errors.New("validation") // 400
	ErrNotFound   = errors.New("not found")  // 404
	ErrDuplicate  = errors.New("duplicate")  // 409
)

// PageSize is the fixed storefront page size.
const PageSize = 12

type Page struct {
	Products []models.Product `json:"products"`
	Page     int              `json:"page"`
	Pages    int              `json:"pages"`
	Count    int64            `json:"count"`
}

type Service struct {
	DB *gorm.DB
}

// Query runs the catalog filter and returns page (1-indexed) of the results.
// Exact-match fields narrow the scan in SQL; keyword and compatibility rules
// live in Filter.Matches because compatibility tuples are stored as JSON.
// Ordering is id ASC so pages are stable.
func (s *Service) Query(ctx context.Context, f Filter, page int) (*Page, error) {
	if page < 1 {
		page = 1
	}

	q := s.DB.WithContext(ctx).Model(&models.Product{}).Order("id ASC")
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.FuelType != "" {
		q = q.Where("fuel_type = ?", f.FuelType)
	}

	var candidates []models.Product
	if err := q.Find(&candidates).Error; err != nil {
		return nil, err
	}

	matched := candidates[:0]
	for i := range candidates {
		if f.Matches(&candidates[i]) {
			matched = append(matched, candidates[i])
		}
	}

	count := int64(len(matched))
	pages := int((count + PageSize - 1) / PageSize)

	start := (page - 1) * PageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := start + PageSize
	if end > len(matched) {
		end = len(matched)
	}

	items := make([]models.Product, end-start)
	copy(items, matched[start:end])

	return &Page{Products: items, Page: page, Pages: pages, Count: count}, nil
}

// Featured lists up to limit featured products for the home page.
func (s *Service) Featured(ctx context.Context, limit int) ([]models.Product, error) {
	if limit <= 0 || limit > 24 {
		limit = 8
	}
	var items []models.Product
	if err := s.DB.WithContext(ctx).
		Where("is_featured = ?", true).
		Order("id ASC").
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	if err := s.DB.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return nil, err
	}
	return &p, nil
}

func (s *Service) Create(ctx context.Context, p *models.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	if err := s.checkUnique(ctx, p, 0); err != nil {
		return err
	}
	for i := range p.Compatibility {
		if p.Compatibility[i].Make == "" {
			p.Compatibility[i].Make = "Ford"
		}
	}
	if p.FuelType == "" {
		p.FuelType = models.FuelEssence
	}
	return s.DB.WithContext(ctx).Create(p).Error
}

// UpdateRequest carries a partial product update; nil fields keep their
// current value.
type UpdateRequest struct {
	OEMNumber     *string              `json:"oem_number"`
	SKU           *string              `json:"sku"`
	Name          models.LocalizedText `json:"name"`
	Description   models.LocalizedText `json:"description"`
	Category      *string              `json:"category"`
	Price         *int64               `json:"price"`
	Stock         *uint                `json:"stock"`
	Compatibility *models.CompatList   `json:"compatibility"`
	Images        *models.StringList   `json:"images"`
	FuelType      *string              `json:"fuel_type"`
	IsFeatured    *bool                `json:"is_featured"`
}

func (s *Service) Update(ctx context.Context, id uint, req UpdateRequest) (*models.Product, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.OEMNumber != nil {
		p.OEMNumber = *req.OEMNumber
	}
	if req.SKU != nil {
		p.SKU = *req.SKU
	}
	if req.Name != nil {
		p.Name = req.Name
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.Compatibility != nil {
		p.Compatibility = *req.Compatibility
		for i := range p.Compatibility {
			if p.Compatibility[i].Make == "" {
				p.Compatibility[i].Make = "Ford"
			}
		}
	}
	if req.Images != nil {
		p.Images = *req.Images
	}
	if req.FuelType != nil {
		p.FuelType = *req.FuelType
	}
	if req.IsFeatured != nil {
		p.IsFeatured = *req.IsFeatured
	}

	if err := validateProduct(p); err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, p, id); err != nil {
		return nil, err
	}

	if err := s.DB.WithContext(ctx).Save(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: product %d", ErrNotFound, id)
	}
	return nil
}

func validateProduct(p *models.Product) error {
	if p.OEMNumber == "" {
		return fmt.Errorf("%w: oem_number required", ErrValidation)
	}
	if p.Name["en"] == "" {
		return fmt.Errorf("%w: name.en required", ErrValidation)
	}
	if p.Description["en"] == "" {
		return fmt.Errorf("%w: description.en required", ErrValidation)
	}
	if p.Category == "" {
		return fmt.Errorf("%w: category required", ErrValidation)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	if p.FuelType != "" && p.FuelType != models.FuelEssence && p.FuelType != models.FuelDiesel {
		return fmt.Errorf("%w: unknown fuel type %q", ErrValidation, p.FuelType)
	}
	return nil
}

// checkUnique enforces oem_number/sku uniqueness ahead of the DB constraint
// so the caller gets a typed error instead of a driver-specific one.
func (s *Service) checkUnique(ctx context.Context, p *models.Product, selfID uint) error {
	var n int64
	q := s.DB.WithContext(ctx).Model(&models.Product{}).Where("oem_number = ?", p.OEMNumber)
	if selfID != 0 {
		q = q.Where("id <> ?", selfID)
	}
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: oem_number %q", ErrDuplicate, p.OEMNumber)
	}

	if p.SKU == "" {
		return nil
	}
	n = 0
	q = s.DB.WithContext(ctx).Model(&models.Product{}).Where("sku = ?", p.SKU)
	if selfID != 0 {
		q = q.Where("id <> ?", selfID)
	}
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: sku %q", ErrDuplicate, p.SKU)
	}
	return nil
}
