// Package refdata manages the admin-maintained reference lists that feed the
// storefront filter dropdowns: part categories and Ford car models. The lists
// are vocabularies, not foreign keys; products keep free-form category and
// compatibility strings.
package refdata

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

type Service struct {
	DB *gorm.DB
}

func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	if err := s.DB.WithContext(ctx).Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	var n int64
	if err := s.DB.WithContext(ctx).Model(&models.Category{}).Where("name = ?", name).Count(&n).Error; err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, fmt.Errorf("%w: category %q", ErrDuplicate, name)
	}
	c := &models.Category{Name: name}
	if err := s.DB.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) DeleteCategory(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.Category{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: category %d", ErrNotFound, id)
	}
	return nil
}

func (s *Service) DeleteCategories(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: no ids provided", ErrValidation)
	}
	return s.DB.WithContext(ctx).Delete(&models.Category{}, ids).Error
}

func (s *Service) ListCarModels(ctx context.Context) ([]models.CarModel, error) {
	var out []models.CarModel
	if err := s.DB.WithContext(ctx).Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) CreateCarModel(ctx context.Context, name string) (*models.CarModel, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	var n int64
	if err := s.DB.WithContext(ctx).Model(&models.CarModel{}).Where("name = ?", name).Count(&n).Error; err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, fmt.Errorf("%w: car model %q", ErrDuplicate, name)
	}
	m := &models.CarModel{Name: name}
	if err := s.DB.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) DeleteCarModel(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.CarModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: car model %d", ErrNotFound, id)
	}
	return nil
}

func (s *Service) DeleteCarModels(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: no ids provided", ErrValidation)
	}
	return s.DB.WithContext(ctx).Delete(&models.CarModel{}, ids).Error
}
