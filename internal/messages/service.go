// Package messages is the contact-form inbox.
package messages

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
)

type Service struct {
	DB *gorm.DB
}

func (s *Service) Create(ctx context.Context, m *models.Message) error {
	if m.Name == "" {
		return fmt.Errorf("%w: name required", ErrValidation)
	}
	if m.Email == "" {
		return fmt.Errorf("%w: email required", ErrValidation)
	}
	if m.Body == "" {
		return fmt.Errorf("%w: message required", ErrValidation)
	}
	return s.DB.WithContext(ctx).Create(m).Error
}

// List returns the inbox newest-first.
func (s *Service) List(ctx context.Context) ([]models.Message, error) {
	var out []models.Message
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) MarkRead(ctx context.Context, id uint) (*models.Message, error) {
	var m models.Message
	if err := s.DB.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: message %d", ErrNotFound, id)
		}
		return nil, err
	}
	m.Read = true
	if err := s.DB.WithContext(ctx).Save(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.Message{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: message %d", ErrNotFound, id)
	}
	return nil
}
