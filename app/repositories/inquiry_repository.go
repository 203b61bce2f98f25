package repositories

import (
	"context"

	"github.com/mechstore/go-mechstore/app/models"
	"gorm.io/gorm"
)

type InquiryRepository interface {
	Create(ctx context.Context, inquiry *models.ProductInquiry) error
	GetAll(ctx context.Context) ([]models.ProductInquiry, error)
}

type inquiryRepository struct {
	db *gorm.DB
}

func NewInquiryRepository(db *gorm.DB) InquiryRepository {
	return &inquiryRepository{db: db}
}

func (r *inquiryRepository) Create(ctx context.Context, inquiry *models.ProductInquiry) error {
	return r.db.WithContext(ctx).Create(inquiry).Error
}

func (r *inquiryRepository) GetAll(ctx context.Context) ([]models.ProductInquiry, error) {
	var inquiries []models.ProductInquiry
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&inquiries).Error
	if err != nil {
		return nil, err
	}
	return inquiries, nil
}
