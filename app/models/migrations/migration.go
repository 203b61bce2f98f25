package migrations

import (
	"github.com/mechstore/go-mechstore/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Category{},
		&models.Brand{},
		&models.Product{},
		&models.ProductSpec{},
		&models.Order{},
		&models.OrderItem{},
		&models.ProductInquiry{},
	)
}
