package services_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mechstore/go-mechstore/app/models"
	"github.com/mechstore/go-mechstore/app/models/migrations"
)

// newTestDB opens a private in-memory sqlite database. The pool is pinned to
// one connection so every query and transaction sees the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, migrations.AutoMigrate(db))
	return db
}

func seedCategory(t *testing.T, db *gorm.DB, name, slug string, parentID *uint) *models.Category {
	t.Helper()
	c := &models.Category{Name: name, Slug: slug, ParentID: parentID}
	require.NoError(t, db.Create(c).Error)
	return c
}

func seedBrand(t *testing.T, db *gorm.DB, name string) *models.Brand {
	t.Helper()
	b := &models.Brand{Name: name}
	require.NoError(t, db.Create(b).Error)
	return b
}

func seedProduct(t *testing.T, db *gorm.DB, name, slug string, categoryID, brandID uint, price *decimal.Decimal) *models.Product {
	t.Helper()
	p := &models.Product{
		Name:       name,
		Sku:        "SKU-" + slug,
		Slug:       slug,
		Price:      price,
		CategoryID: categoryID,
		BrandID:    brandID,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func ptrUint(v uint) *uint { return &v }
