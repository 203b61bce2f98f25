package seeders

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mechstore/go-mechstore/app/models"
)

func dec(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

// DBSeed loads a small demo catalog: two root categories, one child, two
// brands and a handful of priced products. Idempotent enough for dev use
// (skips when categories already exist).
func DBSeed(db *gorm.DB) error {
	var existing int64
	if err := db.Model(&models.Category{}).Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}

	cutting := models.Category{Name: "Cutting Tools", Slug: "cutting-tools", Description: "Drills, end mills and taps"}
	measuring := models.Category{Name: "Measuring Tools", Slug: "measuring-tools", Description: "Calipers and micrometers"}
	if err := db.Create(&cutting).Error; err != nil {
		return err
	}
	if err := db.Create(&measuring).Error; err != nil {
		return err
	}
	endMills := models.Category{Name: "End Mills", Slug: "end-mills", ParentID: &cutting.ID}
	if err := db.Create(&endMills).Error; err != nil {
		return err
	}

	nachi := models.Brand{Name: "Nachi", Description: "Japanese cutting tools"}
	mitutoyo := models.Brand{Name: "Mitutoyo", Description: "Precision measuring instruments"}
	if err := db.Create(&nachi).Error; err != nil {
		return err
	}
	if err := db.Create(&mitutoyo).Error; err != nil {
		return err
	}

	products := []models.Product{
		{
			Name: "HSS Twist Drill 6mm", Sku: "NCH-TD-6", Slug: "hss-twist-drill-6mm",
			Price: dec("4.50"), CategoryID: cutting.ID, BrandID: nachi.ID,
			Specs: []models.ProductSpec{
				{Key: "Diameter", Value: "6 mm"},
				{Key: "Material", Value: "HSS"},
			},
		},
		{
			Name: "Carbide End Mill 10mm 4F", Sku: "NCH-EM-10-4F", Slug: "carbide-end-mill-10mm-4f",
			Price: dec("28.00"), OnSale: true, SalePrice: dec("23.90"),
			CategoryID: endMills.ID, BrandID: nachi.ID,
			Specs: []models.ProductSpec{
				{Key: "Diameter", Value: "10 mm"},
				{Key: "Flutes", Value: "4"},
				{Key: "Coating", Value: "TiAlN"},
			},
		},
		{
			Name: "Digital Caliper 150mm", Sku: "MIT-DC-150", Slug: "digital-caliper-150mm",
			Price: dec("89.00"), CategoryID: measuring.ID, BrandID: mitutoyo.ID,
			Specs: []models.ProductSpec{
				{Key: "Range", Value: "0-150 mm"},
				{Key: "Resolution", Value: "0.01 mm"},
			},
		},
		{
			// No list price: quote on request.
			Name: "Custom Gauge Block Set", Sku: "MIT-GB-SET", Slug: "custom-gauge-block-set",
			CategoryID: measuring.ID, BrandID: mitutoyo.ID,
		},
	}
	for i := range products {
		if err := db.Create(&products[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
