package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	Name        string           `gorm:"size:255;not null;index" json:"name"`
	Sku         string           `gorm:"size:100;not null;uniqueIndex" json:"sku"`
	Slug        string           `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Description string           `gorm:"type:text" json:"description"`
	Price       *decimal.Decimal `gorm:"type:decimal(16,2)" json:"price"`
	InStock     bool             `gorm:"default:true" json:"in_stock"`
	ImageURL    string           `gorm:"size:255" json:"image_url"`
	OnSale      bool             `gorm:"default:false;index" json:"on_sale"`
	SalePrice   *decimal.Decimal `gorm:"type:decimal(16,2)" json:"sale_price"`
	CategoryID  uint             `gorm:"not null;index" json:"category_id"`
	Category    Category         `gorm:"foreignKey:CategoryID" json:"-"`
	BrandID     uint             `gorm:"not null;index" json:"brand_id"`
	Brand       Brand            `gorm:"foreignKey:BrandID" json:"-"`
	Specs       []ProductSpec    `gorm:"constraint:OnDelete:CASCADE" json:"specs"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// EffectivePrice is the unit price an order pays right now: the sale price
// while the product is on sale, the list price otherwise. Returns false when
// the product has no price at all ("contact for quote").
func (p *Product) EffectivePrice() (decimal.Decimal, bool) {
	if p.OnSale && p.SalePrice != nil {
		return *p.SalePrice, true
	}
	if p.Price == nil {
		return decimal.Zero, false
	}
	return *p.Price, true
}

// ProductSpec is one ordered key/value technical attribute, e.g.
// "Material" -> "HSS". Owned by its product and deleted with it.
type ProductSpec struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ProductID uint   `gorm:"not null;index" json:"product_id"`
	Key       string `gorm:"size:100;not null" json:"key"`
	Value     string `gorm:"size:255" json:"value"`
}
