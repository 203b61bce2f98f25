package models

import "time"

// ProductInquiry is an append-only "ask about this product" record. It is
// never updated after creation.
type ProductInquiry struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ProductID     uint      `gorm:"not null;index" json:"product_id"`
	CustomerName  string    `gorm:"size:100;not null" json:"customer_name"`
	CustomerEmail string    `gorm:"size:140;not null" json:"customer_email"`
	CustomerPhone string    `gorm:"size:50;not null" json:"customer_phone"`
	Message       string    `gorm:"type:text" json:"message"`
	CreatedAt     time.Time `json:"created_at"`
}
