// internal/models/product.go
package models

import (
	"time"
)

// Product is owned by the catalog service; this service only reads it.
type Product struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Price       int64     `json:"price" gorm:"not null"` // smallest currency unit
	CategoryID  *uint     `json:"category_id" gorm:"index"`
	IsActive    bool      `json:"is_active" gorm:"default:true;index"`
	Stock       int       `json:"stock" gorm:"default:0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	Category *Category      `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Images   []ProductImage `json:"images,omitempty" gorm:"foreignKey:ProductID"`
}

type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	CreatedAt time.Time `json:"created_at"`
}

type ProductImage struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	ProductID    uint      `json:"product_id" gorm:"not null;index"`
	ImageURL     string    `json:"image_url" gorm:"size:1024;not null"`
	IsMain       bool      `json:"is_main" gorm:"default:false"`
	DisplayOrder int       `json:"display_order" gorm:"default:0"`
	CreatedAt    time.Time `json:"created_at"`
}
