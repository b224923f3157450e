// internal/models/view_event.go
package models

import (
	"time"
)

// ProductView accumulates view events per (user, product) pair. A pair has
// at most one row; repeat views increment ViewCount and refresh
// LastViewedAt in place. Written only through services.ViewService.
type ProductView struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       string    `json:"user_id" gorm:"size:128;not null;uniqueIndex:idx_product_views_user_product"`
	ProductID    uint      `json:"product_id" gorm:"not null;uniqueIndex:idx_product_views_user_product;index"`
	ViewCount    int64     `json:"view_count" gorm:"not null;default:1"`
	LastViewedAt time.Time `json:"last_viewed_at" gorm:"not null;index"`

	// Relationships
	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

func (ProductView) TableName() string {
	return "product_views"
}
