// internal/services/view_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/marketloop/recommendation-service/internal/models"
)

// ViewService is the single writer of the product_views table.
type ViewService struct {
	db *gorm.DB
}

func NewViewService(db *gorm.DB) *ViewService {
	return &ViewService{db: db}
}

// RecordView upserts the view event for (userID, productID): a first view
// inserts a row with view_count=1, every later view increments the count and
// refreshes last_viewed_at. The conflict target is the unique composite
// index, so concurrent views of the same pair cannot race into duplicate
// rows or lost increments. Events are never deleted.
func (s *ViewService) RecordView(ctx context.Context, userID string, productID uint) (bool, error) {
	now := time.Now().UTC()

	view := models.ProductView{
		UserID:       userID,
		ProductID:    productID,
		ViewCount:    1,
		LastViewedAt: now,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"view_count":     gorm.Expr("product_views.view_count + 1"),
			"last_viewed_at": now,
		}),
	}).Create(&view).Error

	if err != nil {
		return false, fmt.Errorf("failed to record view: %w", err)
	}

	return true, nil
}
