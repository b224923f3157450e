// internal/services/recommendation_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/marketloop/recommendation-service/internal/config"
	"github.com/marketloop/recommendation-service/internal/models"
)

type RecommendationService struct {
	db  *gorm.DB
	cfg config.RecommendationConfig
}

func NewRecommendationService(db *gorm.DB, cfg config.RecommendationConfig) *RecommendationService {
	return &RecommendationService{
		db:  db,
		cfg: cfg,
	}
}

// recommendationRow is the fixed shape every ranking query scans into.
// Untyped rows never leave this package.
type recommendationRow struct {
	ID         uint
	Name       string
	Price      int64
	ImageURL   *string
	CategoryID *uint
	Score      float64
}

// mainImageSelect resolves a product's display image: the image flagged as
// main, else the first by display order.
const mainImageSelect = `COALESCE(
		(SELECT image_url FROM product_images WHERE product_id = p.id AND is_main = ? LIMIT 1),
		(SELECT image_url FROM product_images WHERE product_id = p.id ORDER BY display_order ASC LIMIT 1)
	)`

const categoryBasedQuery = `
	WITH user_categories AS (
		SELECT p.category_id AS category_id, SUM(pv.view_count) AS view_weight
		FROM product_views pv
		JOIN products p ON pv.product_id = p.id
		WHERE pv.user_id = ?
		  AND pv.last_viewed_at > ?
		  AND p.category_id IS NOT NULL
		GROUP BY p.category_id
		ORDER BY view_weight DESC
		LIMIT ?
	)
	SELECT
		p.id,
		p.name,
		p.price,
		` + mainImageSelect + ` AS image_url,
		p.category_id,
		(uc.view_weight * ? + COALESCE(
			(SELECT SUM(view_count) FROM product_views WHERE product_id = p.id), 0
		)) AS score
	FROM products p
	JOIN user_categories uc ON p.category_id = uc.category_id
	WHERE p.is_active = ?
	  AND p.stock > 0
	  AND p.id NOT IN (SELECT product_id FROM product_views WHERE user_id = ?)
	ORDER BY score DESC
	LIMIT ?`

const popularQuery = `
	SELECT
		p.id,
		p.name,
		p.price,
		` + mainImageSelect + ` AS image_url,
		p.category_id,
		COALESCE(SUM(pv.view_count), 0) AS score
	FROM products p
	LEFT JOIN product_views pv ON p.id = pv.product_id
	WHERE p.is_active = ?
	  AND p.stock > 0
	GROUP BY p.id
	ORDER BY score DESC, p.created_at DESC
	LIMIT ?`

const similarQuery = `
	WITH target_product AS (
		SELECT category_id FROM products WHERE id = ?
	)
	SELECT
		p.id,
		p.name,
		p.price,
		` + mainImageSelect + ` AS image_url,
		p.category_id,
		COALESCE(
			(SELECT SUM(view_count) FROM product_views WHERE product_id = p.id), 0
		) AS score
	FROM products p, target_product tp
	WHERE p.category_id = tp.category_id
	  AND p.id != ?
	  AND p.is_active = ?
	  AND p.stock > 0
	ORDER BY score DESC
	LIMIT ?`

const frequentlyViewedQuery = `
	SELECT
		p.id,
		p.name,
		p.price,
		` + mainImageSelect + ` AS image_url,
		p.category_id,
		pv.view_count AS score
	FROM product_views pv
	JOIN products p ON pv.product_id = p.id
	WHERE pv.user_id = ?
	  AND pv.last_viewed_at > ?
	  AND p.is_active = ?
	  AND p.stock > 0
	ORDER BY pv.view_count DESC, pv.last_viewed_at DESC
	LIMIT ?`

// GetRecommendationsForUser returns personalized recommendations and the
// strategy that produced them: "category" when the user's recent view
// history yields candidates, otherwise the "popular" fallback. An empty
// catalog returns an empty list with source "popular", not an error.
func (s *RecommendationService) GetRecommendationsForUser(ctx context.Context, userID string, limit int) ([]models.ScoredRecommendation, string, error) {
	recommendations, err := s.getCategoryBasedRecommendations(ctx, userID, limit)
	if err != nil {
		return nil, "", err
	}

	if len(recommendations) > 0 {
		return recommendations, models.SourceCategory, nil
	}

	recommendations, err = s.GetPopularProducts(ctx, limit)
	if err != nil {
		return nil, "", err
	}

	return recommendations, models.SourcePopular, nil
}

// getCategoryBasedRecommendations derives the user's top affinity categories
// from view events inside the history window, then ranks unseen active
// in-stock products in those categories. Score blends category affinity
// (dominant, times CategoryWeight) with the product's lifetime view count.
// Products the user has ever viewed are excluded regardless of the window.
func (s *RecommendationService) getCategoryBasedRecommendations(ctx context.Context, userID string, limit int) ([]models.ScoredRecommendation, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -s.cfg.ViewHistoryDays)

	var rows []recommendationRow
	err := s.db.WithContext(ctx).Raw(categoryBasedQuery,
		userID, cutoff, s.cfg.TopCategories,
		true, // main image
		s.cfg.CategoryWeight,
		true, // active products
		userID, limit,
	).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch category recommendations: %w", err)
	}

	return mapRows(rows), nil
}

// GetPopularProducts ranks every active, in-stock product by lifetime view
// count across all users, newest products first on ties. Well-defined even
// for a brand-new user with no history.
func (s *RecommendationService) GetPopularProducts(ctx context.Context, limit int) ([]models.ScoredRecommendation, error) {
	var rows []recommendationRow
	err := s.db.WithContext(ctx).Raw(popularQuery,
		true, // main image
		true, // active products
		limit,
	).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch popular products: %w", err)
	}

	return mapRows(rows), nil
}

// GetSimilarProducts ranks other active, in-stock products sharing the
// anchor's category by lifetime view count. An unknown anchor or one without
// a category yields an empty result, not an error.
func (s *RecommendationService) GetSimilarProducts(ctx context.Context, productID uint, limit int) ([]models.ScoredRecommendation, error) {
	var rows []recommendationRow
	err := s.db.WithContext(ctx).Raw(similarQuery,
		productID,
		true, // main image
		productID,
		true, // active products
		limit,
	).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch similar products: %w", err)
	}

	return mapRows(rows), nil
}

// GetFrequentlyViewed returns the user's own most-viewed active, in-stock
// products within the last `days` days, scored by the user's view count.
func (s *RecommendationService) GetFrequentlyViewed(ctx context.Context, userID string, limit, days int) ([]models.ScoredRecommendation, error) {
	if days <= 0 {
		days = s.cfg.ViewHistoryDays
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	var rows []recommendationRow
	err := s.db.WithContext(ctx).Raw(frequentlyViewedQuery,
		true, // main image
		userID, cutoff,
		true, // active products
		limit,
	).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch frequently viewed products: %w", err)
	}

	return mapRows(rows), nil
}

func mapRows(rows []recommendationRow) []models.ScoredRecommendation {
	recommendations := make([]models.ScoredRecommendation, 0, len(rows))
	for _, row := range rows {
		recommendations = append(recommendations, models.ScoredRecommendation{
			ID:         row.ID,
			Name:       row.Name,
			Price:      row.Price,
			ImageURL:   row.ImageURL,
			CategoryID: row.CategoryID,
			Score:      row.Score,
		})
	}
	return recommendations
}
