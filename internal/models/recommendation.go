// internal/models/recommendation.go
package models

// ScoredRecommendation is a transient, per-query product snapshot with its
// relevance score. It is never persisted; rows coming back from the ranking
// queries are mapped field by field into this type at the store boundary.
type ScoredRecommendation struct {
	ID         uint    `json:"id"`
	Name       string  `json:"name"`
	Price      int64   `json:"price"`
	ImageURL   *string `json:"image_url"`
	CategoryID *uint   `json:"category_id"`
	Score      float64 `json:"score"`
}

// Recommendation sources reported to callers.
const (
	SourceCategory         = "category"
	SourcePopular          = "popular"
	SourceSimilar          = "similar"
	SourceFrequentlyViewed = "frequently_viewed"
)
