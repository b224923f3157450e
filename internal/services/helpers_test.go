// internal/services/helpers_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/marketloop/recommendation-service/internal/config"
	"github.com/marketloop/recommendation-service/internal/database"
	"github.com/marketloop/recommendation-service/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.RunMigrations(db))
	return db
}

func testRecommendationConfig() config.RecommendationConfig {
	return config.RecommendationConfig{
		DefaultLimit:    10,
		MaxLimit:        50,
		ViewHistoryDays: 30,
		TopCategories:   5,
		CategoryWeight:  10,
	}
}

func uintPtr(v uint) *uint {
	return &v
}

func seedCategory(t *testing.T, db *gorm.DB, id uint, name string) {
	t.Helper()
	require.NoError(t, db.Create(&models.Category{ID: id, Name: name}).Error)
}

func seedProduct(t *testing.T, db *gorm.DB, p models.Product) {
	t.Helper()
	// Select("*") writes zero-valued fields too, so IsActive=false is not
	// replaced by the column default on insert.
	// GORM substitutes the column default for a zero-valued bool even with
	// Select("*") (and backfills the struct field), so capture the intended
	// value first and force IsActive=false explicitly after the insert.
	isActive := p.IsActive
	require.NoError(t, db.Select("*").Create(&p).Error)
	if !isActive {
		require.NoError(t, db.Model(&models.Product{}).Where("id = ?", p.ID).UpdateColumn("is_active", false).Error)
	}
}

func seedView(t *testing.T, db *gorm.DB, userID string, productID uint, count int64, lastViewed time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&models.ProductView{
		UserID:       userID,
		ProductID:    productID,
		ViewCount:    count,
		LastViewedAt: lastViewed,
	}).Error)
}
