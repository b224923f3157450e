// internal/handlers/recommendation_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/marketloop/recommendation-service/internal/config"
	"github.com/marketloop/recommendation-service/internal/database"
	"github.com/marketloop/recommendation-service/internal/models"
	"github.com/marketloop/recommendation-service/internal/router"
)

type RecommendationHandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

func (suite *RecommendationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	suite.Require().NoError(err)

	sqlDB, err := db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	suite.Require().NoError(database.RunMigrations(db))

	suite.db = db
	suite.router = router.Initialize(db, &config.Config{
		Environment: "test",
		Recommendation: config.RecommendationConfig{
			DefaultLimit:    10,
			MaxLimit:        50,
			ViewHistoryDays: 30,
			TopCategories:   5,
			CategoryWeight:  10,
		},
	})
}

func (suite *RecommendationHandlerTestSuite) seedCatalog() {
	now := time.Now().UTC()
	categoryID := uint(1)

	suite.Require().NoError(suite.db.Create(&models.Category{ID: categoryID, Name: "Electronics"}).Error)
	suite.Require().NoError(suite.db.Create(&models.Product{ID: 1, Name: "A", Price: 1000, CategoryID: &categoryID, IsActive: true, Stock: 5, CreatedAt: now.Add(-time.Hour)}).Error)
	suite.Require().NoError(suite.db.Create(&models.Product{ID: 2, Name: "B", Price: 2000, CategoryID: &categoryID, IsActive: true, Stock: 5, CreatedAt: now}).Error)
}

func (suite *RecommendationHandlerTestSuite) doRequest(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewBuffer(payload)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *RecommendationHandlerTestSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func (suite *RecommendationHandlerTestSuite) TestHealthEndpoint() {
	w := suite.doRequest(http.MethodGet, "/health", nil)
	suite.Equal(http.StatusOK, w.Code)

	response := suite.decode(w)
	suite.Equal("healthy", response["status"])
	suite.Equal("connected", response["database"])
}

func (suite *RecommendationHandlerTestSuite) TestRecordViewAndRecommend() {
	suite.seedCatalog()

	w := suite.doRequest(http.MethodPost, "/api/recommendations/views", map[string]interface{}{
		"user_id":    "u",
		"product_id": 1,
	})
	suite.Require().Equal(http.StatusOK, w.Code)

	response := suite.decode(w)
	suite.True(response["success"].(bool))
	data := response["data"].(map[string]interface{})
	suite.True(data["recorded"].(bool))

	// A view of product 1 (category 1) makes product 2 the category pick.
	w = suite.doRequest(http.MethodGet, "/api/recommendations/user/u", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	response = suite.decode(w)
	data = response["data"].(map[string]interface{})
	suite.Equal("category", data["source"])

	recommendations := data["recommendations"].([]interface{})
	suite.Require().Len(recommendations, 1)
	first := recommendations[0].(map[string]interface{})
	suite.Equal(float64(2), first["id"])
}

func (suite *RecommendationHandlerTestSuite) TestRecommendationsFallBackToPopular() {
	suite.seedCatalog()

	w := suite.doRequest(http.MethodGet, "/api/recommendations/user/stranger", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	data := suite.decode(w)["data"].(map[string]interface{})
	suite.Equal("popular", data["source"])
	suite.Len(data["recommendations"].([]interface{}), 2)
}

func (suite *RecommendationHandlerTestSuite) TestSimilarProducts() {
	suite.seedCatalog()

	w := suite.doRequest(http.MethodGet, "/api/recommendations/similar/1", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	data := suite.decode(w)["data"].(map[string]interface{})
	suite.Equal("similar", data["source"])

	recommendations := data["recommendations"].([]interface{})
	suite.Require().Len(recommendations, 1)
	first := recommendations[0].(map[string]interface{})
	suite.Equal(float64(2), first["id"])
}

func (suite *RecommendationHandlerTestSuite) TestSimilarRejectsBadProductID() {
	w := suite.doRequest(http.MethodGet, "/api/recommendations/similar/not-a-number", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *RecommendationHandlerTestSuite) TestLimitBoundsRejectedAtBoundary() {
	suite.seedCatalog()

	for _, limit := range []string{"0", "51", "-3", "abc"} {
		w := suite.doRequest(http.MethodGet, "/api/recommendations/user/u?limit="+limit, nil)
		suite.Equal(http.StatusBadRequest, w.Code, "limit=%s", limit)

		response := suite.decode(w)
		suite.False(response["success"].(bool))
	}

	w := suite.doRequest(http.MethodGet, "/api/recommendations/user/u?limit=1", nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *RecommendationHandlerTestSuite) TestRecordViewValidation() {
	w := suite.doRequest(http.MethodPost, "/api/recommendations/views", map[string]interface{}{
		"product_id": 1,
	})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.doRequest(http.MethodPost, "/api/recommendations/views", map[string]interface{}{
		"user_id": "u",
	})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *RecommendationHandlerTestSuite) TestFrequentlyViewed() {
	suite.seedCatalog()
	now := time.Now().UTC()

	require.NoError(suite.T(), suite.db.Create(&models.ProductView{UserID: "u", ProductID: 1, ViewCount: 4, LastViewedAt: now}).Error)
	require.NoError(suite.T(), suite.db.Create(&models.ProductView{UserID: "u", ProductID: 2, ViewCount: 2, LastViewedAt: now}).Error)

	w := suite.doRequest(http.MethodGet, "/api/recommendations/frequently-viewed/u?days=7", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	data := suite.decode(w)["data"].(map[string]interface{})
	suite.Equal("frequently_viewed", data["source"])

	recommendations := data["recommendations"].([]interface{})
	suite.Require().Len(recommendations, 2)
	first := recommendations[0].(map[string]interface{})
	suite.Equal(float64(1), first["id"])
	suite.Equal(float64(4), first["score"])
}

func TestRecommendationHandlerSuite(t *testing.T) {
	suite.Run(t, new(RecommendationHandlerTestSuite))
}
