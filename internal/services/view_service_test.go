// internal/services/view_service_test.go
package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/marketloop/recommendation-service/internal/models"
)

type ViewServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *ViewService
	ctx     context.Context
}

func (suite *ViewServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	suite.service = NewViewService(suite.db)
	suite.ctx = context.Background()

	seedProduct(suite.T(), suite.db, models.Product{ID: 1, Name: "A", Price: 100, IsActive: true, Stock: 1, CreatedAt: time.Now().UTC()})
}

func (suite *ViewServiceTestSuite) TestFirstViewCreatesSingleEvent() {
	recorded, err := suite.service.RecordView(suite.ctx, "u", 1)
	suite.Require().NoError(err)
	suite.True(recorded)

	var views []models.ProductView
	suite.Require().NoError(suite.db.Where("user_id = ? AND product_id = ?", "u", 1).Find(&views).Error)
	suite.Require().Len(views, 1)
	suite.Equal(int64(1), views[0].ViewCount)
}

func (suite *ViewServiceTestSuite) TestRepeatViewIncrementsInPlace() {
	_, err := suite.service.RecordView(suite.ctx, "u", 1)
	suite.Require().NoError(err)

	var first models.ProductView
	suite.Require().NoError(suite.db.Where("user_id = ? AND product_id = ?", "u", 1).First(&first).Error)

	time.Sleep(10 * time.Millisecond)

	recorded, err := suite.service.RecordView(suite.ctx, "u", 1)
	suite.Require().NoError(err)
	suite.True(recorded)

	var views []models.ProductView
	suite.Require().NoError(suite.db.Where("user_id = ? AND product_id = ?", "u", 1).Find(&views).Error)
	suite.Require().Len(views, 1) // still one row for the pair

	suite.Equal(int64(2), views[0].ViewCount)
	suite.True(views[0].LastViewedAt.After(first.LastViewedAt))
}

func (suite *ViewServiceTestSuite) TestViewsOfDifferentPairsAreIndependent() {
	seedProduct(suite.T(), suite.db, models.Product{ID: 2, Name: "B", Price: 100, IsActive: true, Stock: 1, CreatedAt: time.Now().UTC()})

	_, err := suite.service.RecordView(suite.ctx, "u", 1)
	suite.Require().NoError(err)
	_, err = suite.service.RecordView(suite.ctx, "u", 2)
	suite.Require().NoError(err)
	_, err = suite.service.RecordView(suite.ctx, "w", 1)
	suite.Require().NoError(err)

	var count int64
	suite.Require().NoError(suite.db.Model(&models.ProductView{}).Count(&count).Error)
	suite.Equal(int64(3), count)

	var view models.ProductView
	suite.Require().NoError(suite.db.Where("user_id = ? AND product_id = ?", "u", 1).First(&view).Error)
	suite.Equal(int64(1), view.ViewCount)
}

func TestViewServiceSuite(t *testing.T) {
	suite.Run(t, new(ViewServiceTestSuite))
}
