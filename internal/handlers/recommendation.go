// internal/handlers/recommendation.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/marketloop/recommendation-service/internal/config"
	"github.com/marketloop/recommendation-service/internal/models"
	"github.com/marketloop/recommendation-service/internal/services"
	"github.com/marketloop/recommendation-service/internal/utils"
)

type RecommendationHandler struct {
	recommendationService *services.RecommendationService
	viewService           *services.ViewService
	cfg                   config.RecommendationConfig
}

func NewRecommendationHandler(recommendationService *services.RecommendationService, viewService *services.ViewService, cfg config.RecommendationConfig) *RecommendationHandler {
	return &RecommendationHandler{
		recommendationService: recommendationService,
		viewService:           viewService,
		cfg:                   cfg,
	}
}

type RecordViewRequest struct {
	UserID    string `json:"user_id" validate:"required,max=128"`
	ProductID uint   `json:"product_id" validate:"required"`
}

// GET /recommendations/:user_id
func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	userID := c.Param("user_id")

	limit, err := utils.ParseLimit(c, h.cfg.DefaultLimit, h.cfg.MaxLimit)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	recommendations, source, err := h.recommendationService.GetRecommendationsForUser(c.Request.Context(), userID, limit)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"recommendations": recommendations,
		"source":          source,
	})
}

// GET /recommendations/similar/:product_id
func (h *RecommendationHandler) GetSimilarProducts(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	limit, err := utils.ParseLimit(c, h.cfg.DefaultLimit, h.cfg.MaxLimit)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	recommendations, err := h.recommendationService.GetSimilarProducts(c.Request.Context(), uint(productID), limit)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"recommendations": recommendations,
		"source":          models.SourceSimilar,
	})
}

// GET /recommendations/popular
func (h *RecommendationHandler) GetPopularProducts(c *gin.Context) {
	limit, err := utils.ParseLimit(c, h.cfg.DefaultLimit, h.cfg.MaxLimit)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	recommendations, err := h.recommendationService.GetPopularProducts(c.Request.Context(), limit)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"recommendations": recommendations,
		"source":          models.SourcePopular,
	})
}

// GET /recommendations/frequently-viewed/:user_id
func (h *RecommendationHandler) GetFrequentlyViewed(c *gin.Context) {
	userID := c.Param("user_id")

	limit, err := utils.ParseLimit(c, h.cfg.DefaultLimit, h.cfg.MaxLimit)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	days, err := utils.ParseDays(c)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	recommendations, err := h.recommendationService.GetFrequentlyViewed(c.Request.Context(), userID, limit, days)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"recommendations": recommendations,
		"source":          models.SourceFrequentlyViewed,
	})
}

// POST /recommendations/views
func (h *RecommendationHandler) RecordView(c *gin.Context) {
	var req RecordViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	recorded, err := h.viewService.RecordView(c.Request.Context(), req.UserID, req.ProductID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"recorded": recorded,
	})
}
