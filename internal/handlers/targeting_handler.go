package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/collectflow/collections-campaign-backend/internal/models"
	"github.com/collectflow/collections-campaign-backend/internal/services"
)

type TargetingHandler struct {
	targetingService *services.TargetingService
}

func NewTargetingHandler(targetingService *services.TargetingService) *TargetingHandler {
	return &TargetingHandler{targetingService: targetingService}
}

// FindMatchingCampaigns godoc
// @Summary Find Active campaigns matching targeting criteria
// @Tags targeting
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.TargetingCriteria true "Targeting criteria"
// @Success 200 {array} models.TargetingResult
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/targeting/match [post]
func (h *TargetingHandler) FindMatchingCampaigns(c *gin.Context) {
	var criteria models.TargetingCriteria
	if err := c.ShouldBindJSON(&criteria); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	results, err := h.targetingService.FindMatchingCampaigns(criteria)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// GetTargetingSuggestions godoc
// @Summary Get per-dimension campaign counts for criteria building
// @Tags targeting
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.TargetingSuggestions
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/targeting/suggestions [get]
func (h *TargetingHandler) GetTargetingSuggestions(c *gin.Context) {
	suggestions, err := h.targetingService.GetTargetingSuggestions()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, suggestions)
}

// AnalyzeCampaignPerformance godoc
// @Summary Get placeholder performance analytics for one campaign
// @Tags targeting
// @Produce json
// @Security BearerAuth
// @Param id path int true "Campaign ID"
// @Success 200 {object} models.CampaignPerformance
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/targeting/campaigns/{id}/performance [get]
func (h *TargetingHandler) AnalyzeCampaignPerformance(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	performance, err := h.targetingService.AnalyzeCampaignPerformance(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, performance)
}
