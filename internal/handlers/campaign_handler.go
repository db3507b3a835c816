package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/collectflow/collections-campaign-backend/internal/models"
	"github.com/collectflow/collections-campaign-backend/internal/services"
	"github.com/collectflow/collections-campaign-backend/internal/utils"
)

type CampaignHandler struct {
	campaignService *services.CampaignService
}

func NewCampaignHandler(campaignService *services.CampaignService) *CampaignHandler {
	return &CampaignHandler{campaignService: campaignService}
}

// parseID parses the :id path parameter. Writes the 400 response itself.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid campaign id"})
		return 0, false
	}
	return uint(id), true
}

// CreateCampaign godoc
// @Summary Create a new campaign
// @Description Create a campaign in Draft status with a derived name
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateCampaignRequest true "Create campaign request"
// @Success 201 {object} models.CampaignResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns [post]
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	var req models.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	response, err := h.campaignService.CreateCampaign(userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response)
}

// ListCampaigns godoc
// @Summary List campaigns
// @Tags campaigns
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param status query string false "Filter by status"
// @Param search query string false "Search by name"
// @Param sort_by query string false "Sort column"
// @Param sort_order query string false "asc or desc"
// @Success 200 {object} models.CampaignListResponse
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns [get]
func (h *CampaignHandler) ListCampaigns(c *gin.Context) {
	page, pageSize := utils.ParsePaginationFromQuery(c.Query("page"), c.Query("page_size"))
	page, pageSize = utils.ValidateAndNormalizePagination(page, pageSize)

	query := models.CampaignListQuery{
		Page:      page,
		Limit:     pageSize,
		Status:    c.Query("status"),
		Search:    c.Query("search"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	response, err := h.campaignService.ListCampaigns(query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"campaigns":  response.Campaigns,
		"pagination": utils.CalculatePaginationInfo(response.Total, page, pageSize),
	})
}

// GetCampaign godoc
// @Summary Get one campaign
// @Tags campaigns
// @Produce json
// @Security BearerAuth
// @Param id path int true "Campaign ID"
// @Success 200 {object} models.CampaignResponse
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id} [get]
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	response, err := h.campaignService.GetCampaignByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// UpdateCampaign godoc
// @Summary Update a campaign
// @Description Partial update; omitted fields keep their values and a
// @Description supplied filter map replaces the whole set
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Campaign ID"
// @Param request body models.UpdateCampaignRequest true "Update campaign request"
// @Success 200 {object} models.CampaignResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id} [put]
func (h *CampaignHandler) UpdateCampaign(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	userID := c.MustGet("user_id").(uint)

	var req models.UpdateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	response, err := h.campaignService.UpdateCampaign(id, userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// DeleteCampaign godoc
// @Summary Delete a campaign
// @Tags campaigns
// @Produce json
// @Security BearerAuth
// @Param id path int true "Campaign ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id} [delete]
func (h *CampaignHandler) DeleteCampaign(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.campaignService.DeleteCampaign(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Campaign deleted successfully"})
}

// GetCampaignMetrics godoc
// @Summary Get campaign delivery metrics
// @Tags campaigns
// @Produce json
// @Security BearerAuth
// @Param id path int true "Campaign ID"
// @Success 200 {object} models.CampaignMetricsResponse
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/metrics [get]
func (h *CampaignHandler) GetCampaignMetrics(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	response, err := h.campaignService.GetCampaignMetrics(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}
