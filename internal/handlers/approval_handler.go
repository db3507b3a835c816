package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/collectflow/collections-campaign-backend/internal/models"
	"github.com/collectflow/collections-campaign-backend/internal/services"
	"github.com/collectflow/collections-campaign-backend/internal/services/export"
	"github.com/collectflow/collections-campaign-backend/internal/utils"
)

type ApprovalHandler struct {
	approvalService *services.ApprovalService
	exportService   *export.Service
}

func NewApprovalHandler(approvalService *services.ApprovalService, exportService *export.Service) *ApprovalHandler {
	return &ApprovalHandler{
		approvalService: approvalService,
		exportService:   exportService,
	}
}

// SubmitForApproval godoc
// @Summary Submit a Draft campaign for approval
// @Tags approval
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Campaign ID"
// @Param request body models.SubmitForApprovalRequest false "Optional remarks"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/v1/campaigns/approval/{id}/submit [post]
func (h *ApprovalHandler) SubmitForApproval(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	userID := c.MustGet("user_id").(uint)

	var req models.SubmitForApprovalRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
			return
		}
	}

	if err := h.approvalService.SubmitForApproval(id, userID, req.Remarks); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Campaign submitted for approval"})
}

// ApproveCampaign godoc
// @Summary Approve a pending campaign
// @Tags approval
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Campaign ID"
// @Param request body models.ApproveCampaignRequest false "Optional remarks"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/v1/campaigns/approval/{id}/approve [post]
func (h *ApprovalHandler) ApproveCampaign(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	userID := c.MustGet("user_id").(uint)

	var req models.ApproveCampaignRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
			return
		}
	}

	if err := h.approvalService.ApproveCampaign(id, userID, req.Remarks); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Campaign approved"})
}

// RejectCampaign godoc
// @Summary Reject a pending campaign
// @Description Rejection remarks are mandatory
// @Tags approval
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Campaign ID"
// @Param request body models.RejectCampaignRequest true "Rejection remarks"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/v1/campaigns/approval/{id}/reject [post]
func (h *ApprovalHandler) RejectCampaign(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	userID := c.MustGet("user_id").(uint)

	var req models.RejectCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	if err := h.approvalService.RejectCampaign(id, userID, req.RejectionRemarks); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Campaign rejected"})
}

// GetPendingApprovals godoc
// @Summary List campaigns awaiting approval
// @Tags approval
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param search query string false "Search by name"
// @Param sort_by query string false "Sort column"
// @Param sort_order query string false "asc or desc"
// @Success 200 {object} models.PendingApprovalListResponse
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/approval/pending [get]
func (h *ApprovalHandler) GetPendingApprovals(c *gin.Context) {
	page, pageSize := utils.ParsePaginationFromQuery(c.Query("page"), c.Query("page_size"))
	page, pageSize = utils.ValidateAndNormalizePagination(page, pageSize)

	query := models.PendingApprovalQuery{
		Page:      page,
		Limit:     pageSize,
		Search:    c.Query("search"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	response, err := h.approvalService.GetPendingApprovals(query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"campaigns":  response.Campaigns,
		"pagination": utils.CalculatePaginationInfo(response.Total, page, pageSize),
	})
}

// GetCampaignReview godoc
// @Summary Get the full review view of one campaign
// @Tags approval
// @Produce json
// @Security BearerAuth
// @Param id path int true "Campaign ID"
// @Success 200 {object} models.CampaignReviewResponse
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/campaigns/approval/{id}/review [get]
func (h *ApprovalHandler) GetCampaignReview(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	review, err := h.approvalService.GetCampaignReview(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// GetApprovalHistory godoc
// @Summary Get a campaign's approval history
// @Tags approval
// @Produce json
// @Security BearerAuth
// @Param id path int true "Campaign ID"
// @Success 200 {array} models.ApprovalHistoryEntry
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/campaigns/approval/{id}/history [get]
func (h *ApprovalHandler) GetApprovalHistory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	history, err := h.approvalService.GetApprovalHistory(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// ExportPendingApprovals godoc
// @Summary Export pending campaigns as CSV or XLSX
// @Tags approval
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param format query string false "csv (default) or xlsx"
// @Success 200 {string} string "File download"
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/approval/export [get]
func (h *ApprovalHandler) ExportPendingApprovals(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be csv or xlsx"})
		return
	}

	rows, err := h.approvalService.ExportPendingApprovals()
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("pending_approvals_%s.%s", time.Now().Format("20060102_150405"), format)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	if format == "xlsx" {
		file, err := h.exportService.BuildXLSX(rows)
		if err != nil {
			respondError(c, err)
			return
		}
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := file.Write(c.Writer); err != nil {
			respondError(c, err)
		}
		return
	}

	c.Header("Content-Type", "text/csv")
	if err := h.exportService.WriteCSV(c.Writer, rows); err != nil {
		respondError(c, err)
	}
}
