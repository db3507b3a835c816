package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/collectflow/collections-campaign-backend/internal/services"
)

type AssignmentHandler struct {
	assignmentService *services.AssignmentService
}

func NewAssignmentHandler(assignmentService *services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService}
}

// AssignCampaign godoc
// @Summary Run customer assignment for an Active campaign
// @Description Matches customers against the campaign targeting and moves the
// @Description campaign to Assigned or NoMatchFound
// @Tags assignment
// @Produce json
// @Security BearerAuth
// @Param id path int true "Campaign ID"
// @Success 200 {object} models.AssignResult
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/assign [post]
func (h *AssignmentHandler) AssignCampaign(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.assignmentService.AssignCampaign(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
