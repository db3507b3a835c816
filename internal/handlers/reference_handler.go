package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/collectflow/collections-campaign-backend/internal/services"
)

type ReferenceHandler struct {
	referenceService *services.ReferenceService
}

func NewReferenceHandler(referenceService *services.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{referenceService: referenceService}
}

// GetStates godoc
// @Summary List states
// @Tags reference
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.State
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/reference/states [get]
func (h *ReferenceHandler) GetStates(c *gin.Context) {
	states, err := h.referenceService.GetStates()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, states)
}

// GetDpdBuckets godoc
// @Summary List DPD buckets
// @Tags reference
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.DpdBucket
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/reference/dpd-buckets [get]
func (h *ReferenceHandler) GetDpdBuckets(c *gin.Context) {
	buckets, err := h.referenceService.GetDpdBuckets()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, buckets)
}

// GetChannels godoc
// @Summary List channels
// @Tags reference
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Channel
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/reference/channels [get]
func (h *ReferenceHandler) GetChannels(c *gin.Context) {
	channels, err := h.referenceService.GetChannels()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, channels)
}

// GetTemplates godoc
// @Summary List templates, optionally filtered by channel
// @Tags reference
// @Produce json
// @Security BearerAuth
// @Param channel_id query int false "Channel ID"
// @Success 200 {array} models.Template
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/reference/templates [get]
func (h *ReferenceHandler) GetTemplates(c *gin.Context) {
	var channelID *uint
	if raw := c.Query("channel_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid channel_id"})
			return
		}
		id := uint(parsed)
		channelID = &id
	}

	templates, err := h.referenceService.GetTemplates(channelID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, templates)
}

// GetLanguages godoc
// @Summary List languages
// @Tags reference
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Language
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/reference/languages [get]
func (h *ReferenceHandler) GetLanguages(c *gin.Context) {
	languages, err := h.referenceService.GetLanguages()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, languages)
}
