package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/collectflow/collections-campaign-backend/internal/apperrors"
)

// respondError maps a service error to its HTTP status. Typed domain errors
// keep their message; anything else becomes an opaque 500.
func respondError(c *gin.Context, err error) {
	switch {
	case apperrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperrors.IsReferenceNotFound(err), apperrors.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperrors.IsDuplicateName(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case apperrors.IsInvalidTransition(err), apperrors.IsInvalidState(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("Unhandled service error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
