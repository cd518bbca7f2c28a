package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/lumina-home/lumina-console/api/v1"
	"github.com/lumina-home/lumina-console/internal/models"
	"github.com/lumina-home/lumina-console/internal/services"
)

// ResolveStatus returns the display form of a status code
// (GET /status/resolve)
func (h *Handler) ResolveStatus(c *gin.Context, params v1.ResolveStatusParams) {
	var resp v1.DisplayStatus
	resp.FromModel(services.ResolveStatus(models.StatusCode(params.Status), params.Reason))
	c.JSON(http.StatusOK, resp)
}
