package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/lumina-home/lumina-console/api/v1"
)

// GetDiscoveryStatus returns the state of the last discovery pass
// (GET /discover)
func (h *Handler) GetDiscoveryStatus(c *gin.Context) {
	var resp v1.DiscoveryStatus
	resp.FromModel(h.discoverer.Status())
	c.JSON(http.StatusOK, resp)
}

// StartDiscovery runs a discovery pass. It answers once the node fetches are
// dispatched; their results show up in the host directory.
// (POST /discover)
func (h *Handler) StartDiscovery(c *gin.Context) {
	if _, err := h.discoverer.Discover(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, v1.Error{Error: err.Error()})
		return
	}

	var resp v1.DiscoveryStatus
	resp.FromModel(h.discoverer.Status())
	c.JSON(http.StatusAccepted, resp)
}
