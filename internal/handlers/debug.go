package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/lumina-home/lumina-console/api/v1"
)

// GetDebugTrace returns the transcript of the last command and the log
// (GET /debug)
func (h *Handler) GetDebugTrace(c *gin.Context) {
	trace := h.router.Trace()
	c.JSON(http.StatusOK, v1.DebugTrace{Stage: trace.Stage(), Log: trace.Log()})
}

// AppendDebugSuccess records the last command as successful in the log
// (POST /debug/success)
func (h *Handler) AppendDebugSuccess(c *gin.Context) {
	var req v1.DebugSuccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, v1.Error{Error: "invalid request body"})
		return
	}

	trace := h.router.Trace()
	trace.AppendSuccess(req.Line)
	c.JSON(http.StatusOK, v1.DebugTrace{Stage: trace.Stage(), Log: trace.Log()})
}
