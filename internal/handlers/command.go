package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/lumina-home/lumina-console/api/v1"
	"github.com/lumina-home/lumina-console/internal/models"
)

// ExecuteCommand forwards a command to the Lumina server. The request body,
// when present, is the JSON array of command arguments.
// (POST /command/*path)
func (h *Handler) ExecuteCommand(c *gin.Context, path string) {
	var args []any
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, v1.Error{Error: "failed to read request body"})
		return
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &args); err != nil {
			c.JSON(http.StatusBadRequest, v1.Error{Error: "request body must be a JSON array of arguments"})
			return
		}
	}

	cmd := models.ParseCommand(path, args...)
	if cmd.Name == "" {
		c.JSON(http.StatusBadRequest, v1.Error{Error: "missing command name"})
		return
	}

	result, err := h.router.Execute(c.Request.Context(), cmd)
	if err != nil {
		var cmdErr *models.CommandError
		if errors.As(err, &cmdErr) {
			var resp v1.CommandFailure
			resp.FromModel(cmdErr)
			c.JSON(http.StatusBadGateway, resp)
			return
		}
		zap.S().Named("handlers").Errorw("command failed", "path", cmd.Path(), "error", err)
		c.JSON(http.StatusInternalServerError, v1.Error{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, v1.CommandResult{Result: result})
}
