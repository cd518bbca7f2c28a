package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (POST /command/*path)
	ExecuteCommand(c *gin.Context, path string)
	// (GET /discover)
	GetDiscoveryStatus(c *gin.Context)
	// (POST /discover)
	StartDiscovery(c *gin.Context)
	// (GET /hosts)
	ListHosts(c *gin.Context)
	// (GET /hosts/watch)
	WatchHosts(c *gin.Context)
	// (GET /hosts/:id)
	GetHost(c *gin.Context, id string)
	// (GET /debug)
	GetDebugTrace(c *gin.Context)
	// (POST /debug/success)
	AppendDebugSuccess(c *gin.Context)
	// (GET /status/resolve)
	ResolveStatus(c *gin.Context, params ResolveStatusParams)
}

// ServerInterfaceWrapper converts gin contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) ExecuteCommand(c *gin.Context) {
	w.Handler.ExecuteCommand(c, c.Param("path"))
}

func (w *ServerInterfaceWrapper) GetHost(c *gin.Context) {
	w.Handler.GetHost(c, c.Param("id"))
}

func (w *ServerInterfaceWrapper) ResolveStatus(c *gin.Context) {
	var params ResolveStatusParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, Error{Error: "invalid query parameters: " + err.Error()})
		return
	}
	w.Handler.ResolveStatus(c, params)
}

// RegisterHandlers creates http.Handler with routing matching the API.
func RegisterHandlers(router gin.IRouter, si ServerInterface) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.POST("/command/*path", wrapper.ExecuteCommand)
	router.GET("/discover", si.GetDiscoveryStatus)
	router.POST("/discover", si.StartDiscovery)
	router.GET("/hosts", si.ListHosts)
	router.GET("/hosts/watch", si.WatchHosts)
	router.GET("/hosts/:id", wrapper.GetHost)
	router.GET("/debug", si.GetDebugTrace)
	router.POST("/debug/success", si.AppendDebugSuccess)
	router.GET("/status/resolve", wrapper.ResolveStatus)
}
