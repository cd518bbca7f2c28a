package handlers

import (
	"github.com/lumina-home/lumina-console/internal/services"
)

type Handler struct {
	router     *services.Router
	discoverer *services.Discoverer
	directory  *services.Directory
}

func New(router *services.Router, discoverer *services.Discoverer) *Handler {
	return &Handler{
		router:     router,
		discoverer: discoverer,
		directory:  discoverer.Directory(),
	}
}
