package controller

import (
	"net/http"

	"github.com/bassista/go_sitework/internal/backend"
	"github.com/gin-gonic/gin"
)

// StatusFor maps a backend failure to the HTTP status reported by the bridge.
func StatusFor(err error) int {
	be := backend.AsError(err)
	switch be.Kind {
	case backend.KindMissingToken:
		return http.StatusUnauthorized
	case backend.KindValidation:
		return http.StatusBadRequest
	case backend.KindServer:
		if be.Status >= 400 && be.Status <= 599 {
			return be.Status
		}
		return http.StatusBadGateway
	default:
		return http.StatusBadGateway
	}
}

// respondError records err on the gin context and writes it as JSON.
func respondError(c *gin.Context, err error) {
	be := backend.AsError(err)
	_ = c.Error(be)
	c.JSON(StatusFor(be), gin.H{"error": be.Message, "kind": be.Kind})
}
