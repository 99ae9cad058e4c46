package controller

import (
	"context"
	"net/http"

	"github.com/bassista/go_sitework/internal/domain"
	"github.com/gin-gonic/gin"
)

// AuthService is what the session endpoints need from the service layer.
type AuthService interface {
	Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResult, error)
	Logout(ctx context.Context) error
}

// AuthController handles login and logout.
type AuthController struct {
	service AuthService
}

func NewAuthController(service AuthService) *AuthController {
	return &AuthController{service: service}
}

// Login handles POST /login. The token is handed back to the caller, which
// sends it as a bearer token on later requests.
func (ac *AuthController) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	result, err := ac.service.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Logout handles POST /logout.
func (ac *AuthController) Logout(c *gin.Context) {
	if err := ac.service.Logout(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
