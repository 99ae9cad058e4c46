package route

import (
	"github.com/bassista/go_sitework/internal/api/controller"
	"github.com/gin-gonic/gin"
)

func NewAuthRouter(group *gin.RouterGroup, svc controller.AuthService) {
	ac := controller.NewAuthController(svc)

	group.POST("login", ac.Login)
	group.POST("logout", ac.Logout)
}
