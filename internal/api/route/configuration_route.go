package route

import (
	"github.com/bassista/go_sitework/internal/api/controller"
	"github.com/bassista/go_sitework/internal/config"
	"github.com/gin-gonic/gin"
)

// NewConfigurationRouter sets up configuration-related routes.
func NewConfigurationRouter(group *gin.RouterGroup, cfg *config.Config, stores []string) {
	cc := controller.NewConfigurationController(cfg, stores)

	group.GET("configuration", cc.GetConfiguration)
}
