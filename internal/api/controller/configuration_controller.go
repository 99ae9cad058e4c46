package controller

import (
	"net/http"

	"github.com/bassista/go_sitework/internal/config"
	"github.com/gin-gonic/gin"
)

// ConfigurationResponse represents the configuration response structure for the API.
type ConfigurationResponse struct {
	BaseURL            string   `json:"baseUrl"`
	PersistIntervalSec int      `json:"persistIntervalSec"`
	RefreshIntervalSec int      `json:"refreshIntervalSec"`
	TokenConfigured    bool     `json:"tokenConfigured"`
	Stores             []string `json:"stores"`
}

// ConfigurationController handles configuration-related API endpoints.
type ConfigurationController struct {
	config *config.Config
	stores []string
}

// NewConfigurationController creates a new ConfigurationController.
func NewConfigurationController(cfg *config.Config, stores []string) *ConfigurationController {
	return &ConfigurationController{
		config: cfg,
		stores: stores,
	}
}

// GetConfiguration returns the bridge configuration. The token itself is never exposed.
func (cc *ConfigurationController) GetConfiguration(c *gin.Context) {
	response := ConfigurationResponse{
		BaseURL:            cc.config.API.BaseURL,
		PersistIntervalSec: int(cc.config.Data.PersistInterval.Seconds()),
		RefreshIntervalSec: int(cc.config.Data.RefreshInterval.Seconds()),
		TokenConfigured:    cc.config.API.Token != "",
		Stores:             cc.stores,
	}
	c.JSON(http.StatusOK, response)
}
