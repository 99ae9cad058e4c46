package controller

import (
	"context"
	"net/http"

	"github.com/bassista/go_sitework/internal/cache"
	"github.com/bassista/go_sitework/internal/logger"
	"github.com/gin-gonic/gin"
)

// CrudService defines the minimal interface required to manage a cached list.
type CrudService[T any] interface {
	All() cache.State[[]T]
	Remove(ctx context.Context, id string) error
}

// CrudController provides generic handlers for list stores whose items are
// removed by id.
type CrudController[T any] struct {
	Service CrudService[T]
}

// RegisterCrudRoutes registers the item endpoints of a list store on the given router group.
func (cc *CrudController[T]) RegisterCrudRoutes(rg *gin.RouterGroup, resource string) {
	rg.DELETE("/"+resource+"/:id", cc.Delete)
}

// Delete handles DELETE requests to remove an item by id. It answers with the
// list store state after the removal.
func (cc *CrudController[T]) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing resource id"})
		return
	}
	if err := cc.Service.Remove(c.Request.Context(), id); err != nil {
		logger.WithComponent("crud-controller").Debugf("delete %s failed: %v", id, err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cc.Service.All())
}
