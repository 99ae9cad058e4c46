package controller

import (
	"context"
	"net/http"

	"github.com/bassista/go_sitework/internal/cache"
	"github.com/bassista/go_sitework/internal/logger"
	"github.com/gin-gonic/gin"
)

// StoreService is what the store endpoints need from the service layer.
type StoreService interface {
	Stores() *cache.Stores
	FetchByName(ctx context.Context, name, id string) error
	RefreshAll(ctx context.Context) error
}

// StoreController exposes the resource stores over HTTP.
type StoreController struct {
	service StoreService
}

func NewStoreController(service StoreService) *StoreController {
	return &StoreController{service: service}
}

// AllStores handles GET /stores - returns every store state keyed by name.
func (sc *StoreController) AllStores(c *gin.Context) {
	body, err := sc.service.Stores().StatesJSON()
	if err != nil {
		logger.WithComponent("store-controller").Errorf("encode stores: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read stores"})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// GetStore handles GET /stores/:name.
func (sc *StoreController) GetStore(c *gin.Context) {
	store, ok := sc.lookup(c)
	if !ok {
		return
	}
	sc.writeView(c, store)
}

// FetchStore handles POST /stores/:name/fetch?id= - refreshes one store from the backend.
func (sc *StoreController) FetchStore(c *gin.Context) {
	store, ok := sc.lookup(c)
	if !ok {
		return
	}
	name := store.Name()
	logger.WithComponent("store-controller").Debugf("POST /stores/%s/fetch handler called", name)
	if err := sc.service.FetchByName(c.Request.Context(), name, c.Query("id")); err != nil {
		respondError(c, err)
		return
	}
	sc.writeView(c, store)
}

// ClearStore handles POST /stores/:name/clear - resets one store to its initial state.
func (sc *StoreController) ClearStore(c *gin.Context) {
	store, ok := sc.lookup(c)
	if !ok {
		return
	}
	store.Clear()
	sc.writeView(c, store)
}

// RefreshAll handles POST /refresh - re-fetches every list store.
func (sc *StoreController) RefreshAll(c *gin.Context) {
	if err := sc.service.RefreshAll(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	sc.AllStores(c)
}

func (sc *StoreController) lookup(c *gin.Context) (cache.Named, bool) {
	name := c.Param("name")
	store, ok := sc.service.Stores().Get(name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "store not found"})
		return nil, false
	}
	return store, true
}

func (sc *StoreController) writeView(c *gin.Context, store cache.Named) {
	view, err := store.View()
	if err != nil {
		logger.WithComponent("store-controller").Errorf("read store %s: %v", store.Name(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read store"})
		return
	}
	c.JSON(http.StatusOK, view)
}
