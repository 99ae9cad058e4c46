package route

import (
	"github.com/bassista/go_sitework/internal/api/controller"
	"github.com/bassista/go_sitework/internal/cache"
	"github.com/bassista/go_sitework/internal/domain"
	"github.com/gin-gonic/gin"
)

// StoreService is everything the store routes need from the service layer.
type StoreService interface {
	controller.StoreService
	controller.MaterialRemover
	controller.ProjectRemover
}

// NewStoreRouter sets up the resource store routes, including item removal
// for the materials and projects lists.
func NewStoreRouter(group *gin.RouterGroup, svc StoreService) {
	sc := controller.NewStoreController(svc)
	stores := svc.Stores()

	group.GET("stores", sc.AllStores)
	group.GET("stores/:name", sc.GetStore)
	group.POST("stores/:name/fetch", sc.FetchStore)
	group.POST("stores/:name/clear", sc.ClearStore)
	group.POST("refresh", sc.RefreshAll)

	items := group.Group("stores")
	materials := &controller.CrudController[domain.Material]{
		Service: &controller.MaterialCrudService{Store: stores.Materials, Remover: svc},
	}
	materials.RegisterCrudRoutes(items, cache.KeyMaterials)

	projects := &controller.CrudController[domain.Project]{
		Service: &controller.ProjectCrudService{Store: stores.Projects, Remover: svc},
	}
	projects.RegisterCrudRoutes(items, cache.KeyProjects)
}
