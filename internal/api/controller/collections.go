package controller

import (
	"context"

	"github.com/bassista/go_sitework/internal/cache"
	"github.com/bassista/go_sitework/internal/domain"
)

// MaterialRemover deletes a material on the backend.
type MaterialRemover interface {
	DeleteMaterial(ctx context.Context, materialID string) error
}

// ProjectRemover deletes a project on the backend.
type ProjectRemover interface {
	DeleteProject(ctx context.Context, projectID string) error
}

// MaterialCrudService implements CrudService for the materials store.
type MaterialCrudService struct {
	Store   *cache.Resource[[]domain.Material]
	Remover MaterialRemover
}

func (s *MaterialCrudService) All() cache.State[[]domain.Material] {
	return s.Store.State()
}

func (s *MaterialCrudService) Remove(ctx context.Context, id string) error {
	return s.Remover.DeleteMaterial(ctx, id)
}

// ProjectCrudService implements CrudService for the projects store.
type ProjectCrudService struct {
	Store   *cache.Resource[[]domain.Project]
	Remover ProjectRemover
}

func (s *ProjectCrudService) All() cache.State[[]domain.Project] {
	return s.Store.State()
}

func (s *ProjectCrudService) Remove(ctx context.Context, id string) error {
	return s.Remover.DeleteProject(ctx, id)
}
