package service

import (
	"context"
	"net/http"
	"strings"

	"github.com/bassista/go_sitework/internal/backend"
	"github.com/bassista/go_sitework/internal/cache"
	"github.com/bassista/go_sitework/internal/domain"
)

func (s *Service) AddMaterial(ctx context.Context, req domain.MaterialRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	if err := check(req); err != nil {
		return err
	}
	err := s.send(ctx, backend.Request{Method: http.MethodPost, Path: routeAddMaterial, Body: req, Auth: true}, nil)
	if err != nil {
		return backend.AsError(err).WithFallback("Failed to add material.")
	}
	s.reconcile(ctx, "add material", s.materials)
	return nil
}

func (s *Service) UpdateMaterial(ctx context.Context, materialID string, req domain.MaterialRequest) error {
	if err := requireID("materialId", materialID); err != nil {
		return err
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	if err := check(req); err != nil {
		return err
	}
	err := s.send(ctx, backend.Request{Method: http.MethodPut, Path: routeUpdateMaterial, Params: byID(materialID), Body: req, Auth: true}, nil)
	if err != nil {
		return backend.AsError(err).WithFallback("Failed to update material.")
	}
	s.reconcile(ctx, "update material", s.materials)
	return nil
}

// DeleteMaterial deletes a material and drops it from the cached list.
func (s *Service) DeleteMaterial(ctx context.Context, materialID string) error {
	if err := requireID("materialId", materialID); err != nil {
		return err
	}
	err := s.send(ctx, backend.Request{Method: http.MethodDelete, Path: routeDeleteMaterial, Params: byID(materialID), Auth: true}, nil)
	if err != nil {
		return backend.AsError(err).WithFallback("Failed to delete material.")
	}
	cache.RemoveByID(s.stores.Materials, materialID)
	return nil
}
