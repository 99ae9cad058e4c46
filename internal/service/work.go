package service

import (
	"context"
	"net/http"
	"strings"

	"github.com/bassista/go_sitework/internal/backend"
	"github.com/bassista/go_sitework/internal/domain"
)

// AddWork logs work with photos against an assignment.
func (s *Service) AddWork(ctx context.Context, req domain.WorkRequest) error {
	req.Description = strings.TrimSpace(req.Description)
	if err := check(req); err != nil {
		return err
	}
	form := backend.NewMultipart().
		Field("description", req.Description).
		Field("workId", req.AssignProjectID)
	for _, p := range req.Thumbnails {
		form.File(fileWorkThumbnail, p)
	}
	err := s.send(ctx, backend.Request{Method: http.MethodPost, Path: routeAddWork, Form: form, Auth: true}, nil)
	if err != nil {
		return backend.AsError(err).WithFallback("Failed to add work")
	}
	s.reconcile(ctx, "add work", s.assignmentViews(req.AssignProjectID)...)
	return nil
}

// UpdateWork edits a work record, optionally replacing its photos.
func (s *Service) UpdateWork(ctx context.Context, req domain.WorkUpdate) error {
	req.Description = strings.TrimSpace(req.Description)
	if err := check(req); err != nil {
		return err
	}
	form := backend.NewMultipart().
		Field("workId", req.WorkID).
		Field("assignProjectId", req.AssignProjectID).
		Field("description", req.Description)
	for _, p := range req.Thumbnails {
		form.File(fileWorkThumbnail, p)
	}
	err := s.send(ctx, backend.Request{Method: http.MethodPut, Path: routeUpdateWork, Form: form, Auth: true}, nil)
	if err != nil {
		return backend.AsError(err).WithFallback("Failed to update work.")
	}
	s.reconcile(ctx, "update work", func(ctx context.Context) error {
		return s.workHistory(ctx, req.AssignProjectID)
	})
	return nil
}

func (s *Service) DeleteWork(ctx context.Context, req domain.DeleteWorkRequest) error {
	if err := check(req); err != nil {
		return err
	}
	err := s.send(ctx, backend.Request{Method: http.MethodDelete, Path: routeDeleteWork, Body: req, Auth: true}, nil)
	if err != nil {
		return backend.AsError(err).WithFallback("Failed to delete work.")
	}
	s.reconcile(ctx, "delete work", func(ctx context.Context) error {
		return s.workHistory(ctx, req.AssignProjectID)
	})
	return nil
}
