package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/bassista/go_sitework/internal/backend"
	"github.com/bassista/go_sitework/internal/cache"
	"github.com/bassista/go_sitework/internal/domain"
)

const dateLayout = "2006-01-02"

// now is replaced in tests.
var now = time.Now

// AddProject creates a project with optional thumbnails and PDF, then
// refreshes the project list.
func (s *Service) AddProject(ctx context.Context, req domain.ProjectRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	req.Size = strings.TrimSpace(req.Size)
	if err := check(req); err != nil {
		return err
	}

	form := backend.NewMultipart().
		Field("name", req.Name).
		Field("description", req.Description).
		Field("startDate", req.StartDate).
		Field("endDate", req.EndDate).
		Field("size", req.Size)
	if req.MaterialID != "" {
		form.Field("materialId", req.MaterialID)
	}
	for _, p := range req.Thumbnails {
		form.File(fileProjectThumbnail, p)
	}
	if req.PDF != "" {
		form.File(fileProjectPdf, req.PDF)
	}

	err := s.send(ctx, backend.Request{Method: http.MethodPost, Path: routeAddProject, Form: form, Auth: true}, nil)
	if err != nil {
		return backend.AsError(err).WithFallback("Failed to add project.")
	}
	s.reconcile(ctx, "add project", s.projects)
	return nil
}

// UpdateProject edits a project and uploads new thumbnails. Missing or
// malformed dates are sent as today.
func (s *Service) UpdateProject(ctx context.Context, projectID string, req domain.ProjectUpdate) error {
	if err := requireID("projectId", projectID); err != nil {
		return err
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	if err := check(req); err != nil {
		return err
	}
	req.StartDate = dateOrToday(req.StartDate)
	req.EndDate = dateOrToday(req.EndDate)

	form := backend.NewMultipart().
		Field("name", req.Name).
		Field("description", req.Description).
		Field("startDate", req.StartDate).
		Field("endDate", req.EndDate)
	for _, p := range req.Thumbnails {
		form.File(fileProjectThumbnail, p)
	}

	err := s.send(ctx, backend.Request{Method: http.MethodPut, Path: routeUpdateProject, Params: byID(projectID), Form: form, Auth: true}, nil)
	if err != nil {
		return backend.AsError(err).WithFallback("Failed to update project.")
	}
	s.reconcile(ctx, "update project",
		func(ctx context.Context) error { return s.projectByID(ctx, projectID) },
		s.projects,
	)
	return nil
}

func dateOrToday(v string) string {
	v = strings.TrimSpace(v)
	if _, err := time.Parse(dateLayout, v); err == nil {
		return v
	}
	return now().Format(dateLayout)
}

// DeleteProject deletes a project and drops it from the cached list.
func (s *Service) DeleteProject(ctx context.Context, projectID string) error {
	if err := requireID("projectId", projectID); err != nil {
		return err
	}
	err := s.send(ctx, backend.Request{Method: http.MethodDelete, Path: routeDeleteProject, Params: byID(projectID), Auth: true}, nil)
	if err != nil {
		return backend.AsError(err).WithFallback("Failed to delete project.")
	}
	cache.RemoveByID(s.stores.Projects, projectID)
	return nil
}

// AssignProject assigns a project to users and refreshes its assignments.
func (s *Service) AssignProject(ctx context.Context, req domain.AssignRequest) error {
	req.Description = strings.TrimSpace(req.Description)
	if err := check(req); err != nil {
		return err
	}
	err := s.send(ctx, backend.Request{Method: http.MethodPost, Path: routeAssignProject, Body: req, Auth: true}, nil)
	if err != nil {
		return backend.AsError(err).WithFallback("Failed to assign project.")
	}
	s.reconcile(ctx, "assign project", func(ctx context.Context) error {
		return s.assignByProjectID(ctx, req.ProjectID)
	})
	return nil
}

// CompleteAssignment marks an assignment completed and refreshes its work
// history and details.
func (s *Service) CompleteAssignment(ctx context.Context, assignProjectID string) error {
	if err := requireID("assignProjectId", assignProjectID); err != nil {
		return err
	}
	body := domain.StatusUpdate{Status: domain.StatusCompleted}
	err := s.send(ctx, backend.Request{Method: http.MethodPut, Path: routeUpdateWorkStatus, Params: byID(assignProjectID), Body: body, Auth: true}, nil)
	if err != nil {
		return backend.AsError(err).WithFallback("Failed to update status.")
	}
	s.reconcile(ctx, "complete assignment", s.assignmentViews(assignProjectID)...)
	return nil
}

// assignmentViews refreshes the stores showing one assignment.
func (s *Service) assignmentViews(assignProjectID string) []func(context.Context) error {
	return []func(context.Context) error{
		func(ctx context.Context) error { return s.workHistory(ctx, assignProjectID) },
		func(ctx context.Context) error { return s.projectDetails(ctx, assignProjectID) },
	}
}
