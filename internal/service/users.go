package service

import (
	"context"
	"net/http"
	"strings"

	"github.com/bassista/go_sitework/internal/backend"
	"github.com/bassista/go_sitework/internal/domain"
)

// RegisterUser creates an account with a profile picture, then refreshes the
// user list.
func (s *Service) RegisterUser(ctx context.Context, req domain.RegisterUserRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	if err := check(req); err != nil {
		return err
	}

	form := backend.NewMultipart().
		Field("name", req.Name).
		Field("phone", req.Phone).
		Field("email", req.Email).
		Field("password", req.Password).
		File(fileProfileThumbnail, req.Thumbnail)
	err := s.send(ctx, backend.Request{Method: http.MethodPost, Path: routeRegisterUser, Form: form, Auth: true}, nil)
	if err != nil {
		return backend.AsError(err).WithFallback("Failed to add user.")
	}
	s.reconcile(ctx, "register user", s.allUsers)
	return nil
}

// UpdateUser edits another user's name and phone.
func (s *Service) UpdateUser(ctx context.Context, userID string, req domain.UpdateUserRequest) error {
	if err := requireID("userId", userID); err != nil {
		return err
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	if err := check(req); err != nil {
		return err
	}

	err := s.send(ctx, backend.Request{Method: http.MethodPut, Path: routeUpdateUser, Params: byID(userID), Body: req, Auth: true}, nil)
	if err != nil {
		return backend.AsError(err).WithFallback("Failed to update user.")
	}
	s.reconcile(ctx, "update user",
		func(ctx context.Context) error { return s.userByID(ctx, userID) },
		s.allUsers,
	)
	return nil
}

// DeleteUser removes a user and refreshes the user list.
func (s *Service) DeleteUser(ctx context.Context, userID string) error {
	if err := requireID("userId", userID); err != nil {
		return err
	}
	err := s.send(ctx, backend.Request{Method: http.MethodDelete, Path: routeDeleteUser, Params: byID(userID), Auth: true}, nil)
	if err != nil {
		return backend.AsError(err).WithFallback("Failed to delete user.")
	}
	s.reconcile(ctx, "delete user", s.allUsers)
	return nil
}

// UpdateName renames the signed-in user.
func (s *Service) UpdateName(ctx context.Context, name string) error {
	req := domain.NameUpdate{Name: strings.TrimSpace(name)}
	if err := check(req); err != nil {
		return err
	}
	err := s.send(ctx, backend.Request{Method: http.MethodPut, Path: routeUpdateName, Body: req, Auth: true}, nil)
	if err != nil {
		return backend.AsError(err).WithFallback("Unable to update name.")
	}
	s.reconcile(ctx, "update name", s.userDetail)
	return nil
}

// UpdatePhone changes the signed-in user's phone number.
func (s *Service) UpdatePhone(ctx context.Context, phone string) error {
	req := domain.PhoneUpdate{Phone: strings.TrimSpace(phone)}
	if err := check(req); err != nil {
		return err
	}
	err := s.send(ctx, backend.Request{Method: http.MethodPut, Path: routeUpdatePhone, Body: req, Auth: true}, nil)
	if err != nil {
		return backend.AsError(err).WithFallback("Unable to update phone number.")
	}
	s.reconcile(ctx, "update phone", s.userDetail)
	return nil
}

// UpdateThumbnail uploads a new profile picture for the signed-in user.
func (s *Service) UpdateThumbnail(ctx context.Context, path string) error {
	if err := requireID("profileThumbnail", path); err != nil {
		return err
	}
	form := backend.NewMultipart().File(fileProfileThumbnail, path)
	err := s.send(ctx, backend.Request{Method: http.MethodPut, Path: routeUpdateThumb, Form: form, Auth: true}, nil)
	if err != nil {
		return backend.AsError(err).WithFallback("Unable to update profile picture.")
	}
	s.reconcile(ctx, "update thumbnail", s.userDetail, s.profileThumbnail)
	return nil
}

// ClearUserDetailByID resets the per-user detail store.
func (s *Service) ClearUserDetailByID() {
	s.stores.UserDetailByID.Clear()
}

// ClearUserProjects resets the per-user project list.
func (s *Service) ClearUserProjects() {
	s.stores.UserProjects.Clear()
}
