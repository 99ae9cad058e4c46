package service

import (
	"context"
	"net/http"
	"strings"

	"github.com/bassista/go_sitework/internal/backend"
	"github.com/bassista/go_sitework/internal/domain"
)

// Login exchanges credentials for a token and records the session in the
// auth store. The token is returned to the caller and never stored.
func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResult, error) {
	req.Email = strings.TrimSpace(req.Email)
	if strings.TrimSpace(req.Password) == "" {
		req.Password = ""
	}
	if err := check(req); err != nil {
		return domain.LoginResult{}, err
	}

	var result domain.LoginResult
	_, err := s.stores.Auth.Fetch(ctx, func(ctx context.Context) (domain.Session, error) {
		err := s.client.Do(ctx, backend.Request{Method: http.MethodPost, Path: routeLogin, Body: req}, &result)
		if err == nil && result.Token == "" {
			err = &backend.Error{Kind: backend.KindDecode, Message: "login response carried no token"}
		}
		if err != nil {
			return domain.Session{}, err
		}
		return domain.Session{Name: result.Name, Role: result.Role}, nil
	})
	if err != nil {
		return domain.LoginResult{}, err
	}
	return result, nil
}

// Logout signs out on the backend and clears the session-bound stores.
func (s *Service) Logout(ctx context.Context) error {
	err := s.send(ctx, backend.Request{Method: http.MethodPost, Path: routeSignout, Body: struct{}{}, Auth: true}, nil)
	if err != nil {
		return backend.AsError(err).WithFallback("Failed to log out. Please try again.")
	}
	s.stores.Auth.Clear()
	s.stores.UserDetail.Clear()
	s.stores.ProfileThumbnail.Clear()
	return nil
}

// SendOTP asks the backend to mail a password reset code.
func (s *Service) SendOTP(ctx context.Context, req domain.SendOTPRequest) error {
	req.Email = strings.TrimSpace(req.Email)
	if err := check(req); err != nil {
		return err
	}
	err := s.send(ctx, backend.Request{Method: http.MethodPost, Path: routeSendOTP, Body: req}, nil)
	if err != nil {
		return backend.AsError(err).WithFallback("Failed to send OTP.")
	}
	return nil
}

// ResetPassword sets a new password using a mailed code.
func (s *Service) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	req.Email = strings.TrimSpace(req.Email)
	req.OTPCode = strings.TrimSpace(req.OTPCode)
	if err := check(req); err != nil {
		return err
	}
	err := s.send(ctx, backend.Request{Method: http.MethodPost, Path: routeForgetPassword, Body: req}, nil)
	if err != nil {
		return backend.AsError(err).WithFallback("Failed to reset password.")
	}
	return nil
}

// ChangePassword changes the password of the signed-in user.
func (s *Service) ChangePassword(ctx context.Context, req domain.ChangePasswordRequest) error {
	if err := check(req); err != nil {
		return err
	}
	err := s.send(ctx, backend.Request{Method: http.MethodPut, Path: routeEditPassword, Body: req, Auth: true}, nil)
	if err != nil {
		return backend.AsError(err).WithFallback("Failed to update password. Please try again.")
	}
	return nil
}
