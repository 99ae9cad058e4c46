// Package service implements the fetch and mutation operations behind every
// resource store. Each operation returns nil or a *backend.Error.
package service

import (
	"context"
	"net/http"

	"github.com/bassista/go_sitework/internal/backend"
	"github.com/bassista/go_sitework/internal/cache"
	"github.com/bassista/go_sitework/internal/logger"
)

// Doer performs backend requests; *backend.Client implements it.
type Doer interface {
	Do(ctx context.Context, req backend.Request, out any) error
}

// Service binds the backend client to the stores it keeps in sync.
type Service struct {
	client Doer
	stores *cache.Stores
}

// New creates a Service.
func New(client Doer, stores *cache.Stores) *Service {
	return &Service{client: client, stores: stores}
}

// Stores returns the stores kept in sync by this service.
func (s *Service) Stores() *cache.Stores {
	return s.stores
}

// load fetches req into r, decoding the designated field as T.
func load[T any](ctx context.Context, s *Service, r *cache.Resource[T], req backend.Request) (cache.State[T], error) {
	return r.Fetch(ctx, func(ctx context.Context) (T, error) {
		var out T
		err := s.client.Do(ctx, req, &out)
		return out, err
	})
}

func get(path, field string, params map[string]string) backend.Request {
	return backend.Request{Method: http.MethodGet, Path: path, Params: params, Field: field, Auth: true}
}

func byID(id string) map[string]string {
	return map[string]string{"id": id}
}

// send performs a mutation and normalizes its error.
func (s *Service) send(ctx context.Context, req backend.Request, out any) error {
	if err := s.client.Do(ctx, req, out); err != nil {
		return backend.AsError(err)
	}
	return nil
}

// reconcile runs follow-up fetches after a successful mutation. Their
// failures land in the stores and are only logged.
func (s *Service) reconcile(ctx context.Context, op string, fetches ...func(context.Context) error) {
	for _, fetch := range fetches {
		if err := fetch(ctx); err != nil {
			logger.WithComponent("service").Warnf("%s: reconcile fetch failed: %v", op, err)
		}
	}
}
