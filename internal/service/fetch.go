package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/bassista/go_sitework/internal/backend"
	"github.com/bassista/go_sitework/internal/cache"
	"github.com/bassista/go_sitework/internal/domain"
	"github.com/bassista/go_sitework/internal/logger"
	"golang.org/x/sync/errgroup"
)

func (s *Service) FetchAllUsers(ctx context.Context) (cache.State[[]domain.User], error) {
	return load(ctx, s, s.stores.AllUsers, get(routeAllUsers, "users", nil))
}

func (s *Service) FetchUserDetailByID(ctx context.Context, userID string) (cache.State[*domain.User], error) {
	return load(ctx, s, s.stores.UserDetailByID, get(routeUserByID, "user", byID(userID)))
}

func (s *Service) FetchProjectsByUserID(ctx context.Context, userID string) (cache.State[[]domain.AssignProject], error) {
	return load(ctx, s, s.stores.UserProjects, get(routeUserProjects, "projects", byID(userID)))
}

func (s *Service) FetchProjects(ctx context.Context) (cache.State[[]domain.Project], error) {
	return load(ctx, s, s.stores.Projects, get(routeProjects, "projects", nil))
}

func (s *Service) FetchProjectByID(ctx context.Context, projectID string) (cache.State[domain.Project], error) {
	return s.stores.ProjectByProjectID.Fetch(ctx, func(ctx context.Context) (domain.Project, error) {
		out := domain.Project{ProjectPdf: domain.FileList{}}
		err := s.client.Do(ctx, get(routeProjectByID, "project", byID(projectID)), &out)
		if out.ProjectPdf == nil {
			out.ProjectPdf = domain.FileList{}
		}
		return out, err
	})
}

func (s *Service) FetchAssignedProjects(ctx context.Context) (cache.State[[]domain.AssignProject], error) {
	return load(ctx, s, s.stores.AssignedProjects, get(routeAssignedProjects, "projects", nil))
}

func (s *Service) FetchAssignProjectByProjectID(ctx context.Context, projectID string) (cache.State[[]domain.AssignProject], error) {
	return load(ctx, s, s.stores.AssignProjectByProjectID, get(routeAssignByProjectID, "projects", byID(projectID)))
}

func (s *Service) FetchMaterials(ctx context.Context) (cache.State[[]domain.Material], error) {
	return load(ctx, s, s.stores.Materials, get(routeMaterials, "materials", nil))
}

// FetchMaterialByID reads one material without touching any store.
func (s *Service) FetchMaterialByID(ctx context.Context, materialID string) (*domain.Material, error) {
	if err := requireID("materialId", materialID); err != nil {
		return nil, err
	}
	var out *domain.Material
	if err := s.send(ctx, get(routeMaterialByID, "material", byID(materialID)), &out); err != nil {
		return nil, backend.AsError(err).WithFallback("Failed to fetch material data.")
	}
	if out == nil {
		return nil, &backend.Error{Kind: backend.KindDecode, Message: "Material data not found."}
	}
	return out, nil
}

func (s *Service) FetchUserDetails(ctx context.Context) (cache.State[*domain.User], error) {
	return load(ctx, s, s.stores.UserDetail, get(routeUserDetail, "user", nil))
}

func (s *Service) FetchProfileThumbnail(ctx context.Context) (cache.State[string], error) {
	return load(ctx, s, s.stores.ProfileThumbnail, get(routeProfileThumb, "profileThumbnail", nil))
}

// FetchWorkByProjectID loads the work history of an assignment.
func (s *Service) FetchWorkByProjectID(ctx context.Context, assignProjectID string) (cache.State[[]domain.Work], error) {
	return load(ctx, s, s.stores.WorkHistory, get(routeWorkByAssignmentID, "works", byID(assignProjectID)))
}

func (s *Service) FetchProjectDetails(ctx context.Context, projectID string) (cache.State[domain.ProjectDetails], error) {
	return load(ctx, s, s.stores.ProjectDetails, get(routeProjectDetails, "", byID(projectID)))
}

// Fetcher refreshes one store; id is ignored by stores that take none.
type Fetcher struct {
	NeedsID bool
	Fetch   func(ctx context.Context, id string) error
}

// Fetchers maps every remotely backed store key to its fetch operation.
func (s *Service) Fetchers() map[string]Fetcher {
	noID := func(f func(context.Context) error) Fetcher {
		return Fetcher{Fetch: func(ctx context.Context, _ string) error { return f(ctx) }}
	}
	withID := func(f func(context.Context, string) error) Fetcher {
		return Fetcher{NeedsID: true, Fetch: f}
	}
	return map[string]Fetcher{
		cache.KeyAllUsers:                 noID(s.allUsers),
		cache.KeyUserDetailByID:           withID(s.userByID),
		cache.KeyUserProjects:             withID(s.userProjects),
		cache.KeyProjects:                 noID(s.projects),
		cache.KeyProjectByProjectID:       withID(s.projectByID),
		cache.KeyAssignedProjects:         noID(s.assignedProjects),
		cache.KeyAssignProjectByProjectID: withID(s.assignByProjectID),
		cache.KeyMaterials:                noID(s.materials),
		cache.KeyUserDetail:               noID(s.userDetail),
		cache.KeyProfileThumbnail:         noID(s.profileThumbnail),
		cache.KeyWorkHistory:              withID(s.workHistory),
		cache.KeyProjectDetails:           withID(s.projectDetails),
	}
}

// FetchByName refreshes the store registered under name.
func (s *Service) FetchByName(ctx context.Context, name, id string) error {
	f, ok := s.Fetchers()[name]
	if !ok {
		return backend.Validation("store %q cannot be fetched", name)
	}
	if f.NeedsID {
		if err := requireID("id", id); err != nil {
			return backend.Validation("store %q needs an id", name)
		}
	}
	return f.Fetch(ctx, id)
}

// FetchableNames lists the keys accepted by FetchByName.
func (s *Service) FetchableNames() []string {
	fetchers := s.Fetchers()
	names := make([]string, 0, len(fetchers))
	for name := range fetchers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RefreshAll re-fetches every list store that takes no id, concurrently.
// Every fetch runs to completion; the first failure is returned.
func (s *Service) RefreshAll(ctx context.Context) error {
	if _, ok := backend.TokenFrom(ctx); !ok {
		return backend.MissingToken()
	}
	fetches := map[string]func(context.Context) error{
		cache.KeyAllUsers:         s.allUsers,
		cache.KeyProjects:         s.projects,
		cache.KeyAssignedProjects: s.assignedProjects,
		cache.KeyMaterials:        s.materials,
		cache.KeyUserDetail:       s.userDetail,
		cache.KeyProfileThumbnail: s.profileThumbnail,
	}

	log := logger.WithComponent("service")
	var g errgroup.Group
	for name, fetch := range fetches {
		g.Go(func() error {
			if err := fetch(ctx); err != nil {
				log.Debugf("refresh %s failed: %v", name, err)
				return fmt.Errorf("%s: %w", name, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		be := backend.AsError(err)
		return &backend.Error{Kind: be.Kind, Status: be.Status, Message: err.Error(), Cause: err}
	}
	return nil
}

func (s *Service) allUsers(ctx context.Context) error {
	_, err := s.FetchAllUsers(ctx)
	return err
}

func (s *Service) userByID(ctx context.Context, id string) error {
	_, err := s.FetchUserDetailByID(ctx, id)
	return err
}

func (s *Service) userProjects(ctx context.Context, id string) error {
	_, err := s.FetchProjectsByUserID(ctx, id)
	return err
}

func (s *Service) projects(ctx context.Context) error {
	_, err := s.FetchProjects(ctx)
	return err
}

func (s *Service) projectByID(ctx context.Context, id string) error {
	_, err := s.FetchProjectByID(ctx, id)
	return err
}

func (s *Service) assignedProjects(ctx context.Context) error {
	_, err := s.FetchAssignedProjects(ctx)
	return err
}

func (s *Service) assignByProjectID(ctx context.Context, id string) error {
	_, err := s.FetchAssignProjectByProjectID(ctx, id)
	return err
}

func (s *Service) materials(ctx context.Context) error {
	_, err := s.FetchMaterials(ctx)
	return err
}

func (s *Service) userDetail(ctx context.Context) error {
	_, err := s.FetchUserDetails(ctx)
	return err
}

func (s *Service) profileThumbnail(ctx context.Context) error {
	_, err := s.FetchProfileThumbnail(ctx)
	return err
}

func (s *Service) workHistory(ctx context.Context, id string) error {
	_, err := s.FetchWorkByProjectID(ctx, id)
	return err
}

func (s *Service) projectDetails(ctx context.Context, id string) error {
	_, err := s.FetchProjectDetails(ctx, id)
	return err
}
