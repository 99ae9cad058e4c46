package cache

import (
	"encoding/json"
	"sort"
	"sync"

	"github.com/bassista/go_sitework/internal/domain"
	"github.com/bassista/go_sitework/internal/repository"
)

// Store keys.
const (
	KeyAuth                     = "auth"
	KeyAllUsers                 = "allUsers"
	KeyUserDetailByID           = "userDetailById"
	KeyUserProjects             = "userProjects"
	KeyProjects                 = "projects"
	KeyProjectByProjectID       = "projectByProjectId"
	KeyAssignedProjects         = "assignedProjects"
	KeyAssignProjectByProjectID = "assignProjectByProjectId"
	KeyMaterials                = "materials"
	KeyUserDetail               = "userDetail"
	KeyProfileThumbnail         = "profileThumbnail"
	KeyWorkHistory              = "workHistory"
	KeyProjectDetails           = "projectDetails"
)

// Stores is the root aggregator: every resource store under its key, plus the
// dirty/lastUpdate bookkeeping used for persistence.
type Stores struct {
	Auth                     *Resource[domain.Session]
	AllUsers                 *Resource[[]domain.User]
	UserDetailByID           *Resource[*domain.User]
	UserProjects             *Resource[[]domain.AssignProject]
	Projects                 *Resource[[]domain.Project]
	ProjectByProjectID       *Resource[domain.Project]
	AssignedProjects         *Resource[[]domain.AssignProject]
	AssignProjectByProjectID *Resource[[]domain.AssignProject]
	Materials                *Resource[[]domain.Material]
	UserDetail               *Resource[*domain.User]
	ProfileThumbnail         *Resource[string]
	WorkHistory              *Resource[[]domain.Work]
	ProjectDetails           *Resource[domain.ProjectDetails]

	byName map[string]Named

	mu         sync.RWMutex
	dirty      bool   // true if any store changed since last persist
	lastUpdate int64  // metadata.lastUpdate of the last persisted or loaded document
	changes    uint64 // count of change notices, see Replace
}

// NewStores creates every store in its initial state.
func NewStores() *Stores {
	s := &Stores{
		Auth:                     NewResource(KeyAuth, "Login failed", func() domain.Session { return domain.Session{} }),
		AllUsers:                 NewList[domain.User](KeyAllUsers, "Failed to fetch users"),
		UserDetailByID:           NewResource(KeyUserDetailByID, "Failed to fetch user details.", func() *domain.User { return nil }),
		UserProjects:             NewList[domain.AssignProject](KeyUserProjects, "Failed to fetch projects."),
		Projects:                 NewList[domain.Project](KeyProjects, "Failed to fetch projects"),
		ProjectByProjectID:       NewResource(KeyProjectByProjectID, "Failed to fetch project", emptyProject),
		AssignedProjects:         NewList[domain.AssignProject](KeyAssignedProjects, "Failed to fetch assigned projects"),
		AssignProjectByProjectID: NewList[domain.AssignProject](KeyAssignProjectByProjectID, "Failed to fetch assigned users"),
		Materials:                NewList[domain.Material](KeyMaterials, "Failed to fetch materials"),
		UserDetail:               NewResource(KeyUserDetail, "Failed to fetch user details", func() *domain.User { return nil }),
		ProfileThumbnail:         NewResource(KeyProfileThumbnail, "Failed to fetch profile thumbnail", func() string { return "" }),
		WorkHistory:              NewList[domain.Work](KeyWorkHistory, "Failed to fetch work history"),
		ProjectDetails:           NewResource(KeyProjectDetails, "Failed to fetch project details", func() domain.ProjectDetails { return domain.ProjectDetails{} }),
	}

	s.byName = map[string]Named{}
	for _, n := range []Named{
		s.Auth, s.AllUsers, s.UserDetailByID, s.UserProjects, s.Projects,
		s.ProjectByProjectID, s.AssignedProjects, s.AssignProjectByProjectID,
		s.Materials, s.UserDetail, s.ProfileThumbnail, s.WorkHistory, s.ProjectDetails,
	} {
		s.byName[n.Name()] = n
		n.Subscribe(s.markChanged)
	}
	return s
}

func emptyProject() domain.Project {
	return domain.Project{ProjectPdf: domain.FileList{}}
}

// Get returns the store registered under name.
func (s *Stores) Get(name string) (Named, bool) {
	n, ok := s.byName[name]
	return n, ok
}

// Names returns every store key in sorted order.
func (s *Stores) Names() []string {
	names := make([]string, 0, len(s.byName))
	for name := range s.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// States returns a deep copy of every store's state keyed by name.
func (s *Stores) States() (map[string]any, error) {
	out := make(map[string]any, len(s.byName))
	for name, n := range s.byName {
		v, err := n.View()
		if err != nil {
			return nil, err
		}
		out[name] = v
	}
	return out, nil
}

// StatesJSON renders States as JSON.
func (s *Stores) StatesJSON() ([]byte, error) {
	states, err := s.States()
	if err != nil {
		return nil, err
	}
	return json.Marshal(states)
}

// ClearAll resets every store.
func (s *Stores) ClearAll() {
	for _, n := range s.byName {
		n.Clear()
	}
}

func (s *Stores) markChanged() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.changes++
	s.dirty = true
}

// MarkDirty sets the dirty flag to true.
func (s *Stores) MarkDirty() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty = true
}

// IsDirty returns true if any store has changes not yet persisted.
func (s *Stores) IsDirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// ClearDirty resets the dirty flag.
func (s *Stores) ClearDirty() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty = false
}

// GetLastUpdate returns the last update timestamp.
func (s *Stores) GetLastUpdate() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdate
}

// SetLastUpdate sets the last update timestamp.
func (s *Stores) SetLastUpdate(ts int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUpdate = ts
}

// Snapshot returns a deep copy of every store's data as a persistable document.
func (s *Stores) Snapshot() (repository.Document, error) {
	doc := repository.Document{
		Metadata:                 repository.Metadata{LastUpdate: s.GetLastUpdate()},
		Auth:                     s.Auth.Data(),
		AllUsers:                 s.AllUsers.Data(),
		UserDetailByID:           s.UserDetailByID.Data(),
		UserProjects:             s.UserProjects.Data(),
		Projects:                 s.Projects.Data(),
		ProjectByProjectID:       s.ProjectByProjectID.Data(),
		AssignedProjects:         s.AssignedProjects.Data(),
		AssignProjectByProjectID: s.AssignProjectByProjectID.Data(),
		Materials:                s.Materials.Data(),
		UserDetail:               s.UserDetail.Data(),
		ProfileThumbnail:         s.ProfileThumbnail.Data(),
		WorkHistory:              s.WorkHistory.Data(),
		ProjectDetails:           s.ProjectDetails.Data(),
	}
	return clone(doc)
}

// Replace installs the data of doc into every store and adopts its
// lastUpdate. The installs raise no change notices. The aggregator is clean
// afterwards unless some store changed while Replace ran.
func (s *Stores) Replace(doc repository.Document) error {
	cloned, err := clone(doc)
	if err != nil {
		return err
	}
	cloned.ApplyDefaults()

	s.mu.RLock()
	seen := s.changes
	s.mu.RUnlock()

	s.Auth.install(cloned.Auth)
	s.AllUsers.install(cloned.AllUsers)
	s.UserDetailByID.install(cloned.UserDetailByID)
	s.UserProjects.install(cloned.UserProjects)
	s.Projects.install(cloned.Projects)
	s.ProjectByProjectID.install(cloned.ProjectByProjectID)
	s.AssignedProjects.install(cloned.AssignedProjects)
	s.AssignProjectByProjectID.install(cloned.AssignProjectByProjectID)
	s.Materials.install(cloned.Materials)
	s.UserDetail.install(cloned.UserDetail)
	s.ProfileThumbnail.install(cloned.ProfileThumbnail)
	s.WorkHistory.install(cloned.WorkHistory)
	s.ProjectDetails.install(cloned.ProjectDetails)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.changes == seen {
		s.dirty = false
	}
	s.lastUpdate = doc.Metadata.LastUpdate
	return nil
}
