package domain

// Identified is implemented by every document addressed by a backend id.
type Identified interface {
	Identity() string
}

// Assignment statuses.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// Roles returned by login.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is a backend account.
type User struct {
	ID               string `json:"_id" validate:"required"`
	Name             string `json:"name"`
	Email            string `json:"email,omitempty"`
	Phone            Text   `json:"phone,omitempty"`
	Role             string `json:"role,omitempty"`
	ProfileThumbnail string `json:"profileThumbnail,omitempty"`
	EmailVerified    bool   `json:"emailVerified,omitempty"`
	CreatedAt        string `json:"createdAt,omitempty"`
	UpdatedAt        string `json:"updatedAt,omitempty"`
}

func (u User) Identity() string { return u.ID }

// Material is a building material that can be attached to a project.
type Material struct {
	ID          string `json:"_id" validate:"required"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

func (m Material) Identity() string { return m.ID }

// Project is a unit of work with optional thumbnails and a PDF.
type Project struct {
	ID               string        `json:"_id,omitempty"`
	Name             string        `json:"name,omitempty"`
	Description      string        `json:"description,omitempty"`
	StartDate        string        `json:"startDate,omitempty"`
	EndDate          string        `json:"endDate,omitempty"`
	Size             Text          `json:"size,omitempty"`
	MaterialID       Ref[Material] `json:"materialId"`
	ProjectThumbnail FileList      `json:"projectThumbnail"`
	ProjectPdf       FileList      `json:"projectPdf"`
	CreatedAt        string        `json:"createdAt,omitempty"`
}

func (p Project) Identity() string { return p.ID }

// AssignProject links a project to the users tasked with it.
type AssignProject struct {
	ID          string       `json:"_id" validate:"required"`
	ProjectID   Ref[Project] `json:"projectId"`
	UserID      []Ref[User]  `json:"userId"`
	Description string       `json:"description,omitempty"`
	Status      string       `json:"status,omitempty"`
	CreatedAt   string       `json:"createdAt,omitempty"`
}

func (a AssignProject) Identity() string { return a.ID }

// Completed reports whether the assignment has been marked complete.
func (a AssignProject) Completed() bool {
	return a.Status == StatusCompleted
}

// Work is one work-history record logged against an assignment.
type Work struct {
	ID              string             `json:"_id" validate:"required"`
	AssignProjectID Ref[AssignProject] `json:"assignProjectId"`
	Description     string             `json:"description,omitempty"`
	WorkThumbnail   FileList           `json:"workThumbnail"`
	CreatedAt       string             `json:"createdAt,omitempty"`
}

func (w Work) Identity() string { return w.ID }

// ProjectDetails combines a project with its assignment.
type ProjectDetails struct {
	Project       *Project       `json:"project,omitempty"`
	AssignProject *AssignProject `json:"assignProject,omitempty"`
}

// Session is the authenticated identity; the token itself is never stored.
type Session struct {
	Name string `json:"name,omitempty"`
	Role string `json:"role,omitempty"`
}

// IsAdmin reports whether the session has the admin role.
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// LoginResult is the body of a successful login.
type LoginResult struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}
