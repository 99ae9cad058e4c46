package repository

import (
	"encoding/json"
	"reflect"

	"github.com/bassista/go_sitework/internal/domain"
)

// Metadata holds versioning info for optimistic locking.
type Metadata struct {
	LastUpdate int64 `json:"lastUpdate"` // Unix timestamp in milliseconds
}

// Document is the persisted snapshot of every store's data. Field names match
// the store keys. Loading and error flags are never persisted.
type Document struct {
	Metadata                 Metadata               `json:"metadata"`
	Auth                     domain.Session         `json:"auth"`
	AllUsers                 []domain.User          `json:"allUsers" validate:"dive"`
	UserDetailByID           *domain.User           `json:"userDetailById"`
	UserProjects             []domain.AssignProject `json:"userProjects" validate:"dive"`
	Projects                 []domain.Project       `json:"projects" validate:"dive"`
	ProjectByProjectID       domain.Project         `json:"projectByProjectId"`
	AssignedProjects         []domain.AssignProject `json:"assignedProjects" validate:"dive"`
	AssignProjectByProjectID []domain.AssignProject `json:"assignProjectByProjectId" validate:"dive"`
	Materials                []domain.Material      `json:"materials" validate:"dive"`
	UserDetail               *domain.User           `json:"userDetail"`
	ProfileThumbnail         string                 `json:"profileThumbnail"`
	WorkHistory              []domain.Work          `json:"workHistory" validate:"dive"`
	ProjectDetails           domain.ProjectDetails  `json:"projectDetails"`
}

// ApplyDefaults sets fallback values after decode.
func (d *Document) ApplyDefaults() {
	if d.AllUsers == nil {
		d.AllUsers = []domain.User{}
	}
	if d.UserProjects == nil {
		d.UserProjects = []domain.AssignProject{}
	}
	if d.Projects == nil {
		d.Projects = []domain.Project{}
	}
	if d.ProjectByProjectID.ProjectPdf == nil {
		d.ProjectByProjectID.ProjectPdf = domain.FileList{}
	}
	if d.AssignedProjects == nil {
		d.AssignedProjects = []domain.AssignProject{}
	}
	if d.AssignProjectByProjectID == nil {
		d.AssignProjectByProjectID = []domain.AssignProject{}
	}
	if d.Materials == nil {
		d.Materials = []domain.Material{}
	}
	if d.WorkHistory == nil {
		d.WorkHistory = []domain.Work{}
	}
}

// AreDocumentsEqual compares two Documents ignoring Metadata.
func AreDocumentsEqual(a, b *Document) bool {
	if a == nil || b == nil {
		return a == b
	}

	aBytes, err := json.Marshal(a)
	if err != nil {
		return false
	}
	bBytes, err := json.Marshal(b)
	if err != nil {
		return false
	}

	var aMap, bMap map[string]interface{}
	if err := json.Unmarshal(aBytes, &aMap); err != nil {
		return false
	}
	if err := json.Unmarshal(bBytes, &bMap); err != nil {
		return false
	}

	delete(aMap, "metadata")
	delete(bMap, "metadata")

	return reflect.DeepEqual(aMap, bMap)
}
