package domain

// Request payloads. Fields tagged json:"-" are sent as multipart file parts.

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type SendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Email    string `json:"email" validate:"required,email"`
	OTPCode  string `json:"otpcode" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

type RegisterUserRequest struct {
	Name      string `json:"name" validate:"required"`
	Phone     string `json:"phone" validate:"required,phone10"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Thumbnail string `json:"-" validate:"required"`
}

type UpdateUserRequest struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required,phone10"`
}

type MaterialRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
}

type ProjectRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	StartDate   string   `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate     string   `json:"endDate" validate:"required,datetime=2006-01-02"`
	Size        string   `json:"size" validate:"required"`
	MaterialID  string   `json:"materialId,omitempty"`
	Thumbnails  []string `json:"-"`
	PDF         string   `json:"-"`
}

// ProjectUpdate edits an existing project. Dates that are empty or not in
// YYYY-MM-DD form are replaced with today's date before sending.
type ProjectUpdate struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Thumbnails  []string `json:"-"`
}

type AssignRequest struct {
	ProjectID   string   `json:"projectId" validate:"required"`
	UserIDs     []string `json:"userId" validate:"min=1,dive,required"`
	Description string   `json:"description" validate:"required"`
}

type WorkRequest struct {
	AssignProjectID string   `json:"workId" validate:"required"`
	Description     string   `json:"description" validate:"required"`
	Thumbnails      []string `json:"-" validate:"min=1"`
}

type WorkUpdate struct {
	WorkID          string   `json:"workId" validate:"required"`
	AssignProjectID string   `json:"assignProjectId" validate:"required"`
	Description     string   `json:"description" validate:"required"`
	Thumbnails      []string `json:"-"`
}

type DeleteWorkRequest struct {
	AssignProjectID string `json:"assignProjectId" validate:"required"`
	WorkID          string `json:"workId" validate:"required"`
}

type StatusUpdate struct {
	Status string `json:"status" validate:"required,oneof=pending completed"`
}

type NameUpdate struct {
	Name string `json:"name" validate:"required"`
}

type PhoneUpdate struct {
	Phone string `json:"phone" validate:"required,phone10"`
}
