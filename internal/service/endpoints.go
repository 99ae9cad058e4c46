package service

// Backend routes. Placeholders in braces are filled by the client; the
// ":name" segments are literal parts of the upload routes.
const (
	routeLogin          = "/v1/login"
	routeSignout        = "/v1/signout"
	routeSendOTP        = "/v1/otp-send"
	routeForgetPassword = "/v1/forget-password"
	routeEditPassword   = "/v1/edit-password"

	routeAllUsers       = "/v1/get-all-user"
	routeUserByID       = "/v1/get-user/{id}"
	routeUserProjects   = "/v1/get-user-project/{id}"
	routeUserDetail     = "/v1/user-detail"
	routeProfileThumb   = "/v1/profile-thumbnail"
	routeRegisterUser   = "/v1/user-register/:profileThumbnail"
	routeUpdateUser     = "/v1/update-user/{id}"
	routeDeleteUser     = "/v1/delete-user/{id}"
	routeUpdateName     = "/v1/update-name"
	routeUpdatePhone    = "/v1/update-phone"
	routeUpdateThumb    = "/v1/update-thumbnail/:profileThumbnail"
	routeProjects       = "/v1/get-project"
	routeProjectByID    = "/v1/get-project/{id}"
	routeProjectDetails = "/v1/get-project-details/{id}"
	routeAddProject     = "/v1/add-project/:projectThumbnail/:projectPdf"
	routeUpdateProject  = "/v1/update-project/{id}/projectThumbnail"
	routeDeleteProject  = "/v1/delete-project/{id}"

	routeAssignProject      = "/v1/assign-project"
	routeAssignedProjects   = "/v1/get-assign-project"
	routeAssignByProjectID  = "/v1/get-assign-projectid/{id}"
	routeUpdateWorkStatus   = "/v1/update-work-status/{id}"
	routeMaterials          = "/v1/get-material"
	routeMaterialByID       = "/v1/get-material/{id}"
	routeAddMaterial        = "/v1/add-material"
	routeUpdateMaterial     = "/v1/update-material/{id}"
	routeDeleteMaterial     = "/v1/delete-material/{id}"
	routeWorkByAssignmentID = "/v1/get-work/{id}"
	routeAddWork            = "/v1/add-work/:workThumbnail"
	routeUpdateWork         = "/v1/update-work/:workThumbnail"
	routeDeleteWork         = "/v1/delete-work"
)

// Multipart file fields.
const (
	fileProfileThumbnail = "profileThumbnail"
	fileProjectThumbnail = "projectThumbnail"
	fileProjectPdf       = "projectPdf"
	fileWorkThumbnail    = "workThumbnail"
)
