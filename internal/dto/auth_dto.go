package dto

// Roles accepted by the login and token endpoints.
const (
	RoleInstitute = "institute"
	RoleStudent   = "student"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

type UserInfo struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	InstituteName string `json:"institute_name,omitempty"`
	BranchName    string `json:"branch_name,omitempty"`
}

type LoginResponse struct {
	Token        string   `json:"token"`
	RefreshToken string   `json:"refreshToken"`
	User         UserInfo `json:"user"`
}

type InstituteRegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Address  string `json:"address" binding:"required"`
}

type StudentRegisterRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	InstituteID uint   `json:"instituteId" binding:"required"`
	BranchID    uint   `json:"branchId"`
}

type BulkStudentEntry struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Branch   string `json:"branch"`
}

type BulkRegisterRequest struct {
	InstituteID uint               `json:"instituteId" binding:"required"`
	Students    []BulkStudentEntry `json:"students" binding:"required"`
}

// BulkRowError reports one rejected row of a bulk upload. The batch is
// all-or-nothing: any row error aborts every insert.
type BulkRowError struct {
	Email  string `json:"email"`
	Reason string `json:"reason"`
}

type BulkRegisterErrorResponse struct {
	Message string         `json:"message"`
	Errors  []BulkRowError `json:"errors"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
	UserType     string `json:"userType" binding:"required"`
}

type RefreshTokenResponse struct {
	Token string `json:"token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
	UserType     string `json:"userType" binding:"required"`
}
