package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Full access
	RoleManager  Role = "manager"  // Decides the manager stage of offboarding requests
	RoleHR       Role = "hr"       // Decides the hr stage of offboarding requests
	RoleEmployee Role = "employee" // Regular employee
)

type User struct {
	ID           string
	Identity     string // stable employee identifier (email)
	PasswordHash *string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if user has full access
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanDecideManagerStage checks if user may act on the manager stage
func (u *User) CanDecideManagerStage() bool {
	return u.Role == RoleManager || u.Role == RoleAdmin
}

// CanDecideHRStage checks if user may act on the hr stage
func (u *User) CanDecideHRStage() bool {
	return u.Role == RoleHR || u.Role == RoleAdmin
}
