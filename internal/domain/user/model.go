package user

import "fmt"

// Role gates access at the route level.
type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RoleParticipant Role = "PARTICIPANT"
)

// User is an account in the league. Credentials are stored and compared as
// plain text; hardening auth is out of scope for this system.
type User struct {
	ID          string
	FullName    string
	Email       string
	Password    string
	ProfileLink string
	Role        Role
}

func (u User) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("user id is required")
	}
	if u.FullName == "" {
		return fmt.Errorf("full name is required")
	}
	if u.Email == "" {
		return fmt.Errorf("email is required")
	}
	if u.Role != RoleAdmin && u.Role != RoleParticipant {
		return fmt.Errorf("invalid role: %s", u.Role)
	}

	return nil
}

// Principal identifies an authenticated caller inside request contexts.
type Principal struct {
	UserID   string
	FullName string
	Role     Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
