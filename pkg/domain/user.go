package domain

import "time"

// Roles assigned by the backend.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the identity returned by the profile endpoint. The client does not
// interpret it beyond presence and the superuser/role flags.
type User struct {
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	FirstName   string    `json:"first_name,omitempty"`
	LastName    string    `json:"last_name,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	Role        string    `json:"role,omitempty"`
	ProfileURL  string    `json:"profile_url,omitempty"`
	IsSuperuser bool      `json:"is_superuser,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsAdmin reports whether the user may reach admin-only screens.
func (u *User) IsAdmin() bool {
	if u == nil {
		return false
	}
	return u.IsSuperuser || u.Role == RoleAdmin
}

// DisplayName returns the full name when set, otherwise the username or email.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	switch {
	case name != "":
		return name
	case u.Username != "":
		return u.Username
	default:
		return u.Email
	}
}
