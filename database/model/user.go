package model

// Role is the closed set of user roles.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	Id        int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Username  string `json:"username" gorm:"uniqueIndex;not null"`
	Email     string `json:"email" gorm:"uniqueIndex;not null"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Role      Role   `json:"role" gorm:"not null;default:user"`

	// IsSuperuser mirrors the legacy flag; it widens IsAdmin but is not a
	// role of its own.
	IsSuperuser bool `json:"-"`

	// ConfirmationCode is the one-time credential mailed at signup.
	// Cleared after a successful token exchange.
	ConfirmationCode string `json:"-"`
}

// IsAdmin reports whether the user passes admin checks, counting the
// superuser shortcut.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.IsSuperuser
}

func (u *User) IsModerator() bool {
	return u.Role == RoleModerator
}
