package model

// Role classifies an account. Tokens may carry a role outside the known
// set, or none at all; such a Role is kept as-is and reported as unknown.
type Role string

const (
	RoleDonor Role = "Donor"
	RoleNGO   Role = "NGO"
	RoleAdmin Role = "Admin"
)

func (r Role) Known() bool {
	switch r {
	case RoleDonor, RoleNGO, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string {
	if r == "" {
		return "Unassigned"
	}
	return string(r)
}

// Session is the in-memory projection of a valid credential token. It is
// never persisted; a nil *Session means anonymous.
type Session struct {
	Token       string
	DisplayName string
	Role        Role
}

func (s *Session) Authenticated() bool {
	return s != nil
}

func (s *Session) Is(role Role) bool {
	return s != nil && s.Role == role
}
