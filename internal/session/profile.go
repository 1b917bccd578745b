package session

import (
	"fmt"
	"slices"
	"strings"
)

// Role is the authorization role of a user as reported by the backend.
type Role string

const (
	RoleEmployee  Role = "employee"
	RoleAdmin     Role = "admin"
	RoleSuperuser Role = "superuser"
)

// Roles lists every role the backend may assign.
var Roles = []Role{RoleEmployee, RoleAdmin, RoleSuperuser}

// ParseRole converts s into a Role. Matching is case-insensitive and
// ignores surrounding whitespace.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		names := make([]string, len(Roles))
		for i, known := range Roles {
			names[i] = string(known)
		}
		return "", fmt.Errorf("unknown role %q: must be one of %s", s, strings.Join(names, ", "))
	}
	return r, nil
}

// Valid reports whether r belongs to the closed set of roles.
func (r Role) Valid() bool {
	return slices.Contains(Roles, r)
}

// Privileged reports whether r may use the organization-wide admin routes.
func (r Role) Privileged() bool {
	return r == RoleAdmin || r == RoleSuperuser
}

func (r Role) String() string { return string(r) }

// Profile is the authenticated identity of the current user.
type Profile struct {
	ID         int    `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	Name       string `json:"name,omitempty"`
	Department string `json:"department,omitempty"`
	Address    string `json:"address,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// DisplayName returns the best human-readable name for the profile.
func (p Profile) DisplayName() string {
	switch {
	case p.Name != "":
		return p.Name
	case p.Username != "":
		return p.Username
	default:
		return p.Email
	}
}
