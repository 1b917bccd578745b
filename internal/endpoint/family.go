package endpoint

import "strings"

// Family groups backend paths by who they are scoped to.
type Family int

const (
	FamilyUnknown Family = iota
	// FamilyAdmin is the admin-privileged family under admin-api/.
	FamilyAdmin
	// FamilyShared holds the organization-wide attendance and performance
	// collections used by admins and by role-independent actions.
	FamilyShared
	// FamilySelfService is the employee-scoped family under employee-api/.
	FamilySelfService
)

func (f Family) String() string {
	switch f {
	case FamilyAdmin:
		return "admin"
	case FamilyShared:
		return "shared"
	case FamilySelfService:
		return "self-service"
	default:
		return "unknown"
	}
}

// Classify reports which family path belongs to. A leading slash is
// ignored.
func Classify(path string) Family {
	p := strings.TrimPrefix(path, "/")
	switch {
	case strings.HasPrefix(p, "admin-api/"):
		return FamilyAdmin
	case strings.HasPrefix(p, "employee-api/"):
		return FamilySelfService
	case strings.HasPrefix(p, "attendance/"), strings.HasPrefix(p, "performance/"):
		return FamilyShared
	default:
		return FamilyUnknown
	}
}
