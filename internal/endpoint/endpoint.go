package endpoint

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"emsctl/internal/session"
)

// Kind is a logical resource whose backend path depends on the caller's
// role.
type Kind string

const (
	KindAttendance      Kind = "attendance"
	KindPerformance     Kind = "performance"
	KindEmployeeProfile Kind = "employee-profile"
	KindUserList        Kind = "user-list"
)

// kinds lists every resolvable kind.
var kinds = []Kind{KindAttendance, KindPerformance, KindEmployeeProfile, KindUserList}

// Fixed paths outside the role-dependent collections.
const (
	LoginPath        = "login/"
	SignupPath       = "signup/"
	TokenRefreshPath = "token/refresh/"
	MyProfilePath    = "my-profile/"
	MarkPresentPath  = "employee-api/attendance/mark-present/"
)

var (
	// ErrUnknownKind is returned for a Kind without a route.
	ErrUnknownKind = errors.New("unknown resource kind")

	// ErrNoSelfServiceRoute is returned when a non-privileged role asks for
	// a kind that only exists for administrators.
	ErrNoSelfServiceRoute = errors.New("resource has no self-service route")
)

// InvalidRoleError is returned when resolution is attempted without an
// authenticated role. It points at a sequencing bug in the caller: resource
// operations need a profile first.
type InvalidRoleError struct {
	Role session.Role
}

func (e *InvalidRoleError) Error() string {
	if e.Role == "" {
		return "no authenticated role: log in before accessing resources"
	}
	return fmt.Sprintf("invalid role %q", string(e.Role))
}

type route struct {
	admin    string
	employee string
}

var routes = map[Kind]route{
	KindAttendance:      {admin: "attendance/", employee: "employee-api/attendance/"},
	KindPerformance:     {admin: "performance/", employee: "employee-api/performance/"},
	KindEmployeeProfile: {admin: "admin-api/employees/", employee: "employee-api/profile/"},
	KindUserList:        {admin: "admin-api/users/"},
}

// Resolve returns the collection path for kind as seen by role. Admins and
// superusers get the admin route, everyone else the employee route.
func Resolve(role session.Role, kind Kind) (string, error) {
	if !role.Valid() {
		return "", &InvalidRoleError{Role: role}
	}

	r, ok := routes[kind]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, string(kind))
	}

	if role.Privileged() {
		return r.admin, nil
	}
	if r.employee == "" {
		return "", fmt.Errorf("%w: %s", ErrNoSelfServiceRoute, kind)
	}
	return r.employee, nil
}

// ResolveItem returns the path of a single record in the collection that
// Resolve picks for role.
func ResolveItem(role session.Role, kind Kind, id int) (string, error) {
	collection, err := Resolve(role, kind)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%d/", collection, id), nil
}

// LatestPerformancePath returns the path of the latest-performance summary
// for one employee. The route is the same for every role.
func LatestPerformancePath(employeeID int) string {
	return fmt.Sprintf("performance/latest/%d/", employeeID)
}

// Join resolves path against baseURL. The base is treated as a directory
// whether or not it ends in a slash, so "http://host/api" and
// "http://host/api/" both give "http://host/api/login/" for "login/".
func Join(baseURL, path string) (string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return "", fmt.Errorf("invalid base URL %q: scheme and host are required", baseURL)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	ref, err := url.Parse(strings.TrimPrefix(path, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", path, err)
	}
	return base.ResolveReference(ref).String(), nil
}
