// Package endpoint maps a caller's role and a logical resource kind to the
// backend collection that serves it.
//
// The backend exposes organization-wide collections to administrators and
// self-scoped collections to employees. Callers ask for a Kind and let
// Resolve pick the route, so no call site hardcodes that asymmetry.
//
//	path, err := endpoint.Resolve(profile.Role, endpoint.KindAttendance)
//	// admin:    "attendance/"
//	// employee: "employee-api/attendance/"
package endpoint
