package endpoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emsctl/internal/session"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		role session.Role
		kind Kind
		want string
	}{
		{"admin attendance", session.RoleAdmin, KindAttendance, "attendance/"},
		{"superuser attendance", session.RoleSuperuser, KindAttendance, "attendance/"},
		{"employee attendance", session.RoleEmployee, KindAttendance, "employee-api/attendance/"},
		{"admin performance", session.RoleAdmin, KindPerformance, "performance/"},
		{"employee performance", session.RoleEmployee, KindPerformance, "employee-api/performance/"},
		{"admin employee profile", session.RoleAdmin, KindEmployeeProfile, "admin-api/employees/"},
		{"superuser employee profile", session.RoleSuperuser, KindEmployeeProfile, "admin-api/employees/"},
		{"employee employee profile", session.RoleEmployee, KindEmployeeProfile, "employee-api/profile/"},
		{"admin user list", session.RoleAdmin, KindUserList, "admin-api/users/"},
		{"superuser user list", session.RoleSuperuser, KindUserList, "admin-api/users/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.role, tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_InvalidRole(t *testing.T) {
	for _, role := range []session.Role{"", "manager", "Admin"} {
		t.Run(string(role), func(t *testing.T) {
			for _, kind := range kinds {
				_, err := Resolve(role, kind)

				var roleErr *InvalidRoleError
				require.ErrorAs(t, err, &roleErr)
				assert.Equal(t, role, roleErr.Role)
			}
		})
	}
}

func TestResolve_Errors(t *testing.T) {
	_, err := Resolve(session.RoleAdmin, Kind("payroll"))
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = Resolve(session.RoleEmployee, KindUserList)
	assert.ErrorIs(t, err, ErrNoSelfServiceRoute)
}

func TestResolve_DependsOnlyOnPrivilege(t *testing.T) {
	for _, kind := range kinds {
		admin, err := Resolve(session.RoleAdmin, kind)
		require.NoError(t, err)
		superuser, err := Resolve(session.RoleSuperuser, kind)
		require.NoError(t, err)
		assert.Equal(t, admin, superuser, "kind %s", kind)
	}
}

func TestResolveItem(t *testing.T) {
	got, err := ResolveItem(session.RoleEmployee, KindAttendance, 42)
	require.NoError(t, err)
	assert.Equal(t, "employee-api/attendance/42/", got)

	got, err = ResolveItem(session.RoleAdmin, KindEmployeeProfile, 3)
	require.NoError(t, err)
	assert.Equal(t, "admin-api/employees/3/", got)

	_, err = ResolveItem("", KindAttendance, 1)
	var roleErr *InvalidRoleError
	assert.ErrorAs(t, err, &roleErr)
}

func TestLatestPerformancePath(t *testing.T) {
	assert.Equal(t, "performance/latest/12/", LatestPerformancePath(12))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		want Family
	}{
		{"admin-api/users/", FamilyAdmin},
		{"/admin-api/employees/3/", FamilyAdmin},
		{"employee-api/profile/", FamilySelfService},
		{MarkPresentPath, FamilySelfService},
		{"attendance/", FamilyShared},
		{"performance/latest/1/", FamilyShared},
		{"my-profile/", FamilyUnknown},
		{"", FamilyUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.path), "path %q", tt.path)
	}

	for _, kind := range kinds {
		p, err := Resolve(session.RoleAdmin, kind)
		require.NoError(t, err)
		assert.NotEqual(t, FamilySelfService, Classify(p))
	}
}

func TestInvalidRoleError_Message(t *testing.T) {
	assert.Contains(t, (&InvalidRoleError{}).Error(), "log in")
	assert.Contains(t, (&InvalidRoleError{Role: "manager"}).Error(), `"manager"`)
}

func TestJoin(t *testing.T) {
	tests := []struct {
		base string
		path string
		want string
	}{
		{"http://127.0.0.1:8000/api/", "login/", "http://127.0.0.1:8000/api/login/"},
		{"http://127.0.0.1:8000/api", "login/", "http://127.0.0.1:8000/api/login/"},
		{"https://ems.example.com/api/", "/admin-api/users/", "https://ems.example.com/api/admin-api/users/"},
		{"http://localhost:8000", "attendance/3/", "http://localhost:8000/attendance/3/"},
	}

	for _, tt := range tests {
		got, err := Join(tt.base, tt.path)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := Join("not a url", "login/")
	assert.Error(t, err)
	_, err = Join("/api/", "login/")
	assert.Error(t, err)
}
