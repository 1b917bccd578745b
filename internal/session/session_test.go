package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		input   string
		want    Role
		wantErr bool
	}{
		{"employee", RoleEmployee, false},
		{"admin", RoleAdmin, false},
		{"superuser", RoleSuperuser, false},
		{" Admin ", RoleAdmin, false},
		{"SUPERUSER", RoleSuperuser, false},
		{"", "", true},
		{"manager", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRole(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "employee, admin, superuser")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRole_Privileged(t *testing.T) {
	assert.True(t, RoleAdmin.Privileged())
	assert.True(t, RoleSuperuser.Privileged())
	assert.False(t, RoleEmployee.Privileged())
	assert.False(t, Role("").Privileged())
}

func TestProfile_DisplayName(t *testing.T) {
	assert.Equal(t, "Jane Doe", Profile{Name: "Jane Doe", Username: "jane"}.DisplayName())
	assert.Equal(t, "jane", Profile{Username: "jane", Email: "jane@example.com"}.DisplayName())
	assert.Equal(t, "jane@example.com", Profile{Email: "jane@example.com"}.DisplayName())
}

func TestContext_SetCurrentEnd(t *testing.T) {
	c := NewContext()
	assert.Nil(t, c.Current())
	assert.Equal(t, Role(""), c.Role())

	c.Set(Profile{ID: 7, Username: "jane", Role: RoleAdmin})

	current := c.Current()
	require.NotNil(t, current)
	assert.Equal(t, 7, current.ID)
	assert.Equal(t, RoleAdmin, c.Role())

	// Callers get a copy; mutating it does not leak into the context.
	current.Role = RoleEmployee
	assert.Equal(t, RoleAdmin, c.Current().Role)

	c.End(ReasonLogout)
	assert.Nil(t, c.Current())
}

func TestContext_SetReplacesWholesale(t *testing.T) {
	c := NewContext()
	c.Set(Profile{ID: 1, Username: "jane", Department: "Sales", Role: RoleEmployee})
	c.Set(Profile{ID: 1, Username: "jane", Role: RoleEmployee})

	assert.Empty(t, c.Current().Department)
}

func TestContext_OnEnd(t *testing.T) {
	c := NewContext()
	c.Set(Profile{ID: 3, Role: RoleEmployee})

	var events []EndEvent
	cancel := c.OnEnd(func(e EndEvent) { events = append(events, e) })

	c.End(ReasonRefreshFailed)
	require.Len(t, events, 1)
	assert.Equal(t, ReasonRefreshFailed, events[0].Reason)
	require.NotNil(t, events[0].Profile)
	assert.Equal(t, 3, events[0].Profile.ID)
	assert.False(t, events[0].At.IsZero())

	// Ending without a profile still notifies.
	c.End(ReasonLogout)
	require.Len(t, events, 2)
	assert.Nil(t, events[1].Profile)

	cancel()
	c.End(ReasonLogout)
	assert.Len(t, events, 2)
}

func TestContext_ListenerMayReadContext(t *testing.T) {
	c := NewContext()
	c.Set(Profile{ID: 1, Role: RoleAdmin})

	var seen *Profile
	c.OnEnd(func(EndEvent) { seen = c.Current() })

	c.End(ReasonLogout)
	assert.Nil(t, seen)
}

func TestContext_ConcurrentAccess(t *testing.T) {
	c := NewContext()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(id int) {
			defer wg.Done()
			c.Set(Profile{ID: id, Role: RoleEmployee})
		}(i)
		go func() {
			defer wg.Done()
			if p := c.Current(); p != nil {
				assert.Equal(t, RoleEmployee, p.Role)
			}
		}()
	}
	wg.Wait()

	c.End(ReasonLogout)
	assert.Nil(t, c.Current())
}
