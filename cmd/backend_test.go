package cmd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type testUser struct {
	id       int
	username string
	email    string
	role     string
	name     string
}

// testBackend is a minimal EMS API: login, signup, token refresh, the
// profile endpoint and a few role-scoped collections.
type testBackend struct {
	t   *testing.T
	srv *httptest.Server

	mu           sync.Mutex
	users        []*testUser
	access       map[string]*testUser
	refresh      map[string]*testUser
	refreshFails bool
	refreshes    int
	hits         map[string]int
}

func newTestBackend(t *testing.T) *testBackend {
	t.Helper()
	b := &testBackend{
		t:       t,
		access:  make(map[string]*testUser),
		refresh: make(map[string]*testUser),
		hits:    make(map[string]int),
		users: []*testUser{
			{id: 1, username: "admin", email: "admin@example.com", role: "admin", name: "Ada Admin"},
			{id: 3, username: "jane", email: "jane@example.com", role: "employee", name: "Jane Doe"},
		},
	}
	b.srv = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.srv.Close)
	return b
}

func (b *testBackend) URL() string { return b.srv.URL + "/api/" }

func (b *testBackend) token(u *testUser, kind string, ttl time.Duration) string {
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"token_type": kind,
		"user_id":    u.id,
		"jti":        uuid.NewString(),
		"exp":        time.Now().Add(ttl).Unix(),
	}).SignedString([]byte("test"))
	if err != nil {
		b.t.Fatalf("sign token: %v", err)
	}
	return raw
}

func (b *testBackend) revokeAccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.access = make(map[string]*testUser)
}

func (b *testBackend) failRefresh() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refreshFails = true
}

func (b *testBackend) refreshCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.refreshes
}

func (b *testBackend) hitCount(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[path]
}

func reply(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (b *testBackend) serve(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/")
	var body map[string]interface{}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&body)
	}
	str := func(key string) string {
		v, _ := body[key].(string)
		return v
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.hits[path]++

	switch path {
	case "login/":
		ident := str("username") + str("email")
		for _, u := range b.users {
			if (ident == u.username || ident == u.email) && str("password") == "secret" {
				access, refresh := b.token(u, "access", 5*time.Minute), b.token(u, "refresh", time.Hour)
				b.access[access], b.refresh[refresh] = u, u
				reply(w, http.StatusOK, map[string]interface{}{
					"id": u.id, "username": u.username, "email": u.email, "role": u.role,
					"access": access, "refresh": refresh,
				})
				return
			}
		}
		reply(w, http.StatusUnauthorized, map[string]string{"detail": "Invalid credentials"})
		return

	case "signup/":
		if str("password") == "" {
			reply(w, http.StatusBadRequest, map[string]string{"error": "All fields are required"})
			return
		}
		u := &testUser{id: len(b.users) + 10, username: str("username"), email: str("email"), role: "employee"}
		if role := str("role"); role != "" {
			u.role = role
		}
		b.users = append(b.users, u)
		reply(w, http.StatusCreated, map[string]interface{}{"id": u.id, "username": u.username})
		return

	case "token/refresh/":
		b.refreshes++
		u := b.refresh[str("refresh")]
		if b.refreshFails || u == nil {
			reply(w, http.StatusUnauthorized, map[string]string{"detail": "Token is invalid or expired"})
			return
		}
		access := b.token(u, "access", 5*time.Minute)
		b.access[access] = u
		reply(w, http.StatusOK, map[string]string{"access": access})
		return
	}

	u := b.access[strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")]
	if u == nil {
		w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
		reply(w, http.StatusUnauthorized, map[string]string{"detail": "Given token not valid for any token type"})
		return
	}

	switch {
	case path == "my-profile/":
		reply(w, http.StatusOK, map[string]interface{}{
			"id": u.id, "username": u.username, "email": u.email, "role": u.role, "name": u.name,
		})
	case strings.HasPrefix(path, "admin-api/") && u.role == "employee":
		reply(w, http.StatusForbidden, map[string]string{"detail": "You do not have permission to perform this action."})
	case path == "admin-api/users/":
		reply(w, http.StatusOK, []map[string]interface{}{{"id": 1, "username": "admin", "email": "admin@example.com"}})
	case path == "attendance/" || path == "employee-api/attendance/":
		reply(w, http.StatusOK, []map[string]interface{}{
			{"id": 7, "date": "2026-10-18", "status": "present", "employee": map[string]interface{}{"id": 3, "name": "Jane Doe"}},
		})
	case path == "employee-api/attendance/mark-present/":
		reply(w, http.StatusCreated, map[string]interface{}{"id": 8, "date": "2026-10-19", "status": "present"})
	case path == "performance/latest/3/":
		reply(w, http.StatusOK, []map[string]interface{}{{"name": "Task", "value": 12}, {"name": "Rating", "value": 4}})
	case r.Method == http.MethodDelete:
		w.WriteHeader(http.StatusNoContent)
	case r.Method == http.MethodPost || r.Method == http.MethodPut:
		out := map[string]interface{}{"id": 100}
		for k, v := range body {
			out[k] = v
		}
		reply(w, http.StatusOK, out)
	default:
		reply(w, http.StatusOK, []interface{}{})
	}
}
