package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type fakeUser struct {
	ID         int
	Username   string
	Email      string
	Password   string
	Role       string
	Name       string
	Department string
}

// fakeBackend mimics the EMS API closely enough to exercise the session
// layer: JWT access tokens that can be revoked on demand, a refresh
// endpoint that can be gated or made to fail, and role-scoped collections.
type fakeBackend struct {
	t   *testing.T
	srv *httptest.Server

	mu            sync.Mutex
	users         []*fakeUser
	access        map[string]*fakeUser
	refresh       map[string]*fakeUser
	accessTTL     time.Duration
	refreshFails  bool
	refreshGate   chan struct{}
	refreshHits   int
	hits          map[string]int
	authHeaders   map[string][]string
	profileBroken bool
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()

	b := &fakeBackend{
		t:           t,
		access:      make(map[string]*fakeUser),
		refresh:     make(map[string]*fakeUser),
		accessTTL:   5 * time.Minute,
		hits:        make(map[string]int),
		authHeaders: make(map[string][]string),
		users: []*fakeUser{
			{ID: 1, Username: "admin", Email: "admin@example.com", Password: "secret", Role: "admin"},
			{ID: 2, Username: "root", Email: "root@example.com", Password: "secret", Role: "superuser"},
			{ID: 3, Username: "jane", Email: "jane@example.com", Password: "secret", Role: "employee", Name: "Jane Doe", Department: "Sales"},
		},
	}
	b.srv = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.srv.Close)
	return b
}

func (b *fakeBackend) URL() string { return b.srv.URL + "/api/" }

func (b *fakeBackend) mint(u *fakeUser, kind string, ttl time.Duration) string {
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"token_type": kind,
		"user_id":    u.ID,
		"jti":        uuid.NewString(),
		"exp":        time.Now().Add(ttl).Unix(),
	}).SignedString([]byte("backend-secret"))
	if err != nil {
		b.t.Fatalf("mint token: %v", err)
	}
	return raw
}

// issue creates a token pair for u. The caller holds b.mu.
func (b *fakeBackend) issue(u *fakeUser) (string, string) {
	access := b.mint(u, "access", b.accessTTL)
	refresh := b.mint(u, "refresh", 7*24*time.Hour)
	b.access[access] = u
	b.refresh[refresh] = u
	return access, refresh
}

// expireAccessTokens makes every issued access token invalid.
func (b *fakeBackend) expireAccessTokens() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.access = make(map[string]*fakeUser)
}

func (b *fakeBackend) setRefreshFails(fail bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refreshFails = fail
}

func (b *fakeBackend) gateRefresh() chan struct{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refreshGate = make(chan struct{})
	return b.refreshGate
}

func (b *fakeBackend) refreshCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.refreshHits
}

func (b *fakeBackend) hitCount(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[path]
}

func (b *fakeBackend) authFor(path string) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.authHeaders[path]...)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (b *fakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/")

	b.mu.Lock()
	b.hits[path]++
	b.authHeaders[path] = append(b.authHeaders[path], r.Header.Get("Authorization"))
	b.mu.Unlock()

	switch path {
	case "login/":
		b.login(w, r)
		return
	case "signup/":
		b.signup(w, r)
		return
	case "token/refresh/":
		b.tokenRefresh(w, r)
		return
	}

	user := b.authenticate(r)
	if user == nil {
		w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
		writeJSON(w, http.StatusUnauthorized, map[string]string{
			"detail": "Given token not valid for any token type",
			"code":   "token_not_valid",
		})
		return
	}

	if path == "my-profile/" {
		b.myProfile(w, user)
		return
	}
	b.resource(w, r, path, user)
}

func (b *fakeBackend) authenticate(r *http.Request) *fakeUser {
	raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.access[raw]
}

func (b *fakeBackend) login(w http.ResponseWriter, r *http.Request) {
	var body map[string]string
	_ = json.NewDecoder(r.Body).Decode(&body)

	ident := body["username"]
	if ident == "" {
		ident = body["email"]
	}
	if ident == "" || body["password"] == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Username/email and password required"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, u := range b.users {
		if (strings.EqualFold(u.Username, ident) || strings.EqualFold(u.Email, ident)) && u.Password == body["password"] {
			access, refresh := b.issue(u)
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"id": u.ID, "username": u.Username, "email": u.Email, "role": u.Role,
				"access": access, "refresh": refresh,
			})
			return
		}
	}
	writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Invalid credentials"})
}

func (b *fakeBackend) signup(w http.ResponseWriter, r *http.Request) {
	var body map[string]string
	_ = json.NewDecoder(r.Body).Decode(&body)
	if body["username"] == "" || body["email"] == "" || body["password"] == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "All fields are required"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, u := range b.users {
		if strings.EqualFold(u.Username, body["username"]) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Username already exists"})
			return
		}
	}
	role := body["role"]
	if role == "" {
		role = "employee"
	}
	u := &fakeUser{ID: len(b.users) + 1, Username: body["username"], Email: body["email"], Password: body["password"], Role: role}
	b.users = append(b.users, u)
	access, refresh := b.issue(u)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id": u.ID, "username": u.Username, "email": u.Email, "role": u.Role,
		"access": access, "refresh": refresh,
	})
}

func (b *fakeBackend) tokenRefresh(w http.ResponseWriter, r *http.Request) {
	var body map[string]string
	_ = json.NewDecoder(r.Body).Decode(&body)

	b.mu.Lock()
	b.refreshHits++
	gate := b.refreshGate
	b.mu.Unlock()

	if gate != nil {
		<-gate
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	u := b.refresh[body["refresh"]]
	if b.refreshFails || u == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{
			"detail": "Token is invalid or expired",
			"code":   "token_not_valid",
		})
		return
	}
	access := b.mint(u, "access", b.accessTTL)
	b.access[access] = u
	writeJSON(w, http.StatusOK, map[string]string{"access": access})
}

func (b *fakeBackend) myProfile(w http.ResponseWriter, u *fakeUser) {
	b.mu.Lock()
	broken := b.profileBroken
	b.mu.Unlock()
	if broken {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "boom"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id": u.ID, "username": u.Username, "email": u.Email, "role": u.Role,
		"name": u.Name, "department": u.Department,
	})
}

func (b *fakeBackend) resource(w http.ResponseWriter, r *http.Request, path string, u *fakeUser) {
	privileged := u.Role == "admin" || u.Role == "superuser"
	if strings.HasPrefix(path, "admin-api/") && !privileged {
		writeJSON(w, http.StatusForbidden, map[string]string{"detail": "You do not have permission to perform this action."})
		return
	}

	switch {
	case path == "employee-api/attendance/mark-present/":
		writeJSON(w, http.StatusCreated, map[string]interface{}{"id": 99, "date": "2026-10-18", "status": "present"})
	case strings.HasPrefix(path, "performance/latest/"):
		writeJSON(w, http.StatusOK, []map[string]interface{}{
			{"name": "Task", "value": 12}, {"name": "Rating", "value": 4}, {"name": "Remarks", "value": 30},
		})
	case r.Method == http.MethodGet && strings.HasSuffix(path, "users/"):
		writeJSON(w, http.StatusOK, []map[string]interface{}{{"id": 1, "username": "admin", "email": "admin@example.com"}})
	case r.Method == http.MethodGet && isCollection(path):
		writeJSON(w, http.StatusOK, []map[string]interface{}{{"id": 1, "path": path, "user_id": u.ID}})
	case r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]interface{}{"id": itemID(path), "task": "Quarterly review", "rating": 4})
	case r.Method == http.MethodPost:
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		body["id"] = 100
		writeJSON(w, http.StatusCreated, body)
	case r.Method == http.MethodPut:
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		body["id"] = itemID(path)
		writeJSON(w, http.StatusOK, body)
	case r.Method == http.MethodDelete:
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func isCollection(path string) bool {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	var id int
	_, err := fmt.Sscanf(parts[len(parts)-1], "%d", &id)
	return err != nil
}

func itemID(path string) int {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	var id int
	_, _ = fmt.Sscanf(parts[len(parts)-1], "%d", &id)
	return id
}
