package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	aliceID  = "11111111-1111-1111-1111-111111111111"
	bobID    = "22222222-2222-2222-2222-222222222222"
	carolID  = "33333333-3333-3333-3333-333333333333"
	plumbing = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	design   = "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb"

	adminToken = "admin-token"
)

// fakeBackend отвечает как REST бэкенд на нужные CLI маршруты.
type fakeBackend struct {
	mu            sync.Mutex
	activityLimit string
	logins        int
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.URL.Path == "/skills/categories":
		write(w, `[{"id":"`+plumbing+`","name":"Plumbing"},{"id":"`+design+`","name":"Design"}]`)
	case r.URL.Path == "/users/":
		write(w, `[
			{"id":"`+aliceID+`","email":"alice@example.com","full_name":"Alice","is_active":true},
			{"id":"`+bobID+`","email":"bob@example.com","full_name":"Bob","is_active":true},
			{"id":"`+carolID+`","email":"carol@example.com","full_name":"Carol","is_active":true}
		]`)
	case r.URL.Path == "/users/"+aliceID:
		write(w, `{"id":"`+aliceID+`","email":"alice@example.com","full_name":"Alice","bio":"Чиню трубы","phone":"+100","is_active":true}`)
	case r.URL.Path == "/skills/user/"+aliceID:
		write(w, `[{"id":"c0000000-0000-0000-0000-000000000001","user_id":"`+aliceID+`","category_id":"`+plumbing+`","skill_name":"Pipe fitting","experience_years":7,"hourly_rate":40,"currency":"USD","is_available":true}]`)
	case r.URL.Path == "/skills/user/"+bobID:
		write(w, `[{"id":"c0000000-0000-0000-0000-000000000002","user_id":"`+bobID+`","category_id":"`+design+`","skill_name":"Logos","experience_years":3,"hourly_rate":"55.00","currency":"USD","is_available":false}]`)
	case r.URL.Path == "/skills/user/"+carolID:
		write(w, `[]`)
	case r.URL.Path == "/admin/login":
		f.mu.Lock()
		f.logins++
		f.mu.Unlock()
		write(w, `{"access_token":"`+adminToken+`","token_type":"bearer","admin":{"id":"`+bobID+`","email":"root@example.com","role":"super_admin"}}`)
	case strings.HasPrefix(r.URL.Path, "/admin/"):
		if r.Header.Get("Authorization") != "Bearer "+adminToken {
			w.WriteHeader(http.StatusUnauthorized)
			write(w, `{"detail":"Could not validate credentials"}`)
			return
		}
		f.admin(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
		write(w, `{"detail":"Not found"}`)
	}
}

func (f *fakeBackend) admin(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/admin/stats":
		write(w, `{"total_users":3,"active_users":2,"total_skills":2,"total_admins":1}`)
	case "/admin/users":
		write(w, `[{"id":"`+aliceID+`","email":"alice@example.com","full_name":"Alice","is_active":true,"profile_completeness":80}]`)
	case "/admin/activity-logs":
		f.mu.Lock()
		f.activityLimit = r.URL.Query().Get("limit")
		f.mu.Unlock()
		write(w, `[{"id":"d0000000-0000-0000-0000-000000000001","admin_id":"`+bobID+`","action":"delete_user","target_type":"user","created_at":"2024-05-01T10:00:00Z"}]`)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeBackend) snapshot() (logins int, activityLimit string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.logins, f.activityLimit
}

func write(w http.ResponseWriter, body string) {
	_, _ = w.Write([]byte(body))
}

func runCLI(t *testing.T, srv *httptest.Server, args ...string) (string, string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(append([]string{"--backend", srv.URL}, args...))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func newFakeServer(t *testing.T) (*fakeBackend, *httptest.Server) {
	t.Helper()
	fake := &fakeBackend{}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	return fake, srv
}

func TestBrowse_FiltersByText(t *testing.T) {
	_, srv := newFakeServer(t)

	out, _, err := runCLI(t, srv, "browse", "pipe", "--json")
	require.NoError(t, err)

	var rows []professionalRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Alice", rows[0].Name)
	assert.Equal(t, []string{"Pipe fitting"}, rows[0].Skills)
	assert.Equal(t, "$40/hr", rows[0].Rate)
	assert.True(t, rows[0].Available)
}

func TestBrowse_CategoryAndZeroSkillExclusion(t *testing.T) {
	_, srv := newFakeServer(t)

	out, _, err := runCLI(t, srv, "browse", "--category", "Design", "--json")
	require.NoError(t, err)

	var rows []professionalRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Bob", rows[0].Name)

	out, _, err = runCLI(t, srv, "browse", "--json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 2, "у Carol нет навыков")
	assert.Equal(t, "Alice", rows[0].Name)
	assert.Equal(t, "Bob", rows[1].Name)
}

func TestBrowse_Table(t *testing.T) {
	_, srv := newFakeServer(t)

	out, _, err := runCLI(t, srv, "browse")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "НАВЫКИ")
	assert.Contains(t, lines[1], "Pipe fitting")
	assert.Contains(t, lines[2], "Logos")
}

func TestProfile(t *testing.T) {
	_, srv := newFakeServer(t)

	out, _, err := runCLI(t, srv, "profile", aliceID, "--json")
	require.NoError(t, err)

	var got profileOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "Alice", got.User.FullName)
	// имя, о себе, телефон и навык; координат нет
	assert.Equal(t, 80, got.Completeness)
	require.Len(t, got.Skills, 1)
	assert.Equal(t, "Plumbing", got.Skills[0].Category)
}

func TestProfile_InvalidID(t *testing.T) {
	_, srv := newFakeServer(t)

	_, _, err := runCLI(t, srv, "profile", "not-a-uuid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "неверный id")
}

func TestAdminStats_LogsInWithCredentials(t *testing.T) {
	fake, srv := newFakeServer(t)
	t.Setenv(adminTokenEnv, "")

	out, _, err := runCLI(t, srv, "admin", "stats", "--email", "root@example.com", "--password", "secret")
	require.NoError(t, err)

	logins, _ := fake.snapshot()
	assert.Equal(t, 1, logins)
	assert.Contains(t, out, "Пользователей")
	assert.Contains(t, out, "3")
}

func TestAdminUsers_UsesEnvToken(t *testing.T) {
	fake, srv := newFakeServer(t)
	t.Setenv(adminTokenEnv, adminToken)

	out, _, err := runCLI(t, srv, "admin", "users")
	require.NoError(t, err)

	logins, _ := fake.snapshot()
	assert.Zero(t, logins)
	assert.Contains(t, out, "alice@example.com")
	assert.Contains(t, out, "80%")
	assert.Contains(t, out, "Active")
}

func TestAdmin_RequiresCredentials(t *testing.T) {
	_, srv := newFakeServer(t)
	t.Setenv(adminTokenEnv, "")

	_, _, err := runCLI(t, srv, "admin", "stats")
	require.Error(t, err)
	assert.Contains(t, err.Error(), adminTokenEnv)
}

func TestAdminActivity_CapsLimit(t *testing.T) {
	fake, srv := newFakeServer(t)
	t.Setenv(adminTokenEnv, "")

	out, _, err := runCLI(t, srv, "admin", "activity", "--token", adminToken, "--limit", "1000", "--json")
	require.NoError(t, err)

	_, limit := fake.snapshot()
	assert.Equal(t, "500", limit)
	assert.Contains(t, out, "delete_user")
}

func TestAdmin_BadTokenSurfacesBackendError(t *testing.T) {
	_, srv := newFakeServer(t)
	t.Setenv(adminTokenEnv, "")

	_, _, err := runCLI(t, srv, "admin", "stats", "--token", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "сводка")
}
