package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/KingCuz/GrindLink/internal/api"
	"github.com/KingCuz/GrindLink/internal/services"
	"github.com/KingCuz/GrindLink/internal/store"
	ws "github.com/KingCuz/GrindLink/internal/websocket"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, docStore store.Store) (*httptest.Server, *ws.Hub) {
	t.Helper()
	hub := ws.NewHub()
	go hub.Run()

	assignmentService := services.NewAssignmentService(docStore, hub, "test")
	profileService := services.NewProfileService(docStore, hub, "test")
	router := api.NewRouter(hub, assignmentService, profileService, "*", "")

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, hub
}

func newSQLiteServer(t *testing.T) (*httptest.Server, *ws.Hub) {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return newTestServer(t, s)
}

func postJSON(t *testing.T, srv *httptest.Server, path, body string) *http.Response {
	t.Helper()
	resp, err := srv.Client().Post(srv.URL+path, "application/json", bytes.NewReader([]byte(body)))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func getJSON(t *testing.T, srv *httptest.Server, path string, out interface{}) *http.Response {
	t.Helper()
	resp, err := srv.Client().Get(srv.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func dialWS(t *testing.T, srv *httptest.Server, hub *ws.Hub) *websocket.Conn {
	t.Helper()
	before := hub.ClientCount()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	// The server registers the client with the hub after the upgrade; wait
	// for that so nothing published afterwards can slip past.
	require.Eventually(t, func() bool { return hub.ClientCount() > before },
		2*time.Second, 10*time.Millisecond)
	return conn
}

func TestCreateAssignment(t *testing.T) {
	srv, _ := newSQLiteServer(t)

	resp := postJSON(t, srv, "/api/assignments",
		`{"gig_id": 3, "assignee_id": 9, "due_date": "2026-09-15", "status": "pending"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Message    string `json:"message"`
		Assignment struct {
			ID        string `json:"id"`
			GigID     int    `json:"gig_id"`
			Status    string `json:"status"`
			CreatedAt string `json:"created_at"`
		} `json:"assignment"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body.Message)
	assert.NotEmpty(t, body.Assignment.ID)
	assert.Equal(t, 3, body.Assignment.GigID)
	assert.Equal(t, "pending", body.Assignment.Status)
	_, err := time.Parse(time.RFC3339, body.Assignment.CreatedAt)
	assert.NoError(t, err, "created_at must be ISO-8601")
}

func TestCreateAssignmentMissingStatus(t *testing.T) {
	srv, hub := newSQLiteServer(t)
	conn := dialWS(t, srv, hub)

	resp := postJSON(t, srv, "/api/assignments",
		`{"gig_id": 3, "assignee_id": 9, "due_date": "2026-09-15"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Missing required fields.", body["error"])

	// Nothing was stored and nothing was broadcast.
	var listed []json.RawMessage
	getJSON(t, srv, "/api/assignments", &listed)
	assert.Empty(t, listed)

	conn.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err, "no event may be fired for a rejected create")
}

func TestListAssignmentsNewestFirst(t *testing.T) {
	srv, _ := newSQLiteServer(t)

	for _, status := range []string{"pending", "in_progress", "completed"} {
		resp := postJSON(t, srv, "/api/assignments",
			`{"gig_id": 1, "assignee_id": 2, "due_date": "2026-09-15", "status": "`+status+`"}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	var listed []struct {
		Status    string    `json:"status"`
		CreatedAt time.Time `json:"created_at"`
	}
	resp := getJSON(t, srv, "/api/assignments", &listed)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, listed, 3)
	assert.Equal(t, "completed", listed[0].Status)
	for i := 1; i < len(listed); i++ {
		assert.False(t, listed[i].CreatedAt.After(listed[i-1].CreatedAt))
	}
}

func TestCreateUserScenario(t *testing.T) {
	srv, _ := newSQLiteServer(t)

	resp := postJSON(t, srv, "/api/users",
		`{"username": "ana", "bio": "", "skills": ["go", "rust"]}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Message string          `json:"message"`
		User    json.RawMessage `json:"user"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	var user struct {
		ID        string   `json:"id"`
		Username  string   `json:"username"`
		Skills    []string `json:"skills"`
		CreatedAt string   `json:"created_at"`
	}
	require.NoError(t, json.Unmarshal(body.User, &user))
	assert.Equal(t, "ana", user.Username)
	assert.Equal(t, []string{"go", "rust"}, user.Skills)
	assert.NotEmpty(t, user.ID)
	_, err := time.Parse(time.RFC3339, user.CreatedAt)
	assert.NoError(t, err)

	// The list's first element deep-equals the creation result.
	var listed []json.RawMessage
	getJSON(t, srv, "/api/users", &listed)
	require.Len(t, listed, 1)
	assert.JSONEq(t, string(body.User), string(listed[0]))
}

func TestCreateUserMissingUsername(t *testing.T) {
	srv, _ := newSQLiteServer(t)

	resp := postJSON(t, srv, "/api/users", `{"bio": "ghost"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Username is required.", body["error"])
}

func TestInvalidJSONBody(t *testing.T) {
	srv, _ := newSQLiteServer(t)

	resp := postJSON(t, srv, "/api/assignments", `{not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestConnectedClientReceivesBroadcast(t *testing.T) {
	srv, hub := newSQLiteServer(t)
	conn := dialWS(t, srv, hub)

	resp := postJSON(t, srv, "/api/assignments",
		`{"gig_id": 3, "assignee_id": 9, "due_date": "2026-09-15", "status": "pending"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, message, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg struct {
		Event string          `json:"event"`
		Data  json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(message, &msg))
	assert.Equal(t, "new_assignment", msg.Event)

	// The broadcast payload deep-equals the element later returned by list.
	var listed []json.RawMessage
	getJSON(t, srv, "/api/assignments", &listed)
	require.Len(t, listed, 1)
	assert.JSONEq(t, string(listed[0]), string(msg.Data))

	// Exactly one event was fired.
	conn.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	_, _, err = conn.ReadMessage()
	assert.Error(t, err)
}

func TestLateClientMissesEarlierBroadcast(t *testing.T) {
	srv, hub := newSQLiteServer(t)

	resp := postJSON(t, srv, "/api/users", `{"username": "ana"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	conn := dialWS(t, srv, hub)
	conn.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err, "no replay for clients connecting after the publish")

	// The record is still visible through the list endpoint.
	var listed []struct {
		Username string `json:"username"`
	}
	getJSON(t, srv, "/api/users", &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, "ana", listed[0].Username)
}

func TestUninitializedStoreFailsDataEndpoints(t *testing.T) {
	srv, _ := newTestServer(t, store.Unavailable(errors.New("no store")))

	resp := getJSON(t, srv, "/api/assignments", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	resp = postJSON(t, srv, "/api/users", `{"username": "ana"}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Internal server error.", body["error"])
}
