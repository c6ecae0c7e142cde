package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alexanderramin/menus/internal/contract"
	"github.com/alexanderramin/menus/internal/repository"
	"github.com/alexanderramin/menus/internal/service"
	"github.com/alexanderramin/menus/internal/testutil"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServer(t *testing.T) *httptest.Server {
	t.Helper()
	database := testutil.NewTestDB(t)
	svc := service.NewMenuService(repository.NewSQLiteMenuRepo(database), testutil.NewTestUoW(database))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	reg := prometheus.NewRegistry()
	router := NewRouter(NewMenuHandler(svc, logger), WithLogger(logger), WithMetrics(reg))
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func createMenu(t *testing.T, srv *httptest.Server, body string) contract.MenuView {
	t.Helper()
	resp, data := do(t, srv, http.MethodPost, "/api/menus", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	var v contract.MenuView
	require.NoError(t, json.Unmarshal(data, &v))
	return v
}

func decodeError(t *testing.T, data []byte) contract.ErrorResponse {
	t.Helper()
	var e contract.ErrorResponse
	require.NoError(t, json.Unmarshal(data, &e), string(data))
	return e
}

func TestAPI_CreateAndTree(t *testing.T) {
	srv := setupServer(t)

	home := createMenu(t, srv, `{"name":"Home","url":"/"}`)
	assert.Equal(t, 0, home.SortOrder)
	assert.True(t, home.IsActive)
	createMenu(t, srv, `{"name":"Docs"}`)
	child := createMenu(t, srv, `{"name":"Intro","parentId":"`+home.ID+`"}`)
	assert.Equal(t, home.ID, *child.ParentID)

	resp, data := do(t, srv, http.MethodGet, "/api/menus", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var roots []contract.TreeView
	require.NoError(t, json.Unmarshal(data, &roots))
	require.Len(t, roots, 2)
	assert.Equal(t, "Home", roots[0].Name)
	assert.Equal(t, "Docs", roots[1].Name)
	require.Len(t, roots[0].Children, 1)
	assert.Equal(t, "Intro", roots[0].Children[0].Name)
	assert.NotNil(t, roots[1].Children)
	assert.Contains(t, string(data), `"children":[]`, "leaves render an empty array")
}

func TestAPI_EmptyTreeIsArray(t *testing.T) {
	srv := setupServer(t)
	_, data := do(t, srv, http.MethodGet, "/api/menus", "")
	assert.JSONEq(t, `[]`, string(data))
}

func TestAPI_GetDetail(t *testing.T) {
	srv := setupServer(t)

	parent := createMenu(t, srv, `{"name":"Parent"}`)
	child := createMenu(t, srv, `{"name":"Child","parentId":"`+parent.ID+`"}`)

	resp, data := do(t, srv, http.MethodGet, "/api/menus/"+child.ID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var d contract.DetailView
	require.NoError(t, json.Unmarshal(data, &d))
	assert.Equal(t, "Child", d.Name)
	require.NotNil(t, d.Parent)
	assert.Equal(t, parent.ID, d.Parent.ID)
	assert.Empty(t, d.Children)

	resp, data = do(t, srv, http.MethodGet, "/api/menus/"+parent.ID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(data, &d))
	assert.Nil(t, d.Parent)
	require.Len(t, d.Children, 1)
}

func TestAPI_ErrorMapping(t *testing.T) {
	srv := setupServer(t)
	root := createMenu(t, srv, `{"name":"Root"}`)
	child := createMenu(t, srv, `{"name":"Child","parentId":"`+root.ID+`"}`)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		kind   string
	}{
		{"missing menu", http.MethodGet, "/api/menus/does-not-exist", "", http.StatusNotFound, "not_found"},
		{"missing name", http.MethodPost, "/api/menus", `{"url":"/x"}`, http.StatusBadRequest, "validation"},
		{"malformed json", http.MethodPost, "/api/menus", `{"name":`, http.StatusBadRequest, "validation"},
		{"unknown field", http.MethodPost, "/api/menus", `{"name":"x","colour":"red"}`, http.StatusBadRequest, "validation"},
		{"empty body", http.MethodPost, "/api/menus", "", http.StatusBadRequest, "validation"},
		{"bad parent id", http.MethodPost, "/api/menus", `{"name":"x","parentId":"nope"}`, http.StatusBadRequest, "validation"},
		{"unknown parent", http.MethodPost, "/api/menus", `{"name":"x","parentId":"3f1a4a5e-8a4d-4f0e-9c1b-7d2e6a0b9c11"}`, http.StatusNotFound, "not_found"},
		{"empty update", http.MethodPut, "/api/menus/" + root.ID, `{}`, http.StatusBadRequest, "validation"},
		{"move under descendant", http.MethodPatch, "/api/menus/" + root.ID + "/move", `{"parentId":"` + child.ID + `"}`, http.StatusConflict, "conflict"},
		{"reorder across scopes", http.MethodPatch, "/api/menus/" + child.ID + "/reorder", `{"parentId":null,"sortOrder":0}`, http.StatusConflict, "conflict"},
		{"reorder without index", http.MethodPatch, "/api/menus/" + child.ID + "/reorder", `{"parentId":"` + root.ID + `"}`, http.StatusBadRequest, "validation"},
		{"unknown route", http.MethodGet, "/api/elsewhere", "", http.StatusNotFound, "not_found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, data := do(t, srv, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode, string(data))
			e := decodeError(t, data)
			assert.Equal(t, tt.kind, e.Error)
			assert.NotEmpty(t, e.Message)
		})
	}
}

func TestAPI_UpdateMoveReorderDelete(t *testing.T) {
	srv := setupServer(t)

	a := createMenu(t, srv, `{"name":"A"}`)
	b := createMenu(t, srv, `{"name":"B"}`)
	c := createMenu(t, srv, `{"name":"C"}`)

	resp, data := do(t, srv, http.MethodPut, "/api/menus/"+a.ID, `{"name":"Alpha","isActive":false}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	var updated contract.MenuView
	require.NoError(t, json.Unmarshal(data, &updated))
	assert.Equal(t, "Alpha", updated.Name)
	assert.False(t, updated.IsActive)

	resp, data = do(t, srv, http.MethodPatch, "/api/menus/"+c.ID+"/reorder", `{"parentId":null,"sortOrder":0}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	var reordered contract.MenuView
	require.NoError(t, json.Unmarshal(data, &reordered))
	assert.Equal(t, 0, reordered.SortOrder)

	resp, data = do(t, srv, http.MethodPatch, "/api/menus/"+b.ID+"/move", `{"parentId":"`+a.ID+`"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	var moved contract.MenuView
	require.NoError(t, json.Unmarshal(data, &moved))
	assert.Equal(t, a.ID, *moved.ParentID)
	assert.Equal(t, 0, moved.SortOrder)

	resp, data = do(t, srv, http.MethodDelete, "/api/menus/"+a.ID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	var del contract.DeleteView
	require.NoError(t, json.Unmarshal(data, &del))
	assert.Equal(t, []string{b.ID, a.ID}, del.DeletedIDs)

	_, data = do(t, srv, http.MethodGet, "/api/menus", "")
	var roots []contract.TreeView
	require.NoError(t, json.Unmarshal(data, &roots))
	require.Len(t, roots, 1)
	assert.Equal(t, "C", roots[0].Name)
	assert.Equal(t, 0, roots[0].SortOrder)

	_, data = do(t, srv, http.MethodGet, "/api/menus/check", "")
	assert.JSONEq(t, `[]`, string(data))
}

func TestAPI_HealthAndMetrics(t *testing.T) {
	srv := setupServer(t)

	resp, data := do(t, srv, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(data))

	createMenu(t, srv, `{"name":"Counted"}`)

	resp, data = do(t, srv, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, bytes.Contains(data, []byte(`menus_http_requests_total{code="201",method="POST",route="/api/menus"} 1`)), string(data))
}

func TestAPI_MethodNotAllowed(t *testing.T) {
	srv := setupServer(t)
	resp, data := do(t, srv, http.MethodPost, "/healthz", "")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, "method_not_allowed", decodeError(t, data).Error)
}
