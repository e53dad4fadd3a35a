package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/genops-api/internal/api"
	"github.com/phrazzld/genops-api/internal/api/middleware"
	"github.com/phrazzld/genops-api/internal/domain"
)

func TestHealth(t *testing.T) {
	t.Parallel()
	h := newTestApp(t).routes()

	rec := doRequest(t, h, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "generator-ops-backend", body["service"])
	assert.NotEmpty(t, rec.Header().Get(middleware.TraceIDHeader))
}

func TestEndToEnd_TaskLifecycle(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	h := app.routes()

	rec := doRequest(t, h, http.MethodPost, "/api/register", "",
		`{"username":"alice","email":"alice@example.com","password":"pw1"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var reg api.AuthResponse
	decodeBody(t, rec, &reg)
	assert.Equal(t, "success", reg.Status)
	assert.Equal(t, int64(1), reg.UserID)
	assert.Equal(t, "alice", reg.Username)
	require.NotEmpty(t, reg.Token)
	expires, err := time.Parse(time.RFC3339, reg.ExpiresAt)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expires, time.Minute)

	rec = doRequest(t, h, http.MethodPost, "/api/tasks", reg.Token,
		`{"task_title":"Refuel","building_name":"HQ","due_date":"2025-03-01"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created api.CreateTaskResponse
	decodeBody(t, rec, &created)
	assert.Equal(t, "success", created.Status)
	assert.Equal(t, int64(1), created.TaskID)

	rec = doRequest(t, h, http.MethodGet, "/api/tasks", reg.Token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list api.TaskListResponse
	decodeBody(t, rec, &list)
	require.Len(t, list.Tasks, 1)
	task := list.Tasks[0]
	assert.Equal(t, int64(1), task.UserID)
	require.NotNil(t, task.Title)
	assert.Equal(t, "Refuel", *task.Title)
	require.NotNil(t, task.Status)
	assert.Equal(t, domain.TaskStatusCurrent, *task.Status)

	rec = doRequest(t, h, http.MethodPut, "/api/tasks/1", reg.Token, `{"task_title":"Refuel tank 2"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	stored, ok := app.tasks.Get(1)
	require.True(t, ok)
	require.NotNil(t, stored.Title)
	assert.Equal(t, "Refuel tank 2", *stored.Title)
	assert.Nil(t, stored.BuildingName)
	assert.Nil(t, stored.Status)

	rec = doRequest(t, h, http.MethodDelete, "/api/tasks/1", reg.Token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"success"}`, rec.Body.String())

	rec = doRequest(t, h, http.MethodDelete, "/api/tasks/1", reg.Token, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/api/tasks", reg.Token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"tasks":[]}`, rec.Body.String())
}

func TestEndToEnd_Login(t *testing.T) {
	t.Parallel()
	h := newTestApp(t).routes()

	rec := doRequest(t, h, http.MethodPost, "/api/register", "",
		`{"username":"alice","email":"alice@example.com","password":"pw1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, h, http.MethodPost, "/api/register", "",
		`{"username":"alice","email":"other@example.com","password":"pw2"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doRequest(t, h, http.MethodPost, "/api/login", "", `{"username":"alice","password":"pw1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var login api.AuthResponse
	decodeBody(t, rec, &login)
	assert.NotEmpty(t, login.Token)

	wrong := doRequest(t, h, http.MethodPost, "/api/login", "", `{"username":"alice","password":"nope"}`)
	unknown := doRequest(t, h, http.MethodPost, "/api/login", "", `{"username":"ghost","password":"pw1"}`)
	require.Equal(t, http.StatusUnauthorized, wrong.Code)
	require.Equal(t, http.StatusUnauthorized, unknown.Code)

	var wrongBody, unknownBody map[string]string
	decodeBody(t, wrong, &wrongBody)
	decodeBody(t, unknown, &unknownBody)
	assert.Equal(t, wrongBody["error"], unknownBody["error"])
}

func TestEndToEnd_Isolation(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	h := app.routes()

	register := func(name string) string {
		rec := doRequest(t, h, http.MethodPost, "/api/register", "",
			`{"username":"`+name+`","email":"`+name+`@example.com","password":"pw"}`)
		require.Equal(t, http.StatusCreated, rec.Code)
		var resp api.AuthResponse
		decodeBody(t, rec, &resp)
		return resp.Token
	}
	aliceToken := register("alice")
	bobToken := register("bob")

	rec := doRequest(t, h, http.MethodPost, "/api/tasks", aliceToken, `{"task_title":"Refuel"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/api/tasks", bobToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"tasks":[]}`, rec.Body.String())

	rec = doRequest(t, h, http.MethodPut, "/api/tasks/1", bobToken, `{"task_title":"hijacked"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = doRequest(t, h, http.MethodDelete, "/api/tasks/1", bobToken, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	stored, ok := app.tasks.Get(1)
	require.True(t, ok)
	assert.Equal(t, "Refuel", *stored.Title)
}

func TestEndToEnd_Unauthenticated(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	h := app.routes()

	tests := []struct {
		name   string
		method string
		path   string
		token  string
	}{
		{name: "list without token", method: http.MethodGet, path: "/api/tasks"},
		{name: "create without token", method: http.MethodPost, path: "/api/tasks"},
		{name: "update with garbage token", method: http.MethodPut, path: "/api/tasks/1", token: "garbage"},
		{name: "delete with garbage token", method: http.MethodDelete, path: "/api/tasks/1", token: "garbage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, h, tt.method, tt.path, tt.token, `{"task_title":"x"}`)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			var body map[string]string
			decodeBody(t, rec, &body)
			assert.Equal(t, "Unauthorized", body["error"])
			assert.Equal(t, rec.Header().Get(middleware.TraceIDHeader), body["trace_id"])
		})
	}
	assert.Zero(t, app.tasks.Calls())
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()
	h := newTestApp(t).routes()

	doRequest(t, h, http.MethodGet, "/health", "", "")
	doRequest(t, h, http.MethodGet, "/api/tasks", "", "")

	rec := doRequest(t, h, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `genops_http_requests_total{method="GET",route="/health",status="200"} 1`)
	assert.Contains(t, body, `genops_auth_failures_total{reason="missing_header"} 1`)
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()
	h := newTestApp(t).routes()

	req := httptest.NewRequest(http.MethodOptions, "/api/tasks", nil)
	req.Header.Set("Origin", "https://ops.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestTraceIDPerRequest(t *testing.T) {
	t.Parallel()
	h := newTestApp(t).routes()

	first := doRequest(t, h, http.MethodGet, "/health", "", "").Header().Get(middleware.TraceIDHeader)
	second := doRequest(t, h, http.MethodGet, "/health", "", "").Header().Get(middleware.TraceIDHeader)

	_, err := uuid.Parse(first)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestEndToEnd_CreateWithNullStatusDefaults(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	h := app.routes()

	rec := doRequest(t, h, http.MethodPost, "/api/register", "",
		`{"username":"alice","email":"alice@example.com","password":"pw1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var reg api.AuthResponse
	decodeBody(t, rec, &reg)

	rec = doRequest(t, h, http.MethodPost, "/api/tasks", reg.Token, `{"task_title":"Refuel","status":null}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	stored, ok := app.tasks.Get(1)
	require.True(t, ok)
	require.NotNil(t, stored.Status)
	assert.Equal(t, domain.TaskStatusCurrent, *stored.Status)
}
