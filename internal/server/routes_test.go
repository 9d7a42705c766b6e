package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tomlord1122/todo-server/internal/config"
	"github.com/Tomlord1122/todo-server/internal/repository"
	"github.com/Tomlord1122/todo-server/internal/service"
)

type todoJSON struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	State string `json:"state"`
}

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	logger := log.New(io.Discard)
	repo := repository.NewMemoryTodoRepository()
	s := New(config.Default(), service.NewTodoService(repo, logger), service.NewRandomService(), logger)
	return s.RegisterRoutes()
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func createTodo(t *testing.T, h http.Handler, text string) todoJSON {
	t.Helper()
	rr := do(t, h, http.MethodPost, "/todos", `{"text":`+jsonQuote(text)+`}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var todo todoJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &todo))
	return todo
}

func listTodos(t *testing.T, h http.Handler) []todoJSON {
	t.Helper()
	rr := do(t, h, http.MethodGet, "/todos", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var todos []todoJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &todos))
	return todos
}

func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body["error"]
}

func jsonQuote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestIndexServesHTML(t *testing.T) {
	h := newTestHandler(t)

	rr := do(t, h, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rr.Body.String(), "<title>Todos</title>")
}

func TestHelloAndHealth(t *testing.T) {
	h := newTestHandler(t)

	rr := do(t, h, http.MethodGet, "/hello", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Hello, World!"}`, rr.Body.String())

	createTodo(t, h, "one")
	rr = do(t, h, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"up","todos":1}`, rr.Body.String())
}

func TestCreateAndList(t *testing.T) {
	h := newTestHandler(t)

	assert.Empty(t, listTodos(t, h))

	created := createTodo(t, h, "buy milk")
	_, err := uuid.Parse(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "buy milk", created.Text)
	assert.Equal(t, "New", created.State)

	assert.Equal(t, []todoJSON{created}, listTodos(t, h))
}

func TestCreateRejectsBadBodies(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"empty body", "", "must not be empty"},
		{"malformed", `{"text":`, "badly-formed JSON"},
		{"syntax error", `{"text" "x"}`, "badly-formed JSON"},
		{"wrong type", `{"text": 5}`, `"text" field`},
		{"unknown field", `{"text":"x","title":"y"}`, "unknown field"},
		{"missing text", `{}`, "text is required"},
		{"trailing data", `{"text":"a"} {"junk":1}`, "single JSON object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t)
			rr := do(t, h, http.MethodPost, "/todos", tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Contains(t, errorMessage(t, rr), tt.wantMsg)
			assert.Empty(t, listTodos(t, h))
		})
	}
}

func TestGetTodoByID(t *testing.T) {
	h := newTestHandler(t)
	created := createTodo(t, h, "fetch")

	rr := do(t, h, http.MethodGet, "/todos/"+created.ID, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var got todoJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, created, got)

	rr = do(t, h, http.MethodGet, "/todos/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(t, h, http.MethodGet, "/todos/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdatePartial(t *testing.T) {
	h := newTestHandler(t)
	created := createTodo(t, h, "draft")

	rr := do(t, h, http.MethodPatch, "/todos/"+created.ID, `{"state":"Going"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var updated todoJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "draft", updated.Text)
	assert.Equal(t, "Going", updated.State)

	rr = do(t, h, http.MethodPatch, "/todos/"+created.ID, `{"text":"final"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	assert.Equal(t, "final", updated.Text)
	assert.Equal(t, "Going", updated.State)

	rr = do(t, h, http.MethodPatch, "/todos/"+created.ID, `{"state":"New"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	assert.Equal(t, []todoJSON{{ID: created.ID, Text: "final", State: "New"}}, listTodos(t, h))
}

func TestUpdateNotFoundLeavesStoreUnchanged(t *testing.T) {
	h := newTestHandler(t)
	created := createTodo(t, h, "keep")

	rr := do(t, h, http.MethodPatch, "/todos/"+uuid.NewString(), `{"text":"changed","state":"Done"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "not found")

	assert.Equal(t, []todoJSON{created}, listTodos(t, h))
}

func TestUpdateRejectsBadInput(t *testing.T) {
	h := newTestHandler(t)
	created := createTodo(t, h, "x")

	rr := do(t, h, http.MethodPatch, "/todos/"+created.ID, `{"state":"Blocked"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodPatch, "/todos/123", `{"text":"y"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	assert.Equal(t, []todoJSON{created}, listTodos(t, h))
}

func TestDeleteTwice(t *testing.T) {
	h := newTestHandler(t)
	created := createTodo(t, h, "bye")

	rr := do(t, h, http.MethodDelete, "/todos/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())

	rr = do(t, h, http.MethodDelete, "/todos/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestListAfterCreatesAndDeletes(t *testing.T) {
	h := newTestHandler(t)

	created := map[string]todoJSON{}
	var order []string
	for i := 0; i < 6; i++ {
		todo := createTodo(t, h, "item")
		created[todo.ID] = todo
		order = append(order, todo.ID)
	}
	for _, id := range order[:2] {
		require.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/todos/"+id, "").Code)
		delete(created, id)
	}

	todos := listTodos(t, h)
	require.Len(t, todos, 4)
	for _, todo := range todos {
		assert.Equal(t, created[todo.ID], todo)
	}
}

func TestRandomNumber(t *testing.T) {
	h := newTestHandler(t)

	for i := 0; i < 20; i++ {
		rr := do(t, h, http.MethodGet, "/random?start=1&end=2", "")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
		assert.Equal(t, "<h1>Random number: 1</h1>", rr.Body.String())
	}
}

func TestRandomNumberErrors(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		status int
	}{
		{"empty range", "start=5&end=5", http.StatusInternalServerError},
		{"reversed range", "start=9&end=2", http.StatusInternalServerError},
		{"missing start", "end=2", http.StatusBadRequest},
		{"missing end", "start=2", http.StatusBadRequest},
		{"non numeric", "start=a&end=2", http.StatusBadRequest},
		{"negative", "start=-1&end=2", http.StatusBadRequest},
	}

	h := newTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, http.MethodGet, "/random?"+tt.query, "")
			assert.Equal(t, tt.status, rr.Code)
		})
	}
}
