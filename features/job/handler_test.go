package job_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"taskforge/backend/features/job"
)

// MockRepo implements job.Repository
type MockRepo struct {
	mock.Mock
}

func (m *MockRepo) Create(ctx context.Context, j *job.Job) error {
	args := m.Called(ctx, j)
	return args.Error(0)
}
func (m *MockRepo) List(ctx context.Context) ([]job.Job, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]job.Job), args.Error(1)
}
func (m *MockRepo) Get(ctx context.Context, id int64) (*job.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*job.Job), args.Error(1)
}
func (m *MockRepo) Update(ctx context.Context, j *job.Job) error {
	args := m.Called(ctx, j)
	return args.Error(0)
}
func (m *MockRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// memRepo is an in-memory job.Repository with storage-assigned ids and timestamps.
type memRepo struct {
	mu     sync.Mutex
	nextID int64
	clock  time.Time
	rows   map[int64]job.Job
}

func newMemRepo() *memRepo {
	return &memRepo{clock: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC), rows: map[int64]job.Job{}}
}

func (r *memRepo) Create(ctx context.Context, j *job.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.clock = r.clock.Add(time.Second)
	j.ID, j.Status, j.CreatedAt = r.nextID, job.StatusScheduled, r.clock
	r.rows[j.ID] = *j
	return nil
}

func (r *memRepo) List(ctx context.Context) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []job.Job
	for _, j := range r.rows {
		out = append(out, j)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	return out, nil
}

func (r *memRepo) Get(ctx context.Context, id int64) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.rows[id]
	if !ok {
		return nil, job.ErrNotFound
	}
	return &j, nil
}

func (r *memRepo) Update(ctx context.Context, j *job.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.rows[j.ID]
	if !ok {
		return job.ErrNotFound
	}
	cur.Title, cur.Price = j.Title, j.Price
	r.rows[j.ID] = cur
	*j = cur
	return nil
}

func (r *memRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return job.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *memRepo) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows), nil
}

func serve(h *job.Handler, method, path, id, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if id != "" {
		req.SetPathValue("id", id)
	}
	w := httptest.NewRecorder()
	switch {
	case method == "GET" && id == "":
		h.List(w, req)
	case method == "GET":
		h.Get(w, req)
	case method == "POST":
		h.Create(w, req)
	case method == "PUT":
		h.Update(w, req)
	case method == "DELETE":
		h.Delete(w, req)
	}
	return w
}

func TestHandler_Lifecycle(t *testing.T) {
	h := job.NewHandler(job.NewService(newMemRepo(), nil, nil))

	// Create
	w := serve(h, "POST", "/jobs", "", `{"title":"Fix sink","price":150}`)
	require.Equal(t, http.StatusOK, w.Code)
	var created job.Job
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Fix sink", created.Title)
	assert.Equal(t, 150, created.Price)
	assert.Equal(t, "scheduled", created.Status)
	assert.False(t, created.CreatedAt.IsZero())

	// List
	w = serve(h, "GET", "/jobs", "", "")
	var listed []job.Job
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, created, listed[0])

	// Update
	w = serve(h, "PUT", "/jobs/1", "1", `{"title":"Fix sink - urgent","price":200}`)
	require.Equal(t, http.StatusOK, w.Code)
	var updated job.Job
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, created.ID, updated.ID)
	assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))
	assert.Equal(t, "Fix sink - urgent", updated.Title)
	assert.Equal(t, 200, updated.Price)
	assert.Equal(t, "scheduled", updated.Status)

	// Delete
	w = serve(h, "DELETE", "/jobs/1", "1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"message":"Deleted job 1"}`, w.Body.String())

	w = serve(h, "GET", "/jobs", "", "")
	assert.JSONEq(t, `[]`, w.Body.String())

	w = serve(h, "DELETE", "/jobs/1", "1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_ListOrdering(t *testing.T) {
	h := job.NewHandler(job.NewService(newMemRepo(), nil, nil))
	for _, title := range []string{"A", "B", "C"} {
		require.Equal(t, http.StatusOK, serve(h, "POST", "/jobs", "", `{"title":"`+title+`"}`).Code)
	}

	var listed []job.Job
	require.NoError(t, json.Unmarshal(serve(h, "GET", "/jobs", "", "").Body.Bytes(), &listed))
	require.Len(t, listed, 3)
	assert.Equal(t, []string{"C", "B", "A"}, []string{listed[0].Title, listed[1].Title, listed[2].Title})
}

func TestHandler_CreateDefaults(t *testing.T) {
	h := job.NewHandler(job.NewService(newMemRepo(), nil, nil))

	w := serve(h, "POST", "/jobs", "", `{"title":"Patio","status":"done"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var created job.Job
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 0, created.Price)
	assert.Equal(t, "scheduled", created.Status)
}

func TestHandler_PriceBounds(t *testing.T) {
	h := job.NewHandler(job.NewService(newMemRepo(), nil, nil))

	for body, want := range map[string]int{
		`{"title":"Max","price":2147483647}`:  2147483647,
		`{"title":"Min","price":-2147483648}`: -2147483648,
	} {
		w := serve(h, "POST", "/jobs", "", body)
		require.Equal(t, http.StatusOK, w.Code, body)

		var created job.Job
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.Equal(t, want, created.Price)
	}
}

func TestHandler_Validation(t *testing.T) {
	tests := []struct {
		name   string
		method string
		id     string
		body   string
	}{
		{"Create Missing Title", "POST", "", `{"price":10}`},
		{"Create Price Wrong Type", "POST", "", `{"title":"x","price":"ten"}`},
		{"Create Title Wrong Type", "POST", "", `{"title":true}`},
		{"Update Missing Title", "PUT", "1", `{"price":10}`},
		{"Update Price Fractional", "PUT", "1", `{"title":"x","price":1.5}`},
		{"Create Price Out Of Range", "POST", "", `{"title":"x","price":3000000000}`},
		{"Update Price Below Range", "PUT", "1", `{"title":"x","price":-3000000000}`},
		{"Create Title With NUL", "POST", "", `{"title":"a\u0000b"}`},
		{"Create Trailing Data", "POST", "", `{"title":"x"}{"title":"y"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepo)
			h := job.NewHandler(job.NewService(repo, nil, nil))

			w := serve(h, tt.method, "/jobs", tt.id, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			errMap := body["error"].(map[string]interface{})
			assert.Equal(t, "VALIDATION_ERROR", errMap["code"])
			assert.Len(t, repo.Calls, 0)
		})
	}
}

func TestHandler_NotFound(t *testing.T) {
	repo := new(MockRepo)
	h := job.NewHandler(job.NewService(repo, nil, nil))

	repo.On("Update", mock.Anything, mock.Anything).Return(job.ErrNotFound)
	repo.On("Delete", mock.Anything, int64(9999)).Return(job.ErrNotFound)
	repo.On("Get", mock.Anything, int64(9999)).Return(nil, job.ErrNotFound)

	cases := map[string]struct {
		method, body, message string
	}{
		"Update": {"PUT", `{"title":"x"}`, "update job 9999: job not found"},
		"Delete": {"DELETE", "", "delete job 9999: job not found"},
		"Get":    {"GET", "", "get job 9999: job not found"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			w := serve(h, c.method, "/jobs/9999", "9999", c.body)
			assert.Equal(t, http.StatusNotFound, w.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			errMap := body["error"].(map[string]interface{})
			assert.Equal(t, "NOT_FOUND", errMap["code"])
			assert.Equal(t, c.message, errMap["message"])
		})
	}
}

func TestHandler_BadID(t *testing.T) {
	repo := new(MockRepo)
	h := job.NewHandler(job.NewService(repo, nil, nil))

	w := serve(h, "DELETE", "/jobs/abc", "abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, repo.Calls, 0)
}

func TestHandler_InternalError(t *testing.T) {
	repo := new(MockRepo)
	h := job.NewHandler(job.NewService(repo, nil, nil))

	repo.On("List", mock.Anything).Return(nil, errors.New("database error"))
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("database error"))

	assert.Equal(t, http.StatusInternalServerError, serve(h, "GET", "/jobs", "", "").Code)

	w := serve(h, "POST", "/jobs", "", `{"title":"x"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "database error")
}
