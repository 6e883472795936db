package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satoqz/basti/internal/api"
	"github.com/satoqz/basti/internal/ops"
	"github.com/satoqz/basti/internal/store"
)

func newTestServer() *httptest.Server {
	s := api.NewServer(ops.New(store.NewMemoryClient()), nil)
	return httptest.NewServer(s.Handler())
}

func TestCreateAndFindTask(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	body, _ := json.Marshal(api.CreateTaskRequest{Duration: 2000, Priority: 10})
	resp, err := http.Post(srv.URL+"/api/tasks", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created api.TaskDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "queued", created.State)
	assert.Equal(t, int64(2000), created.Duration)

	findResp, err := http.Get(srv.URL + "/api/tasks/" + created.ID)
	require.NoError(t, err)
	defer findResp.Body.Close()
	assert.Equal(t, http.StatusOK, findResp.StatusCode)

	var found api.TaskDTO
	require.NoError(t, json.NewDecoder(findResp.Body).Decode(&found))
	assert.Equal(t, created.ID, found.ID)
}

func TestFindTask_NotFound(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/tasks/00000000-0000-0000-0000-000000000000")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListTasks_FiltersByState(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	body, _ := json.Marshal(api.CreateTaskRequest{Duration: 1000, Priority: 1})
	resp, err := http.Post(srv.URL+"/api/tasks", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()

	listResp, err := http.Get(srv.URL + "/api/tasks?state=queued")
	require.NoError(t, err)
	defer listResp.Body.Close()
	require.Equal(t, http.StatusOK, listResp.StatusCode)

	var tasks []api.TaskDTO
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&tasks))
	assert.Len(t, tasks, 1)

	emptyResp, err := http.Get(srv.URL + "/api/tasks?state=running")
	require.NoError(t, err)
	defer emptyResp.Body.Close()
	var empty []api.TaskDTO
	require.NoError(t, json.NewDecoder(emptyResp.Body).Decode(&empty))
	assert.Empty(t, empty)
}

func TestCancelTask_IsIdempotentlyNotFoundAfterward(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	body, _ := json.Marshal(api.CreateTaskRequest{Duration: 1000, Priority: 1})
	resp, err := http.Post(srv.URL+"/api/tasks", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	var created api.TaskDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/tasks/"+created.ID, nil)
	delResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, delResp.StatusCode)
	delResp.Body.Close()

	req2, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/tasks/"+created.ID, nil)
	delResp2, err := http.DefaultClient.Do(req2)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, delResp2.StatusCode)
	delResp2.Body.Close()
}
