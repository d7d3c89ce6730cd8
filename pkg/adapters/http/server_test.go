package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tour "github.com/josephwaugh312/shiftsync-tour"
	"github.com/josephwaugh312/shiftsync-tour/internal/logging"
	"github.com/josephwaugh312/shiftsync-tour/pkg/domain"
)

func testCatalog() domain.Catalog {
	return domain.Catalog{
		{ID: "welcome", Title: "Welcome", Position: domain.PositionCenter},
		{ID: "employees", Title: "Employees", Target: "#nav-employees",
			Position: domain.PositionRight, RequireAction: true, Route: "/employees"},
		{ID: "finish", Title: "Done", Position: domain.PositionCenter},
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	eng, err := tour.New(context.Background(), tour.WithCatalog(testCatalog()))
	require.NoError(t, err)
	t.Cleanup(func() { eng.Close(context.Background()) })

	srv := httptest.NewServer(NewHandler(eng, logging.NewNop()))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	return resp, data
}

func getState(t *testing.T, data []byte) StateResponse {
	t.Helper()
	var sr StateResponse
	require.NoError(t, json.Unmarshal(data, &sr))
	return sr
}

func TestServer_StartAndState(t *testing.T) {
	srv := newTestServer(t)

	resp, data := do(t, http.MethodGet, srv.URL+"/tour", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, getState(t, data).State.Active)

	resp, data = do(t, http.MethodPost, srv.URL+"/tour/start", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	sr := getState(t, data)
	assert.True(t, sr.State.Active)
	require.NotNil(t, sr.CurrentStep)
	assert.Equal(t, "welcome", sr.CurrentStep.ID)
}

func TestServer_GatedNextRepliesConflict(t *testing.T) {
	srv := newTestServer(t)

	do(t, http.MethodPost, srv.URL+"/tour/start", nil)
	resp, _ := do(t, http.MethodPost, srv.URL+"/tour/next", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// employees step is gated
	resp, data := do(t, http.MethodPost, srv.URL+"/tour/next", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	var step StepResponse
	require.NoError(t, json.Unmarshal(data, &step))
	assert.False(t, step.Changed)

	resp, _ = do(t, http.MethodPost, srv.URL+"/tour/signals/click", ClickSignal{Href: "/employees"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, data = do(t, http.MethodPost, srv.URL+"/tour/next", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(data, &step))
	assert.True(t, step.Changed)
	assert.Equal(t, 2, step.State.StepIndex)
}

func TestServer_ViewLifecycle(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := do(t, http.MethodGet, srv.URL+"/tour/view", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	do(t, http.MethodPost, srv.URL+"/tour/start", nil)
	resp, data := do(t, http.MethodGet, srv.URL+"/tour/view", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var view tour.StepView
	require.NoError(t, json.Unmarshal(data, &view))
	assert.Equal(t, "welcome", view.Step.ID)
}

func TestServer_CatalogAndSkip(t *testing.T) {
	srv := newTestServer(t)

	resp, data := do(t, http.MethodGet, srv.URL+"/tour/catalog", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var cat domain.Catalog
	require.NoError(t, json.Unmarshal(data, &cat))
	assert.Len(t, cat, 3)

	do(t, http.MethodPost, srv.URL+"/tour/start", nil)
	_, data = do(t, http.MethodPost, srv.URL+"/tour/skip", nil)
	sr := getState(t, data)
	assert.False(t, sr.State.Active)
	assert.True(t, sr.State.HasSeenTutorial)
}

func TestServer_KeySignalToggles(t *testing.T) {
	srv := newTestServer(t)

	_, data := do(t, http.MethodPost, srv.URL+"/tour/signals/key",
		domain.KeyEvent{Key: "T", Shift: true})
	assert.True(t, getState(t, data).State.Active)

	_, data = do(t, http.MethodPost, srv.URL+"/tour/signals/key",
		domain.KeyEvent{Key: "t", Shift: true, EditableTarget: true})
	assert.True(t, getState(t, data).State.Active)
}

func TestServer_BadBodyRejected(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/tour/signals/route",
		bytes.NewReader([]byte("{broken")))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
