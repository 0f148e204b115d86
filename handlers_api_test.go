package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ximi-ai/lofi-creation-mcp/pkg/downloader"
)

func newTestRouter(p *testPipeline) http.Handler {
	appServer := NewAppServer(p.service)
	return setupRoutes(appServer)
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(newTestPipeline())

	w := doJSON(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "ok")
}

func TestStringPassEndpoint(t *testing.T) {
	router := newTestRouter(newTestPipeline())

	w := doJSON(t, router, http.MethodPost, "/api/v1/string/pass",
		StringPassRequest{String: "https://example.com/clip.mp4"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	require.Equal(t, "https://example.com/clip.mp4", data["string"])
}

func TestCreateEndpointSuccess(t *testing.T) {
	router := newTestRouter(newTestPipeline())

	w := doJSON(t, router, http.MethodPost, "/api/v1/lofi/create", CreateLofiRequest{
		VideoRef:        "/clips/video.mp4",
		AudioRef:        "/clips/audio.mp3",
		DurationSeconds: 25,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	require.Equal(t, "/output/lofi_test.mp4", data["video_path"])
}

func TestCreateEndpointMissingFields(t *testing.T) {
	router := newTestRouter(newTestPipeline())

	w := doJSON(t, router, http.MethodPost, "/api/v1/lofi/create",
		map[string]any{"video_str": "/clips/video.mp4"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "INVALID_REQUEST", resp.Code)
}

func TestCreateEndpointInvalidDuration(t *testing.T) {
	router := newTestRouter(newTestPipeline())

	w := doJSON(t, router, http.MethodPost, "/api/v1/lofi/create", CreateLofiRequest{
		VideoRef:        "/clips/video.mp4",
		AudioRef:        "/clips/audio.mp3",
		DurationSeconds: -5,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "INVALID_INPUT", resp.Code)
}

func TestCreateEndpointNotFound(t *testing.T) {
	p := newTestPipeline()
	p.resolver.err = downloader.ErrNotFound
	router := newTestRouter(p)

	w := doJSON(t, router, http.MethodPost, "/api/v1/lofi/create", CreateLofiRequest{
		VideoRef:        "/no/such/video.mp4",
		AudioRef:        "/clips/audio.mp3",
		DurationSeconds: 25,
	})
	require.Equal(t, http.StatusNotFound, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "NOT_FOUND", resp.Code)
}

func TestCreateEndpointAsyncAccepted(t *testing.T) {
	router := newTestRouter(newTestPipeline())

	w := doJSON(t, router, http.MethodPost, "/api/v1/lofi/create", CreateLofiRequest{
		VideoRef:        "/clips/video.mp4",
		AudioRef:        "/clips/audio.mp3",
		DurationSeconds: 25,
		Webhook:         "http://127.0.0.1:1/hook",
	})
	require.Equal(t, http.StatusAccepted, w.Code)
}
