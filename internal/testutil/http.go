package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// HTTPTestHelper provides utilities for HTTP testing
type HTTPTestHelper struct {
	t      *testing.T
	router *gin.Engine
}

// NewHTTPTestHelper creates a new HTTP test helper
func NewHTTPTestHelper(t *testing.T) *HTTPTestHelper {
	gin.SetMode(gin.TestMode)
	return &HTTPTestHelper{
		t:      t,
		router: gin.New(),
	}
}

// SetRouter sets the gin router to use for testing
func (h *HTTPTestHelper) SetRouter(router *gin.Engine) {
	h.router = router
}

// PostJSON performs a POST request with JSON payload
func (h *HTTPTestHelper) PostJSON(url string, payload interface{}) *httptest.ResponseRecorder {
	body, err := json.Marshal(payload)
	require.NoError(h.t, err, "Failed to marshal JSON payload")

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(body))
	require.NoError(h.t, err, "Failed to create HTTP request")

	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	h.router.ServeHTTP(recorder, req)

	return recorder
}

// GetJSON performs a GET request expecting JSON response
func (h *HTTPTestHelper) GetJSON(url string) *httptest.ResponseRecorder {
	req, err := http.NewRequest("GET", url, nil)
	require.NoError(h.t, err, "Failed to create HTTP request")

	req.Header.Set("Accept", "application/json")

	recorder := httptest.NewRecorder()
	h.router.ServeHTTP(recorder, req)

	return recorder
}

// Delete performs a DELETE request
func (h *HTTPTestHelper) Delete(url string) *httptest.ResponseRecorder {
	req, err := http.NewRequest("DELETE", url, nil)
	require.NoError(h.t, err, "Failed to create HTTP request")

	recorder := httptest.NewRecorder()
	h.router.ServeHTTP(recorder, req)

	return recorder
}

// AssertJSONResponse asserts that the response is valid JSON and unmarshals it
func (h *HTTPTestHelper) AssertJSONResponse(recorder *httptest.ResponseRecorder, expectedStatus int, target interface{}) {
	require.Equal(h.t, expectedStatus, recorder.Code, "Unexpected status code")
	require.Equal(h.t, "application/json; charset=utf-8", recorder.Header().Get("Content-Type"), "Expected JSON content type")

	err := json.Unmarshal(recorder.Body.Bytes(), target)
	require.NoError(h.t, err, "Failed to unmarshal JSON response")
}

// AssertErrorResponse asserts that the response contains an error
func (h *HTTPTestHelper) AssertErrorResponse(recorder *httptest.ResponseRecorder, expectedStatus int, expectedErrorSubstring string) {
	require.Equal(h.t, expectedStatus, recorder.Code, "Unexpected status code")

	var errorResponse map[string]interface{}
	err := json.Unmarshal(recorder.Body.Bytes(), &errorResponse)
	require.NoError(h.t, err, "Failed to unmarshal error response")

	errorMessage, exists := errorResponse["error"]
	require.True(h.t, exists, "Expected error field in response")
	require.Contains(h.t, errorMessage, expectedErrorSubstring, "Error message should contain expected substring")
}

// MockHTTPServer provides a mock HTTP server for testing external API calls
type MockHTTPServer struct {
	server   *httptest.Server
	handlers map[string]http.HandlerFunc
}

// NewMockHTTPServer creates a new mock HTTP server
func NewMockHTTPServer() *MockHTTPServer {
	mock := &MockHTTPServer{
		handlers: make(map[string]http.HandlerFunc),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", mock.routeRequest)

	mock.server = httptest.NewServer(mux)
	return mock
}

// URL returns the mock server URL
func (m *MockHTTPServer) URL() string {
	return m.server.URL
}

// Close closes the mock server
func (m *MockHTTPServer) Close() {
	m.server.Close()
}

// On registers a handler for a specific path
func (m *MockHTTPServer) On(path string, handler http.HandlerFunc) {
	m.handlers[path] = handler
}

// routeRequest routes requests to registered handlers
func (m *MockHTTPServer) routeRequest(w http.ResponseWriter, r *http.Request) {
	if handler, exists := m.handlers[r.URL.Path]; exists {
		handler(w, r)
		return
	}

	http.NotFound(w, r)
}

// YouTubeSearchResponse creates a mock YouTube Data API search response
func YouTubeSearchResponse(items ...map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"kind":  "youtube#searchListResponse",
		"items": items,
	}
}

// YouTubeSearchItem creates one search result item for YouTubeSearchResponse
func YouTubeSearchItem(videoID, title, channel string) map[string]interface{} {
	return map[string]interface{}{
		"id": map[string]interface{}{
			"kind":    "youtube#video",
			"videoId": videoID,
		},
		"snippet": map[string]interface{}{
			"title":        title,
			"channelTitle": channel,
			"thumbnails": map[string]interface{}{
				"medium": map[string]interface{}{
					"url": "https://i.ytimg.com/vi/" + videoID + "/mqdefault.jpg",
				},
			},
		},
	}
}

// YouTubeVideosResponse creates a mock YouTube videos.list response with
// contentDetails durations, keyed by video ID.
func YouTubeVideosResponse(durations map[string]string) map[string]interface{} {
	items := make([]map[string]interface{}, 0, len(durations))
	for id, iso := range durations {
		items = append(items, map[string]interface{}{
			"id": id,
			"contentDetails": map[string]interface{}{
				"duration": iso,
			},
		})
	}
	return map[string]interface{}{
		"kind":  "youtube#videoListResponse",
		"items": items,
	}
}

// InvidiousSearchResponse creates a mock Invidious search response
func InvidiousSearchResponse(videos ...map[string]interface{}) []map[string]interface{} {
	return videos
}

// InvidiousVideo creates one Invidious search result
func InvidiousVideo(videoID, title, author string, lengthSeconds int) map[string]interface{} {
	return map[string]interface{}{
		"videoId":       videoID,
		"title":         title,
		"author":        author,
		"lengthSeconds": lengthSeconds,
		"videoThumbnails": []map[string]interface{}{
			{"quality": "medium", "url": "https://example.com/" + videoID + ".jpg"},
		},
	}
}

// PipedSearchResponse creates a mock Piped search response
func PipedSearchResponse(items ...map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"items": items,
	}
}

// PipedItem creates one Piped search result
func PipedItem(videoID, title, uploader string, duration int) map[string]interface{} {
	return map[string]interface{}{
		"url":          "/watch?v=" + videoID,
		"title":        title,
		"uploaderName": uploader,
		"duration":     duration,
		"thumbnail":    "https://example.com/" + videoID + ".jpg",
	}
}

// WriteJSON writes v as a JSON response body
func WriteJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
