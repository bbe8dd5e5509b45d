package internalhttp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"teamcal/internal/feed"
)

type staticSource []feed.Item

func (s staticSource) Items() []feed.Item { return s }

func TestItemsEndpoint(t *testing.T) {
	source := staticSource{
		{ID: 1, Title: "standup", Start: "2025-11-18T10:00", Kind: feed.KindEvent,
			Event: &feed.EventDetails{CalendarType: feed.ViewGeneral}},
		{ID: 10, Title: "report", Start: "2025-11-18T17:00", Kind: feed.KindTask,
			Task: &feed.TaskDetails{Status: "pending", AssigneeID: 7}},
	}
	server := NewServer(Config{Host: "127.0.0.1", Port: 0}, source)

	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	req.RemoteAddr = "127.0.0.1:50000"
	w := httptest.NewRecorder()
	server.srv.Handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var items []feed.Item
	require.NoError(t, json.NewDecoder(w.Body).Decode(&items))
	require.Len(t, items, 2)
	require.Equal(t, feed.KindTask, items[1].Kind)
}

func TestItemsEndpointRejectsNonGet(t *testing.T) {
	server := NewServer(Config{Host: "127.0.0.1", Port: 0}, staticSource{})

	req := httptest.NewRequest(http.MethodPost, "/items", nil)
	req.RemoteAddr = "127.0.0.1:50000"
	w := httptest.NewRecorder()
	server.srv.Handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	server := NewServer(Config{Host: "127.0.0.1", Port: 0}, staticSource{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "127.0.0.1:50000"
	w := httptest.NewRecorder()
	server.srv.Handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "OK", w.Body.String())
}
