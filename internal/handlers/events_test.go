package handlers_test

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nextEvent reads lines until a complete event arrives and returns its name
// and data.
func nextEvent(t *testing.T, r *bufio.Reader) (string, string) {
	t.Helper()
	var name, data string
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		switch {
		case strings.HasPrefix(line, "event:"):
			name = strings.TrimPrefix(line, "event:")
		case strings.HasPrefix(line, "data:"):
			data = strings.TrimPrefix(line, "data:")
		case line == "" && name != "":
			return name, data
		}
	}
}

func openStream(t *testing.T, srv *httptest.Server, path, bearer string) *bufio.Reader {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+path+"?access_token="+bearer, nil)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")
	return bufio.NewReader(resp.Body)
}

func TestUserEvents_PushesDashboardOnChange(t *testing.T) {
	s := newTestServer(t, 100)
	srv := httptest.NewServer(s.router)
	t.Cleanup(srv.Close)
	user := token(t, "u1", false)

	stream := openStream(t, srv, "/api/v1/events", user)
	name, data := nextEvent(t, stream)
	assert.Equal(t, "dashboard", name)
	assert.Contains(t, data, `"status":"idle"`)

	s.submitRow(t, user)

	done := make(chan string, 1)
	go func() {
		_, data := nextEvent(t, stream)
		done <- data
	}()
	select {
	case data := <-done:
		assert.Contains(t, data, `"status":"generating"`)
	case <-time.After(5 * time.Second):
		t.Fatal("no dashboard event after submit")
	}
}

func TestAdminEvents_PushesSnapshot(t *testing.T) {
	s := newTestServer(t, 100)
	srv := httptest.NewServer(s.router)
	t.Cleanup(srv.Close)

	stream := openStream(t, srv, "/api/v1/admin/events", token(t, "boss", true))
	name, data := nextEvent(t, stream)
	assert.Equal(t, "submissions", name)
	assert.Contains(t, data, `"total":0`)

	sub := s.submitRow(t, token(t, "u1", false))

	done := make(chan string, 1)
	go func() {
		_, data := nextEvent(t, stream)
		done <- data
	}()
	select {
	case data := <-done:
		assert.Contains(t, data, sub.ID)
		assert.Contains(t, data, `"pending":1`)
	case <-time.After(5 * time.Second):
		t.Fatal("no submissions event after submit")
	}
}
