package http

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/toyrobot/internal/runtime"
	"github.com/aretw0/toyrobot/pkg/domain"
	"github.com/aretw0/toyrobot/pkg/observability"
	"github.com/aretw0/toyrobot/pkg/runner"
	"github.com/aretw0/toyrobot/pkg/session"
)

func newTestHandler(t *testing.T, opts ...Option) http.Handler {
	t.Helper()
	h, err := NewHandler(session.New(runner.NewRunner()), opts...)
	require.NoError(t, err)
	return h
}

func postCommands(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/commands", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestGetSwagger(t *testing.T) {
	doc, err := GetSwagger()
	require.NoError(t, err)
	assert.Equal(t, "Toy Robot API", doc.Info.Title)
	assert.NotNil(t, doc.Paths.Find("/commands"))
}

func TestSubmitCommands_Batch(t *testing.T) {
	h := newTestHandler(t)

	w := postCommands(t, h, `{"commands": ["REPORT", "PLACE 1,2,EAST", "MOVE", "MOVE", "LEFT", "MOVE", "REPORT"]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp CommandResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Events, 7)
	assert.Equal(t, "Robot has not been placed", resp.Events[0].Error)
	assert.Equal(t, "> 3,3 NORTH", resp.Events[6].Output)
	assert.Equal(t, &domain.State{X: 3, Y: 3, Direction: domain.North}, resp.State)
}

func TestSubmitCommands_StateCarriesAcrossRequests(t *testing.T) {
	h := newTestHandler(t)

	require.Equal(t, http.StatusOK, postCommands(t, h, `{"command": "PLACE 0,0,NORTH"}`).Code)
	require.Equal(t, http.StatusOK, postCommands(t, h, `{"command": "MOVE"}`).Code)

	w := postCommands(t, h, `{"command": "REPORT"}`)
	var resp CommandResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Events, 1)
	assert.Equal(t, "REPORT", resp.Events[0].Command)
	assert.Equal(t, "> 0,1 NORTH", resp.Events[0].Output)
}

func TestSubmitCommands_BadRequests(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name string
		body string
	}{
		{"Not JSON", `PLACE 0,0,NORTH`},
		{"Empty Object", `{}`},
		{"Wrong Type", `{"command": 42}`},
		{"Unknown Field", `{"cmd": "MOVE"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postCommands(t, h, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestGetState(t *testing.T) {
	h := newTestHandler(t)

	get := func() map[string]any {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/state", nil))
		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		return body
	}

	body := get()
	assert.Equal(t, false, body["placed"])
	assert.NotContains(t, body, "x")

	postCommands(t, h, `{"command": "PLACE 2,3,SOUTH"}`)

	body = get()
	assert.Equal(t, true, body["placed"])
	assert.Equal(t, 2.0, body["x"])
	assert.Equal(t, 3.0, body["y"])
	assert.Equal(t, "SOUTH", body["direction"])
}

func TestHealthAndInfo(t *testing.T) {
	h := newTestHandler(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/info", nil))
	var info map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "1.0.0", info["api_version"])
	assert.Equal(t, "X 0..4, Y 0..4", info["table"])
}

func TestOpenAPIDocument(t *testing.T) {
	h := newTestHandler(t)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "openapi: 3.0.3")
}

func TestMetricsEndpoint(t *testing.T) {
	m := observability.NewMetrics()
	reg := prometheus.NewRegistry()
	require.NoError(t, m.Register(reg))

	eng := runtime.NewEngine(runtime.WithLifecycleHooks(m.Hooks()))
	h, err := NewHandler(
		session.New(runner.NewRunner(runner.WithEngine(eng))),
		WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
	)
	require.NoError(t, err)

	postCommands(t, h, `{"commands": ["PLACE 0,0,NORTH", "JUMP"]}`)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `toyrobot_commands_total{command="place",outcome="applied"} 1`)
	assert.Contains(t, w.Body.String(), `toyrobot_commands_total{command="invalid",outcome="error"} 1`)
	assert.Contains(t, w.Body.String(), "toyrobot_robot_placed 1")
}

func TestSubscribeEvents(t *testing.T) {
	h := newTestHandler(t)
	srv := httptest.NewServer(h)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	readData := func() string {
		for {
			line, err := reader.ReadString('\n')
			require.NoError(t, err)
			if strings.HasPrefix(line, "data: ") {
				return strings.TrimSpace(strings.TrimPrefix(line, "data: "))
			}
		}
	}
	assert.Equal(t, "connected", readData())

	post, err := http.Post(srv.URL+"/commands", "application/json", strings.NewReader(`{"command": "PLACE 0,0,WEST"}`))
	require.NoError(t, err)
	io.Copy(io.Discard, post.Body)
	post.Body.Close()

	var ev runner.RichResponse
	require.NoError(t, json.Unmarshal([]byte(readData()), &ev))
	assert.Equal(t, "PLACE 0,0,WEST", ev.Command)
	assert.Equal(t, &domain.State{X: 0, Y: 0, Direction: domain.West}, ev.State)
}

func TestSubscribeEvents_ConcurrentBatchesKeepApplicationOrder(t *testing.T) {
	h := newTestHandler(t)
	srv := httptest.NewServer(h)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/events", nil)
	require.NoError(t, err)
	stream, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer stream.Body.Close()

	reader := bufio.NewReader(stream.Body)
	readData := func() string {
		for {
			line, err := reader.ReadString('\n')
			require.NoError(t, err)
			if strings.HasPrefix(line, "data: ") {
				return strings.TrimSpace(strings.TrimPrefix(line, "data: "))
			}
		}
	}
	require.Equal(t, "connected", readData())

	const clients = 8
	batches := make([]CommandResponse, clients)
	var wg sync.WaitGroup
	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			body := fmt.Sprintf(`{"commands": ["MOVE", "PLACE %d,%d,NORTH", "MOVE", "RIGHT", "MOVE", "REPORT"]}`, i%5, i/5)
			post, err := http.Post(srv.URL+"/commands", "application/json", strings.NewReader(body))
			if !assert.NoError(t, err) {
				return
			}
			defer post.Body.Close()
			assert.NoError(t, json.NewDecoder(post.Body).Decode(&batches[i]))
		}(i)
	}
	wg.Wait()

	var streamed []runner.RichResponse
	for len(streamed) < clients*6 {
		var ev runner.RichResponse
		require.NoError(t, json.Unmarshal([]byte(readData()), &ev))
		streamed = append(streamed, ev)
	}

	// Replaying the stream on a fresh robot reproduces every event.
	replay := runner.NewRunner()
	for i, ev := range streamed {
		want := runner.NewRichResponse(ev.Command, replay.Step(context.Background(), ev.Command))
		assert.Equal(t, want, ev, "stream event %d", i)
	}

	// Each batch appears as one uninterrupted run, and its reply state is its own.
	for i, batch := range batches {
		require.Len(t, batch.Events, 6, "client %d", i)
		assert.Equal(t, batch.Events[len(batch.Events)-1].State, batch.State, "client %d", i)

		found := false
		for start := 0; start+len(batch.Events) <= len(streamed); start++ {
			if assert.ObjectsAreEqual(batch.Events, streamed[start:start+len(batch.Events)]) {
				found = true
				break
			}
		}
		assert.True(t, found, "client %d batch is not contiguous in the stream", i)
	}
}

func TestStreamManager(t *testing.T) {
	sm := NewStreamManager(slogDiscard())
	ch, cancel := sm.Subscribe()
	assert.Equal(t, 1, sm.Subscribers())

	sm.Broadcast("hello")
	assert.Equal(t, "hello", <-ch)

	cancel()
	cancel()
	assert.Equal(t, 0, sm.Subscribers())
	_, ok := <-ch
	assert.False(t, ok)
}

func slogDiscard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
