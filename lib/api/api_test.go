package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fosdem/glhello/lib/config"
	"github.com/fosdem/glhello/lib/rendering/shaders"
	"github.com/fosdem/glhello/lib/stats"
	"github.com/fosdem/glhello/lib/window"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInjector struct {
	mu     sync.Mutex
	events []window.Event
}

func (f *fakeInjector) Inject(ev window.Event) {
	f.mu.Lock()
	f.events = append(f.events, ev)
	f.mu.Unlock()
}

type fixedSources shaders.Sources

func (f fixedSources) CurrentSources() shaders.Sources { return shaders.Sources(f) }

func newTestApi() (*Api, *fakeInjector) {
	inj := &fakeInjector{}
	src := fixedSources{Vertex: "vert", Fragment: "frag"}
	return New(&config.ApiCfg{Bind: "127.0.0.1:0"}, inj, src, stats.New()), inj
}

func TestQuitInjectsEvent(t *testing.T) {
	a, inj := newTestApi()

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/quit", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "\"ok\"\n", rec.Body.String())
	require.Len(t, inj.events, 1)
	assert.Equal(t, window.Quit("api"), inj.events[0])
}

func TestQuitNeedsPost(t *testing.T) {
	a, inj := newTestApi()

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/quit", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Empty(t, inj.events)
}

func TestStats(t *testing.T) {
	a, _ := newTestApi()
	a.Stats.Update()
	a.Stats.Update()

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var snap stats.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, uint64(2), snap.Frames)
}

func TestShaders(t *testing.T) {
	a, _ := newTestApi()

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/shaders", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ShadersResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, ShadersResponse{Vertex: "vert", Fragment: "frag"}, resp)
}

func TestMetrics(t *testing.T) {
	a, _ := newTestApi()

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "glhello_shader_builds_total")
}

func TestProfilerOnlyWhenEnabled(t *testing.T) {
	a, _ := newTestApi()

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/prof", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWebsocketPushesStats(t *testing.T) {
	a, _ := newTestApi()
	a.Stats.Update()

	srv := httptest.NewServer(a.Handler())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer ws.Close()

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, msg, err := ws.ReadMessage()
	require.NoError(t, err)

	var snap stats.Snapshot
	require.NoError(t, json.Unmarshal(msg, &snap))
	assert.Equal(t, uint64(1), snap.Frames)

	assert.Eventually(t, func() bool {
		return a.Stats.Snapshot().WsClients == 1
	}, time.Second, 10*time.Millisecond)
}
