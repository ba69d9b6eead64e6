package api

//go:generate go tool swag init --generalInfo api.go --output docs --outputTypes go

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/pprof"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/fosdem/glhello/lib/api/docs"
	"github.com/fosdem/glhello/lib/config"
	"github.com/fosdem/glhello/lib/metrics"
	"github.com/fosdem/glhello/lib/rendering/shaders"
	"github.com/fosdem/glhello/lib/stats"
	"github.com/fosdem/glhello/lib/window"
)

// Injector delivers events to the render thread.
type Injector interface {
	Inject(ev window.Event)
}

// SourceProvider returns the shader sources of the program currently in
// use.
type SourceProvider interface {
	CurrentSources() shaders.Sources
}

type Api struct {
	srv      http.Server
	mux      *http.ServeMux
	cfg      *config.ApiCfg
	injector Injector
	sources  SourceProvider

	Stats *stats.Stats

	wsMutex   sync.Mutex
	wsClients map[*websocket.Conn]bool
}

// @title		glhello API
// @version	1.0
// @description	Live status and control of the glhello renderer.
// @BasePath	/
func New(cfg *config.ApiCfg, injector Injector, sources SourceProvider, st *stats.Stats) *Api {
	a := &Api{}
	a.cfg = cfg
	a.mux = http.NewServeMux()
	a.injector = injector
	a.sources = sources
	a.srv.Addr = cfg.Bind
	a.srv.Handler = a.mux
	a.wsClients = make(map[*websocket.Conn]bool)
	a.Stats = st

	if a.cfg.EnableProfiler {
		a.mux.HandleFunc("/prof", a.profileCPU)
	}
	a.mux.HandleFunc("POST /api/quit", a.quit)
	a.mux.HandleFunc("GET /api/stats", a.getStats)
	a.mux.HandleFunc("GET /api/shaders", a.getShaders)
	a.mux.HandleFunc("/api/ws", a.handleWebsocket)
	a.mux.Handle("/metrics", metrics.Handler())
	a.mux.Handle("/swagger/", httpSwagger.WrapHandler)
	return a
}

func (a *Api) Handler() http.Handler {
	return a.mux
}

func (a *Api) Serve() error {
	return a.srv.ListenAndServe()
}

func (a *Api) profileCPU(w http.ResponseWriter, _ *http.Request) {
	err := pprof.StartCPUProfile(w)
	if err != nil {
		http.Error(w, fmt.Sprintf("Could not start CPU profile: %s", err), http.StatusInternalServerError)
		return
	}
	time.Sleep(10 * time.Second)
	pprof.StopCPUProfile()
}

// @Summary	Ask the renderer to exit after the current frame
// @Router		/api/quit [post]
// @Tags		base
// @Produce	json
// @Success	200	{string}	string	"ok"
func (a *Api) quit(w http.ResponseWriter, _ *http.Request) {
	slog.Info("shutting down as per api request", slog.String("module", "api"))
	a.injector.Inject(window.Quit("api"))
	_, err := fmt.Fprintf(w, "\"ok\"\n")
	if err != nil {
		slog.Warn(fmt.Sprintf("could not write response: %s", err), slog.String("module", "api"))
		return
	}
}

// @Summary	Renderer statistics
// @Router		/api/stats [get]
// @Tags		base
// @Produce	json
// @Success	200	{object}	stats.Snapshot
func (a *Api) getStats(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	encoder := json.NewEncoder(w)
	err := encoder.Encode(a.Stats)
	if err != nil {
		http.Error(w, fmt.Sprintf("could not encode stats: %s", err), http.StatusInternalServerError)
		return
	}
}

type ShadersResponse struct {
	Vertex   string `json:"vertex"`
	Fragment string `json:"fragment"`
}

// @Summary	Source text of the shader program in use
// @Router		/api/shaders [get]
// @Tags		base
// @Produce	json
// @Success	200	{object}	ShadersResponse
func (a *Api) getShaders(w http.ResponseWriter, _ *http.Request) {
	src := a.sources.CurrentSources()
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(&ShadersResponse{
		Vertex:   src.Vertex,
		Fragment: src.Fragment,
	})
	if err != nil {
		http.Error(w, fmt.Sprintf("couldn't encode shaders: %s", err), http.StatusInternalServerError)
		return
	}
}

// ServeInBackground returns nil when the API is not configured.
func ServeInBackground(cfg *config.ApiCfg, injector Injector, sources SourceProvider, st *stats.Stats) *Api {
	var theApi *Api
	if cfg != nil {
		theApi = New(cfg, injector, sources, st)

		slog.Info(fmt.Sprintf("starting web server on %s", cfg.Bind), slog.String("module", "api"))
		go func() {
			err := theApi.Serve()
			if err != nil && err != http.ErrServerClosed {
				slog.Error(fmt.Sprintf("could not start web server: %s", err), slog.String("module", "api"))
			}
		}()
	}
	return theApi
}

func (a *Api) Close() error {
	return a.srv.Close()
}
