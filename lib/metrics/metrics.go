package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	FramesRendered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "glhello_frames_rendered_total",
		Help: "Total number of frames drawn and presented",
	})
	ShaderBuilds = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glhello_shader_builds_total",
		Help: "Total number of shader program builds, by result",
	}, []string{"result"})
	Events = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glhello_events_total",
		Help: "Total number of window events drained, by kind",
	}, []string{"kind"})
)

func init() {
	for _, result := range []string{"ok", "compile_error", "link_error", "error"} {
		ShaderBuilds.WithLabelValues(result).Add(0)
	}
}

// Handler should usually be mounted at /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
