package stats

import (
	"encoding/json"
	"sync"
	"time"
)

// Stats is written by the render thread and read by the API.
type Stats struct {
	mu sync.Mutex

	frames        uint64
	fps           uint64
	shaderReloads uint64
	wsClients     int

	frameCounter uint64
	frameTimer   time.Time
	start        time.Time
	now          func() time.Time
}

// Snapshot is the JSON shape served by the API.
type Snapshot struct {
	Frames        uint64  `json:"frames"`
	FPS           uint64  `json:"fps"`
	Uptime        float64 `json:"uptime"`
	ShaderReloads uint64  `json:"shader_reloads"`
	WsClients     int     `json:"ws_clients"`
}

func New() *Stats {
	return newWithClock(time.Now)
}

func newWithClock(now func() time.Time) *Stats {
	s := &Stats{now: now}
	s.start = now()
	s.frameTimer = s.start
	return s
}

// Update is called once per presented frame.
func (s *Stats) Update() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.frames++
	s.frameCounter++
	now := s.now()
	if now.Sub(s.frameTimer) >= 1*time.Second {
		s.fps = s.frameCounter
		s.frameCounter = 0
		s.frameTimer = now
	}
}

func (s *Stats) ShaderReloaded() {
	s.mu.Lock()
	s.shaderReloads++
	s.mu.Unlock()
}

func (s *Stats) SetWsClients(n int) {
	s.mu.Lock()
	s.wsClients = n
	s.mu.Unlock()
}

func (s *Stats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Frames:        s.frames,
		FPS:           s.fps,
		Uptime:        float64(s.now().Sub(s.start).Nanoseconds()) / 1e9,
		ShaderReloads: s.shaderReloads,
		WsClients:     s.wsClients,
	}
}

func (s *Stats) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Snapshot())
}
