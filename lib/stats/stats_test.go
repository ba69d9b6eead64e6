package stats

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func TestFPS(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	s := newWithClock(clock.now)

	for range 30 {
		clock.t = clock.t.Add(20 * time.Millisecond)
		s.Update()
	}
	snap := s.Snapshot()
	assert.Equal(t, uint64(30), snap.Frames)
	assert.Equal(t, uint64(0), snap.FPS, "no full second yet")

	for range 20 {
		clock.t = clock.t.Add(20 * time.Millisecond)
		s.Update()
	}
	snap = s.Snapshot()
	assert.Equal(t, uint64(50), snap.Frames)
	assert.Equal(t, uint64(50), snap.FPS)
	assert.InDelta(t, 1.0, snap.Uptime, 1e-9)
}

func TestJSON(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	s := newWithClock(clock.now)
	s.Update()
	s.ShaderReloaded()
	s.SetWsClients(2)
	clock.t = clock.t.Add(1500 * time.Millisecond)

	b, err := json.Marshal(s)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, float64(1), got["frames"])
	assert.Equal(t, float64(1), got["shader_reloads"])
	assert.Equal(t, float64(2), got["ws_clients"])
	assert.Equal(t, 1.5, got["uptime"])
}
