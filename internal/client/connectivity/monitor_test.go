package connectivity

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProber struct {
	healthy atomic.Bool
}

func (p *fakeProber) Health(ctx context.Context) error {
	if p.healthy.Load() {
		return nil
	}
	return errors.New("unreachable")
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestProbeMonitor_Transitions(t *testing.T) {
	prober := &fakeProber{}
	monitor := NewProbeMonitor(prober, 10*time.Millisecond, time.Second, testLogger())

	monitor.Start(context.Background())
	defer monitor.Stop()

	assert.False(t, monitor.Online(), "offline until first successful probe")

	prober.healthy.Store(true)
	select {
	case online := <-monitor.Events():
		assert.True(t, online)
	case <-time.After(2 * time.Second):
		t.Fatal("no online transition observed")
	}
	assert.True(t, monitor.Online())

	prober.healthy.Store(false)
	select {
	case online := <-monitor.Events():
		assert.False(t, online)
	case <-time.After(2 * time.Second):
		t.Fatal("no offline transition observed")
	}
	assert.False(t, monitor.Online())
}

func TestProbeMonitor_StopIsSafeWithoutStart(t *testing.T) {
	monitor := NewProbeMonitor(&fakeProber{}, time.Second, time.Second, testLogger())
	monitor.Stop()
}

func TestManual(t *testing.T) {
	monitor := NewManual(false)
	assert.False(t, monitor.Online())

	monitor.SetOnline(true)
	assert.True(t, monitor.Online())

	select {
	case online := <-monitor.Events():
		assert.True(t, online)
	default:
		t.Fatal("expected a transition event")
	}

	// No event when the state does not change.
	monitor.SetOnline(true)
	select {
	case <-monitor.Events():
		t.Fatal("unexpected event without a transition")
	default:
	}
}

func TestManual_EventBufferKeepsLatest(t *testing.T) {
	monitor := NewManual(false)
	monitor.SetOnline(true)
	monitor.SetOnline(false)
	monitor.SetOnline(true)

	// Buffer holds at most one event; state converges regardless.
	require.True(t, monitor.Online())
}
