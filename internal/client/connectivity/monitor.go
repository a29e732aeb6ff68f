// Package connectivity abstracts the host's online/offline signal. On
// platforms with a native reachability API this is a thin adapter; the
// default implementation probes the backend health endpoint, which also
// covers "network up but backend unreachable".
package connectivity

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Monitor exposes the current connectivity state and a transition feed.
// The sync engine skips whole passes while offline and schedules an
// immediate pass on an offline-to-online transition.
type Monitor interface {
	// Online reports the last observed connectivity state.
	Online() bool

	// Events emits the new state on every transition. The channel is
	// never closed while the monitor runs; slow consumers may miss
	// intermediate flips but always converge on the latest state.
	Events() <-chan bool
}

// Prober checks backend reachability. Implemented by api.Client.Health.
type Prober interface {
	Health(ctx context.Context) error
}

// ProbeMonitor derives connectivity by polling the backend health
// endpoint on an interval.
type ProbeMonitor struct {
	prober   Prober
	logger   *slog.Logger
	events   chan bool
	cancel   context.CancelFunc
	done     chan struct{}
	interval time.Duration
	timeout  time.Duration
	online   bool
	mu       sync.Mutex
}

// NewProbeMonitor creates a monitor polling every interval. The device
// is considered offline until the first successful probe.
func NewProbeMonitor(prober Prober, interval, timeout time.Duration, logger *slog.Logger) *ProbeMonitor {
	return &ProbeMonitor{
		prober:   prober,
		interval: interval,
		timeout:  timeout,
		logger:   logger,
		events:   make(chan bool, 1),
	}
}

// Start begins probing until Stop is called or ctx is canceled.
func (m *ProbeMonitor) Start(ctx context.Context) {
	ctx, m.cancel = context.WithCancel(ctx)
	m.done = make(chan struct{})

	go func() {
		defer close(m.done)

		m.probe(ctx)

		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.probe(ctx)
			}
		}
	}()
}

// Stop halts probing and waits for the probe goroutine to exit.
func (m *ProbeMonitor) Stop() {
	if m.cancel == nil {
		return
	}
	m.cancel()
	<-m.done
}

// Online reports the last probed state.
func (m *ProbeMonitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// Events returns the transition feed.
func (m *ProbeMonitor) Events() <-chan bool {
	return m.events
}

func (m *ProbeMonitor) probe(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	err := m.prober.Health(probeCtx)
	online := err == nil

	m.mu.Lock()
	changed := online != m.online
	m.online = online
	m.mu.Unlock()

	if !changed {
		return
	}

	m.logger.Info("connectivity changed", "online", online)
	select {
	case m.events <- online:
	default:
		// Drop rather than block: the consumer will see the latest
		// state through Online().
	}
}

// Manual is a monitor driven by explicit SetOnline calls. Used by tests
// and by platforms that surface their own reachability callbacks.
type Manual struct {
	events chan bool
	online bool
	mu     sync.Mutex
}

// NewManual creates a manual monitor with the given initial state.
func NewManual(online bool) *Manual {
	return &Manual{online: online, events: make(chan bool, 1)}
}

// SetOnline updates the state, emitting an event on transition.
func (m *Manual) SetOnline(online bool) {
	m.mu.Lock()
	changed := online != m.online
	m.online = online
	m.mu.Unlock()

	if !changed {
		return
	}
	select {
	case m.events <- online:
	default:
	}
}

// Online reports the current state.
func (m *Manual) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// Events returns the transition feed.
func (m *Manual) Events() <-chan bool {
	return m.events
}
