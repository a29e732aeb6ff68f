// Package sync drives background delivery of pending records to the
// backend. The engine owns its timer and connectivity subscription;
// Start and Stop are its only lifecycle surface, so there is no
// process-wide state to leak between instances.
//
// Per record the delivery state machine is:
//
//	pending -> syncing -> synced
//	                   -> pending-retry (backoff, while attempts remain)
//	                   -> abandoned     (budget exhausted or rejected)
//
// Collections sync concurrently; within one collection attempts run
// strictly in creation order so the server never observes records out
// of order.
package sync

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	httpclient "github.com/abhishekk-y16/KisanMitra/internal/client/api"
	"github.com/abhishekk-y16/KisanMitra/internal/client/connectivity"
	"github.com/abhishekk-y16/KisanMitra/internal/client/records"
	"github.com/abhishekk-y16/KisanMitra/internal/models"
	"github.com/abhishekk-y16/KisanMitra/pkg/api"
)

//go:generate moq -out transport_mock.go . Transport

// Transport delivers one decrypted record to the backend. The remote
// endpoint must apply submissions idempotently by record id; the engine
// relies on that guarantee to make retries after lost acknowledgments
// safe, and does not deduplicate on its own.
type Transport interface {
	SubmitRecord(ctx context.Context, collection string, req api.SubmitRecordRequest) error
}

// Config tunes the engine. Zero values fall back to defaults.
type Config struct {
	// Interval between scheduled passes.
	Interval time.Duration
	// BackoffBase is the base of the exponential per-record backoff.
	BackoffBase time.Duration
	// BackoffJitter is the ceiling of the random jitter added to every
	// backoff delay.
	BackoffJitter time.Duration
}

// Default engine timings.
const (
	DefaultInterval      = 30 * time.Second
	DefaultBackoffBase   = time.Second
	DefaultBackoffJitter = 500 * time.Millisecond
)

func (c Config) withDefaults() Config {
	if c.Interval <= 0 {
		c.Interval = DefaultInterval
	}
	if c.BackoffBase <= 0 {
		c.BackoffBase = DefaultBackoffBase
	}
	if c.BackoffJitter < 0 {
		c.BackoffJitter = DefaultBackoffJitter
	}
	return c
}

// Engine is the background sync scheduler.
type Engine struct {
	repo      *records.Repository
	transport Transport
	monitor   connectivity.Monitor
	logger    *slog.Logger
	now       func() time.Time
	cancel    context.CancelFunc
	done      chan struct{}
	cfg       Config
	mu        sync.Mutex
	running   bool
}

// New creates an engine over the repository, transport and connectivity
// signal.
func New(repo *records.Repository, transport Transport, monitor connectivity.Monitor, cfg Config, logger *slog.Logger) *Engine {
	return &Engine{
		repo:      repo,
		transport: transport,
		monitor:   monitor,
		cfg:       cfg.withDefaults(),
		logger:    logger,
		now:       time.Now,
	}
}

// Start launches the background loop: one pass immediately, then on
// every interval tick and on every offline-to-online transition.
// Returns an error if the engine is already running.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		return errors.New("sync engine already started")
	}

	ctx, e.cancel = context.WithCancel(ctx)
	e.done = make(chan struct{})
	e.running = true

	go e.run(ctx)
	return nil
}

// Stop cancels the driving timer and waits for the loop to exit. An
// in-flight delivery attempt is abandoned via context cancellation and
// leaves its record state untouched.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	e.running = false
	cancel, done := e.cancel, e.done
	e.mu.Unlock()

	cancel()
	<-done
}

func (e *Engine) run(ctx context.Context) {
	defer close(e.done)

	e.Pass(ctx)

	ticker := time.NewTicker(e.cfg.Interval)
	defer ticker.Stop()

	events := e.monitor.Events()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.Pass(ctx)
		case online := <-events:
			if online {
				e.logger.Info("connectivity restored, starting sync pass")
				e.Pass(ctx)
			}
		}
	}
}

// Pass runs one full scheduling pass: every collection in parallel,
// records within a collection strictly in creation order. While the
// device is offline the pass is skipped outright, so no attempt is made
// and no retry budget is consumed.
func (e *Engine) Pass(ctx context.Context) {
	if !e.monitor.Online() {
		e.logger.Debug("device offline, skipping sync pass")
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, collection := range e.repo.Collections() {
		g.Go(func() error {
			e.syncCollection(gctx, collection)
			return nil
		})
	}
	_ = g.Wait()
}

func (e *Engine) syncCollection(ctx context.Context, collection string) {
	pending, err := e.repo.Pending(ctx, collection)
	if err != nil {
		// Local storage trouble is not a delivery failure: skip the
		// pass and let the next one retry with budgets untouched.
		e.logger.Warn("failed to read pending records, skipping pass",
			"collection", collection, "error", err)
		return
	}
	if len(pending) == 0 {
		return
	}

	e.logger.Debug("syncing collection", "collection", collection, "pending", len(pending))

	for _, record := range pending {
		if ctx.Err() != nil {
			return
		}
		if !e.waitBackoff(ctx, record) {
			return
		}
		e.deliver(ctx, record)
	}
}

// waitBackoff blocks until the record's scheduled attempt time. Waiting
// in line preserves creation order: a later record is not attempted
// while an earlier one is still backing off. Returns false when the
// engine is stopped first.
func (e *Engine) waitBackoff(ctx context.Context, record *models.Record) bool {
	delay := record.NextAttemptAt.Sub(e.now())
	if delay <= 0 {
		return true
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (e *Engine) deliver(ctx context.Context, record *models.Record) {
	plaintext, err := e.repo.Open(record)
	if err != nil {
		// Undecryptable records can never be delivered. Take them out
		// of the pool instead of burning attempts forever.
		e.logger.Error("record payload is unreadable, abandoning",
			"collection", record.Collection, "id", record.ID, "error", err)
		record.Rejected = true
		e.persist(ctx, record)
		return
	}

	err = e.transport.SubmitRecord(ctx, record.Collection, api.SubmitRecordRequest{
		ID:        record.ID,
		CreatedAt: record.CreatedAt,
		Payload:   plaintext,
	})

	// Engine shutdown mid-flight: no acknowledgment, no settled
	// failure. Leave the record exactly as it was.
	if ctx.Err() != nil {
		return
	}

	// The transport never reached the network. Like a Pending read
	// failure this is local trouble, not a delivery attempt: skip and
	// let the next pass retry with the budget untouched.
	if errors.Is(err, httpclient.ErrLocalStorage) {
		e.logger.Warn("local storage unavailable, skipping record",
			"collection", record.Collection, "id", record.ID, "error", err)
		return
	}

	if err == nil {
		record.Synced = true
		record.NextAttemptAt = time.Time{}
		e.persist(ctx, record)
		e.logger.Info("record synced", "collection", record.Collection, "id", record.ID)
		return
	}

	record.RetryCount++
	switch {
	case !httpclient.Retryable(err):
		record.Rejected = true
		e.logger.Warn("record permanently rejected by server",
			"collection", record.Collection, "id", record.ID,
			"retry_count", record.RetryCount, "error", err)
	case record.RetryCount >= e.repo.MaxRetries():
		e.logger.Warn("record abandoned after exhausting retries",
			"collection", record.Collection, "id", record.ID,
			"retry_count", record.RetryCount, "error", err)
	default:
		delay := e.backoff(record.RetryCount)
		record.NextAttemptAt = e.now().Add(delay)
		e.logger.Debug("delivery failed, scheduling retry",
			"collection", record.Collection, "id", record.ID,
			"retry_count", record.RetryCount, "delay", delay, "error", err)
	}
	e.persist(ctx, record)
}

func (e *Engine) persist(ctx context.Context, record *models.Record) {
	if err := e.repo.Update(ctx, record); err != nil {
		e.logger.Error("failed to persist record state",
			"collection", record.Collection, "id", record.ID, "error", err)
	}
}

// backoff computes base * 2^retryCount plus random jitter, spreading
// reconnect storms across devices.
func (e *Engine) backoff(retryCount int) time.Duration {
	delay := e.cfg.BackoffBase << uint(retryCount)
	if e.cfg.BackoffJitter > 0 {
		delay += time.Duration(rand.Int63n(int64(e.cfg.BackoffJitter)))
	}
	return delay
}
