// Package reconcile audits the write-path incremental user counters against
// a full recomputation from the event log. The log is the source of truth;
// the counters are a cache that can silently drift, and this is the process
// that notices.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/adrift-app/adrift/internal/adapter"
	"github.com/adrift-app/adrift/internal/domain"
	"github.com/adrift-app/adrift/internal/logger"
	"github.com/adrift-app/adrift/internal/projection"
	"github.com/adrift-app/adrift/internal/store"
	"github.com/adrift-app/adrift/internal/store/schema"
)

// Config holds configuration for the stats reconciler
type Config struct {
	Interval       time.Duration // Time to sleep between audit cycles
	WorkerPoolSize int           // Concurrent per-user checks
	Repair         bool          // Overwrite divergent counters with recomputed values
}

// Reconciler periodically audits the user stat counters
type Reconciler interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// statsReconciler implements the Reconciler interface
type statsReconciler struct {
	config    Config
	store     store.Store
	clock     adapter.Clock
	pool      pond.Pool
	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// NewStatsReconciler creates a new stats reconciler
func NewStatsReconciler(cfg Config, st store.Store, clock adapter.Clock) Reconciler {
	return &statsReconciler{
		config:    cfg,
		store:     st,
		clock:     clock,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Name returns the reconciler's name
func (r *statsReconciler) Name() string {
	return "stats-reconciler"
}

// Start begins the reconciler's main loop
func (r *statsReconciler) Start(ctx context.Context) error {
	if !r.running.CompareAndSwap(false, true) {
		return fmt.Errorf("reconciler already running")
	}
	defer func() {
		r.running.Store(false)
		close(r.stoppedCh)
	}()

	logger.InfoCtx(ctx, "Starting stats reconciler",
		zap.Duration("interval", r.config.Interval),
		zap.Int("worker_pool_size", r.config.WorkerPoolSize),
		zap.Bool("repair", r.config.Repair),
	)

	r.pool = pond.NewPool(
		r.config.WorkerPoolSize,
		pond.WithContext(ctx),
	)

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Stats reconciler stopping due to context cancellation", zap.Error(ctx.Err()))
			r.cleanup()
			return nil
		case <-r.stopChan:
			logger.InfoCtx(ctx, "Stats reconciler stop requested")
			r.cleanup()
			return nil
		default:
			if err := r.runAuditCycle(ctx); err != nil {
				if !errors.Is(err, context.Canceled) {
					logger.ErrorCtx(ctx, err)
				}
			}
			if !r.sleep(ctx, r.config.Interval) {
				continue // Context canceled; let the select exit the loop
			}
		}
	}
}

// cleanup stops the worker pool and waits for in-flight checks to complete
func (r *statsReconciler) cleanup() {
	if r.pool != nil {
		r.pool.StopAndWait()
	}
}

// Stop gracefully stops the reconciler with timeout support
func (r *statsReconciler) Stop(ctx context.Context) error {
	if !r.running.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	logger.InfoCtx(ctx, "Stopping stats reconciler")

	close(r.stopChan)

	select {
	case <-r.stoppedCh:
		logger.InfoCtx(ctx, "Stats reconciler stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Stats reconciler stop interrupted by context timeout")
		return ctx.Err()
	}
}

// runAuditCycle audits every known user once
func (r *statsReconciler) runAuditCycle(ctx context.Context) error {
	startTime := r.clock.Now()
	logger.InfoCtx(ctx, "Starting stats audit cycle")

	usernames, err := r.listUsernamesWithRetry(ctx)
	if err != nil {
		return fmt.Errorf("failed to list usernames: %w", err)
	}

	if len(usernames) == 0 {
		logger.InfoCtx(ctx, "No users to audit")
		return nil
	}

	// One snapshot of the log for the whole cycle; recomputing per user
	// would hammer the database for identical rows.
	rows, err := r.store.ListEvents(ctx, "")
	if err != nil {
		return fmt.Errorf("failed to list events: %w", err)
	}
	events := make([]domain.BottleEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, row.ToDomain())
	}

	var divergentCount, repairedCount, errorCount atomic.Int32

	for _, username := range usernames {
		r.pool.Submit(func() {
			r.auditUser(ctx, username, events, &divergentCount, &repairedCount, &errorCount)
		})
	}

	r.pool.StopAndWait()

	// Recreate pool for next cycle
	r.pool = pond.NewPool(
		r.config.WorkerPoolSize,
		pond.WithContext(ctx),
	)

	logger.InfoCtx(ctx, "Stats audit cycle completed",
		zap.Duration("duration", r.clock.Since(startTime)),
		zap.Int("users_audited", len(usernames)),
		zap.Int32("divergent", divergentCount.Load()),
		zap.Int32("repaired", repairedCount.Load()),
		zap.Int32("errors", errorCount.Load()),
	)

	return nil
}

// auditUser recomputes one user's stats from the log and compares them with
// the incremental counter
func (r *statsReconciler) auditUser(
	ctx context.Context,
	username string,
	events []domain.BottleEvent,
	divergentCount, repairedCount, errorCount *atomic.Int32,
) {
	computed := projection.ComputeStats(events, username)

	counter, err := r.store.GetUserStatCounter(ctx, username)
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("username", username))
		errorCount.Add(1)
		return
	}

	cached := projection.UserStats{}
	if counter != nil {
		cached = projection.UserStats{
			Created:  counter.Created,
			Found:    counter.Found,
			Retossed: counter.Retossed,
		}
	}

	if cached == computed {
		return
	}

	divergentCount.Add(1)
	logger.ErrorCtx(ctx, fmt.Errorf("user stat counter diverges from event log"),
		zap.String("username", username),
		zap.Any("counter", cached),
		zap.Any("recomputed", computed),
	)

	if !r.config.Repair {
		return
	}

	err = r.store.PutUserStatCounter(ctx, &schema.UserStatCounter{
		Username:  username,
		Created:   computed.Created,
		Found:     computed.Found,
		Retossed:  computed.Retossed,
		UpdatedAt: r.clock.Now().UTC(),
	})
	if err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to repair user stat counter: %w", err),
			zap.String("username", username))
		errorCount.Add(1)
		return
	}

	repairedCount.Add(1)
	logger.InfoCtx(ctx, "Repaired user stat counter",
		zap.String("username", username),
		zap.Any("recomputed", computed),
	)
}

// listUsernamesWithRetry lists usernames with exponential backoff retry for
// transient database errors
func (r *statsReconciler) listUsernamesWithRetry(ctx context.Context) ([]string, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 2 * time.Second
	b.MaxInterval = 30 * time.Second
	b.MaxElapsedTime = 5 * time.Minute
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.5

	var usernames []string
	operation := func() error {
		var err error
		usernames, err = r.store.ListUsernames(ctx)
		return err
	}

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return nil, err
	}
	return usernames, nil
}

// sleep sleeps for the given duration but can be interrupted by context
// cancellation or a stop request. Returns true if sleep completed normally.
func (r *statsReconciler) sleep(ctx context.Context, duration time.Duration) bool {
	select {
	case <-r.clock.After(duration):
		return true
	case <-ctx.Done():
		return false
	case <-r.stopChan:
		return false
	}
}
