package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/gofrs/flock"

	"snapid/internal/config"
	"snapid/internal/logging"
	"snapid/internal/recognition"
	"snapid/internal/visualid"
)

// Recognizer identifies the title shown in a screenshot.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) (recognition.Result, error)
}

// Daemon coordinates the recognition service and enforces single-instance
// execution.
type Daemon struct {
	cfg        *config.Config
	logger     *slog.Logger
	recognizer Recognizer
	store      *visualid.Store
	api        *apiServer

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool   `json:"running"`
	PID          int    `json:"pid"`
	IndexPath    string `json:"index_path"`
	IndexEntries int    `json:"index_entries"`
	LockFilePath string `json:"lock_file_path"`
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, recognizer Recognizer, store *visualid.Store, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || recognizer == nil || logger == nil {
		return nil, errors.New("daemon requires config, recognizer, and logger")
	}

	lockPath := filepath.Join(cfg.Paths.DataDir, "snapid.lock")
	d := &Daemon{
		cfg:        cfg,
		logger:     logger,
		recognizer: recognizer,
		store:      store,
		lockPath:   lockPath,
		lock:       flock.New(lockPath),
	}

	api, err := newAPIServer(cfg, d, logger)
	if err != nil {
		return nil, err
	}
	d.api = api
	return d, nil
}

// Start acquires the daemon lock and begins serving the API.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	if err := os.MkdirAll(filepath.Dir(d.lockPath), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another snapid daemon instance is already running")
	}

	d.ctx, d.cancel = context.WithCancel(ctx)
	if err := d.api.start(d.ctx); err != nil {
		_ = d.lock.Unlock()
		d.cancel()
		d.ctx = nil
		d.cancel = nil
		return fmt.Errorf("start api server: %w", err)
	}

	d.running.Store(true)
	d.logger.Info("snapid daemon started", logging.String("lock", d.lockPath))
	return nil
}

// Stop stops the API server and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.api.stop()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.ctx = nil
	d.running.Store(false)
	d.logger.Info("snapid daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// Wait blocks until the daemon context ends.
func (d *Daemon) Wait() {
	if d.ctx != nil {
		<-d.ctx.Done()
	}
}

// Status returns the current daemon status.
func (d *Daemon) Status(ctx context.Context) Status {
	status := Status{
		Running:      d.running.Load(),
		PID:          os.Getpid(),
		LockFilePath: d.lockPath,
	}
	if d.store != nil {
		status.IndexPath = d.store.Path()
		if count, err := d.store.Count(ctx); err == nil {
			status.IndexEntries = count
		}
	} else if d.cfg != nil {
		status.IndexPath = d.cfg.IndexPath()
	}
	return status
}
