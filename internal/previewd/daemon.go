package previewd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/opencode-ai/tsvg/internal/config"
	"github.com/opencode-ai/tsvg/internal/preview"
	"github.com/opencode-ai/tsvg/internal/watch"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 5 * time.Second

// Options configure the daemon runtime.
type Options struct {
	Hostname string
	// Port overrides the configured port when positive.
	Port int

	// Path is the source file to follow.
	Path string
	// AnchorLine is the zero-based marker line of the template to track.
	AnchorLine int
	// Values seed the page inputs.
	Values map[string]string
}

// Daemon follows one file and serves its tracked template over HTTP.
type Daemon struct {
	cfg    *config.Config
	logger zerolog.Logger
	opts   Options

	server  *Server
	tracker *preview.Tracker

	ready   chan struct{}
	mu      sync.Mutex
	addr    string
	started bool
}

// ErrAlreadyStarted is returned by a second call to Run.
var ErrAlreadyStarted = errors.New("preview daemon already started")

// New constructs a daemon with the provided configuration.
func New(cfg *config.Config, logger zerolog.Logger, opts Options) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if opts.Path == "" {
		return nil, errors.New("path is required")
	}
	if opts.Hostname == "" {
		opts.Hostname = cfg.Preview.Host
	}
	if opts.Hostname == "" {
		opts.Hostname = "127.0.0.1"
	}
	if opts.Port <= 0 {
		opts.Port = cfg.Preview.Port
	}

	server := NewServer(logger,
		WithTitle(preview.Title(opts.Path, opts.AnchorLine)),
		WithValues(opts.Values),
	)

	return &Daemon{
		cfg:     cfg,
		logger:  logger,
		opts:    opts,
		server:  server,
		tracker: preview.NewTracker(opts.AnchorLine),
		ready:   make(chan struct{}),
	}, nil
}

// Run starts watching the file and serving HTTP, and blocks until ctx is
// canceled.
func (d *Daemon) Run(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context is required")
	}

	d.mu.Lock()
	if d.started {
		d.mu.Unlock()
		return ErrAlreadyStarted
	}
	d.started = true
	d.mu.Unlock()

	watcher, err := watch.NewFileWatcher(d.opts.Path, watch.Options{
		Debounce: d.cfg.Watch.Debounce,
		Logger:   d.logger,
	})
	if err != nil {
		return err
	}
	defer watcher.Close()

	watchCtx, cancelWatch := context.WithCancel(ctx)
	defer cancelWatch()

	snapshots, err := watcher.Watch(watchCtx)
	if err != nil {
		return err
	}

	bindAddr := d.bindAddr()
	listener, err := net.Listen("tcp", bindAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", bindAddr, err)
	}

	httpServer := &http.Server{
		Handler:           d.server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	d.mu.Lock()
	d.addr = listener.Addr().String()
	d.mu.Unlock()
	close(d.ready)

	d.logger.Info().
		Str("bind", d.Addr()).
		Str("file", watcher.Path()).
		Int("line", d.opts.AnchorLine+1).
		Msg("preview server starting")

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	for {
		select {
		case <-ctx.Done():
			d.logger.Info().Msg("preview server shutting down...")
			return d.shutdown(httpServer)

		case snapshot, ok := <-snapshots:
			if !ok {
				// Watcher stopped on its own; keep serving the last payload.
				snapshots = nil
				continue
			}
			d.server.Publish(d.tracker.Update(snapshot.Text))

		case err, ok := <-errCh:
			if ok && err != nil {
				d.server.Close()
				return fmt.Errorf("http server error: %w", err)
			}
			errCh = nil
		}
	}
}

func (d *Daemon) shutdown(httpServer *http.Server) error {
	d.server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown preview server: %w", err)
	}

	d.logger.Info().Msg("preview server shutdown complete")
	return nil
}

func (d *Daemon) bindAddr() string {
	return net.JoinHostPort(d.opts.Hostname, strconv.Itoa(d.opts.Port))
}

// Ready is closed once the daemon is listening.
func (d *Daemon) Ready() <-chan struct{} {
	return d.ready
}

// Addr returns the bound address, or "" before Ready.
func (d *Daemon) Addr() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.addr
}

// URL returns the page address, or "" before Ready.
func (d *Daemon) URL() string {
	addr := d.Addr()
	if addr == "" {
		return ""
	}
	return "http://" + addr + RoutePage
}

// Server returns the underlying HTTP preview server.
// Useful for testing.
func (d *Daemon) Server() *Server {
	return d.server
}
