package inbox

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/pagedeck/internal/logger"
)

// Handler receives settled PDF paths, in name order.
type Handler func(paths []string)

// Config controls batching and throttling of deliveries.
type Config struct {
	// Settle is how long a file must go without events before it is delivered.
	// Copies arrive as a create followed by writes; waiting avoids reading half a file.
	Settle time.Duration

	// DeliveriesPerSecond and Burst bound how often the handler is called.
	DeliveriesPerSecond float64
	Burst               int
}

// DefaultConfig returns the default delivery settings.
func DefaultConfig() Config {
	return Config{
		Settle:              300 * time.Millisecond,
		DeliveriesPerSecond: 2,
		Burst:               3,
	}
}

// Watcher delivers PDF files created or written in a directory.
type Watcher struct {
	dir     string
	handler Handler
	cfg     Config
	limiter *rate.Limiter

	mu      sync.Mutex
	pending map[string]time.Time
	now     func() time.Time
}

// New creates a watcher for dir. The directory must exist.
func New(dir string, handler Handler, cfg Config) (*Watcher, error) {
	if handler == nil {
		return nil, errors.New("inbox: handler is required")
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("inbox: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("inbox: %s is not a directory", dir)
	}

	def := DefaultConfig()
	if cfg.Settle <= 0 {
		cfg.Settle = def.Settle
	}
	if cfg.DeliveriesPerSecond <= 0 {
		cfg.DeliveriesPerSecond = def.DeliveriesPerSecond
	}
	if cfg.Burst <= 0 {
		cfg.Burst = def.Burst
	}

	return &Watcher{
		dir:     dir,
		handler: handler,
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(cfg.DeliveriesPerSecond), cfg.Burst),
		pending: make(map[string]time.Time),
		now:     time.Now,
	}, nil
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string {
	return w.dir
}

// Run watches until ctx is cancelled. Files already in the directory are ignored.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("inbox: creating watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("inbox: watching %s: %w", w.dir, err)
	}
	logger.Info("watching %s for PDF files", w.dir)

	ticker := time.NewTicker(w.cfg.Settle / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleFsEvent(event)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("inbox: %v", err)
		case <-ticker.C:
			if err := w.deliver(ctx, w.settled()); err != nil {
				return nil
			}
		}
	}
}

// handleFsEvent records a PDF path touched by a create or write.
// It returns false when the event is ignored.
func (w *Watcher) handleFsEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return false
	}
	if !isPDF(event.Name) {
		return false
	}
	info, err := os.Stat(event.Name)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}

	w.mu.Lock()
	w.pending[event.Name] = w.now()
	w.mu.Unlock()
	return true
}

// settled removes and returns the pending paths that have been quiet for the settle time.
func (w *Watcher) settled() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	cutoff := w.now().Add(-w.cfg.Settle)
	var ready []string
	for path, last := range w.pending {
		if !last.After(cutoff) {
			ready = append(ready, path)
			delete(w.pending, path)
		}
	}
	slices.Sort(ready)
	return ready
}

func (w *Watcher) deliver(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	if err := w.limiter.Wait(ctx); err != nil {
		return err
	}
	logger.Debug("inbox: delivering %d files", len(paths))
	w.handler(paths)
	return nil
}

// isPDF reports whether name is a visible file with a .pdf extension.
func isPDF(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return strings.EqualFold(filepath.Ext(base), ".pdf")
}
