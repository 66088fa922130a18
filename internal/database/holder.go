package database

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/deppfellow/go-postrpc/internal/config"
	loggerConfig "github.com/deppfellow/go-postrpc/internal/logger"
	"github.com/rs/zerolog"
)

// OpenFunc constructs a new Database. It is called at most once per
// successful Holder lifecycle.
type OpenFunc func(ctx context.Context) (*Database, error)

// Holder lazily constructs a single Database and hands the same instance to
// every caller.
//
// Lifecycle:
//   - the first Get runs open; concurrent callers wait for it
//   - a failed open is not remembered, the next Get tries again
//   - Close releases the pool and empties the holder
//
// Get is lock-free once the database exists.
type Holder struct {
	mu   sync.Mutex
	db   atomic.Pointer[Database]
	open OpenFunc
}

// NewHolder returns an empty Holder that builds its Database with open.
func NewHolder(open OpenFunc) *Holder {
	return &Holder{open: open}
}

// Get returns the held Database, constructing it on first use.
func (h *Holder) Get(ctx context.Context) (*Database, error) {
	if db := h.db.Load(); db != nil {
		return db, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if db := h.db.Load(); db != nil {
		return db, nil
	}

	db, err := h.open(ctx)
	if err != nil {
		return nil, err
	}

	h.db.Store(db)
	return db, nil
}

// Loaded reports whether a Database is currently held.
func (h *Holder) Loaded() bool {
	return h.db.Load() != nil
}

// Close closes the held Database, if any, and empties the holder.
func (h *Holder) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	db := h.db.Swap(nil)
	if db == nil {
		return nil
	}
	return db.Close()
}

var (
	sharedOnce sync.Once
	shared     *Holder
)

// Shared returns the process-wide Holder.
//
// The first call fixes the configuration used to open the pool; later
// calls return the same Holder whatever arguments they pass.
func Shared(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) *Holder {
	sharedOnce.Do(func() {
		shared = NewHolder(func(ctx context.Context) (*Database, error) {
			return New(ctx, cfg, logger, loggerService)
		})
	})
	return shared
}

// Connect returns the process-wide Database, opening the pool on first use.
func Connect(ctx context.Context, cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	return Shared(cfg, logger, loggerService).Get(ctx)
}
