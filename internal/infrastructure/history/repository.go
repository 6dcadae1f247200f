// Package history stores the bounded prompt histories in a key-value store
// as JSON arrays.
package history

import (
	"context"
	"fmt"
	"sync"

	"github.com/bytedance/sonic"

	"github.com/doeshing/texturepro/internal/domain"
	"github.com/doeshing/texturepro/internal/ports"
)

// Log is a newest-first bounded history.
type Log[E any, L any] interface {
	~[]E
	Prepend(E) L
}

// Repository reads and writes one history log under a single key. Appends
// are serialized so a read-prepend-write cycle is never interleaved.
type Repository[E any, L Log[E, L]] struct {
	store  ports.KeyValueStore
	key    string
	logger ports.Logger
	mu     sync.Mutex
}

// NewGenerated returns the repository for generated prompts.
func NewGenerated(store ports.KeyValueStore, logger ports.Logger) *Repository[domain.SelectionRecord, domain.HistoryLog] {
	return &Repository[domain.SelectionRecord, domain.HistoryLog]{
		store:  store,
		key:    domain.StorageKeyGeneratedHistory,
		logger: logger,
	}
}

// NewCustom returns the repository for custom prompts.
func NewCustom(store ports.KeyValueStore, logger ports.Logger) *Repository[domain.CustomRecord, domain.CustomLog] {
	return &Repository[domain.CustomRecord, domain.CustomLog]{
		store:  store,
		key:    domain.StorageKeyCustomHistory,
		logger: logger,
	}
}

// Key returns the storage key.
func (r *Repository[E, L]) Key() string {
	return r.key
}

// Load returns the stored log. A missing or unreadable value is an empty log.
func (r *Repository[E, L]) Load(ctx context.Context) (L, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

// Append prepends rec, trims the log and writes it back. Stores that
// implement ports.Updater run the cycle as one store-level atomic step.
func (r *Repository[E, L]) Append(ctx context.Context, rec E) (L, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if updater, ok := r.store.(ports.Updater); ok {
		var next L
		err := updater.Update(ctx, r.key, func(current string, ok bool) (string, error) {
			next = r.decode(current, ok).Prepend(rec)
			return encode(next)
		})
		if err != nil {
			return nil, fmt.Errorf("write history: %w", err)
		}
		return next, nil
	}

	current, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	next := current.Prepend(rec)
	raw, err := encode(next)
	if err != nil {
		return nil, err
	}
	if err := r.store.Set(ctx, r.key, raw); err != nil {
		return nil, fmt.Errorf("write history: %w", err)
	}
	return next, nil
}

// Clear removes the stored log.
func (r *Repository[E, L]) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.store.Remove(ctx, r.key); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

func (r *Repository[E, L]) load(ctx context.Context) (L, error) {
	raw, ok, err := r.store.Get(ctx, r.key)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	return r.decode(raw, ok), nil
}

// decode turns a stored value into a log. Absent, empty and corrupt values
// are all an empty log.
func (r *Repository[E, L]) decode(raw string, ok bool) L {
	if !ok || raw == "" {
		return nil
	}
	var log L
	if err := sonic.UnmarshalString(raw, &log); err != nil {
		r.warn("stored history is corrupt, starting empty", err)
		return nil
	}
	if len(log) > domain.MaxHistoryItems {
		log = log[:domain.MaxHistoryItems]
	}
	return log
}

func encode[L any](log L) (string, error) {
	raw, err := sonic.MarshalString(log)
	if err != nil {
		return "", fmt.Errorf("encode history: %w", err)
	}
	return raw, nil
}

func (r *Repository[E, L]) warn(msg string, err error) {
	if r.logger == nil {
		return
	}
	r.logger.Warn(msg, map[string]interface{}{"key": r.key, "error": err.Error()})
}

var (
	_ ports.HistoryRepository       = (*Repository[domain.SelectionRecord, domain.HistoryLog])(nil)
	_ ports.CustomHistoryRepository = (*Repository[domain.CustomRecord, domain.CustomLog])(nil)
)
