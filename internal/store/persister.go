package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/hrnet/internal/lib/logger/sl"
	"github.com/UnknownOlympus/hrnet/internal/metrics"
	"github.com/UnknownOlympus/hrnet/internal/repository"
)

const (
	// KeyPrefix is prepended to the state name to form the storage key.
	KeyPrefix = "persist:"
	// StateName names the persisted employee state.
	StateName = "employees"
)

// Key returns the storage key for the employee state under the given prefix.
func Key(prefix string) string {
	if prefix == "" {
		prefix = KeyPrefix
	}
	return prefix + StateName
}

// Persister writes the store to a key-value backend and reads it back at start-up.
type Persister struct {
	log     *slog.Logger
	storage repository.Storage
	key     string
	metrics *metrics.Metrics
}

// NewPersister creates a persister storing the employee state under key.
func NewPersister(log *slog.Logger, storage repository.Storage, key string, m *metrics.Metrics) *Persister {
	return &Persister{
		log: log.With(
			slog.String("division", "persistence"),
			slog.String("key", key),
		),
		storage: storage,
		key:     key,
		metrics: m,
	}
}

// Save replaces the persisted value with the encoded store.
func (p *Persister) Save(ctx context.Context, s Store) error {
	const opn = "Persister.Save"

	startTime := time.Now()
	defer p.observe("save", startTime)

	value, err := Encode(s)
	if err != nil {
		p.fail("save")
		return fmt.Errorf("%s: %w", opn, err)
	}

	if err = p.storage.Set(ctx, p.key, value); err != nil {
		p.fail("save")
		return fmt.Errorf("%s: failed to write state: %w", opn, err)
	}

	p.log.DebugContext(ctx, "state saved", slog.Int("records", s.Len()))

	return nil
}

// Rehydrate loads the persisted store. A missing, unreadable or malformed value yields an empty store.
func (p *Persister) Rehydrate(ctx context.Context) Store {
	const opn = "Persister.Rehydrate"
	log := p.log.With(slog.String("op", opn))

	startTime := time.Now()
	defer p.observe("load", startTime)

	value, err := p.storage.Get(ctx, p.key)
	if err != nil {
		if errors.Is(err, repository.ErrKeyNotFound) {
			log.InfoContext(ctx, "no persisted state found, starting with an empty store")
			return Store{}
		}
		p.fail("load")
		log.WarnContext(ctx, "failed to read persisted state, starting with an empty store", sl.Err(err))
		return Store{}
	}

	s, err := Decode(value)
	if err != nil {
		p.fail("load")
		log.WarnContext(ctx, "failed to decode persisted state, starting with an empty store", sl.Err(err))
		return Store{}
	}

	log.InfoContext(ctx, "state rehydrated", slog.Int("records", s.Len()))

	return s
}

func (p *Persister) observe(operation string, startTime time.Time) {
	if p.metrics == nil {
		return
	}
	p.metrics.StorageDuration.WithLabelValues(operation).Observe(time.Since(startTime).Seconds())
}

func (p *Persister) fail(operation string) {
	if p.metrics == nil {
		return
	}
	p.metrics.StorageFailures.WithLabelValues(operation).Inc()
}
