package currency

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/VeraSamohina/skypro-course-work-OOP/utils"
)

// Store is a cache backend for resolved rates, keyed by currency code and
// date. Implementations must treat a miss as (0, false), never as a rate.
type Store interface {
	Get(ctx context.Context, code string, asOf time.Time) (float64, bool)
	Set(ctx context.Context, code string, asOf time.Time, rate float64)
}

// Resolver memoizes gateway lookups: many records in one session share a
// currency and date, and the feed rate for a fixed date never changes.
// Failed lookups are not cached — the per-record failure policy stays intact.
type Resolver struct {
	gateway Gateway
	store   Store
	logger  *utils.Logger
}

// NewResolver wraps gateway with the given cache backend.
func NewResolver(gateway Gateway, store Store, logger *utils.Logger) *Resolver {
	return &Resolver{gateway: gateway, store: store, logger: logger}
}

// Rate implements Gateway.
func (r *Resolver) Rate(ctx context.Context, code string, asOf time.Time) (float64, error) {
	if rate, ok := r.store.Get(ctx, code, asOf); ok {
		r.logger.Debug("[currency] Cache hit for %s", cacheKey(code, asOf))
		return rate, nil
	}

	rate, err := r.gateway.Rate(ctx, code, asOf)
	if err != nil {
		return 0, err
	}

	r.store.Set(ctx, code, asOf, rate)
	return rate, nil
}

func cacheKey(code string, asOf time.Time) string {
	return strings.ToUpper(strings.TrimSpace(code)) + ":" + asOf.Format("02.01.2006")
}

// MemoryStore is the default in-process cache backend.
type MemoryStore struct {
	mu    sync.RWMutex
	rates map[string]float64
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rates: make(map[string]float64)}
}

func (s *MemoryStore) Get(_ context.Context, code string, asOf time.Time) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rate, ok := s.rates[cacheKey(code, asOf)]
	return rate, ok
}

func (s *MemoryStore) Set(_ context.Context, code string, asOf time.Time, rate float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rates[cacheKey(code, asOf)] = rate
}
