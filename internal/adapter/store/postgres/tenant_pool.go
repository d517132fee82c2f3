package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"

	"github.com/harbourview/aptly/internal/adapter/metrics"
	"github.com/harbourview/aptly/internal/domain"
)

// TenantPool hands out store handles scoped to one apartment complex each,
// memoizing them for the process lifetime. Establishing a connection is
// expensive, so the pool guarantees at most one live connection per tenant:
// concurrent first requests for an unseen tenant serialize on the write lock
// and only the winner dials out (single-flight). Keys are matched exactly,
// case-sensitive, with no normalization. There is no eviction.
type TenantPool struct {
	baseURL string
	logger  *slog.Logger
	metrics *metrics.Metrics

	mu     sync.RWMutex
	stores map[string]*TenantStore

	// open is swapped out in tests to avoid dialing a real database.
	open func(ctx context.Context, dsn string) (*sql.DB, error)
}

// NewTenantPool creates an empty pool over the given base connection URL.
func NewTenantPool(baseURL string, logger *slog.Logger, m *metrics.Metrics) *TenantPool {
	return &TenantPool{
		baseURL: baseURL,
		logger:  logger.With("component", "tenant_pool"),
		metrics: m,
		stores:  make(map[string]*TenantStore),
		open:    openAndPing,
	}
}

func openAndPing(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Tenant returns the store handle for the given apartment complex,
// establishing and caching the underlying connection on first use. Subsequent
// calls with the same name return the identical handle without dialing.
func (p *TenantPool) Tenant(ctx context.Context, apartment string) (domain.TenantStore, error) {
	p.mu.RLock()
	store, found := p.stores[apartment]
	p.mu.RUnlock()

	if found {
		if p.metrics != nil {
			p.metrics.TenantCacheHits.Inc()
		}
		return store, nil
	}

	if p.metrics != nil {
		p.metrics.TenantCacheMisses.Inc()
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// Double-check in case another goroutine connected while we waited for
	// the write lock.
	if store, found := p.stores[apartment]; found {
		return store, nil
	}

	store, err := p.connect(ctx, apartment)
	if err != nil {
		return nil, err
	}
	p.stores[apartment] = store

	return store, nil
}

func (p *TenantPool) connect(ctx context.Context, apartment string) (*TenantStore, error) {
	dsn, err := withDatabase(p.baseURL, apartment)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	db, err := p.open(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: connect tenant %q: %v", domain.ErrStoreUnavailable, apartment, err)
	}

	if err := migrate(ctx, db, tenantMigrations); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: migrate tenant %q: %v", domain.ErrStoreUnavailable, apartment, err)
	}

	if p.metrics != nil {
		p.metrics.TenantConnectionsEstablished.Inc()
	}
	p.logger.Info("tenant store connected", "apartment", apartment)

	return newTenantStore(db), nil
}

// Close releases every cached tenant connection. Only used on shutdown.
func (p *TenantPool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for name, store := range p.stores {
		if err := store.db.Close(); err != nil {
			p.logger.Warn("closing tenant store", "apartment", name, "error", err)
		}
	}
	p.stores = make(map[string]*TenantStore)
}
