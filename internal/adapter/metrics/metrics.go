package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the apartment backend.
type Metrics struct {
	TenantConnectionsEstablished prometheus.Counter
	TenantCacheHits              prometheus.Counter
	TenantCacheMisses            prometheus.Counter
	LoginsTotal                  *prometheus.CounterVec
	LoginFanOutTenantsScanned    prometheus.Histogram
	VisitorResolutionsTotal      *prometheus.CounterVec
}

// New initializes and registers the Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		TenantConnectionsEstablished: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "aptly",
			Subsystem: "store",
			Name:      "tenant_connections_established_total",
			Help:      "Total number of tenant store connections established.",
		}),
		TenantCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "aptly",
			Subsystem: "store",
			Name:      "tenant_cache_hits_total",
			Help:      "Total number of tenant connection cache hits.",
		}),
		TenantCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "aptly",
			Subsystem: "store",
			Name:      "tenant_cache_misses_total",
			Help:      "Total number of tenant connection cache misses.",
		}),
		LoginsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aptly",
			Subsystem: "auth",
			Name:      "logins_total",
			Help:      "Total number of login attempts by outcome.",
		}, []string{"outcome"}), // outcome: success, not_found, bad_password, pending, error
		LoginFanOutTenantsScanned: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: "aptly",
			Subsystem: "auth",
			Name:      "login_fanout_tenants_scanned",
			Help:      "Number of tenant stores scanned per login fan-out.",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50},
		}),
		VisitorResolutionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aptly",
			Subsystem: "visitor",
			Name:      "resolutions_total",
			Help:      "Total number of visitor pass resolutions by outcome.",
		}, []string{"outcome"}), // outcome: Approved, Rejected, already_processed, not_found
	}
}
