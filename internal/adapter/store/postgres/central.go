package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lib/pq"

	"github.com/harbourview/aptly/internal/domain"
)

// Central is the process-wide handle to the shared store holding the
// apartment registry and cross-tenant identities. It is opened eagerly at
// startup; the caller treats failure as fatal.
type Central struct {
	db     *sql.DB
	logger *slog.Logger

	apartments      *apartmentRepository
	providers       *serviceProviderRepository
	centralManagers *centralManagerRepository
	listings        *serviceListingRepository
}

// OpenCentral connects to the central database, verifies connectivity, and
// runs the central migrations.
func OpenCentral(ctx context.Context, baseURL, dbname string, logger *slog.Logger) (*Central, error) {
	dsn, err := withDatabase(baseURL, dbname)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open central store: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping central store: %w", err)
	}
	if err := migrate(ctx, db, centralMigrations); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate central store: %w", err)
	}

	logger.Info("central store connected", "database", dbname)

	return &Central{
		db:              db,
		logger:          logger.With("component", "central_store"),
		apartments:      &apartmentRepository{db: db},
		providers:       &serviceProviderRepository{db: db},
		centralManagers: &centralManagerRepository{db: db},
		listings:        &serviceListingRepository{db: db},
	}, nil
}

// Close releases the central connection pool.
func (c *Central) Close() error {
	return c.db.Close()
}

func (c *Central) Apartments() domain.ApartmentRepository { return c.apartments }

func (c *Central) ServiceProviders() domain.ServiceProviderRepository { return c.providers }

func (c *Central) CentralManagers() domain.CentralManagerRepository { return c.centralManagers }

func (c *Central) ServiceListings() domain.ServiceListingRepository { return c.listings }

// Provision creates the isolated database backing a new apartment complex.
// The tenant name has already passed domain.ValidApartmentName, so quoting it
// as an identifier is safe. An existing database is not an error: the registry
// row is the source of truth for duplicates.
func (c *Central) Provision(ctx context.Context, apartment string) error {
	stmt := fmt.Sprintf("CREATE DATABASE %s", pq.QuoteIdentifier(apartment))
	if _, err := c.db.ExecContext(ctx, stmt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "duplicate_database" {
			c.logger.Warn("tenant database already exists", "apartment", apartment)
			return nil
		}
		return fmt.Errorf("provision tenant database: %w", err)
	}

	c.logger.Info("tenant database provisioned", "apartment", apartment)
	return nil
}

// isUniqueViolation reports whether err is a postgres unique-constraint
// violation, used by repositories to surface domain.ErrAlreadyExists.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation"
}
