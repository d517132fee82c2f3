package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrations are idempotent DDL executed every time a store is opened. The
// central store gets them at startup; each tenant store gets them on first
// connection, which is also what provisions a freshly created database.

var centralMigrations = []string{
	`CREATE TABLE IF NOT EXISTS apartments (
		id         uuid PRIMARY KEY,
		name       text NOT NULL UNIQUE,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS service_providers (
		id            uuid PRIMARY KEY,
		name          text NOT NULL,
		email         text NOT NULL UNIQUE,
		password_hash text NOT NULL,
		phone         text NOT NULL DEFAULT '',
		service_type  text NOT NULL DEFAULT '',
		created_at    timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS central_managers (
		id             uuid PRIMARY KEY,
		name           text NOT NULL,
		nic            text NOT NULL DEFAULT '',
		email          text NOT NULL UNIQUE,
		password_hash  text NOT NULL,
		phone          text NOT NULL DEFAULT '',
		address        text NOT NULL DEFAULT '',
		apartment_name text NOT NULL,
		status         text NOT NULL DEFAULT 'pending',
		created_at     timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS service_listings (
		id              uuid PRIMARY KEY,
		provider_id     uuid NOT NULL,
		provider_name   text NOT NULL,
		title           text NOT NULL,
		description     text NOT NULL DEFAULT '',
		location        text NOT NULL DEFAULT '',
		available_hours text NOT NULL DEFAULT '',
		created_at      timestamptz NOT NULL DEFAULT now()
	)`,
}

var tenantMigrations = []string{
	`CREATE TABLE IF NOT EXISTS residents (
		id             uuid PRIMARY KEY,
		name           text NOT NULL,
		nic            text NOT NULL DEFAULT '',
		email          text NOT NULL UNIQUE,
		password_hash  text NOT NULL,
		phone          text NOT NULL DEFAULT '',
		apartment_code text NOT NULL DEFAULT '',
		status         text NOT NULL DEFAULT 'pending',
		created_at     timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS managers (
		id             uuid PRIMARY KEY,
		name           text NOT NULL,
		nic            text NOT NULL DEFAULT '',
		email          text NOT NULL UNIQUE,
		password_hash  text NOT NULL,
		phone          text NOT NULL DEFAULT '',
		address        text NOT NULL DEFAULT '',
		apartment_name text NOT NULL,
		status         text NOT NULL DEFAULT 'approved',
		created_at     timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS visitor_passes (
		id              uuid PRIMARY KEY,
		resident_id     uuid NOT NULL,
		resident_name   text NOT NULL,
		apartment_code  text NOT NULL,
		num_of_visitors int NOT NULL,
		visitor_names   text[] NOT NULL,
		phone           text NOT NULL DEFAULT '',
		status          text NOT NULL DEFAULT 'Pending',
		created_at      timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS complaints (
		id             uuid PRIMARY KEY,
		title          text NOT NULL,
		description    text NOT NULL DEFAULT '',
		resident_id    uuid NOT NULL,
		resident_name  text NOT NULL,
		apartment_code text NOT NULL DEFAULT '',
		status         text NOT NULL DEFAULT 'Open',
		created_at     timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS resource_requests (
		id             uuid PRIMARY KEY,
		resource_name  text NOT NULL,
		description    text NOT NULL DEFAULT '',
		quantity       int NOT NULL DEFAULT 1,
		resident_id    uuid NOT NULL,
		resident_name  text NOT NULL,
		apartment_code text NOT NULL DEFAULT '',
		status         text NOT NULL DEFAULT 'Active',
		created_at     timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS maintenance_requests (
		id             uuid PRIMARY KEY,
		title          text NOT NULL,
		description    text NOT NULL DEFAULT '',
		resident_id    uuid NOT NULL,
		resident_name  text NOT NULL,
		apartment_code text NOT NULL DEFAULT '',
		status         text NOT NULL DEFAULT 'Pending',
		created_at     timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id           uuid PRIMARY KEY,
		kind         text NOT NULL,
		title        text NOT NULL,
		message      text NOT NULL DEFAULT '',
		created_by   uuid NOT NULL,
		creator_name text NOT NULL DEFAULT '',
		created_at   timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS notification_dismissals (
		notification_id uuid NOT NULL,
		user_id         uuid NOT NULL,
		PRIMARY KEY (notification_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS safety_alerts (
		id          uuid PRIMARY KEY,
		title       text NOT NULL,
		description text NOT NULL DEFAULT '',
		created_by  uuid NOT NULL,
		created_at  timestamptz NOT NULL DEFAULT now()
	)`,
}

// migrate runs the given DDL statements in order.
func migrate(ctx context.Context, db *sql.DB, stmts []string) error {
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("run migration: %w", err)
		}
	}
	return nil
}
