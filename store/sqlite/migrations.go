package sqlite

import (
	"context"

	"github.com/xraph/grove/migrate"
)

// Migrations is the grove migration group for the Ledger store (SQLite).
var Migrations = migrate.NewGroup("ledger")

func init() {
	Migrations.MustRegister(
		&migrate.Migration{
			Name:    "create_ledger_clients",
			Version: "20260101000001",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS ledger_clients (
    id                    TEXT PRIMARY KEY,
    name                  TEXT NOT NULL DEFAULT '',
    email                 TEXT NOT NULL DEFAULT '',
    phone                 TEXT NOT NULL DEFAULT '',
    address               TEXT NOT NULL DEFAULT '',
    status                TEXT NOT NULL DEFAULT 'active',
    hourly_rate_cents     INTEGER NOT NULL DEFAULT 0,
    hourly_rate_currency  TEXT NOT NULL DEFAULT '',
    total_billed_cents    INTEGER NOT NULL DEFAULT 0,
    total_billed_currency TEXT NOT NULL DEFAULT '',
    metadata              TEXT NOT NULL DEFAULT '{}',
    created_at            TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at            TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_ledger_clients_status ON ledger_clients (status);
CREATE INDEX IF NOT EXISTS idx_ledger_clients_name ON ledger_clients (name);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS ledger_clients`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_ledger_projects",
			Version: "20260101000002",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS ledger_projects (
    id                   TEXT PRIMARY KEY,
    client_id            TEXT NOT NULL DEFAULT '',
    name                 TEXT NOT NULL DEFAULT '',
    location             TEXT NOT NULL DEFAULT '',
    status               TEXT NOT NULL DEFAULT 'active',
    progress             INTEGER NOT NULL DEFAULT 0,
    deadline             TEXT,
    hourly_rate_cents    INTEGER NOT NULL DEFAULT 0,
    hourly_rate_currency TEXT NOT NULL DEFAULT '',
    metadata             TEXT NOT NULL DEFAULT '{}',
    created_at           TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at           TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_ledger_projects_client ON ledger_projects (client_id);
CREATE INDEX IF NOT EXISTS idx_ledger_projects_status ON ledger_projects (client_id, status);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS ledger_projects`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_ledger_time_entries",
			Version: "20260101000003",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS ledger_time_entries (
    id            TEXT PRIMARY KEY,
    client_id     TEXT NOT NULL DEFAULT '',
    client_name   TEXT NOT NULL DEFAULT '',
    project_id    TEXT NOT NULL DEFAULT '',
    project_name  TEXT NOT NULL DEFAULT '',
    date          TEXT NOT NULL DEFAULT (datetime('now')),
    start_time    TEXT,
    end_time      TEXT,
    centi_hours   INTEGER NOT NULL DEFAULT 0,
    rate_cents    INTEGER NOT NULL DEFAULT 0,
    rate_currency TEXT NOT NULL DEFAULT '',
    description   TEXT NOT NULL DEFAULT '',
    invoiced      INTEGER NOT NULL DEFAULT 0,
    metadata      TEXT NOT NULL DEFAULT '{}',
    created_at    TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at    TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_ledger_entries_client_date ON ledger_time_entries (client_id, date);
CREATE INDEX IF NOT EXISTS idx_ledger_entries_unbilled ON ledger_time_entries (client_id, date) WHERE invoiced = 0;
CREATE INDEX IF NOT EXISTS idx_ledger_entries_project ON ledger_time_entries (project_id);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS ledger_time_entries`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_ledger_invoices",
			Version: "20260101000004",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS ledger_invoices (
    id             TEXT PRIMARY KEY,
    client_id      TEXT NOT NULL DEFAULT '',
    client_name    TEXT NOT NULL DEFAULT '',
    number         TEXT NOT NULL DEFAULT '',
    sequence       INTEGER NOT NULL DEFAULT 0,
    status         TEXT NOT NULL DEFAULT 'draft',
    currency       TEXT NOT NULL DEFAULT '',
    issue_date     TEXT NOT NULL DEFAULT (datetime('now')),
    due_date       TEXT NOT NULL DEFAULT (datetime('now')),
    line_items     TEXT NOT NULL DEFAULT '[]',
    total_cents    INTEGER NOT NULL DEFAULT 0,
    total_currency TEXT NOT NULL DEFAULT '',
    notes          TEXT NOT NULL DEFAULT '',
    sent_at        TEXT,
    paid_at        TEXT,
    metadata       TEXT NOT NULL DEFAULT '{}',
    created_at     TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at     TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_ledger_invoices_number ON ledger_invoices (number);
CREATE UNIQUE INDEX IF NOT EXISTS idx_ledger_invoices_sequence ON ledger_invoices (sequence);
CREATE INDEX IF NOT EXISTS idx_ledger_invoices_client ON ledger_invoices (client_id);
CREATE INDEX IF NOT EXISTS idx_ledger_invoices_status ON ledger_invoices (client_id, status);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS ledger_invoices`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_ledger_counters",
			Version: "20260101000005",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS ledger_counters (
    name  TEXT PRIMARY KEY,
    value INTEGER NOT NULL DEFAULT 0
);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS ledger_counters`)
				return err
			},
		},
	)
}
