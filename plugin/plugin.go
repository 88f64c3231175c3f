// Package plugin provides an extensible plugin system for Ledger.
// Plugins can hook into various lifecycle events to extend functionality.
package plugin

import (
	"context"
)

// Plugin is the base interface that all plugins must implement.
type Plugin interface {
	Name() string
}

// Hook payloads are passed as interface{} to avoid an import cycle
// with the root package. Implementations type-assert to the concrete
// domain types (*client.Client, *timesheet.Entry, *invoice.Invoice, ...).

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called when the plugin is initialized.
type OnInit interface {
	Plugin
	OnInit(ctx context.Context, l interface{}) error
}

// OnShutdown is called when the plugin is shutting down.
type OnShutdown interface {
	Plugin
	OnShutdown(ctx context.Context) error
}

// ──────────────────────────────────────────────────
// Client lifecycle hooks
// ──────────────────────────────────────────────────

// OnClientCreated is called when a new client is created.
type OnClientCreated interface {
	Plugin
	OnClientCreated(ctx context.Context, c interface{}) error
}

// OnClientUpdated is called when a client is updated.
type OnClientUpdated interface {
	Plugin
	OnClientUpdated(ctx context.Context, c interface{}) error
}

// OnClientDeleted is called when a client is deleted.
type OnClientDeleted interface {
	Plugin
	OnClientDeleted(ctx context.Context, clientID string) error
}

// ──────────────────────────────────────────────────
// Project lifecycle hooks
// ──────────────────────────────────────────────────

// OnProjectCreated is called when a new project is created.
type OnProjectCreated interface {
	Plugin
	OnProjectCreated(ctx context.Context, p interface{}) error
}

// OnProjectUpdated is called when a project is updated.
type OnProjectUpdated interface {
	Plugin
	OnProjectUpdated(ctx context.Context, p interface{}) error
}

// OnProjectDeleted is called when a project is deleted.
type OnProjectDeleted interface {
	Plugin
	OnProjectDeleted(ctx context.Context, projectID string) error
}

// ──────────────────────────────────────────────────
// Timesheet hooks
// ──────────────────────────────────────────────────

// OnEntryLogged is called when a timesheet entry is logged.
type OnEntryLogged interface {
	Plugin
	OnEntryLogged(ctx context.Context, e interface{}) error
}

// OnEntryUpdated is called when a timesheet entry is updated.
type OnEntryUpdated interface {
	Plugin
	OnEntryUpdated(ctx context.Context, e interface{}) error
}

// OnEntryDeleted is called when a timesheet entry is deleted.
type OnEntryDeleted interface {
	Plugin
	OnEntryDeleted(ctx context.Context, entryID string) error
}

// OnEntriesBilled is called when entries are pulled onto an invoice.
type OnEntriesBilled interface {
	Plugin
	OnEntriesBilled(ctx context.Context, invoiceID string, entryIDs []string) error
}

// OnEntriesReleased is called when a deleted invoice releases its
// entries back to the unbilled pool.
type OnEntriesReleased interface {
	Plugin
	OnEntriesReleased(ctx context.Context, invoiceID string, entryIDs []string) error
}

// ──────────────────────────────────────────────────
// Invoice lifecycle hooks
// ──────────────────────────────────────────────────

// OnInvoiceCreated is called when an invoice is created.
type OnInvoiceCreated interface {
	Plugin
	OnInvoiceCreated(ctx context.Context, inv interface{}) error
}

// OnInvoiceSent is called when an invoice is marked sent.
type OnInvoiceSent interface {
	Plugin
	OnInvoiceSent(ctx context.Context, inv interface{}) error
}

// OnInvoicePaid is called when an invoice is paid.
type OnInvoicePaid interface {
	Plugin
	OnInvoicePaid(ctx context.Context, inv interface{}) error
}

// OnInvoiceDeleted is called when an invoice is deleted.
type OnInvoiceDeleted interface {
	Plugin
	OnInvoiceDeleted(ctx context.Context, inv interface{}) error
}

// ──────────────────────────────────────────────────
// Tax calculators
// ──────────────────────────────────────────────────

// TaxCalculator calculates tax for invoices.
type TaxCalculator interface {
	Plugin
	CalculateTax(ctx context.Context, subtotal interface{}, clientID string) (interface{}, error) // Returns Money
}

// ──────────────────────────────────────────────────
// Document renderers
// ──────────────────────────────────────────────────

// DocumentRenderer renders invoices for export.
type DocumentRenderer interface {
	Plugin
	Format() string                                                   // "pdf", "html", "csv", etc.
	Render(ctx context.Context, inv interface{}, w interface{}) error // w is io.Writer
}
