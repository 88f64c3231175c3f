// Package observability provides a metrics extension for Ledger that records
// lifecycle event counts via go-utils MetricFactory.
package observability

import (
	"context"

	"github.com/worksite/ledger/invoice"
	"github.com/worksite/ledger/plugin"
	"github.com/worksite/ledger/timesheet"
)

// Ensure MetricsExtension implements required interfaces.
var (
	_ plugin.Plugin            = (*MetricsExtension)(nil)
	_ plugin.OnInit            = (*MetricsExtension)(nil)
	_ plugin.OnClientCreated   = (*MetricsExtension)(nil)
	_ plugin.OnClientUpdated   = (*MetricsExtension)(nil)
	_ plugin.OnClientDeleted   = (*MetricsExtension)(nil)
	_ plugin.OnProjectCreated  = (*MetricsExtension)(nil)
	_ plugin.OnProjectDeleted  = (*MetricsExtension)(nil)
	_ plugin.OnEntryLogged     = (*MetricsExtension)(nil)
	_ plugin.OnEntryDeleted    = (*MetricsExtension)(nil)
	_ plugin.OnEntriesBilled   = (*MetricsExtension)(nil)
	_ plugin.OnEntriesReleased = (*MetricsExtension)(nil)
	_ plugin.OnInvoiceCreated  = (*MetricsExtension)(nil)
	_ plugin.OnInvoiceSent     = (*MetricsExtension)(nil)
	_ plugin.OnInvoicePaid     = (*MetricsExtension)(nil)
	_ plugin.OnInvoiceDeleted  = (*MetricsExtension)(nil)
)

// Counter interface for metric counters.
type Counter interface {
	Inc()
	Add(float64)
}

// Histogram interface for metric histograms.
type Histogram interface {
	Observe(float64)
}

// MetricFactory creates metrics.
type MetricFactory interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// MetricsExtension records system-wide lifecycle metrics.
// Register it as a Ledger plugin to automatically track billing metrics.
type MetricsExtension struct {
	factory MetricFactory

	// Client metrics
	ClientCreated Counter
	ClientUpdated Counter
	ClientDeleted Counter

	// Project metrics
	ProjectCreated Counter
	ProjectDeleted Counter

	// Timesheet metrics
	EntriesLogged  Counter
	EntriesDeleted Counter
	EntryHours     Histogram

	// Billing metrics
	EntriesBilled    Counter
	EntriesReleased  Counter
	InvoiceBatchSize Histogram

	// Invoice metrics
	InvoiceCreated Counter
	InvoiceSent    Counter
	InvoicePaid    Counter
	InvoiceDeleted Counter
	InvoiceTotal   Histogram

	// Error metrics
	StoreErrors  Counter
	PluginErrors Counter
}

// NewMetricsExtension creates a MetricsExtension with the provided MetricFactory.
// Use app.Metrics() in forge extensions.
func NewMetricsExtension(factory MetricFactory) *MetricsExtension {
	return &MetricsExtension{
		factory: factory,

		// Client metrics
		ClientCreated: factory.Counter("ledger.client.created"),
		ClientUpdated: factory.Counter("ledger.client.updated"),
		ClientDeleted: factory.Counter("ledger.client.deleted"),

		// Project metrics
		ProjectCreated: factory.Counter("ledger.project.created"),
		ProjectDeleted: factory.Counter("ledger.project.deleted"),

		// Timesheet metrics
		EntriesLogged:  factory.Counter("ledger.entry.logged"),
		EntriesDeleted: factory.Counter("ledger.entry.deleted"),
		EntryHours:     factory.Histogram("ledger.entry.hours"),

		// Billing metrics
		EntriesBilled:    factory.Counter("ledger.entries.billed"),
		EntriesReleased:  factory.Counter("ledger.entries.released"),
		InvoiceBatchSize: factory.Histogram("ledger.invoice.batch.size"),

		// Invoice metrics
		InvoiceCreated: factory.Counter("ledger.invoice.created"),
		InvoiceSent:    factory.Counter("ledger.invoice.sent"),
		InvoicePaid:    factory.Counter("ledger.invoice.paid"),
		InvoiceDeleted: factory.Counter("ledger.invoice.deleted"),
		InvoiceTotal:   factory.Histogram("ledger.invoice.total_amount"),

		// Error metrics
		StoreErrors:  factory.Counter("ledger.store.errors"),
		PluginErrors: factory.Counter("ledger.plugin.errors"),
	}
}

// Name implements plugin.Plugin.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// OnInit implements plugin.OnInit.
func (m *MetricsExtension) OnInit(_ context.Context, _ interface{}) error {
	// No initialization needed
	return nil
}

// ──────────────────────────────────────────────────
// Client lifecycle hooks
// ──────────────────────────────────────────────────

// OnClientCreated implements plugin.OnClientCreated.
func (m *MetricsExtension) OnClientCreated(_ context.Context, _ interface{}) error {
	m.ClientCreated.Inc()
	return nil
}

// OnClientUpdated implements plugin.OnClientUpdated.
func (m *MetricsExtension) OnClientUpdated(_ context.Context, _ interface{}) error {
	m.ClientUpdated.Inc()
	return nil
}

// OnClientDeleted implements plugin.OnClientDeleted.
func (m *MetricsExtension) OnClientDeleted(_ context.Context, _ string) error {
	m.ClientDeleted.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Project lifecycle hooks
// ──────────────────────────────────────────────────

// OnProjectCreated implements plugin.OnProjectCreated.
func (m *MetricsExtension) OnProjectCreated(_ context.Context, _ interface{}) error {
	m.ProjectCreated.Inc()
	return nil
}

// OnProjectDeleted implements plugin.OnProjectDeleted.
func (m *MetricsExtension) OnProjectDeleted(_ context.Context, _ string) error {
	m.ProjectDeleted.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Timesheet hooks
// ──────────────────────────────────────────────────

// OnEntryLogged implements plugin.OnEntryLogged.
func (m *MetricsExtension) OnEntryLogged(_ context.Context, e interface{}) error {
	m.EntriesLogged.Inc()
	if entry, ok := e.(*timesheet.Entry); ok {
		m.EntryHours.Observe(entry.Hours.Float64())
	}
	return nil
}

// OnEntryDeleted implements plugin.OnEntryDeleted.
func (m *MetricsExtension) OnEntryDeleted(_ context.Context, _ string) error {
	m.EntriesDeleted.Inc()
	return nil
}

// OnEntriesBilled implements plugin.OnEntriesBilled.
func (m *MetricsExtension) OnEntriesBilled(_ context.Context, _ string, entryIDs []string) error {
	count := float64(len(entryIDs))
	m.EntriesBilled.Add(count)
	m.InvoiceBatchSize.Observe(count)
	return nil
}

// OnEntriesReleased implements plugin.OnEntriesReleased.
func (m *MetricsExtension) OnEntriesReleased(_ context.Context, _ string, entryIDs []string) error {
	m.EntriesReleased.Add(float64(len(entryIDs)))
	return nil
}

// ──────────────────────────────────────────────────
// Invoice lifecycle hooks
// ──────────────────────────────────────────────────

// OnInvoiceCreated implements plugin.OnInvoiceCreated.
func (m *MetricsExtension) OnInvoiceCreated(_ context.Context, v interface{}) error {
	m.InvoiceCreated.Inc()
	if inv, ok := v.(*invoice.Invoice); ok {
		m.InvoiceTotal.Observe(float64(inv.Total.Amount) / 100)
	}
	return nil
}

// OnInvoiceSent implements plugin.OnInvoiceSent.
func (m *MetricsExtension) OnInvoiceSent(_ context.Context, _ interface{}) error {
	m.InvoiceSent.Inc()
	return nil
}

// OnInvoicePaid implements plugin.OnInvoicePaid.
func (m *MetricsExtension) OnInvoicePaid(_ context.Context, _ interface{}) error {
	m.InvoicePaid.Inc()
	return nil
}

// OnInvoiceDeleted implements plugin.OnInvoiceDeleted.
func (m *MetricsExtension) OnInvoiceDeleted(_ context.Context, _ interface{}) error {
	m.InvoiceDeleted.Inc()
	return nil
}
