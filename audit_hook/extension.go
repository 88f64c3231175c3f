// Package audithook bridges Ledger lifecycle events to an audit trail backend.
//
// It defines a local Recorder interface so the package does not import
// Chronicle directly. Callers inject a RecorderFunc adapter that bridges
// to Chronicle at wiring time.
package audithook

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/worksite/ledger/plugin"
)

// Compile-time interface checks.
var (
	_ plugin.Plugin            = (*Extension)(nil)
	_ plugin.OnClientCreated   = (*Extension)(nil)
	_ plugin.OnClientUpdated   = (*Extension)(nil)
	_ plugin.OnClientDeleted   = (*Extension)(nil)
	_ plugin.OnProjectCreated  = (*Extension)(nil)
	_ plugin.OnProjectDeleted  = (*Extension)(nil)
	_ plugin.OnEntryLogged     = (*Extension)(nil)
	_ plugin.OnEntryDeleted    = (*Extension)(nil)
	_ plugin.OnEntriesBilled   = (*Extension)(nil)
	_ plugin.OnEntriesReleased = (*Extension)(nil)
	_ plugin.OnInvoiceCreated  = (*Extension)(nil)
	_ plugin.OnInvoiceSent     = (*Extension)(nil)
	_ plugin.OnInvoicePaid     = (*Extension)(nil)
	_ plugin.OnInvoiceDeleted  = (*Extension)(nil)
)

// Recorder is the interface that audit backends must implement.
// This matches chronicle.Emitter but is defined locally so that the
// audit_hook package does not import Chronicle directly — callers inject
// the concrete *chronicle.Chronicle at wiring time.
type Recorder interface {
	Record(ctx context.Context, event *AuditEvent) error
}

// AuditEvent is a local representation of an audit event.
// It mirrors chronicle/audit.Event but avoids a module dependency.
type AuditEvent struct {
	Action     string         `json:"action"`
	Resource   string         `json:"resource"`
	Category   string         `json:"category"`
	ResourceID string         `json:"resource_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Outcome    string         `json:"outcome"`
	Severity   string         `json:"severity"`
	Reason     string         `json:"reason,omitempty"`
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *AuditEvent) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, event *AuditEvent) error {
	return f(ctx, event)
}

// Extension bridges Ledger lifecycle events to an audit trail backend.
type Extension struct {
	recorder Recorder
	enabled  map[string]bool // nil = all enabled
	logger   *slog.Logger
}

// New creates an Extension that emits audit events through the provided Recorder.
func New(r Recorder, opts ...Option) *Extension {
	e := &Extension{
		recorder: r,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements plugin.Plugin.
func (e *Extension) Name() string { return "audit-hook" }

// ──────────────────────────────────────────────────
// Client lifecycle hooks
// ──────────────────────────────────────────────────

// OnClientCreated implements plugin.OnClientCreated.
func (e *Extension) OnClientCreated(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionClientCreated, SeverityInfo, OutcomeSuccess,
		ResourceClient, "", CategoryBilling, nil,
		"event", "client_created",
	)
}

// OnClientUpdated implements plugin.OnClientUpdated.
func (e *Extension) OnClientUpdated(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionClientUpdated, SeverityInfo, OutcomeSuccess,
		ResourceClient, "", CategoryBilling, nil,
		"event", "client_updated",
	)
}

// OnClientDeleted implements plugin.OnClientDeleted.
func (e *Extension) OnClientDeleted(ctx context.Context, clientID string) error {
	return e.record(ctx, ActionClientDeleted, SeverityWarning, OutcomeSuccess,
		ResourceClient, clientID, CategoryBilling, nil,
		"client_id", clientID,
	)
}

// ──────────────────────────────────────────────────
// Project lifecycle hooks
// ──────────────────────────────────────────────────

// OnProjectCreated implements plugin.OnProjectCreated.
func (e *Extension) OnProjectCreated(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionProjectCreated, SeverityInfo, OutcomeSuccess,
		ResourceProject, "", CategoryBilling, nil,
		"event", "project_created",
	)
}

// OnProjectDeleted implements plugin.OnProjectDeleted.
func (e *Extension) OnProjectDeleted(ctx context.Context, projectID string) error {
	return e.record(ctx, ActionProjectDeleted, SeverityWarning, OutcomeSuccess,
		ResourceProject, projectID, CategoryBilling, nil,
		"project_id", projectID,
	)
}

// ──────────────────────────────────────────────────
// Timesheet hooks
// ──────────────────────────────────────────────────

// OnEntryLogged implements plugin.OnEntryLogged.
func (e *Extension) OnEntryLogged(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionEntryLogged, SeverityInfo, OutcomeSuccess,
		ResourceEntry, "", CategoryTimesheet, nil,
		"event", "entry_logged",
	)
}

// OnEntryDeleted implements plugin.OnEntryDeleted.
func (e *Extension) OnEntryDeleted(ctx context.Context, entryID string) error {
	return e.record(ctx, ActionEntryDeleted, SeverityInfo, OutcomeSuccess,
		ResourceEntry, entryID, CategoryTimesheet, nil,
		"entry_id", entryID,
	)
}

// OnEntriesBilled implements plugin.OnEntriesBilled.
func (e *Extension) OnEntriesBilled(ctx context.Context, invoiceID string, entryIDs []string) error {
	return e.record(ctx, ActionEntriesBilled, SeverityInfo, OutcomeSuccess,
		ResourceInvoice, invoiceID, CategoryBilling, nil,
		"invoice_id", invoiceID,
		"entry_count", len(entryIDs),
	)
}

// OnEntriesReleased implements plugin.OnEntriesReleased.
func (e *Extension) OnEntriesReleased(ctx context.Context, invoiceID string, entryIDs []string) error {
	return e.record(ctx, ActionEntriesReleased, SeverityWarning, OutcomeSuccess,
		ResourceInvoice, invoiceID, CategoryBilling, nil,
		"invoice_id", invoiceID,
		"entry_count", len(entryIDs),
	)
}

// ──────────────────────────────────────────────────
// Invoice lifecycle hooks
// ──────────────────────────────────────────────────

// OnInvoiceCreated implements plugin.OnInvoiceCreated.
func (e *Extension) OnInvoiceCreated(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionInvoiceCreated, SeverityInfo, OutcomeSuccess,
		ResourceInvoice, "", CategoryPayment, nil,
		"event", "invoice_created",
	)
}

// OnInvoiceSent implements plugin.OnInvoiceSent.
func (e *Extension) OnInvoiceSent(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionInvoiceSent, SeverityInfo, OutcomeSuccess,
		ResourceInvoice, "", CategoryPayment, nil,
		"event", "invoice_sent",
	)
}

// OnInvoicePaid implements plugin.OnInvoicePaid.
func (e *Extension) OnInvoicePaid(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionInvoicePaid, SeverityInfo, OutcomeSuccess,
		ResourceInvoice, "", CategoryPayment, nil,
		"event", "invoice_paid",
	)
}

// OnInvoiceDeleted implements plugin.OnInvoiceDeleted.
func (e *Extension) OnInvoiceDeleted(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionInvoiceDeleted, SeverityWarning, OutcomeSuccess,
		ResourceInvoice, "", CategoryPayment, nil,
		"event", "invoice_deleted",
	)
}

// ──────────────────────────────────────────────────
// Internal helpers
// ──────────────────────────────────────────────────

// record builds and sends an audit event if the action is enabled.
func (e *Extension) record(
	ctx context.Context,
	action, severity, outcome string,
	resource, resourceID, category string,
	err error,
	kvPairs ...any,
) error {
	if e.enabled != nil && !e.enabled[action] {
		return nil
	}

	meta := make(map[string]any, len(kvPairs)/2+1)
	for i := 0; i+1 < len(kvPairs); i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvPairs[i])
		}
		meta[key] = kvPairs[i+1]
	}

	var reason string
	if err != nil {
		reason = err.Error()
		meta["error"] = err.Error()
	}

	evt := &AuditEvent{
		Action:     action,
		Resource:   resource,
		Category:   category,
		ResourceID: resourceID,
		Metadata:   meta,
		Outcome:    outcome,
		Severity:   severity,
		Reason:     reason,
	}

	if recErr := e.recorder.Record(ctx, evt); recErr != nil {
		e.logger.Warn("audit_hook: failed to record audit event",
			"action", action,
			"resource_id", resourceID,
			"error", recErr,
		)
	}
	return nil
}
