package ledger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/worksite/ledger/client"
	"github.com/worksite/ledger/id"
	"github.com/worksite/ledger/invoice"
	"github.com/worksite/ledger/plugin"
	"github.com/worksite/ledger/project"
	"github.com/worksite/ledger/store"
	"github.com/worksite/ledger/timesheet"
	"github.com/worksite/ledger/types"
)

// Ledger is the billing engine: it owns clients, projects, timesheet
// entries, and invoices, and keeps them reconciled. Every mutation runs
// under a single mutex, so the check-compute-flip sequence inside
// CreateInvoice can never interleave with entry edits or another
// invoice creation.
type Ledger struct {
	store   store.Store
	plugins *plugin.Registry
	logger  *slog.Logger

	// Serializes all mutations. Reads go straight to the store.
	mu sync.Mutex

	// Configuration
	currency      string
	defaultRate   types.Money
	invoicePrefix string
	paymentTerms  time.Duration
}

// DefaultPaymentTerms is the issue-to-due interval applied when no
// WithPaymentTerms option is given.
const DefaultPaymentTerms = 14 * 24 * time.Hour

// New creates a new Ledger instance.
func New(s store.Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:         s,
		plugins:       plugin.NewRegistry(),
		logger:        slog.Default(),
		currency:      "nzd",
		defaultRate:   types.NZD(8500),
		invoicePrefix: "INV",
		paymentTerms:  DefaultPaymentTerms,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Option configures a Ledger instance.
type Option func(*Ledger)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) {
		l.logger = logger
		l.plugins.WithLogger(logger)
	}
}

// WithPlugin registers a plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(l *Ledger) {
		_ = l.plugins.Register(p) //nolint:errcheck // best-effort plugin registration during init
	}
}

// WithCurrency sets the currency for default rates and new clients.
func WithCurrency(currency string) Option {
	return func(l *Ledger) {
		l.currency = strings.ToLower(currency)
	}
}

// WithDefaultHourlyRate sets the rate applied to clients created
// without one.
func WithDefaultHourlyRate(rate types.Money) Option {
	return func(l *Ledger) {
		l.defaultRate = rate
		l.currency = rate.Currency
	}
}

// WithInvoicePrefix sets the invoice number prefix (default "INV").
func WithInvoicePrefix(prefix string) Option {
	return func(l *Ledger) {
		l.invoicePrefix = prefix
	}
}

// WithPaymentTerms sets the issue-to-due interval for new invoices.
func WithPaymentTerms(terms time.Duration) Option {
	return func(l *Ledger) {
		l.paymentTerms = terms
	}
}

// Start migrates the store and initializes plugins.
func (l *Ledger) Start(ctx context.Context) error {
	if err := l.store.Migrate(ctx); err != nil {
		return err
	}

	l.plugins.EmitInit(ctx, l)

	l.logger.Info("ledger started",
		"currency", l.currency,
		"default_rate", l.defaultRate.String(),
		"payment_terms", l.paymentTerms,
	)

	return nil
}

// Stop shuts down the Ledger.
func (l *Ledger) Stop() error {
	ctx := context.Background()
	l.plugins.EmitShutdown(ctx)

	return l.store.Close()
}

// Plugins exposes the plugin registry.
func (l *Ledger) Plugins() *plugin.Registry {
	return l.plugins
}

// ──────────────────────────────────────────────────
// Client Management
// ──────────────────────────────────────────────────

// CreateClient creates a new client. Status defaults to active and the
// hourly rate to the ledger default; TotalBilled always starts at zero.
func (l *Ledger) CreateClient(ctx context.Context, c *client.Client) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if c.Name == "" {
		return ValidationError{Field: "name", Message: "must not be empty"}
	}
	if c.Status == "" {
		c.Status = client.StatusActive
	}
	if !c.Status.Valid() {
		return ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", c.Status)}
	}
	if err := l.checkCurrency("hourly_rate", c.HourlyRate); err != nil {
		return err
	}
	if c.HourlyRate.IsZero() {
		c.HourlyRate = l.defaultRate
	}
	if c.ID.IsNil() {
		c.ID = id.NewClientID()
	}
	c.TotalBilled = types.Zero(c.HourlyRate.Currency)
	c.Entity = types.NewEntity()

	if err := l.store.CreateClient(ctx, c); err != nil {
		return err
	}

	l.plugins.EmitClientCreated(ctx, c)
	return nil
}

// GetClient retrieves a client by ID.
func (l *Ledger) GetClient(ctx context.Context, clientID id.ClientID) (*client.Client, error) {
	return l.store.GetClient(ctx, clientID)
}

// ListClients lists clients, optionally filtered by status.
func (l *Ledger) ListClients(ctx context.Context, opts client.ListOpts) ([]*client.Client, error) {
	return l.store.ListClients(ctx, opts)
}

// UpdateClient updates a client's details. TotalBilled is maintained
// by invoice operations and cannot be changed here.
func (l *Ledger) UpdateClient(ctx context.Context, c *client.Client) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if c.Name == "" {
		return ValidationError{Field: "name", Message: "must not be empty"}
	}
	if !c.Status.Valid() {
		return ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", c.Status)}
	}
	if err := l.checkCurrency("hourly_rate", c.HourlyRate); err != nil {
		return err
	}

	existing, err := l.store.GetClient(ctx, c.ID)
	if err != nil {
		return err
	}
	c.TotalBilled = existing.TotalBilled
	c.CreatedAt = existing.CreatedAt
	c.Touch()

	if err := l.store.UpdateClient(ctx, c); err != nil {
		return err
	}

	l.plugins.EmitClientUpdated(ctx, c)
	return nil
}

// DeleteClient removes a client. Rejected while any project, timesheet
// entry, or invoice still references the client.
func (l *Ledger) DeleteClient(ctx context.Context, clientID id.ClientID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.store.GetClient(ctx, clientID); err != nil {
		return err
	}

	projects, err := l.store.CountProjectsByClient(ctx, clientID)
	if err != nil {
		return err
	}
	entries, err := l.store.CountEntriesByClient(ctx, clientID)
	if err != nil {
		return err
	}
	invoices, err := l.store.CountInvoicesByClient(ctx, clientID)
	if err != nil {
		return err
	}
	if projects > 0 || entries > 0 || invoices > 0 {
		return ErrClientHasRecords
	}

	if err := l.store.DeleteClient(ctx, clientID); err != nil {
		return err
	}

	l.plugins.EmitClientDeleted(ctx, clientID.String())
	return nil
}

// ──────────────────────────────────────────────────
// Project Management
// ──────────────────────────────────────────────────

// CreateProject creates a new project under an existing client.
func (l *Ledger) CreateProject(ctx context.Context, p *project.Project) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if p.Name == "" {
		return ValidationError{Field: "name", Message: "must not be empty"}
	}
	if _, err := l.store.GetClient(ctx, p.ClientID); err != nil {
		return err
	}
	if p.Status == "" {
		p.Status = project.StatusActive
	}
	if !p.Status.Valid() {
		return ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", p.Status)}
	}
	if p.HourlyRate != nil {
		if err := l.checkCurrency("hourly_rate", *p.HourlyRate); err != nil {
			return err
		}
	}
	p.Progress = project.ClampProgress(p.Progress)
	if p.ID.IsNil() {
		p.ID = id.NewProjectID()
	}
	p.Entity = types.NewEntity()

	if err := l.store.CreateProject(ctx, p); err != nil {
		return err
	}

	l.plugins.EmitProjectCreated(ctx, p)
	return nil
}

// GetProject retrieves a project by ID.
func (l *Ledger) GetProject(ctx context.Context, projectID id.ProjectID) (*project.Project, error) {
	return l.store.GetProject(ctx, projectID)
}

// ListProjects lists a client's projects. A nil clientID lists all.
func (l *Ledger) ListProjects(ctx context.Context, clientID id.ClientID, opts project.ListOpts) ([]*project.Project, error) {
	return l.store.ListProjects(ctx, clientID, opts)
}

// UpdateProject updates a project. Progress is clamped to 0-100.
func (l *Ledger) UpdateProject(ctx context.Context, p *project.Project) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if p.Name == "" {
		return ValidationError{Field: "name", Message: "must not be empty"}
	}
	if !p.Status.Valid() {
		return ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", p.Status)}
	}
	if p.HourlyRate != nil {
		if err := l.checkCurrency("hourly_rate", *p.HourlyRate); err != nil {
			return err
		}
	}
	p.Progress = project.ClampProgress(p.Progress)

	existing, err := l.store.GetProject(ctx, p.ID)
	if err != nil {
		return err
	}
	p.ClientID = existing.ClientID
	p.CreatedAt = existing.CreatedAt
	p.Touch()

	if err := l.store.UpdateProject(ctx, p); err != nil {
		return err
	}

	l.plugins.EmitProjectUpdated(ctx, p)
	return nil
}

// DeleteProject removes a project. Rejected while timesheet entries
// still reference it.
func (l *Ledger) DeleteProject(ctx context.Context, projectID id.ProjectID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.store.GetProject(ctx, projectID); err != nil {
		return err
	}

	entries, err := l.store.CountEntriesByProject(ctx, projectID)
	if err != nil {
		return err
	}
	if entries > 0 {
		return ErrProjectHasEntries
	}

	if err := l.store.DeleteProject(ctx, projectID); err != nil {
		return err
	}

	l.plugins.EmitProjectDeleted(ctx, projectID.String())
	return nil
}

// ──────────────────────────────────────────────────
// Timesheet
// ──────────────────────────────────────────────────

// LogEntry records a timesheet entry. The client (and project, when
// set) must resolve; client and project names are snapshotted onto the
// entry. Hours are derived from start and end times when not given.
// The rate falls back entry → project override → client rate. The
// entry always starts unbilled.
func (l *Ledger) LogEntry(ctx context.Context, e *timesheet.Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, err := l.store.GetClient(ctx, e.ClientID)
	if err != nil {
		return err
	}
	e.ClientName = c.Name

	var proj *project.Project
	if !e.ProjectID.IsNil() {
		proj, err = l.store.GetProject(ctx, e.ProjectID)
		if err != nil {
			return err
		}
		if proj.ClientID.String() != e.ClientID.String() {
			return ErrWrongClient
		}
		e.ProjectName = proj.Name
	}

	if e.Hours.IsZero() && e.StartTime != nil && e.EndTime != nil {
		e.Hours = types.HoursFromDuration(e.EndTime.Sub(*e.StartTime))
	}
	if !e.Hours.IsPositive() {
		return ValidationError{Field: "hours", Message: "must be greater than zero"}
	}
	if e.Description == "" {
		return ValidationError{Field: "description", Message: "must not be empty"}
	}
	if e.Date.IsZero() {
		e.Date = time.Now().UTC()
	}
	if err := l.checkCurrency("rate", e.Rate); err != nil {
		return err
	}

	if e.Rate.IsZero() {
		switch {
		case proj != nil && proj.HourlyRate != nil && !proj.HourlyRate.IsZero():
			e.Rate = *proj.HourlyRate
		default:
			e.Rate = c.HourlyRate
		}
	}

	if e.ID.IsNil() {
		e.ID = id.NewEntryID()
	}
	e.Invoiced = false
	e.Entity = types.NewEntity()

	if err := l.store.CreateEntry(ctx, e); err != nil {
		return err
	}

	l.plugins.EmitEntryLogged(ctx, e)
	return nil
}

// GetEntry retrieves a timesheet entry by ID.
func (l *Ledger) GetEntry(ctx context.Context, entryID id.EntryID) (*timesheet.Entry, error) {
	return l.store.GetEntry(ctx, entryID)
}

// ClientEntries lists all entries for a client, billed and unbilled.
func (l *Ledger) ClientEntries(ctx context.Context, clientID id.ClientID) ([]*timesheet.Entry, error) {
	return l.store.ListEntries(ctx, clientID, timesheet.ListOpts{})
}

// UnbilledEntries lists entries not yet on any invoice.
func (l *Ledger) UnbilledEntries(ctx context.Context, clientID id.ClientID) ([]*timesheet.Entry, error) {
	return l.store.ListEntries(ctx, clientID, timesheet.ListOpts{UnbilledOnly: true})
}

// UnbilledHours returns the total unbilled hours for a client.
func (l *Ledger) UnbilledHours(ctx context.Context, clientID id.ClientID) (types.Hours, error) {
	entries, err := l.UnbilledEntries(ctx, clientID)
	if err != nil {
		return 0, err
	}

	var total types.Hours
	for _, e := range entries {
		total = total.Add(e.Hours)
	}
	return total, nil
}

// UnbilledAmount returns the total unbilled value for a client:
// the sum over unbilled entries of hours at each entry's rate.
func (l *Ledger) UnbilledAmount(ctx context.Context, clientID id.ClientID) (types.Money, error) {
	entries, err := l.UnbilledEntries(ctx, clientID)
	if err != nil {
		return types.Money{}, err
	}

	total := types.Zero(l.currency)
	for _, e := range entries {
		total = total.Add(e.Amount())
	}
	return total, nil
}

// UpdateEntry applies a partial update to an entry. Rejected once the
// entry has been invoiced: billed history is immutable while the
// invoice exists.
func (l *Ledger) UpdateEntry(ctx context.Context, entryID id.EntryID, patch timesheet.Patch) (*timesheet.Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, err := l.store.GetEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if e.Invoiced {
		return nil, ErrEntryBilled
	}

	if patch.Date != nil {
		e.Date = *patch.Date
	}
	if patch.StartTime != nil {
		e.StartTime = patch.StartTime
	}
	if patch.EndTime != nil {
		e.EndTime = patch.EndTime
	}
	switch {
	case patch.Hours != nil:
		e.Hours = *patch.Hours
	case (patch.StartTime != nil || patch.EndTime != nil) && e.StartTime != nil && e.EndTime != nil:
		e.Hours = types.HoursFromDuration(e.EndTime.Sub(*e.StartTime))
	}
	if patch.Rate != nil {
		if err := l.checkCurrency("rate", *patch.Rate); err != nil {
			return nil, err
		}
		e.Rate = *patch.Rate
	}
	if patch.Description != nil {
		e.Description = *patch.Description
	}

	if !e.Hours.IsPositive() {
		return nil, ValidationError{Field: "hours", Message: "must be greater than zero"}
	}
	if e.Description == "" {
		return nil, ValidationError{Field: "description", Message: "must not be empty"}
	}
	e.Touch()

	if err := l.store.UpdateEntry(ctx, e); err != nil {
		return nil, err
	}

	l.plugins.EmitEntryUpdated(ctx, e)
	return e, nil
}

// DeleteEntry removes an unbilled entry. Billed entries cannot be
// deleted while their invoice exists.
func (l *Ledger) DeleteEntry(ctx context.Context, entryID id.EntryID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, err := l.store.GetEntry(ctx, entryID)
	if err != nil {
		return err
	}
	if e.Invoiced {
		return ErrEntryBilled
	}

	if err := l.store.DeleteEntry(ctx, entryID); err != nil {
		return err
	}

	l.plugins.EmitEntryDeleted(ctx, entryID.String())
	return nil
}

// ──────────────────────────────────────────────────
// Invoicing
// ──────────────────────────────────────────────────

// CreateInvoice builds an invoice from a set of unbilled entries.
// The call is all-or-nothing: every entry must exist, belong to the
// client, appear once, and be unbilled, or nothing changes. On success
// the entries are marked invoiced and the total is added to the
// client's TotalBilled.
func (l *Ledger) CreateInvoice(ctx context.Context, clientID id.ClientID, entryIDs []id.EntryID, notes string) (*invoice.Invoice, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, err := l.store.GetClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if len(entryIDs) == 0 {
		return nil, ErrNoEntries
	}

	// Validate the whole set before touching anything.
	seen := make(map[string]bool, len(entryIDs))
	entries := make([]*timesheet.Entry, 0, len(entryIDs))
	for _, eid := range entryIDs {
		if seen[eid.String()] {
			return nil, ErrDuplicateEntry
		}
		seen[eid.String()] = true

		e, err := l.store.GetEntry(ctx, eid)
		if err != nil {
			return nil, err
		}
		if e.ClientID.String() != clientID.String() {
			return nil, ErrWrongClient
		}
		if e.Invoiced {
			return nil, ErrEntryBilled
		}
		entries = append(entries, e)
	}

	seq, err := l.store.NextInvoiceSequence(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	inv := &invoice.Invoice{
		Entity:     types.NewEntity(),
		ID:         id.NewInvoiceID(),
		ClientID:   clientID,
		ClientName: c.Name,
		Number:     fmt.Sprintf("%s-%d-%04d", l.invoicePrefix, now.Year(), seq),
		Sequence:   seq,
		Status:     invoice.StatusDraft,
		IssueDate:  now,
		DueDate:    now.Add(l.paymentTerms),
		Notes:      notes,
		LineItems:  make([]invoice.LineItem, 0, len(entries)),
	}

	total := types.Zero(c.HourlyRate.Currency)
	for _, e := range entries {
		amount := e.Amount()
		inv.LineItems = append(inv.LineItems, invoice.LineItem{
			ID:          id.NewLineItemID(),
			InvoiceID:   inv.ID,
			EntryID:     e.ID,
			Description: e.Description,
			Hours:       e.Hours,
			Rate:        e.Rate,
			Amount:      amount,
		})
		total = total.Add(amount)
	}
	inv.Total = total
	inv.Currency = total.Currency

	if err := l.store.CreateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	if err := l.store.SetEntriesInvoiced(ctx, entryIDs, true); err != nil {
		// Roll the invoice back so nothing is left half-billed.
		if delErr := l.store.DeleteInvoice(ctx, inv.ID); delErr != nil {
			l.logger.Error("failed to roll back invoice after flag error",
				"invoice", inv.ID.String(),
				"error", delErr,
			)
		}
		return nil, err
	}

	c.TotalBilled = c.TotalBilled.Add(total)
	c.Touch()
	if err := l.store.UpdateClient(ctx, c); err != nil {
		if relErr := l.store.SetEntriesInvoiced(ctx, entryIDs, false); relErr != nil {
			l.logger.Error("failed to release entries after client update error",
				"invoice", inv.ID.String(),
				"error", relErr,
			)
		}
		if delErr := l.store.DeleteInvoice(ctx, inv.ID); delErr != nil {
			l.logger.Error("failed to roll back invoice after client update error",
				"invoice", inv.ID.String(),
				"error", delErr,
			)
		}
		return nil, err
	}

	l.logger.Info("invoice created",
		"number", inv.Number,
		"client", c.Name,
		"entries", len(entries),
		"total", total.String(),
	)

	l.plugins.EmitEntriesBilled(ctx, inv.ID.String(), idStrings(entryIDs))
	l.plugins.EmitInvoiceCreated(ctx, inv)
	return inv, nil
}

// GetInvoice retrieves an invoice by ID.
func (l *Ledger) GetInvoice(ctx context.Context, invID id.InvoiceID) (*invoice.Invoice, error) {
	return l.store.GetInvoice(ctx, invID)
}

// ListInvoices lists a client's invoices. A nil clientID lists all.
func (l *Ledger) ListInvoices(ctx context.Context, clientID id.ClientID, opts invoice.ListOpts) ([]*invoice.Invoice, error) {
	return l.store.ListInvoices(ctx, clientID, opts)
}

// UpdateInvoiceNotes replaces an invoice's notes. Line items, totals,
// and numbering are immutable.
func (l *Ledger) UpdateInvoiceNotes(ctx context.Context, invID id.InvoiceID, notes string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	inv, err := l.store.GetInvoice(ctx, invID)
	if err != nil {
		return err
	}
	inv.Notes = notes
	inv.Touch()

	return l.store.UpdateInvoice(ctx, inv)
}

// MarkInvoiceSent transitions a draft invoice to sent.
func (l *Ledger) MarkInvoiceSent(ctx context.Context, invID id.InvoiceID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	inv, err := l.store.GetInvoice(ctx, invID)
	if err != nil {
		return err
	}
	if !inv.CanTransition(invoice.StatusSent) {
		return ErrInvalidTransition
	}

	now := time.Now().UTC()
	inv.Status = invoice.StatusSent
	inv.SentAt = &now
	inv.Touch()

	if err := l.store.UpdateInvoice(ctx, inv); err != nil {
		return err
	}

	l.plugins.EmitInvoiceSent(ctx, inv)
	return nil
}

// MarkInvoicePaid transitions a sent invoice to paid.
func (l *Ledger) MarkInvoicePaid(ctx context.Context, invID id.InvoiceID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	inv, err := l.store.GetInvoice(ctx, invID)
	if err != nil {
		return err
	}
	if !inv.CanTransition(invoice.StatusPaid) {
		return ErrInvalidTransition
	}

	now := time.Now().UTC()
	inv.Status = invoice.StatusPaid
	inv.PaidAt = &now
	inv.Touch()

	if err := l.store.UpdateInvoice(ctx, inv); err != nil {
		return err
	}

	l.plugins.EmitInvoicePaid(ctx, inv)
	return nil
}

// DeleteInvoice removes an unpaid invoice, releases every billed entry
// back to the unbilled pool, and subtracts the total from the client's
// TotalBilled. Paid invoices cannot be deleted.
func (l *Ledger) DeleteInvoice(ctx context.Context, invID id.InvoiceID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	inv, err := l.store.GetInvoice(ctx, invID)
	if err != nil {
		return err
	}
	if inv.Status == invoice.StatusPaid {
		return ErrInvoicePaid
	}

	if err := l.store.DeleteInvoice(ctx, invID); err != nil {
		return err
	}

	entryIDs := inv.EntryIDs()
	if err := l.store.SetEntriesInvoiced(ctx, entryIDs, false); err != nil {
		return err
	}

	c, err := l.store.GetClient(ctx, inv.ClientID)
	if err != nil {
		return err
	}
	c.TotalBilled = c.TotalBilled.Subtract(inv.Total)
	c.Touch()
	if err := l.store.UpdateClient(ctx, c); err != nil {
		return err
	}

	l.logger.Info("invoice deleted",
		"number", inv.Number,
		"entries_released", len(entryIDs),
		"total", inv.Total.String(),
	)

	l.plugins.EmitEntriesReleased(ctx, inv.ID.String(), idStrings(entryIDs))
	l.plugins.EmitInvoiceDeleted(ctx, inv)
	return nil
}

// RenderInvoice writes an invoice in the given format using a
// registered DocumentRenderer plugin.
func (l *Ledger) RenderInvoice(ctx context.Context, invID id.InvoiceID, format string, w io.Writer) error {
	inv, err := l.store.GetInvoice(ctx, invID)
	if err != nil {
		return err
	}

	r := l.plugins.GetRenderer(format)
	if r == nil {
		return fmt.Errorf("%w: no renderer for format %q", ErrInvalidInput, format)
	}

	return r.Render(ctx, inv, w)
}

// ──────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────

// checkCurrency rejects a rate denominated in a currency other than the
// ledger's. A zero rate passes; it means "use the fallback". Catching
// the mismatch at the operation boundary keeps aggregate reads from
// ever mixing currencies.
func (l *Ledger) checkCurrency(field string, rate types.Money) error {
	if rate.IsZero() || rate.Currency == l.currency {
		return nil
	}
	return ValidationError{
		Field:   field,
		Message: fmt.Sprintf("currency %q does not match ledger currency %q", rate.Currency, l.currency),
	}
}

func idStrings(ids []id.ID) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		out = append(out, v.String())
	}
	return out
}
