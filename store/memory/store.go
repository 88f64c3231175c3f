// Package memory provides an in-process Store for tests and embedded use.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/worksite/ledger"
	"github.com/worksite/ledger/client"
	"github.com/worksite/ledger/id"
	"github.com/worksite/ledger/invoice"
	"github.com/worksite/ledger/project"
	"github.com/worksite/ledger/timesheet"
)

// Store keeps all records in process. Records are copied on the way in
// and on the way out, so a pointer handed to a caller never aliases
// ledger-owned state and an abandoned edit can never leak back in.
type Store struct {
	mu sync.RWMutex

	clients  map[string]*client.Client
	projects map[string]*project.Project
	entries  map[string]*timesheet.Entry
	invoices map[string]*invoice.Invoice

	// Global invoice counter. Monotonic, never reset.
	invoiceSeq int64

	closed bool
}

func New() *Store {
	return &Store{
		clients:  make(map[string]*client.Client),
		projects: make(map[string]*project.Project),
		entries:  make(map[string]*timesheet.Entry),
		invoices: make(map[string]*invoice.Invoice),
	}
}

// Client Store implementation
func (s *Store) CreateClient(_ context.Context, c *client.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.clients[c.ID.String()]; exists {
		return ledger.ErrAlreadyExists
	}
	s.clients[c.ID.String()] = cloneClient(c)
	return nil
}

func (s *Store) GetClient(_ context.Context, clientID id.ClientID) (*client.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if c, ok := s.clients[clientID.String()]; ok {
		return cloneClient(c), nil
	}
	return nil, ledger.ErrClientNotFound
}

func (s *Store) ListClients(_ context.Context, opts client.ListOpts) ([]*client.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*client.Client, 0)
	for _, c := range s.clients {
		if opts.Status == "" || c.Status == opts.Status {
			result = append(result, cloneClient(c))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID.String() < result[j].ID.String()
	})

	return paginate(result, opts.Offset, opts.Limit), nil
}

func (s *Store) UpdateClient(_ context.Context, c *client.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.clients[c.ID.String()]; !exists {
		return ledger.ErrClientNotFound
	}
	s.clients[c.ID.String()] = cloneClient(c)
	return nil
}

func (s *Store) DeleteClient(_ context.Context, clientID id.ClientID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.clients[clientID.String()]; !exists {
		return ledger.ErrClientNotFound
	}
	delete(s.clients, clientID.String())
	return nil
}

// Project Store implementation
func (s *Store) CreateProject(_ context.Context, p *project.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.projects[p.ID.String()]; exists {
		return ledger.ErrAlreadyExists
	}
	s.projects[p.ID.String()] = cloneProject(p)
	return nil
}

func (s *Store) GetProject(_ context.Context, projectID id.ProjectID) (*project.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.projects[projectID.String()]; ok {
		return cloneProject(p), nil
	}
	return nil, ledger.ErrProjectNotFound
}

func (s *Store) ListProjects(_ context.Context, clientID id.ClientID, opts project.ListOpts) ([]*project.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*project.Project, 0)
	for _, p := range s.projects {
		if clientID.IsNil() || p.ClientID.String() == clientID.String() {
			if opts.Status == "" || p.Status == opts.Status {
				result = append(result, cloneProject(p))
			}
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID.String() < result[j].ID.String()
	})

	return paginate(result, opts.Offset, opts.Limit), nil
}

func (s *Store) UpdateProject(_ context.Context, p *project.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.projects[p.ID.String()]; !exists {
		return ledger.ErrProjectNotFound
	}
	s.projects[p.ID.String()] = cloneProject(p)
	return nil
}

func (s *Store) DeleteProject(_ context.Context, projectID id.ProjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.projects[projectID.String()]; !exists {
		return ledger.ErrProjectNotFound
	}
	delete(s.projects, projectID.String())
	return nil
}

func (s *Store) CountProjectsByClient(_ context.Context, clientID id.ClientID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, p := range s.projects {
		if p.ClientID.String() == clientID.String() {
			count++
		}
	}
	return count, nil
}

// Timesheet Store implementation
func (s *Store) CreateEntry(_ context.Context, e *timesheet.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[e.ID.String()]; exists {
		return ledger.ErrAlreadyExists
	}
	s.entries[e.ID.String()] = cloneEntry(e)
	return nil
}

func (s *Store) GetEntry(_ context.Context, entryID id.EntryID) (*timesheet.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if e, ok := s.entries[entryID.String()]; ok {
		return cloneEntry(e), nil
	}
	return nil, ledger.ErrEntryNotFound
}

func (s *Store) ListEntries(_ context.Context, clientID id.ClientID, opts timesheet.ListOpts) ([]*timesheet.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*timesheet.Entry, 0)
	for _, e := range s.entries {
		if !clientID.IsNil() && e.ClientID.String() != clientID.String() {
			continue
		}
		if opts.UnbilledOnly && e.Invoiced {
			continue
		}
		if !opts.ProjectID.IsNil() && e.ProjectID.String() != opts.ProjectID.String() {
			continue
		}
		if !opts.Start.IsZero() && e.Date.Before(opts.Start) {
			continue
		}
		if !opts.End.IsZero() && e.Date.After(opts.End) {
			continue
		}
		result = append(result, cloneEntry(e))
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].ID.String() < result[j].ID.String()
	})

	return paginate(result, opts.Offset, opts.Limit), nil
}

func (s *Store) UpdateEntry(_ context.Context, e *timesheet.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[e.ID.String()]; !exists {
		return ledger.ErrEntryNotFound
	}
	s.entries[e.ID.String()] = cloneEntry(e)
	return nil
}

func (s *Store) DeleteEntry(_ context.Context, entryID id.EntryID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[entryID.String()]; !exists {
		return ledger.ErrEntryNotFound
	}
	delete(s.entries, entryID.String())
	return nil
}

func (s *Store) SetEntriesInvoiced(_ context.Context, entryIDs []id.EntryID, invoiced bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Verify first so the flip is all-or-nothing.
	for _, eid := range entryIDs {
		if _, exists := s.entries[eid.String()]; !exists {
			return ledger.ErrEntryNotFound
		}
	}
	for _, eid := range entryIDs {
		s.entries[eid.String()].Invoiced = invoiced
	}
	return nil
}

func (s *Store) CountEntriesByClient(_ context.Context, clientID id.ClientID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, e := range s.entries {
		if e.ClientID.String() == clientID.String() {
			count++
		}
	}
	return count, nil
}

func (s *Store) CountEntriesByProject(_ context.Context, projectID id.ProjectID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, e := range s.entries {
		if e.ProjectID.String() == projectID.String() {
			count++
		}
	}
	return count, nil
}

// Invoice Store implementation
func (s *Store) CreateInvoice(_ context.Context, inv *invoice.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.invoices[inv.ID.String()]; exists {
		return ledger.ErrAlreadyExists
	}
	s.invoices[inv.ID.String()] = cloneInvoice(inv)
	return nil
}

func (s *Store) GetInvoice(_ context.Context, invID id.InvoiceID) (*invoice.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if inv, ok := s.invoices[invID.String()]; ok {
		return cloneInvoice(inv), nil
	}
	return nil, ledger.ErrInvoiceNotFound
}

func (s *Store) ListInvoices(_ context.Context, clientID id.ClientID, opts invoice.ListOpts) ([]*invoice.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*invoice.Invoice, 0)
	for _, inv := range s.invoices {
		if !clientID.IsNil() && inv.ClientID.String() != clientID.String() {
			continue
		}
		if opts.Status != "" && inv.Status != opts.Status {
			continue
		}
		if !opts.Start.IsZero() && inv.IssueDate.Before(opts.Start) {
			continue
		}
		if !opts.End.IsZero() && inv.IssueDate.After(opts.End) {
			continue
		}
		result = append(result, cloneInvoice(inv))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Sequence < result[j].Sequence
	})

	return paginate(result, opts.Offset, opts.Limit), nil
}

func (s *Store) UpdateInvoice(_ context.Context, inv *invoice.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.invoices[inv.ID.String()]; !exists {
		return ledger.ErrInvoiceNotFound
	}
	s.invoices[inv.ID.String()] = cloneInvoice(inv)
	return nil
}

func (s *Store) DeleteInvoice(_ context.Context, invID id.InvoiceID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.invoices[invID.String()]; !exists {
		return ledger.ErrInvoiceNotFound
	}
	delete(s.invoices, invID.String())
	return nil
}

func (s *Store) CountInvoicesByClient(_ context.Context, clientID id.ClientID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, inv := range s.invoices {
		if inv.ClientID.String() == clientID.String() {
			count++
		}
	}
	return count, nil
}

func (s *Store) NextInvoiceSequence(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.invoiceSeq++
	return s.invoiceSeq, nil
}

// Store management
func (s *Store) Migrate(_ context.Context) error {
	return nil // No migration needed for memory store
}

func (s *Store) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ledger.ErrStoreClosed
	}
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

// Helper functions
func cloneClient(c *client.Client) *client.Client {
	cp := *c
	cp.Metadata = cloneMeta(c.Metadata)
	return &cp
}

func cloneProject(p *project.Project) *project.Project {
	cp := *p
	if p.HourlyRate != nil {
		rate := *p.HourlyRate
		cp.HourlyRate = &rate
	}
	if p.Deadline != nil {
		d := *p.Deadline
		cp.Deadline = &d
	}
	cp.Metadata = cloneMeta(p.Metadata)
	return &cp
}

func cloneEntry(e *timesheet.Entry) *timesheet.Entry {
	cp := *e
	if e.StartTime != nil {
		t := *e.StartTime
		cp.StartTime = &t
	}
	if e.EndTime != nil {
		t := *e.EndTime
		cp.EndTime = &t
	}
	cp.Metadata = cloneMeta(e.Metadata)
	return &cp
}

func cloneInvoice(inv *invoice.Invoice) *invoice.Invoice {
	cp := *inv
	if len(inv.LineItems) > 0 {
		cp.LineItems = append([]invoice.LineItem(nil), inv.LineItems...)
	}
	if inv.SentAt != nil {
		t := *inv.SentAt
		cp.SentAt = &t
	}
	if inv.PaidAt != nil {
		t := *inv.PaidAt
		cp.PaidAt = &t
	}
	cp.Metadata = cloneMeta(inv.Metadata)
	return &cp
}

func cloneMeta(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func paginate[T any](items []T, offset, limit int) []T {
	start := offset
	if start > len(items) {
		start = len(items)
	}
	end := start + limit
	if limit == 0 || end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
