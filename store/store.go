// Package store defines the unified storage interface backing a Ledger.
package store

import (
	"context"

	"github.com/worksite/ledger/client"
	"github.com/worksite/ledger/id"
	"github.com/worksite/ledger/invoice"
	"github.com/worksite/ledger/project"
	"github.com/worksite/ledger/timesheet"
)

// Store is the unified storage interface for all Ledger entities.
// Instead of embedding the sub-interfaces, we explicitly declare all methods
// to avoid naming conflicts.
type Store interface {
	// Client methods
	CreateClient(ctx context.Context, c *client.Client) error
	GetClient(ctx context.Context, clientID id.ClientID) (*client.Client, error)
	ListClients(ctx context.Context, opts client.ListOpts) ([]*client.Client, error)
	UpdateClient(ctx context.Context, c *client.Client) error
	DeleteClient(ctx context.Context, clientID id.ClientID) error

	// Project methods
	CreateProject(ctx context.Context, p *project.Project) error
	GetProject(ctx context.Context, projectID id.ProjectID) (*project.Project, error)
	ListProjects(ctx context.Context, clientID id.ClientID, opts project.ListOpts) ([]*project.Project, error)
	UpdateProject(ctx context.Context, p *project.Project) error
	DeleteProject(ctx context.Context, projectID id.ProjectID) error
	CountProjectsByClient(ctx context.Context, clientID id.ClientID) (int64, error)

	// Timesheet methods
	CreateEntry(ctx context.Context, e *timesheet.Entry) error
	GetEntry(ctx context.Context, entryID id.EntryID) (*timesheet.Entry, error)
	ListEntries(ctx context.Context, clientID id.ClientID, opts timesheet.ListOpts) ([]*timesheet.Entry, error)
	UpdateEntry(ctx context.Context, e *timesheet.Entry) error
	DeleteEntry(ctx context.Context, entryID id.EntryID) error
	SetEntriesInvoiced(ctx context.Context, entryIDs []id.EntryID, invoiced bool) error
	CountEntriesByClient(ctx context.Context, clientID id.ClientID) (int64, error)
	CountEntriesByProject(ctx context.Context, projectID id.ProjectID) (int64, error)

	// Invoice methods
	CreateInvoice(ctx context.Context, inv *invoice.Invoice) error
	GetInvoice(ctx context.Context, invID id.InvoiceID) (*invoice.Invoice, error)
	ListInvoices(ctx context.Context, clientID id.ClientID, opts invoice.ListOpts) ([]*invoice.Invoice, error)
	UpdateInvoice(ctx context.Context, inv *invoice.Invoice) error
	DeleteInvoice(ctx context.Context, invID id.InvoiceID) error
	CountInvoicesByClient(ctx context.Context, clientID id.ClientID) (int64, error)
	NextInvoiceSequence(ctx context.Context) (int64, error)

	// Core methods
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
