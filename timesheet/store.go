package timesheet

import (
	"context"
	"time"

	"github.com/worksite/ledger/id"
)

type Store interface {
	Create(ctx context.Context, e *Entry) error
	Get(ctx context.Context, entryID id.EntryID) (*Entry, error)
	List(ctx context.Context, clientID id.ClientID, opts ListOpts) ([]*Entry, error)
	Update(ctx context.Context, e *Entry) error
	Delete(ctx context.Context, entryID id.EntryID) error
	// SetInvoiced flips the invoiced flag on every listed entry.
	// Implementations apply the change to all entries or none.
	SetInvoiced(ctx context.Context, entryIDs []id.EntryID, invoiced bool) error
	CountByClient(ctx context.Context, clientID id.ClientID) (int64, error)
	CountByProject(ctx context.Context, projectID id.ProjectID) (int64, error)
}

type ListOpts struct {
	UnbilledOnly bool
	ProjectID    id.ProjectID
	Start        time.Time
	End          time.Time
	Limit        int
	Offset       int
}
