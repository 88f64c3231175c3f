package invoice

import (
	"context"
	"time"

	"github.com/worksite/ledger/id"
)

type Store interface {
	Create(ctx context.Context, inv *Invoice) error
	Get(ctx context.Context, invID id.InvoiceID) (*Invoice, error)
	List(ctx context.Context, clientID id.ClientID, opts ListOpts) ([]*Invoice, error)
	Update(ctx context.Context, inv *Invoice) error
	Delete(ctx context.Context, invID id.InvoiceID) error
	CountByClient(ctx context.Context, clientID id.ClientID) (int64, error)
	// NextSequence atomically allocates the next value of the global
	// invoice counter. The counter is never reset, across years or
	// deletions, so allocated numbers are unique and increasing.
	NextSequence(ctx context.Context) (int64, error)
}

type ListOpts struct {
	Status Status
	Start  time.Time
	End    time.Time
	Limit  int
	Offset int
}
