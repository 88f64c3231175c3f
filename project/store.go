package project

import (
	"context"

	"github.com/worksite/ledger/id"
)

type Store interface {
	Create(ctx context.Context, p *Project) error
	Get(ctx context.Context, projectID id.ProjectID) (*Project, error)
	List(ctx context.Context, clientID id.ClientID, opts ListOpts) ([]*Project, error)
	Update(ctx context.Context, p *Project) error
	Delete(ctx context.Context, projectID id.ProjectID) error
	CountByClient(ctx context.Context, clientID id.ClientID) (int64, error)
}

type ListOpts struct {
	Status Status
	Limit  int
	Offset int
}
