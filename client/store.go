package client

import (
	"context"

	"github.com/worksite/ledger/id"
)

type Store interface {
	Create(ctx context.Context, c *Client) error
	Get(ctx context.Context, clientID id.ClientID) (*Client, error)
	List(ctx context.Context, opts ListOpts) ([]*Client, error)
	Update(ctx context.Context, c *Client) error
	Delete(ctx context.Context, clientID id.ClientID) error
}

type ListOpts struct {
	Status Status
	Limit  int
	Offset int
}
