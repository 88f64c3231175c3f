package client

import (
	"github.com/worksite/ledger/id"
	"github.com/worksite/ledger/types"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Client is a billing client. TotalBilled is maintained by the ledger:
// invoice creation adds to it, invoice deletion subtracts from it.
type Client struct {
	types.Entity
	ID          id.ClientID       `json:"id"`
	Name        string            `json:"name"`
	Email       string            `json:"email,omitempty"`
	Phone       string            `json:"phone,omitempty"`
	Address     string            `json:"address,omitempty"`
	Status      Status            `json:"status"`
	HourlyRate  types.Money       `json:"hourly_rate"`
	TotalBilled types.Money       `json:"total_billed"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusPending, StatusCompleted:
		return true
	}
	return false
}
