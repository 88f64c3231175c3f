package project

import (
	"time"

	"github.com/worksite/ledger/id"
	"github.com/worksite/ledger/types"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusPending   Status = "pending"
	StatusOnHold    Status = "on_hold"
	StatusCompleted Status = "completed"
)

// Project is a job site or engagement belonging to a client.
// HourlyRate, when set, overrides the client's rate for time logged
// against this project.
type Project struct {
	types.Entity
	ID         id.ProjectID      `json:"id"`
	ClientID   id.ClientID       `json:"client_id"`
	Name       string            `json:"name"`
	Location   string            `json:"location,omitempty"`
	Status     Status            `json:"status"`
	Progress   int               `json:"progress"` // 0-100
	Deadline   *time.Time        `json:"deadline,omitempty"`
	HourlyRate *types.Money      `json:"hourly_rate,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusPending, StatusOnHold, StatusCompleted:
		return true
	}
	return false
}

// ClampProgress bounds a progress value into the 0-100 range.
func ClampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
