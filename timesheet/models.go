package timesheet

import (
	"time"

	"github.com/worksite/ledger/id"
	"github.com/worksite/ledger/types"
)

// Entry is a single timesheet record: hours worked for a client,
// optionally against a project. ClientName and ProjectName are
// snapshots taken at logging time so that later renames do not rewrite
// history. Invoiced flips to true exactly once, when the entry is
// pulled onto an invoice, and back to false only if that invoice is
// deleted.
type Entry struct {
	types.Entity
	ID          id.EntryID        `json:"id"`
	ClientID    id.ClientID       `json:"client_id"`
	ClientName  string            `json:"client_name"`
	ProjectID   id.ProjectID      `json:"project_id,omitempty"`
	ProjectName string            `json:"project_name,omitempty"`
	Date        time.Time         `json:"date"`
	StartTime   *time.Time        `json:"start_time,omitempty"`
	EndTime     *time.Time        `json:"end_time,omitempty"`
	Hours       types.Hours       `json:"hours"`
	Rate        types.Money       `json:"rate"`
	Description string            `json:"description"`
	Invoiced    bool              `json:"invoiced"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Amount returns the billable value of this entry (hours at rate).
func (e *Entry) Amount() types.Money {
	return e.Hours.Cost(e.Rate)
}

// Patch describes a partial update to an entry. Nil fields are left
// unchanged.
type Patch struct {
	Date        *time.Time
	StartTime   *time.Time
	EndTime     *time.Time
	Hours       *types.Hours
	Rate        *types.Money
	Description *string
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Date == nil && p.StartTime == nil && p.EndTime == nil &&
		p.Hours == nil && p.Rate == nil && p.Description == nil
}
