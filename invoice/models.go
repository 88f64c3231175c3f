package invoice

import (
	"time"

	"github.com/worksite/ledger/id"
	"github.com/worksite/ledger/types"
)

type Status string

const (
	StatusDraft Status = "draft"
	StatusSent  Status = "sent"
	StatusPaid  Status = "paid"

	// StatusOverdue is derived, never stored: a sent invoice past its
	// due date. See EffectiveStatus.
	StatusOverdue Status = "overdue"
)

// Invoice is an immutable billing snapshot over a set of timesheet
// entries. Line items never change after creation; only Status and
// Notes may be updated.
type Invoice struct {
	types.Entity
	ID         id.InvoiceID      `json:"id"`
	ClientID   id.ClientID       `json:"client_id"`
	ClientName string            `json:"client_name"`
	Number     string            `json:"number"`
	Sequence   int64             `json:"sequence"`
	Status     Status            `json:"status"`
	Currency   string            `json:"currency"`
	IssueDate  time.Time         `json:"issue_date"`
	DueDate    time.Time         `json:"due_date"`
	LineItems  []LineItem        `json:"line_items"`
	Total      types.Money       `json:"total"`
	Notes      string            `json:"notes,omitempty"`
	SentAt     *time.Time        `json:"sent_at,omitempty"`
	PaidAt     *time.Time        `json:"paid_at,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// LineItem is a frozen copy of one timesheet entry at invoicing time.
type LineItem struct {
	ID          id.LineItemID `json:"id"`
	InvoiceID   id.InvoiceID  `json:"invoice_id"`
	EntryID     id.EntryID    `json:"entry_id"`
	Description string        `json:"description"`
	Hours       types.Hours   `json:"hours"`
	Rate        types.Money   `json:"rate"`
	Amount      types.Money   `json:"amount"`
}

// EntryIDs returns the timesheet entries this invoice bills.
func (inv *Invoice) EntryIDs() []id.EntryID {
	ids := make([]id.EntryID, 0, len(inv.LineItems))
	for i := range inv.LineItems {
		ids = append(ids, inv.LineItems[i].EntryID)
	}
	return ids
}

// OverdueAt reports whether the invoice is overdue at the given time:
// sent, unpaid, and past its due date.
func (inv *Invoice) OverdueAt(now time.Time) bool {
	return inv.Status == StatusSent && now.After(inv.DueDate)
}

// EffectiveStatus returns the display status at the given time. Stored
// status is never "overdue"; it is computed here from the due date.
func (inv *Invoice) EffectiveStatus(now time.Time) Status {
	if inv.OverdueAt(now) {
		return StatusOverdue
	}
	return inv.Status
}

// CanTransition reports whether the stored status may move to next.
// The machine is strictly forward: draft → sent → paid.
func (inv *Invoice) CanTransition(next Status) bool {
	switch inv.Status {
	case StatusDraft:
		return next == StatusSent
	case StatusSent:
		return next == StatusPaid
	default:
		return false
	}
}
