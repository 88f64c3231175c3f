package ledger_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/worksite/ledger"
	"github.com/worksite/ledger/client"
	"github.com/worksite/ledger/id"
	"github.com/worksite/ledger/invoice"
	"github.com/worksite/ledger/project"
	"github.com/worksite/ledger/store/memory"
	"github.com/worksite/ledger/timesheet"
	"github.com/worksite/ledger/types"
)

func newTestLedger(t *testing.T, opts ...ledger.Option) *ledger.Ledger {
	t.Helper()
	l := ledger.New(memory.New(), opts...)
	if err := l.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() { _ = l.Stop() })
	return l
}

func seedClient(t *testing.T, l *ledger.Ledger, rate types.Money) *client.Client {
	t.Helper()
	c := &client.Client{Name: "Harbour Build Co", HourlyRate: rate}
	if err := l.CreateClient(context.Background(), c); err != nil {
		t.Fatalf("CreateClient: %v", err)
	}
	return c
}

func seedEntry(t *testing.T, l *ledger.Ledger, c *client.Client, hours float64, desc string) *timesheet.Entry {
	t.Helper()
	e := &timesheet.Entry{
		ClientID:    c.ID,
		Hours:       types.HoursFromFloat(hours),
		Description: desc,
	}
	if err := l.LogEntry(context.Background(), e); err != nil {
		t.Fatalf("LogEntry: %v", err)
	}
	return e
}

// ──────────────────────────────────────────────────
// Clients
// ──────────────────────────────────────────────────

func TestCreateClientDefaults(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	c := &client.Client{Name: "Westgate Renovations"}
	if err := l.CreateClient(ctx, c); err != nil {
		t.Fatalf("CreateClient: %v", err)
	}

	if c.Status != client.StatusActive {
		t.Errorf("Status: got %s, want %s", c.Status, client.StatusActive)
	}
	if !c.HourlyRate.Equal(types.NZD(8500)) {
		t.Errorf("HourlyRate: got %s, want default NZ$85.00", c.HourlyRate.String())
	}
	if !c.TotalBilled.IsZero() {
		t.Errorf("TotalBilled: got %s, want zero", c.TotalBilled.String())
	}
	if c.ID.IsNil() {
		t.Error("ID should be assigned")
	}

	got, err := l.GetClient(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetClient: %v", err)
	}
	if got.Name != c.Name {
		t.Errorf("Name: got %s, want %s", got.Name, c.Name)
	}
}

func TestCreateClientValidation(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	err := l.CreateClient(ctx, &client.Client{})
	if !ledger.IsValidation(err) {
		t.Errorf("empty name: got %v, want validation error", err)
	}

	err = l.CreateClient(ctx, &client.Client{Name: "x", Status: "archived"})
	if !ledger.IsValidation(err) {
		t.Errorf("unknown status: got %v, want validation error", err)
	}

	// A rate in a foreign currency would poison every aggregate read,
	// so it has to be caught here.
	err = l.CreateClient(ctx, &client.Client{Name: "x", HourlyRate: types.USD(10000)})
	if !ledger.IsValidation(err) {
		t.Errorf("foreign currency rate: got %v, want validation error", err)
	}
}

func TestUpdateClientPreservesTotalBilled(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	c := seedClient(t, l, types.NZD(9500))
	e := seedEntry(t, l, c, 2, "Framing")
	if _, err := l.CreateInvoice(ctx, c.ID, []id.EntryID{e.ID}, ""); err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}

	c.Name = "Harbour Build Limited"
	c.TotalBilled = types.NZD(1) // must be ignored
	if err := l.UpdateClient(ctx, c); err != nil {
		t.Fatalf("UpdateClient: %v", err)
	}

	got, err := l.GetClient(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetClient: %v", err)
	}
	if got.Name != "Harbour Build Limited" {
		t.Errorf("Name: got %s", got.Name)
	}
	if !got.TotalBilled.Equal(types.NZD(19000)) {
		t.Errorf("TotalBilled: got %s, want NZ$190.00", got.TotalBilled.String())
	}
}

func TestDeleteClient(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	t.Run("WithRecords", func(t *testing.T) {
		c := seedClient(t, l, types.NZD(9500))
		seedEntry(t, l, c, 1, "Site visit")

		if err := l.DeleteClient(ctx, c.ID); !errors.Is(err, ledger.ErrClientHasRecords) {
			t.Errorf("got %v, want ErrClientHasRecords", err)
		}
	})

	t.Run("Clean", func(t *testing.T) {
		c := seedClient(t, l, types.NZD(9500))
		if err := l.DeleteClient(ctx, c.ID); err != nil {
			t.Fatalf("DeleteClient: %v", err)
		}
		if _, err := l.GetClient(ctx, c.ID); !ledger.IsNotFound(err) {
			t.Errorf("got %v, want not found", err)
		}
	})
}

// ──────────────────────────────────────────────────
// Projects
// ──────────────────────────────────────────────────

func TestProjectLifecycle(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	c := seedClient(t, l, types.NZD(9500))

	t.Run("UnknownClient", func(t *testing.T) {
		p := &project.Project{ClientID: id.NewClientID(), Name: "Orphan"}
		if err := l.CreateProject(ctx, p); !errors.Is(err, ledger.ErrClientNotFound) {
			t.Errorf("got %v, want ErrClientNotFound", err)
		}
	})

	t.Run("ClampsProgress", func(t *testing.T) {
		p := &project.Project{ClientID: c.ID, Name: "Kitchen refit", Progress: 140}
		if err := l.CreateProject(ctx, p); err != nil {
			t.Fatalf("CreateProject: %v", err)
		}
		if p.Progress != 100 {
			t.Errorf("Progress: got %d, want 100", p.Progress)
		}
		if p.Status != project.StatusActive {
			t.Errorf("Status: got %s, want active", p.Status)
		}
	})

	t.Run("DeleteWithEntries", func(t *testing.T) {
		p := &project.Project{ClientID: c.ID, Name: "Deck extension"}
		if err := l.CreateProject(ctx, p); err != nil {
			t.Fatalf("CreateProject: %v", err)
		}
		e := &timesheet.Entry{
			ClientID:    c.ID,
			ProjectID:   p.ID,
			Hours:       types.HoursFromFloat(2),
			Description: "Piles",
		}
		if err := l.LogEntry(ctx, e); err != nil {
			t.Fatalf("LogEntry: %v", err)
		}

		if err := l.DeleteProject(ctx, p.ID); !errors.Is(err, ledger.ErrProjectHasEntries) {
			t.Errorf("got %v, want ErrProjectHasEntries", err)
		}

		if err := l.DeleteEntry(ctx, e.ID); err != nil {
			t.Fatalf("DeleteEntry: %v", err)
		}
		if err := l.DeleteProject(ctx, p.ID); err != nil {
			t.Errorf("DeleteProject after entries removed: %v", err)
		}
	})
}

// ──────────────────────────────────────────────────
// Timesheet
// ──────────────────────────────────────────────────

func TestLogEntryRateFallback(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	c := seedClient(t, l, types.NZD(9500))
	override := types.NZD(12000)
	p := &project.Project{ClientID: c.ID, Name: "Pool house", HourlyRate: &override}
	if err := l.CreateProject(ctx, p); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	plain := &project.Project{ClientID: c.ID, Name: "Fencing"}
	if err := l.CreateProject(ctx, plain); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	tests := []struct {
		name  string
		entry timesheet.Entry
		want  types.Money
	}{
		{"ExplicitRate", timesheet.Entry{Rate: types.NZD(20000)}, types.NZD(20000)},
		{"ProjectOverride", timesheet.Entry{ProjectID: p.ID}, types.NZD(12000)},
		{"ClientRate", timesheet.Entry{ProjectID: plain.ID}, types.NZD(9500)},
		{"ClientRateNoProject", timesheet.Entry{}, types.NZD(9500)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := tt.entry
			e.ClientID = c.ID
			e.Hours = types.HoursFromFloat(1)
			e.Description = "Work"
			if err := l.LogEntry(ctx, &e); err != nil {
				t.Fatalf("LogEntry: %v", err)
			}
			if !e.Rate.Equal(tt.want) {
				t.Errorf("Rate: got %s, want %s", e.Rate.String(), tt.want.String())
			}
		})
	}
}

func TestLogEntryHoursFromTimes(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	c := seedClient(t, l, types.NZD(9000))

	start := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)
	e := &timesheet.Entry{
		ClientID:    c.ID,
		StartTime:   &start,
		EndTime:     &end,
		Description: "Morning pour",
	}
	if err := l.LogEntry(ctx, e); err != nil {
		t.Fatalf("LogEntry: %v", err)
	}

	if e.Hours != types.HoursFromFloat(1.5) {
		t.Errorf("Hours: got %s, want 1.50", e.Hours.String())
	}
	if !e.Amount().Equal(types.NZD(13500)) {
		t.Errorf("Amount: got %s, want NZ$135.00", e.Amount().String())
	}
	if e.Date.IsZero() {
		t.Error("Date should default to now")
	}
}

func TestLogEntryValidation(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	c := seedClient(t, l, types.NZD(9500))

	t.Run("ZeroHours", func(t *testing.T) {
		err := l.LogEntry(ctx, &timesheet.Entry{ClientID: c.ID, Description: "x"})
		if !ledger.IsValidation(err) {
			t.Errorf("got %v, want validation error", err)
		}
	})

	t.Run("EmptyDescription", func(t *testing.T) {
		err := l.LogEntry(ctx, &timesheet.Entry{ClientID: c.ID, Hours: types.HoursFromFloat(1)})
		if !ledger.IsValidation(err) {
			t.Errorf("got %v, want validation error", err)
		}
	})

	t.Run("RateCurrencyMismatch", func(t *testing.T) {
		err := l.LogEntry(ctx, &timesheet.Entry{
			ClientID:    c.ID,
			Hours:       types.HoursFromFloat(1),
			Rate:        types.USD(10000),
			Description: "x",
		})
		if !ledger.IsValidation(err) {
			t.Errorf("got %v, want validation error", err)
		}
	})

	t.Run("ProjectRateCurrencyMismatch", func(t *testing.T) {
		override := types.USD(12000)
		p := &project.Project{ClientID: c.ID, Name: "Offshore", HourlyRate: &override}
		if err := l.CreateProject(ctx, p); !ledger.IsValidation(err) {
			t.Errorf("got %v, want validation error", err)
		}
	})

	t.Run("ProjectOfOtherClient", func(t *testing.T) {
		other := seedClient(t, l, types.NZD(8000))
		p := &project.Project{ClientID: other.ID, Name: "Elsewhere"}
		if err := l.CreateProject(ctx, p); err != nil {
			t.Fatalf("CreateProject: %v", err)
		}
		err := l.LogEntry(ctx, &timesheet.Entry{
			ClientID:    c.ID,
			ProjectID:   p.ID,
			Hours:       types.HoursFromFloat(1),
			Description: "x",
		})
		if !errors.Is(err, ledger.ErrWrongClient) {
			t.Errorf("got %v, want ErrWrongClient", err)
		}
	})
}

func TestUpdateEntry(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	c := seedClient(t, l, types.NZD(9500))

	t.Run("PatchFields", func(t *testing.T) {
		e := seedEntry(t, l, c, 2, "Framing")

		hours := types.HoursFromFloat(3)
		desc := "Framing and bracing"
		got, err := l.UpdateEntry(ctx, e.ID, timesheet.Patch{Hours: &hours, Description: &desc})
		if err != nil {
			t.Fatalf("UpdateEntry: %v", err)
		}
		if got.Hours != hours || got.Description != desc {
			t.Errorf("got %s %q", got.Hours.String(), got.Description)
		}
	})

	t.Run("RecomputesHoursFromTimes", func(t *testing.T) {
		start := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
		end := start.Add(time.Hour)
		e := &timesheet.Entry{ClientID: c.ID, StartTime: &start, EndTime: &end, Description: "Pour"}
		if err := l.LogEntry(ctx, e); err != nil {
			t.Fatalf("LogEntry: %v", err)
		}

		laterEnd := start.Add(2 * time.Hour)
		got, err := l.UpdateEntry(ctx, e.ID, timesheet.Patch{EndTime: &laterEnd})
		if err != nil {
			t.Fatalf("UpdateEntry: %v", err)
		}
		if got.Hours != types.HoursFromFloat(2) {
			t.Errorf("Hours: got %s, want 2.00", got.Hours.String())
		}
	})

	t.Run("RejectedPatchChangesNothing", func(t *testing.T) {
		cl := seedClient(t, l, types.NZD(9000))
		e := seedEntry(t, l, cl, 4, "Roofing")

		zero := types.Hours(0)
		if _, err := l.UpdateEntry(ctx, e.ID, timesheet.Patch{Hours: &zero}); !ledger.IsValidation(err) {
			t.Fatalf("got %v, want validation error", err)
		}

		got, err := l.GetEntry(ctx, e.ID)
		if err != nil {
			t.Fatalf("GetEntry: %v", err)
		}
		if got.Hours != types.HoursFromFloat(4) {
			t.Errorf("Hours after rejected patch: got %s, want 4.00", got.Hours.String())
		}

		hours, err := l.UnbilledHours(ctx, cl.ID)
		if err != nil {
			t.Fatalf("UnbilledHours: %v", err)
		}
		if hours != types.HoursFromFloat(4) {
			t.Errorf("UnbilledHours after rejected patch: got %s, want 4.00", hours.String())
		}
	})

	t.Run("BilledIsImmutable", func(t *testing.T) {
		e := seedEntry(t, l, c, 1, "Cladding")
		if _, err := l.CreateInvoice(ctx, c.ID, []id.EntryID{e.ID}, ""); err != nil {
			t.Fatalf("CreateInvoice: %v", err)
		}

		desc := "rewritten"
		if _, err := l.UpdateEntry(ctx, e.ID, timesheet.Patch{Description: &desc}); !errors.Is(err, ledger.ErrEntryBilled) {
			t.Errorf("UpdateEntry: got %v, want ErrEntryBilled", err)
		}
		if err := l.DeleteEntry(ctx, e.ID); !errors.Is(err, ledger.ErrEntryBilled) {
			t.Errorf("DeleteEntry: got %v, want ErrEntryBilled", err)
		}
	})
}

func TestUnbilledAggregates(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	c := seedClient(t, l, types.NZD(9000))

	e1 := seedEntry(t, l, c, 2, "Footings")
	seedEntry(t, l, c, 1.5, "Boxing")

	hours, err := l.UnbilledHours(ctx, c.ID)
	if err != nil {
		t.Fatalf("UnbilledHours: %v", err)
	}
	if hours != types.HoursFromFloat(3.5) {
		t.Errorf("UnbilledHours: got %s, want 3.50", hours.String())
	}

	amount, err := l.UnbilledAmount(ctx, c.ID)
	if err != nil {
		t.Fatalf("UnbilledAmount: %v", err)
	}
	if !amount.Equal(types.NZD(31500)) {
		t.Errorf("UnbilledAmount: got %s, want NZ$315.00", amount.String())
	}

	// Reads with no mutation in between return the same answers.
	hoursAgain, err := l.UnbilledHours(ctx, c.ID)
	if err != nil {
		t.Fatalf("UnbilledHours: %v", err)
	}
	if hoursAgain != hours {
		t.Errorf("UnbilledHours changed between reads: %s then %s", hours.String(), hoursAgain.String())
	}
	amountAgain, err := l.UnbilledAmount(ctx, c.ID)
	if err != nil {
		t.Fatalf("UnbilledAmount: %v", err)
	}
	if !amountAgain.Equal(amount) {
		t.Errorf("UnbilledAmount changed between reads: %s then %s", amount.String(), amountAgain.String())
	}

	// Billing one entry removes exactly its share from the pool.
	if _, err := l.CreateInvoice(ctx, c.ID, []id.EntryID{e1.ID}, ""); err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}

	amount, err = l.UnbilledAmount(ctx, c.ID)
	if err != nil {
		t.Fatalf("UnbilledAmount: %v", err)
	}
	if !amount.Equal(types.NZD(13500)) {
		t.Errorf("UnbilledAmount after invoicing: got %s, want NZ$135.00", amount.String())
	}

	unbilled, err := l.UnbilledEntries(ctx, c.ID)
	if err != nil {
		t.Fatalf("UnbilledEntries: %v", err)
	}
	if len(unbilled) != 1 {
		t.Fatalf("UnbilledEntries: got %d, want 1", len(unbilled))
	}

	all, err := l.ClientEntries(ctx, c.ID)
	if err != nil {
		t.Fatalf("ClientEntries: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("ClientEntries: got %d, want 2", len(all))
	}
}

// ──────────────────────────────────────────────────
// Invoicing
// ──────────────────────────────────────────────────

func TestCreateInvoice(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	c := seedClient(t, l, types.NZD(9500))

	e1 := seedEntry(t, l, c, 3.5, "Deck framing")
	e2 := seedEntry(t, l, c, 2, "Balustrade")

	inv, err := l.CreateInvoice(ctx, c.ID, []id.EntryID{e1.ID, e2.ID}, "March work")
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}

	if len(inv.LineItems) != 2 {
		t.Fatalf("LineItems: got %d, want 2", len(inv.LineItems))
	}

	// Total must equal the sum of line items to the cent.
	sum := types.Zero(inv.Currency)
	for _, li := range inv.LineItems {
		if !li.Amount.Equal(li.Hours.Cost(li.Rate)) {
			t.Errorf("line %s: amount %s != %s at %s", li.EntryID, li.Amount.String(), li.Hours.String(), li.Rate.String())
		}
		sum = sum.Add(li.Amount)
	}
	if !inv.Total.Equal(sum) {
		t.Errorf("Total: got %s, want %s", inv.Total.String(), sum.String())
	}
	if !inv.Total.Equal(types.NZD(52250)) {
		t.Errorf("Total: got %s, want NZ$522.50", inv.Total.String())
	}

	if inv.Status != invoice.StatusDraft {
		t.Errorf("Status: got %s, want draft", inv.Status)
	}
	if inv.Notes != "March work" {
		t.Errorf("Notes: got %q", inv.Notes)
	}
	if want := inv.IssueDate.Add(14 * 24 * time.Hour); !inv.DueDate.Equal(want) {
		t.Errorf("DueDate: got %v, want %v", inv.DueDate, want)
	}

	// Entries are flagged and the client's running total moves.
	for _, eid := range []id.EntryID{e1.ID, e2.ID} {
		got, err := l.GetEntry(ctx, eid)
		if err != nil {
			t.Fatalf("GetEntry: %v", err)
		}
		if !got.Invoiced {
			t.Errorf("entry %s not marked invoiced", eid)
		}
	}
	cl, err := l.GetClient(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetClient: %v", err)
	}
	if !cl.TotalBilled.Equal(inv.Total) {
		t.Errorf("TotalBilled: got %s, want %s", cl.TotalBilled.String(), inv.Total.String())
	}
}

func TestCreateInvoiceRejections(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	c := seedClient(t, l, types.NZD(9500))
	other := seedClient(t, l, types.NZD(8000))

	mine := seedEntry(t, l, c, 1, "Mine")
	theirs := seedEntry(t, l, other, 1, "Theirs")

	billed := seedEntry(t, l, c, 1, "Billed")
	if _, err := l.CreateInvoice(ctx, c.ID, []id.EntryID{billed.ID}, ""); err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}

	tests := []struct {
		name    string
		entries []id.EntryID
		want    error
	}{
		{"Empty", nil, ledger.ErrNoEntries},
		{"Duplicate", []id.EntryID{mine.ID, mine.ID}, ledger.ErrDuplicateEntry},
		{"WrongClient", []id.EntryID{theirs.ID}, ledger.ErrWrongClient},
		{"AlreadyBilled", []id.EntryID{billed.ID}, ledger.ErrEntryBilled},
		{"Unknown", []id.EntryID{id.NewEntryID()}, ledger.ErrEntryNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := l.CreateInvoice(ctx, c.ID, tt.entries, ""); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCreateInvoiceAllOrNothing(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	c := seedClient(t, l, types.NZD(9500))

	good := seedEntry(t, l, c, 2, "Good")
	billed := seedEntry(t, l, c, 1, "Billed")
	first, err := l.CreateInvoice(ctx, c.ID, []id.EntryID{billed.ID}, "")
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}

	// One bad entry in the set must leave everything untouched.
	if _, err := l.CreateInvoice(ctx, c.ID, []id.EntryID{good.ID, billed.ID}, ""); !errors.Is(err, ledger.ErrEntryBilled) {
		t.Fatalf("got %v, want ErrEntryBilled", err)
	}

	got, err := l.GetEntry(ctx, good.ID)
	if err != nil {
		t.Fatalf("GetEntry: %v", err)
	}
	if got.Invoiced {
		t.Error("good entry was flagged by a failed invoice")
	}

	cl, err := l.GetClient(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetClient: %v", err)
	}
	if !cl.TotalBilled.Equal(first.Total) {
		t.Errorf("TotalBilled: got %s, want %s", cl.TotalBilled.String(), first.Total.String())
	}

	invoices, err := l.ListInvoices(ctx, c.ID, invoice.ListOpts{})
	if err != nil {
		t.Fatalf("ListInvoices: %v", err)
	}
	if len(invoices) != 1 {
		t.Errorf("invoices: got %d, want 1", len(invoices))
	}
}

func TestInvoiceNumbering(t *testing.T) {
	l := newTestLedger(t, ledger.WithInvoicePrefix("WS"))
	ctx := context.Background()
	c := seedClient(t, l, types.NZD(9500))

	var invoices []*invoice.Invoice
	for i := 0; i < 3; i++ {
		e := seedEntry(t, l, c, 1, "Work")
		inv, err := l.CreateInvoice(ctx, c.ID, []id.EntryID{e.ID}, "")
		if err != nil {
			t.Fatalf("CreateInvoice: %v", err)
		}
		invoices = append(invoices, inv)
	}

	seen := make(map[string]bool)
	for i, inv := range invoices {
		if seen[inv.Number] {
			t.Errorf("duplicate number %s", inv.Number)
		}
		seen[inv.Number] = true

		if inv.Sequence != int64(i+1) {
			t.Errorf("Sequence: got %d, want %d", inv.Sequence, i+1)
		}
	}

	if want := fmt.Sprintf("WS-%d-0001", time.Now().UTC().Year()); invoices[0].Number != want {
		t.Errorf("Number: got %s, want %s", invoices[0].Number, want)
	}

	// Deleting an invoice never frees its sequence for reuse.
	if err := l.DeleteInvoice(ctx, invoices[2].ID); err != nil {
		t.Fatalf("DeleteInvoice: %v", err)
	}
	e := seedEntry(t, l, c, 1, "More work")
	inv, err := l.CreateInvoice(ctx, c.ID, []id.EntryID{e.ID}, "")
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	if inv.Sequence != 4 {
		t.Errorf("Sequence after delete: got %d, want 4", inv.Sequence)
	}
}

func TestInvoiceStatusMachine(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	c := seedClient(t, l, types.NZD(9500))
	e := seedEntry(t, l, c, 1, "Work")
	inv, err := l.CreateInvoice(ctx, c.ID, []id.EntryID{e.ID}, "")
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}

	// Paid before sent is not a legal move.
	if err := l.MarkInvoicePaid(ctx, inv.ID); !errors.Is(err, ledger.ErrInvalidTransition) {
		t.Errorf("paid from draft: got %v, want ErrInvalidTransition", err)
	}

	if err := l.MarkInvoiceSent(ctx, inv.ID); err != nil {
		t.Fatalf("MarkInvoiceSent: %v", err)
	}
	got, err := l.GetInvoice(ctx, inv.ID)
	if err != nil {
		t.Fatalf("GetInvoice: %v", err)
	}
	if got.Status != invoice.StatusSent || got.SentAt == nil {
		t.Errorf("after send: status %s, SentAt %v", got.Status, got.SentAt)
	}

	// Sending twice is rejected.
	if err := l.MarkInvoiceSent(ctx, inv.ID); !errors.Is(err, ledger.ErrInvalidTransition) {
		t.Errorf("double send: got %v, want ErrInvalidTransition", err)
	}

	if err := l.MarkInvoicePaid(ctx, inv.ID); err != nil {
		t.Fatalf("MarkInvoicePaid: %v", err)
	}
	got, err = l.GetInvoice(ctx, inv.ID)
	if err != nil {
		t.Fatalf("GetInvoice: %v", err)
	}
	if got.Status != invoice.StatusPaid || got.PaidAt == nil {
		t.Errorf("after pay: status %s, PaidAt %v", got.Status, got.PaidAt)
	}

	// Paid is terminal.
	if err := l.MarkInvoiceSent(ctx, inv.ID); !errors.Is(err, ledger.ErrInvalidTransition) {
		t.Errorf("send after paid: got %v, want ErrInvalidTransition", err)
	}
}

func TestInvoiceOverdue(t *testing.T) {
	// Negative payment terms put the due date in the past immediately.
	l := newTestLedger(t, ledger.WithPaymentTerms(-time.Hour))
	ctx := context.Background()
	c := seedClient(t, l, types.NZD(9500))
	e := seedEntry(t, l, c, 1, "Work")
	inv, err := l.CreateInvoice(ctx, c.ID, []id.EntryID{e.ID}, "")
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}

	now := time.Now().UTC()

	// Draft invoices are never overdue, no matter the due date.
	if inv.OverdueAt(now) {
		t.Error("draft invoice reported overdue")
	}
	if got := inv.EffectiveStatus(now); got != invoice.StatusDraft {
		t.Errorf("EffectiveStatus: got %s, want draft", got)
	}

	if err := l.MarkInvoiceSent(ctx, inv.ID); err != nil {
		t.Fatalf("MarkInvoiceSent: %v", err)
	}
	got, err := l.GetInvoice(ctx, inv.ID)
	if err != nil {
		t.Fatalf("GetInvoice: %v", err)
	}
	if !got.OverdueAt(now) {
		t.Error("sent invoice past due date not overdue")
	}
	if s := got.EffectiveStatus(now); s != invoice.StatusOverdue {
		t.Errorf("EffectiveStatus: got %s, want overdue", s)
	}
	if got.Status == invoice.StatusOverdue {
		t.Error("overdue must never be the stored status")
	}
}

func TestDeleteInvoice(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	c := seedClient(t, l, types.NZD(9500))

	t.Run("ReleasesEntries", func(t *testing.T) {
		e := seedEntry(t, l, c, 2, "Work")
		inv, err := l.CreateInvoice(ctx, c.ID, []id.EntryID{e.ID}, "")
		if err != nil {
			t.Fatalf("CreateInvoice: %v", err)
		}

		before, err := l.GetClient(ctx, c.ID)
		if err != nil {
			t.Fatalf("GetClient: %v", err)
		}

		if err := l.DeleteInvoice(ctx, inv.ID); err != nil {
			t.Fatalf("DeleteInvoice: %v", err)
		}

		got, err := l.GetEntry(ctx, e.ID)
		if err != nil {
			t.Fatalf("GetEntry: %v", err)
		}
		if got.Invoiced {
			t.Error("entry still flagged after invoice deletion")
		}

		after, err := l.GetClient(ctx, c.ID)
		if err != nil {
			t.Fatalf("GetClient: %v", err)
		}
		if !after.TotalBilled.Equal(before.TotalBilled.Subtract(inv.Total)) {
			t.Errorf("TotalBilled: got %s", after.TotalBilled.String())
		}

		// The released entry can go on a fresh invoice.
		if _, err := l.CreateInvoice(ctx, c.ID, []id.EntryID{e.ID}, ""); err != nil {
			t.Errorf("re-invoice released entry: %v", err)
		}
	})

	t.Run("PaidIsPermanent", func(t *testing.T) {
		e := seedEntry(t, l, c, 1, "Work")
		inv, err := l.CreateInvoice(ctx, c.ID, []id.EntryID{e.ID}, "")
		if err != nil {
			t.Fatalf("CreateInvoice: %v", err)
		}
		if err := l.MarkInvoiceSent(ctx, inv.ID); err != nil {
			t.Fatalf("MarkInvoiceSent: %v", err)
		}
		if err := l.MarkInvoicePaid(ctx, inv.ID); err != nil {
			t.Fatalf("MarkInvoicePaid: %v", err)
		}

		if err := l.DeleteInvoice(ctx, inv.ID); !errors.Is(err, ledger.ErrInvoicePaid) {
			t.Errorf("got %v, want ErrInvoicePaid", err)
		}
	})
}

func TestUpdateInvoiceNotes(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	c := seedClient(t, l, types.NZD(9500))
	e := seedEntry(t, l, c, 1, "Work")
	inv, err := l.CreateInvoice(ctx, c.ID, []id.EntryID{e.ID}, "first")
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}

	if err := l.UpdateInvoiceNotes(ctx, inv.ID, "second"); err != nil {
		t.Fatalf("UpdateInvoiceNotes: %v", err)
	}

	got, err := l.GetInvoice(ctx, inv.ID)
	if err != nil {
		t.Fatalf("GetInvoice: %v", err)
	}
	if got.Notes != "second" {
		t.Errorf("Notes: got %q, want %q", got.Notes, "second")
	}
	if !got.Total.Equal(inv.Total) || len(got.LineItems) != len(inv.LineItems) {
		t.Error("line items or total changed by a notes update")
	}
}
