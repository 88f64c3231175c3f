package ledger_test

import (
	"context"
	"log"
	"log/slog"
	"testing"
	"time"

	"github.com/worksite/ledger"
	"github.com/worksite/ledger/client"
	"github.com/worksite/ledger/store/memory"
	"github.com/worksite/ledger/timesheet"
	"github.com/worksite/ledger/types"
)

// TestDocumentationExamples verifies that all examples in the documentation compile
func TestDocumentationExamples(t *testing.T) {
	// Test Quick Start example from README
	t.Run("QuickStartExample", func(t *testing.T) {
		// Create store (memory for demo, use SQLite or PostgreSQL in production)
		store := memory.New()

		// Initialize Ledger
		l := ledger.New(store,
			ledger.WithLogger(slog.Default()),
			ledger.WithDefaultHourlyRate(types.NZD(8500)),
			ledger.WithPaymentTerms(14*24*time.Hour),
		)

		// Start the engine
		ctx := context.Background()
		if err := l.Start(ctx); err != nil {
			t.Fatal(err)
		}
		defer l.Stop()

		// Create a client
		c := &client.Client{
			Name:       "Harbour Build Co",
			Email:      "accounts@harbourbuild.example",
			HourlyRate: types.NZD(9500), // NZ$95.00/h
		}
		if err := l.CreateClient(ctx, c); err != nil {
			t.Fatal(err)
		}

		// Log some work
		e := &timesheet.Entry{
			ClientID:    c.ID,
			Hours:       types.HoursFromFloat(3.5),
			Description: "Deck framing",
		}
		if err := l.LogEntry(ctx, e); err != nil {
			t.Fatal(err)
		}

		// Check what's waiting to be billed
		unbilled, err := l.UnbilledAmount(ctx, c.ID)
		if err != nil {
			t.Fatal(err)
		}
		log.Printf("Unbilled: %s\n", unbilled.String())

		// Turn the unbilled entries into an invoice
		inv, err := l.CreateInvoice(ctx, c.ID, []ledger.ID{e.ID}, "")
		if err != nil {
			t.Fatal(err)
		}
		log.Printf("Invoice %s issued for %s\n", inv.Number, inv.Total.String())

		if inv.Total.Amount != 33250 { // 3.5h at NZ$95.00
			t.Errorf("expected NZ$332.50, got %s", inv.Total.String())
		}
	})

	// Test Money type examples
	t.Run("MoneyExamples", func(t *testing.T) {
		// Constructors
		_ = types.NZD(9500)   // NZ$95.00
		_ = types.USD(4900)   // $49.00
		_ = types.Zero("nzd") // NZ$0.00

		// Arithmetic
		m1 := types.NZD(100)
		m2 := types.NZD(200)
		_ = m1.Add(m2)     // NZ$3.00
		_ = m1.Multiply(3) // NZ$3.00
		_ = m1.Divide(2)   // NZ$0.50

		// Comparison
		if m1.LessThan(m2) {
			// m1 is less than m2
		}

		// Formatting
		_ = m1.String()      // "NZ$1.00"
		_ = m1.FormatMajor() // "1.00"
	})

	// Test Hours type examples
	t.Run("HoursExamples", func(t *testing.T) {
		// Constructors
		h := types.HoursFromFloat(7.5)
		_ = types.HoursFromDuration(90 * time.Minute) // 1.50h

		// Hours times rate, exact to the cent
		cost := h.Cost(types.NZD(9000)) // 7.5h at NZ$90.00
		if cost.Amount != 67500 {
			t.Errorf("expected 67500 cents, got %d", cost.Amount)
		}

		// Formatting
		_ = h.String() // "7.50"
	})
}
