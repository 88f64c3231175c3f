// Package ledger provides an embeddable job-billing engine for Go applications.
//
// Ledger is designed as a library, not a service. Import it directly into your
// Go application to track clients, projects, and timesheet entries, and to turn
// unbilled hours into invoices with strict reconciliation guarantees:
//
//   - No double-billing: an entry appears on at most one invoice, ever
//   - Invoice totals always equal the sum of their line items
//   - Unbilled aggregates stay consistent with entry state
//   - Invoice numbers are unique and strictly increasing
//   - Invoice creation is all-or-nothing: one bad entry fails the whole call
//
// # Quick Start
//
// Create a ledger instance with your preferred store:
//
//	import (
//	    "github.com/worksite/ledger"
//	    "github.com/worksite/ledger/store/sqlite"
//	)
//
//	// db is a *grove.DB opened with the sqlite driver
//	store := sqlite.New(db)
//
//	// Create ledger
//	l := ledger.New(store)
//
//	// Start the ledger (runs migrations, initializes plugins)
//	if err := l.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer l.Stop()
//
// # Core Concepts
//
// Clients carry an hourly rate and a running billed total:
//
//	c := &client.Client{Name: "Harbour Build Co", HourlyRate: ledger.NZD(9500)}
//	err := l.CreateClient(ctx, c)
//
// Timesheet entries record work against a client, with the rate resolved
// entry → project override → client rate:
//
//	e := &timesheet.Entry{
//	    ClientID:    c.ID,
//	    Hours:       ledger.HoursFromFloat(3.5),
//	    Description: "Deck framing",
//	}
//	err = l.LogEntry(ctx, e)
//
// Invoices snapshot a set of unbilled entries into immutable line items:
//
//	inv, err := l.CreateInvoice(ctx, c.ID, []ledger.ID{e.ID}, "")
//	// inv.Number == "INV-2026-0001", inv.Total == NZ$332.50
//
// # Arithmetic
//
// All monetary calculations use integer arithmetic to avoid floating-point
// precision issues. The Money type represents amounts in the smallest currency
// unit (cents for NZD, pence for GBP, etc), and the Hours type stores
// hundredths of an hour, so hours-times-rate is exact for quarter-hour
// increments at whole-cent rates.
//
// # TypeID
//
// All entities use TypeID for globally unique, type-safe identifiers:
//
//	cli_01h2xcejqtf2nbrexx3vqjhp41  // Client ID
//	ts_01h2xcejqtf2nbrexx3vqjhp41   // Timesheet entry ID
//	inv_01h455vb4pex5vsknk084sn02q  // Invoice ID
//
// TypeIDs are K-sortable, making them ideal for database indexes and
// providing natural time-ordering of entities.
package ledger
