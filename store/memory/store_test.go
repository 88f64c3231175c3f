package memory

import (
	"context"
	"testing"

	"github.com/worksite/ledger/client"
	"github.com/worksite/ledger/id"
	"github.com/worksite/ledger/timesheet"
	"github.com/worksite/ledger/types"
)

func TestRecordsDoNotAliasCallerState(t *testing.T) {
	ctx := context.Background()
	s := New()

	t.Run("GetEntryReturnsCopy", func(t *testing.T) {
		e := &timesheet.Entry{
			ID:          id.NewEntryID(),
			ClientID:    id.NewClientID(),
			Hours:       types.HoursFromFloat(4),
			Rate:        types.NZD(9000),
			Description: "Roofing",
		}
		if err := s.CreateEntry(ctx, e); err != nil {
			t.Fatalf("CreateEntry: %v", err)
		}

		got, err := s.GetEntry(ctx, e.ID)
		if err != nil {
			t.Fatalf("GetEntry: %v", err)
		}
		got.Hours = 0
		got.Description = "scribbled on"

		again, err := s.GetEntry(ctx, e.ID)
		if err != nil {
			t.Fatalf("GetEntry: %v", err)
		}
		if again.Hours != types.HoursFromFloat(4) || again.Description != "Roofing" {
			t.Errorf("stored entry changed through a returned pointer: %s %q", again.Hours.String(), again.Description)
		}
	})

	t.Run("CreateCopiesInput", func(t *testing.T) {
		c := &client.Client{
			ID:         id.NewClientID(),
			Name:       "Harbour Build Co",
			HourlyRate: types.NZD(9500),
			Metadata:   map[string]string{"region": "auckland"},
		}
		if err := s.CreateClient(ctx, c); err != nil {
			t.Fatalf("CreateClient: %v", err)
		}

		c.Name = "renamed after the fact"
		c.Metadata["region"] = "wellington"

		got, err := s.GetClient(ctx, c.ID)
		if err != nil {
			t.Fatalf("GetClient: %v", err)
		}
		if got.Name != "Harbour Build Co" {
			t.Errorf("Name: got %q, caller edit leaked in", got.Name)
		}
		if got.Metadata["region"] != "auckland" {
			t.Errorf("Metadata: got %q, caller edit leaked in", got.Metadata["region"])
		}
	})

	t.Run("ListEntriesReturnsCopies", func(t *testing.T) {
		clientID := id.NewClientID()
		e := &timesheet.Entry{
			ID:          id.NewEntryID(),
			ClientID:    clientID,
			Hours:       types.HoursFromFloat(2),
			Rate:        types.NZD(9000),
			Description: "Boxing",
		}
		if err := s.CreateEntry(ctx, e); err != nil {
			t.Fatalf("CreateEntry: %v", err)
		}

		listed, err := s.ListEntries(ctx, clientID, timesheet.ListOpts{})
		if err != nil {
			t.Fatalf("ListEntries: %v", err)
		}
		if len(listed) != 1 {
			t.Fatalf("ListEntries: got %d, want 1", len(listed))
		}
		listed[0].Invoiced = true

		got, err := s.GetEntry(ctx, e.ID)
		if err != nil {
			t.Fatalf("GetEntry: %v", err)
		}
		if got.Invoiced {
			t.Error("stored entry flagged through a listed pointer")
		}
	})
}
