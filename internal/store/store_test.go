package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/farellandr/ticketmint/internal/idgen"
	"github.com/farellandr/ticketmint/internal/models"
)

var errBoom = errors.New("boom")

// exerciseStore runs the behaviour every backend must share.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	var eventID uint64
	err := s.WithTx(ctx, func(ctx context.Context, tx Tx) error {
		id, err := tx.NextID(ctx, idgen.Events)
		if err != nil {
			return err
		}
		eventID = id
		return tx.InsertEvent(ctx, models.Event{
			ID:           id,
			Name:         "Launch",
			TotalTickets: 2,
			Organizer:    "org",
		})
	})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	if eventID != 1 {
		t.Fatalf("event id = %d, want 1", eventID)
	}

	mint := func(owner string) (models.Ticket, error) {
		var ticket models.Ticket
		err := s.WithTx(ctx, func(ctx context.Context, tx Tx) error {
			if err := tx.ReserveSeat(ctx, eventID); err != nil {
				return err
			}
			id, err := tx.NextID(ctx, idgen.Tickets)
			if err != nil {
				return err
			}
			ticket = models.Ticket{
				ID:           id,
				EventID:      eventID,
				Owner:        owner,
				PurchaseDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
				QRCode:       "token",
			}
			return tx.InsertTicket(ctx, ticket)
		})
		return ticket, err
	}

	first, err := mint("alice")
	if err != nil {
		t.Fatalf("mint first: %v", err)
	}
	second, err := mint("alice")
	if err != nil {
		t.Fatalf("mint second: %v", err)
	}
	if _, err := mint("bob"); !errors.Is(err, ErrSoldOut) {
		t.Fatalf("mint on sold out event err = %v, want %v", err, ErrSoldOut)
	}

	err = s.WithTx(ctx, func(ctx context.Context, tx Tx) error {
		event, err := tx.GetEvent(ctx, eventID)
		if err != nil {
			return err
		}
		if event.TicketsSold != 2 {
			t.Errorf("tickets sold = %d, want 2", event.TicketsSold)
		}

		if err := tx.ReserveSeat(ctx, 99); !errors.Is(err, ErrNotFound) {
			t.Errorf("reserve on missing event err = %v, want %v", err, ErrNotFound)
		}

		owned, err := tx.TicketsByOwner(ctx, "alice")
		if err != nil {
			return err
		}
		if len(owned) != 2 || owned[0].ID != first.ID || owned[1].ID != second.ID {
			t.Errorf("owned = %+v, want ids [%d %d]", owned, first.ID, second.ID)
		}
		if owned, _ := tx.TicketsByOwner(ctx, "bob"); len(owned) != 0 {
			t.Errorf("bob owns %d tickets, want 0", len(owned))
		}

		if err := tx.MarkUsed(ctx, first.ID); err != nil {
			return err
		}
		if err := tx.MarkUsed(ctx, first.ID); !errors.Is(err, ErrAlreadyUsed) {
			t.Errorf("second mark used err = %v, want %v", err, ErrAlreadyUsed)
		}
		if err := tx.MarkUsed(ctx, 99); !errors.Is(err, ErrNotFound) {
			t.Errorf("mark missing used err = %v, want %v", err, ErrNotFound)
		}
		if _, err := tx.GetTicket(ctx, 99); !errors.Is(err, ErrNotFound) {
			t.Errorf("get missing ticket err = %v, want %v", err, ErrNotFound)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}

	// A failed transaction leaves nothing behind.
	err = s.WithTx(ctx, func(ctx context.Context, tx Tx) error {
		id, err := tx.NextID(ctx, idgen.Events)
		if err != nil {
			return err
		}
		if err := tx.InsertEvent(ctx, models.Event{ID: id, Name: "Ghost", TotalTickets: 1, Organizer: "org"}); err != nil {
			return err
		}
		return errBoom
	})
	if !errors.Is(err, errBoom) {
		t.Fatalf("aborted tx err = %v, want %v", err, errBoom)
	}

	err = s.WithTx(ctx, func(ctx context.Context, tx Tx) error {
		events, err := tx.ListEvents(ctx)
		if err != nil {
			return err
		}
		if len(events) != 1 {
			t.Errorf("events after rollback = %d, want 1", len(events))
		}
		id, err := tx.NextID(ctx, idgen.Events)
		if err != nil {
			return err
		}
		if id != 2 {
			t.Errorf("next event id after rollback = %d, want 2", id)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("verify rollback: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	exerciseStore(t, NewMemory())
}

func TestMemoryListEventsAscending(t *testing.T) {
	t.Parallel()

	s := NewMemory()
	ctx := context.Background()
	err := s.WithTx(ctx, func(ctx context.Context, tx Tx) error {
		for _, id := range []uint64{3, 1, 2} {
			if err := tx.InsertEvent(ctx, models.Event{ID: id}); err != nil {
				return err
			}
		}
		events, err := tx.ListEvents(ctx)
		if err != nil {
			return err
		}
		for i, event := range events {
			if event.ID != uint64(i+1) {
				t.Errorf("events[%d].ID = %d, want %d", i, event.ID, i+1)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("with tx: %v", err)
	}
}

func TestMemoryRollbackRestoresSeatAndIndex(t *testing.T) {
	t.Parallel()

	s := NewMemory()
	ctx := context.Background()
	_ = s.WithTx(ctx, func(ctx context.Context, tx Tx) error {
		return tx.InsertEvent(ctx, models.Event{ID: 1, TotalTickets: 1, Organizer: "org"})
	})

	err := s.WithTx(ctx, func(ctx context.Context, tx Tx) error {
		if err := tx.ReserveSeat(ctx, 1); err != nil {
			return err
		}
		id, _ := tx.NextID(ctx, idgen.Tickets)
		if err := tx.InsertTicket(ctx, models.Ticket{ID: id, EventID: 1, Owner: "alice"}); err != nil {
			return err
		}
		return errBoom
	})
	if !errors.Is(err, errBoom) {
		t.Fatalf("err = %v, want %v", err, errBoom)
	}

	if got := s.events[1].TicketsSold; got != 0 {
		t.Fatalf("tickets sold = %d, want 0", got)
	}
	if len(s.tickets) != 0 {
		t.Fatalf("tickets = %d, want 0", len(s.tickets))
	}
	if _, ok := s.owners["alice"]; ok {
		t.Fatal("owner index kept an aborted ticket")
	}
	if got := s.ids.Peek(idgen.Tickets); got != 1 {
		t.Fatalf("next ticket id = %d, want 1", got)
	}
}

func TestMemoryTicketsByOwnerSkipsDanglingIDs(t *testing.T) {
	t.Parallel()

	s := NewMemory()
	s.tickets[2] = models.Ticket{ID: 2, Owner: "alice"}
	s.owners["alice"] = []uint64{1, 2}

	err := s.WithTx(context.Background(), func(ctx context.Context, tx Tx) error {
		owned, err := tx.TicketsByOwner(ctx, "alice")
		if err != nil {
			return err
		}
		if len(owned) != 1 || owned[0].ID != 2 {
			t.Errorf("owned = %+v, want only ticket 2", owned)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("with tx: %v", err)
	}
}

func TestMemoryGetEventReturnsCopy(t *testing.T) {
	t.Parallel()

	s := NewMemory()
	url := "https://example.com/model.glb"
	ctx := context.Background()
	_ = s.WithTx(ctx, func(ctx context.Context, tx Tx) error {
		return tx.InsertEvent(ctx, models.Event{ID: 1, ARModelURL: &url})
	})

	_ = s.WithTx(ctx, func(ctx context.Context, tx Tx) error {
		event, _ := tx.GetEvent(ctx, 1)
		*event.ARModelURL = "changed"
		event.TicketsSold = 10
		return nil
	})

	stored := s.events[1]
	if *stored.ARModelURL != url {
		t.Fatalf("ar model url = %q, want %q", *stored.ARModelURL, url)
	}
	if stored.TicketsSold != 0 {
		t.Fatalf("tickets sold = %d, want 0", stored.TicketsSold)
	}
}
