package store

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/farellandr/ticketmint/internal/idgen"
	"github.com/farellandr/ticketmint/internal/models"
)

// Memory is the process-local store. A single mutex is held for the whole
// of each WithTx call, so operations never interleave.
type Memory struct {
	mu      sync.Mutex
	ids     *idgen.Allocator
	events  map[uint64]models.Event
	tickets map[uint64]models.Ticket
	owners  map[string][]uint64
}

func NewMemory() *Memory {
	return &Memory{
		ids:     idgen.New(),
		events:  make(map[uint64]models.Event),
		tickets: make(map[uint64]models.Ticket),
		owners:  make(map[string][]uint64),
	}
}

func (m *Memory) WithTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &memoryTx{m: m}
	if err := fn(ctx, tx); err != nil {
		tx.rollback()
		return err
	}
	return nil
}

type memoryTx struct {
	m    *Memory
	undo []func()
}

func (t *memoryTx) rollback() {
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
}

func (t *memoryTx) NextID(_ context.Context, seq idgen.Sequence) (uint64, error) {
	prev := t.m.ids.Peek(seq)
	id := t.m.ids.Next(seq)
	t.undo = append(t.undo, func() { t.m.ids.Reset(seq, prev) })
	return id, nil
}

func (t *memoryTx) InsertEvent(_ context.Context, event models.Event) error {
	if _, ok := t.m.events[event.ID]; ok {
		return fmt.Errorf("event %d already exists", event.ID)
	}
	t.m.events[event.ID] = cloneEvent(event)
	t.undo = append(t.undo, func() { delete(t.m.events, event.ID) })
	return nil
}

func (t *memoryTx) GetEvent(_ context.Context, id uint64) (models.Event, error) {
	event, ok := t.m.events[id]
	if !ok {
		return models.Event{}, ErrNotFound
	}
	return cloneEvent(event), nil
}

func (t *memoryTx) ListEvents(_ context.Context) ([]models.Event, error) {
	events := make([]models.Event, 0, len(t.m.events))
	for _, event := range t.m.events {
		events = append(events, cloneEvent(event))
	}
	slices.SortFunc(events, func(a, b models.Event) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return events, nil
}

func (t *memoryTx) ReserveSeat(_ context.Context, eventID uint64) error {
	event, ok := t.m.events[eventID]
	if !ok {
		return ErrNotFound
	}
	if event.SoldOut() {
		return ErrSoldOut
	}
	event.TicketsSold++
	t.m.events[eventID] = event
	t.undo = append(t.undo, func() {
		e := t.m.events[eventID]
		e.TicketsSold--
		t.m.events[eventID] = e
	})
	return nil
}

func (t *memoryTx) InsertTicket(_ context.Context, ticket models.Ticket) error {
	if _, ok := t.m.tickets[ticket.ID]; ok {
		return fmt.Errorf("ticket %d already exists", ticket.ID)
	}
	ticket.Event = nil
	t.m.tickets[ticket.ID] = ticket
	t.m.owners[ticket.Owner] = append(t.m.owners[ticket.Owner], ticket.ID)
	t.undo = append(t.undo, func() {
		delete(t.m.tickets, ticket.ID)
		ids := t.m.owners[ticket.Owner]
		if len(ids) <= 1 {
			delete(t.m.owners, ticket.Owner)
			return
		}
		t.m.owners[ticket.Owner] = ids[:len(ids)-1]
	})
	return nil
}

func (t *memoryTx) GetTicket(_ context.Context, id uint64) (models.Ticket, error) {
	ticket, ok := t.m.tickets[id]
	if !ok {
		return models.Ticket{}, ErrNotFound
	}
	return ticket, nil
}

func (t *memoryTx) GetTicketForUpdate(ctx context.Context, id uint64) (models.Ticket, error) {
	return t.GetTicket(ctx, id)
}

func (t *memoryTx) TicketsByOwner(_ context.Context, owner string) ([]models.Ticket, error) {
	ids := t.m.owners[owner]
	tickets := make([]models.Ticket, 0, len(ids))
	for _, id := range ids {
		ticket, ok := t.m.tickets[id]
		if !ok {
			continue
		}
		tickets = append(tickets, ticket)
	}
	return tickets, nil
}

func (t *memoryTx) MarkUsed(_ context.Context, ticketID uint64) error {
	ticket, ok := t.m.tickets[ticketID]
	if !ok {
		return ErrNotFound
	}
	if ticket.IsUsed {
		return ErrAlreadyUsed
	}
	ticket.IsUsed = true
	t.m.tickets[ticketID] = ticket
	t.undo = append(t.undo, func() {
		tk := t.m.tickets[ticketID]
		tk.IsUsed = false
		t.m.tickets[ticketID] = tk
	})
	return nil
}

func cloneEvent(e models.Event) models.Event {
	if e.ARModelURL != nil {
		url := *e.ARModelURL
		e.ARModelURL = &url
	}
	return e
}
