// Package store holds events and tickets behind a single transactional
// boundary. Every compound check-then-mutate runs inside WithTx.
package store

import (
	"context"
	"errors"

	"github.com/farellandr/ticketmint/internal/idgen"
	"github.com/farellandr/ticketmint/internal/models"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrSoldOut     = errors.New("event sold out")
	ErrAlreadyUsed = errors.New("ticket already used")
)

// Store runs fn as one atomic step. If fn returns an error nothing it did
// is kept.
type Store interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx is the view of the store available inside WithTx.
type Tx interface {
	NextID(ctx context.Context, seq idgen.Sequence) (uint64, error)

	InsertEvent(ctx context.Context, event models.Event) error
	GetEvent(ctx context.Context, id uint64) (models.Event, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
	// ReserveSeat increments tickets_sold unless the event is sold out.
	ReserveSeat(ctx context.Context, eventID uint64) error

	InsertTicket(ctx context.Context, ticket models.Ticket) error
	GetTicket(ctx context.Context, id uint64) (models.Ticket, error)
	// GetTicketForUpdate is GetTicket that also holds the row until the
	// transaction ends.
	GetTicketForUpdate(ctx context.Context, id uint64) (models.Ticket, error)
	// TicketsByOwner returns the owner's tickets in the order they were minted.
	TicketsByOwner(ctx context.Context, owner string) ([]models.Ticket, error)
	MarkUsed(ctx context.Context, ticketID uint64) error
}
