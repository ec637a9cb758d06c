package ticketing

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/farellandr/ticketmint/internal/access"
	"github.com/farellandr/ticketmint/internal/idgen"
	"github.com/farellandr/ticketmint/internal/models"
	"github.com/farellandr/ticketmint/internal/proof"
	"github.com/farellandr/ticketmint/internal/store"
)

// MintTicket sells one unit of the event to owner. The ticket id is only
// allocated once a seat has been reserved.
func (s *Service) MintTicket(ctx context.Context, eventID uint64, owner string) (models.Ticket, error) {
	var ticket models.Ticket
	err := s.store.WithTx(ctx, func(ctx context.Context, tx store.Tx) error {
		if err := reserveOne(ctx, tx, eventID); err != nil {
			return err
		}

		id, err := tx.NextID(ctx, idgen.Tickets)
		if err != nil {
			return fmt.Errorf("allocate ticket id: %w", err)
		}
		issuedAt := s.clock.Now()
		ticket = models.Ticket{
			ID:           id,
			EventID:      eventID,
			Owner:        owner,
			PurchaseDate: issuedAt,
			QRCode:       s.proof.Derive(id, eventID, owner, issuedAt),
		}
		if err := tx.InsertTicket(ctx, ticket); err != nil {
			return fmt.Errorf("insert ticket: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.Ticket{}, err
	}

	s.logger.WithContext(ctx).WithFields(logrus.Fields{
		"ticket_id": ticket.ID,
		"event_id":  eventID,
	}).Info("ticket minted")
	return ticket, nil
}

// MyTickets lists the tickets held by owner in the order they were minted.
func (s *Service) MyTickets(ctx context.Context, owner string) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := s.store.WithTx(ctx, func(ctx context.Context, tx store.Tx) error {
		var err error
		tickets, err = tx.TicketsByOwner(ctx, owner)
		if err != nil {
			return fmt.Errorf("list tickets: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if tickets == nil {
		tickets = []models.Ticket{}
	}
	return tickets, nil
}

// GetTicket discloses a ticket to its owner or to its event's organizer.
func (s *Service) GetTicket(ctx context.Context, ticketID uint64, viewer string) (models.Ticket, error) {
	var ticket models.Ticket
	err := s.store.WithTx(ctx, func(ctx context.Context, tx store.Tx) error {
		var err error
		ticket, err = getTicket(ctx, tx, ticketID, false)
		if err != nil {
			return err
		}

		// A missing event still lets the owner through.
		event, err := tx.GetEvent(ctx, ticket.EventID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("get event %d: %w", ticket.EventID, err)
		}
		if !access.IsOwnerOrOrganizer(ticket, event, viewer) {
			return ErrUnauthorized
		}
		return nil
	})
	if err != nil {
		return models.Ticket{}, err
	}
	return ticket, nil
}

// ValidateTicket admits a ticket once. Only the event's organizer may
// validate, and the organizer check runs before anything about the
// ticket's state or token is revealed.
func (s *Service) ValidateTicket(ctx context.Context, ticketID uint64, token, caller string) (bool, error) {
	var eventID uint64
	err := s.store.WithTx(ctx, func(ctx context.Context, tx store.Tx) error {
		ticket, err := getTicket(ctx, tx, ticketID, true)
		if err != nil {
			return err
		}
		eventID = ticket.EventID

		event, err := getEvent(ctx, tx, ticket.EventID)
		if err != nil {
			return err
		}
		if !access.IsOrganizer(event, caller) {
			return ErrUnauthorized
		}
		if ticket.IsUsed {
			return ErrTicketAlreadyUsed
		}
		if !proof.Equal(ticket.QRCode, token) {
			return ErrInvalidQRCode
		}

		err = tx.MarkUsed(ctx, ticketID)
		switch {
		case errors.Is(err, store.ErrAlreadyUsed):
			return ErrTicketAlreadyUsed
		case err != nil:
			return fmt.Errorf("mark ticket %d used: %w", ticketID, err)
		}
		return nil
	})

	entry := s.logger.WithContext(ctx).WithFields(logrus.Fields{
		"ticket_id": ticketID,
		"event_id":  eventID,
	})
	if err != nil {
		entry.WithError(err).Warn("ticket validation rejected")
		return false, err
	}
	entry.Info("ticket validated")
	return true, nil
}

func getTicket(ctx context.Context, tx store.Tx, id uint64, forUpdate bool) (models.Ticket, error) {
	var (
		ticket models.Ticket
		err    error
	)
	if forUpdate {
		ticket, err = tx.GetTicketForUpdate(ctx, id)
	} else {
		ticket, err = tx.GetTicket(ctx, id)
	}
	if errors.Is(err, store.ErrNotFound) {
		return models.Ticket{}, ErrTicketNotFound
	}
	if err != nil {
		return models.Ticket{}, fmt.Errorf("get ticket %d: %w", id, err)
	}
	return ticket, nil
}
