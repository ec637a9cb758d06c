package ticketing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/farellandr/ticketmint/internal/idgen"
	"github.com/farellandr/ticketmint/internal/models"
	"github.com/farellandr/ticketmint/internal/store"
)

type EventInput struct {
	Name         string
	Description  string
	Venue        string
	Date         string
	TicketPrice  uint64
	TotalTickets uint64
	ImageURL     string
	ARModelURL   *string
}

// CreateEvent registers an event owned by organizer with nothing sold.
func (s *Service) CreateEvent(ctx context.Context, in EventInput, organizer string) (models.Event, error) {
	event := models.Event{
		Name:         strings.TrimSpace(in.Name),
		Description:  strings.TrimSpace(in.Description),
		Venue:        strings.TrimSpace(in.Venue),
		Date:         in.Date,
		TicketPrice:  in.TicketPrice,
		TotalTickets: in.TotalTickets,
		ImageURL:     strings.TrimSpace(in.ImageURL),
		Organizer:    organizer,
	}
	if in.ARModelURL != nil {
		url := strings.TrimSpace(*in.ARModelURL)
		event.ARModelURL = &url
	}

	err := s.store.WithTx(ctx, func(ctx context.Context, tx store.Tx) error {
		id, err := tx.NextID(ctx, idgen.Events)
		if err != nil {
			return fmt.Errorf("allocate event id: %w", err)
		}
		event.ID = id
		if err := tx.InsertEvent(ctx, event); err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.Event{}, err
	}

	s.logger.WithContext(ctx).WithFields(logrus.Fields{
		"event_id":      event.ID,
		"total_tickets": event.TotalTickets,
	}).Info("event created")
	return event, nil
}

func (s *Service) GetEvent(ctx context.Context, id uint64) (models.Event, error) {
	var event models.Event
	err := s.store.WithTx(ctx, func(ctx context.Context, tx store.Tx) error {
		var err error
		event, err = getEvent(ctx, tx, id)
		return err
	})
	return event, err
}

// ListEvents returns every event in ascending id order.
func (s *Service) ListEvents(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	err := s.store.WithTx(ctx, func(ctx context.Context, tx store.Tx) error {
		var err error
		events, err = tx.ListEvents(ctx)
		if err != nil {
			return fmt.Errorf("list events: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []models.Event{}
	}
	return events, nil
}

func getEvent(ctx context.Context, tx store.Tx, id uint64) (models.Event, error) {
	event, err := tx.GetEvent(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return models.Event{}, ErrEventNotFound
	}
	if err != nil {
		return models.Event{}, fmt.Errorf("get event %d: %w", id, err)
	}
	return event, nil
}

// reserveOne takes one unit of the event's inventory.
func reserveOne(ctx context.Context, tx store.Tx, eventID uint64) error {
	err := tx.ReserveSeat(ctx, eventID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return ErrEventNotFound
	case errors.Is(err, store.ErrSoldOut):
		return ErrNoTicketsAvailable
	}
	return fmt.Errorf("reserve seat for event %d: %w", eventID, err)
}
