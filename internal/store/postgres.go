package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/farellandr/ticketmint/internal/idgen"
	"github.com/farellandr/ticketmint/internal/models"
)

// Postgres keeps events and tickets in a gorm-managed database. The owner
// index is the (owner, id) index on tickets, so it cannot drift from the
// ticket rows.
type Postgres struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) WithTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &postgresTx{db: tx})
	})
}

// Migrate creates the tables and seeds one counter row per sequence.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Event{}, &models.Ticket{}, &models.Sequence{}); err != nil {
		return err
	}
	for _, seq := range []idgen.Sequence{idgen.Events, idgen.Tickets} {
		row := models.Sequence{Name: string(seq), Next: 1}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
			return fmt.Errorf("seed sequence %s: %w", seq, err)
		}
	}
	return nil
}

type postgresTx struct {
	db *gorm.DB
}

func (t *postgresTx) NextID(ctx context.Context, seq idgen.Sequence) (uint64, error) {
	var row models.Sequence
	err := t.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("name = ?", string(seq)).
		Take(&row).Error
	if err != nil {
		return 0, fmt.Errorf("lock sequence %s: %w", seq, err)
	}

	id := row.Next
	if err := t.db.WithContext(ctx).Model(&models.Sequence{}).
		Where("name = ?", string(seq)).
		Update("next_id", id+1).Error; err != nil {
		return 0, fmt.Errorf("advance sequence %s: %w", seq, err)
	}
	return id, nil
}

func (t *postgresTx) InsertEvent(ctx context.Context, event models.Event) error {
	return t.db.WithContext(ctx).Create(&event).Error
}

func (t *postgresTx) GetEvent(ctx context.Context, id uint64) (models.Event, error) {
	var event models.Event
	if err := t.db.WithContext(ctx).Where("id = ?", id).Take(&event).Error; err != nil {
		return models.Event{}, translate(err)
	}
	return event, nil
}

func (t *postgresTx) ListEvents(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	if err := t.db.WithContext(ctx).Order("id ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (t *postgresTx) ReserveSeat(ctx context.Context, eventID uint64) error {
	result := t.db.WithContext(ctx).Model(&models.Event{}).
		Where("id = ? AND tickets_sold < total_tickets", eventID).
		UpdateColumn("tickets_sold", gorm.Expr("tickets_sold + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 1 {
		return nil
	}

	var count int64
	if err := t.db.WithContext(ctx).Model(&models.Event{}).Where("id = ?", eventID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return ErrSoldOut
}

func (t *postgresTx) InsertTicket(ctx context.Context, ticket models.Ticket) error {
	ticket.Event = nil
	return t.db.WithContext(ctx).Create(&ticket).Error
}

func (t *postgresTx) GetTicket(ctx context.Context, id uint64) (models.Ticket, error) {
	var ticket models.Ticket
	if err := t.db.WithContext(ctx).Where("id = ?", id).Take(&ticket).Error; err != nil {
		return models.Ticket{}, translate(err)
	}
	return ticket, nil
}

func (t *postgresTx) GetTicketForUpdate(ctx context.Context, id uint64) (models.Ticket, error) {
	var ticket models.Ticket
	err := t.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Take(&ticket).Error
	if err != nil {
		return models.Ticket{}, translate(err)
	}
	return ticket, nil
}

func (t *postgresTx) TicketsByOwner(ctx context.Context, owner string) ([]models.Ticket, error) {
	var tickets []models.Ticket
	if err := t.db.WithContext(ctx).Where("owner = ?", owner).Order("id ASC").Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

func (t *postgresTx) MarkUsed(ctx context.Context, ticketID uint64) error {
	result := t.db.WithContext(ctx).Model(&models.Ticket{}).
		Where("id = ? AND is_used = ?", ticketID, false).
		UpdateColumn("is_used", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 1 {
		return nil
	}
	if _, err := t.GetTicket(ctx, ticketID); err != nil {
		return err
	}
	return ErrAlreadyUsed
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
