package models

import "time"

type Ticket struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement:false;index:idx_tickets_owner_id,priority:2" json:"id"`
	EventID      uint64    `gorm:"not null;index" json:"event_id"`
	Event        *Event    `gorm:"foreignKey:EventID" json:"-"`
	Owner        string    `gorm:"not null;index:idx_tickets_owner_id,priority:1" json:"owner"`
	PurchaseDate time.Time `gorm:"not null" json:"purchase_date"`
	QRCode       string    `gorm:"not null;size:64" json:"qr_code"`
	IsUsed       bool      `gorm:"not null;default:false" json:"is_used"`
}
