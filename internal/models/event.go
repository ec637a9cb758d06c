package models

type Event struct {
	ID           uint64  `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name         string  `gorm:"not null" json:"name"`
	Description  string  `gorm:"not null" json:"description"`
	Venue        string  `gorm:"not null" json:"venue"`
	Date         string  `gorm:"not null" json:"date"`
	TicketPrice  uint64  `gorm:"not null" json:"ticket_price"`
	TotalTickets uint64  `gorm:"not null" json:"total_tickets"`
	TicketsSold  uint64  `gorm:"not null;default:0" json:"tickets_sold"`
	ImageURL     string  `gorm:"not null" json:"image_url"`
	ARModelURL   *string `json:"ar_model_url"`
	Organizer    string  `gorm:"not null;index" json:"organizer"`
}

// SoldOut reports whether minting must be refused.
func (e Event) SoldOut() bool {
	return e.TicketsSold >= e.TotalTickets
}
