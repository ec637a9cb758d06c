package access

import "github.com/farellandr/ticketmint/internal/models"

// IsOrganizer reports whether identity created the event.
func IsOrganizer(event models.Event, identity string) bool {
	return identity != "" && event.Organizer == identity
}

// IsOwnerOrOrganizer reports whether identity may view the ticket: the
// holder always may, and so may the organizer of the ticket's event.
func IsOwnerOrOrganizer(ticket models.Ticket, event models.Event, identity string) bool {
	if identity == "" {
		return false
	}
	if ticket.Owner == identity {
		return true
	}
	return ticket.EventID == event.ID && IsOrganizer(event, identity)
}
