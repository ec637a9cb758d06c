package ticketing

import "errors"

// Failure kinds returned by the registries. Each is a normal outcome of
// caller input and leaves the store unchanged.
var (
	ErrEventNotFound      = errors.New("event not found")
	ErrNoTicketsAvailable = errors.New("no tickets available")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrTicketNotFound     = errors.New("ticket not found")
	ErrTicketAlreadyUsed  = errors.New("ticket already used")
	ErrInvalidQRCode      = errors.New("invalid qr code")
)
