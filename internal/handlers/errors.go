package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/ticketmint/internal/helpers"
	"github.com/farellandr/ticketmint/internal/middleware"
	"github.com/farellandr/ticketmint/internal/ticketing"
)

// Error codes mirror the failure kinds exposed to clients.
const (
	codeEventNotFound      = "EventNotFound"
	codeNoTicketsAvailable = "NoTicketsAvailable"
	codeUnauthorized       = "Unauthorized"
	codeTicketNotFound     = "TicketNotFound"
	codeTicketAlreadyUsed  = "TicketAlreadyUsed"
	codeInvalidQRCode      = "InvalidQRCode"
)

func respondTicketError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ticketing.ErrEventNotFound):
		helpers.RespondWithCode(c, http.StatusNotFound, codeEventNotFound, "Event not found.")
	case errors.Is(err, ticketing.ErrNoTicketsAvailable):
		helpers.RespondWithCode(c, http.StatusConflict, codeNoTicketsAvailable, "No tickets available.")
	case errors.Is(err, ticketing.ErrUnauthorized):
		helpers.RespondWithCode(c, http.StatusForbidden, codeUnauthorized, "You don't have permission to access this ticket.")
	case errors.Is(err, ticketing.ErrTicketNotFound):
		helpers.RespondWithCode(c, http.StatusNotFound, codeTicketNotFound, "Ticket not found.")
	case errors.Is(err, ticketing.ErrTicketAlreadyUsed):
		helpers.RespondWithCode(c, http.StatusConflict, codeTicketAlreadyUsed, "Ticket already used.")
	case errors.Is(err, ticketing.ErrInvalidQRCode):
		helpers.RespondWithCode(c, http.StatusUnprocessableEntity, codeInvalidQRCode, "Invalid QR code.")
	default:
		_ = c.Error(err)
		helpers.RespondWithError(c, http.StatusInternalServerError, "Internal server error.")
	}
}

func serviceOrAbort(c *gin.Context) (*ticketing.Service, bool) {
	svc := middleware.GetService(c)
	if svc == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Ticketing service not found.")
		return nil, false
	}
	return svc, true
}

func callerOrAbort(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return "", false
	}
	return userID, true
}
