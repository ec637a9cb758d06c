package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/ticketmint/internal/helpers"
)

type ValidateTicketRequest struct {
	QRCode string `json:"qr_code" binding:"required"`
}

func MintTicket(c *gin.Context) {
	eventID, err := helpers.ParseID(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	userID, ok := callerOrAbort(c)
	if !ok {
		return
	}
	svc, ok := serviceOrAbort(c)
	if !ok {
		return
	}

	ticket, err := svc.MintTicket(c.Request.Context(), eventID, userID)
	if err != nil {
		respondTicketError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ticket)
}

func GetMyTickets(c *gin.Context) {
	userID, ok := callerOrAbort(c)
	if !ok {
		return
	}
	svc, ok := serviceOrAbort(c)
	if !ok {
		return
	}

	tickets, err := svc.MyTickets(c.Request.Context(), userID)
	if err != nil {
		respondTicketError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tickets": tickets,
		"total":   len(tickets),
	})
}

func GetTicket(c *gin.Context) {
	ticketID, err := helpers.ParseID(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid ticket ID.")
		return
	}

	userID, ok := callerOrAbort(c)
	if !ok {
		return
	}
	svc, ok := serviceOrAbort(c)
	if !ok {
		return
	}

	ticket, err := svc.GetTicket(c.Request.Context(), ticketID, userID)
	if err != nil {
		respondTicketError(c, err)
		return
	}

	c.JSON(http.StatusOK, ticket)
}

func ValidateTicket(c *gin.Context) {
	ticketID, err := helpers.ParseID(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid ticket ID.")
		return
	}

	var req ValidateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid request payload.")
		return
	}

	userID, ok := callerOrAbort(c)
	if !ok {
		return
	}
	svc, ok := serviceOrAbort(c)
	if !ok {
		return
	}

	valid, err := svc.ValidateTicket(c.Request.Context(), ticketID, req.QRCode, userID)
	if err != nil {
		respondTicketError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Ticket validated successfully.",
		"valid":   valid,
	})
}
