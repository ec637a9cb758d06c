package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/ticketmint/internal/helpers"
	"github.com/farellandr/ticketmint/internal/ticketing"
)

type EventRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	Venue        string  `json:"venue"`
	Date         string  `json:"date"`
	TicketPrice  uint64  `json:"ticket_price"`
	TotalTickets uint64  `json:"total_tickets"`
	ImageURL     string  `json:"image_url"`
	ARModelURL   *string `json:"ar_model_url"`
}

func CreateEvent(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
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

	event, err := svc.CreateEvent(c.Request.Context(), ticketing.EventInput{
		Name:         req.Name,
		Description:  req.Description,
		Venue:        req.Venue,
		Date:         req.Date,
		TicketPrice:  req.TicketPrice,
		TotalTickets: req.TotalTickets,
		ImageURL:     req.ImageURL,
		ARModelURL:   req.ARModelURL,
	}, userID)
	if err != nil {
		respondTicketError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Event created successfully.",
		"event_id": event.ID,
	})
}

func GetEvent(c *gin.Context) {
	eventID, err := helpers.ParseID(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	svc, ok := serviceOrAbort(c)
	if !ok {
		return
	}

	event, err := svc.GetEvent(c.Request.Context(), eventID)
	if err != nil {
		respondTicketError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

func ListEvents(c *gin.Context) {
	svc, ok := serviceOrAbort(c)
	if !ok {
		return
	}

	events, err := svc.ListEvents(c.Request.Context())
	if err != nil {
		respondTicketError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"total":  len(events),
	})
}
