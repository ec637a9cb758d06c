package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/farellandr/ticketmint/internal/ticketing"
)

const serviceKey = "ticketing_service"

func ServiceMiddleware(svc *ticketing.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(serviceKey, svc)
		c.Next()
	}
}

func GetService(c *gin.Context) *ticketing.Service {
	svc, exists := c.Get(serviceKey)
	if !exists {
		return nil
	}
	return svc.(*ticketing.Service)
}
