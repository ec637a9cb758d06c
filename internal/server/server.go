package server

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/farellandr/ticketmint/config"
	"github.com/farellandr/ticketmint/internal/handlers"
	"github.com/farellandr/ticketmint/internal/logger"
	"github.com/farellandr/ticketmint/internal/middleware"
	"github.com/farellandr/ticketmint/internal/proof"
	"github.com/farellandr/ticketmint/internal/ticketing"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("failed to build logger: %v", err)
	}

	st, err := config.InitStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %v", err)
	}

	gen, err := proof.NewGenerator(cfg.ProofSecret)
	if err != nil {
		return fmt.Errorf("failed to initialize proof generator: %v", err)
	}

	svc := ticketing.NewService(st, gen, ticketing.WithLogger(log))

	gin.SetMode(cfg.GinMode)
	r := NewRouter(svc, log, cfg.JWTSecret)

	log.WithFields(logrus.Fields{
		"port":  cfg.Port,
		"store": cfg.StoreDriver,
	}).Info("server starting")
	return r.Run(":" + cfg.Port)
}

// NewRouter wires the HTTP surface around svc.
func NewRouter(svc *ticketing.Service, log *logrus.Logger, jwtSecret string) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(log), gin.Recovery())

	setupRoutes(r, svc, jwtSecret)
	return r
}

func setupRoutes(r *gin.Engine, svc *ticketing.Service, jwtSecret string) {
	r.Use(middleware.ServiceMiddleware(svc))

	r.GET("/healthz", handlers.Health)

	public := r.Group("/v1")
	{
		eventPublic := public.Group("/events")
		{
			eventPublic.GET("", handlers.ListEvents)
			eventPublic.GET("/:id", handlers.GetEvent)
		}
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware(jwtSecret))
	{
		eventProtected := protected.Group("/events")
		{
			eventProtected.POST("", handlers.CreateEvent)
			eventProtected.POST("/:id/tickets", handlers.MintTicket)
		}

		ticketProtected := protected.Group("/tickets")
		{
			ticketProtected.GET("/mine", handlers.GetMyTickets)
			ticketProtected.GET("/:id", handlers.GetTicket)
			ticketProtected.POST("/:id/validate", handlers.ValidateTicket)
		}
	}
}
