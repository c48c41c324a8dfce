package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/farellandr/airport/config"
	"github.com/farellandr/airport/internal/booking"
	"github.com/farellandr/airport/internal/handlers"
	"github.com/farellandr/airport/internal/middleware"
	"github.com/farellandr/airport/internal/models"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const shutdownTimeout = 30 * time.Second

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := config.NewLogger(cfg)
	if cfg.JWTSecret == "" {
		logger.Warn("JWT_SECRET is empty, login and authenticated routes will fail")
	}

	db, err := config.InitDatabase(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	engine := booking.NewEngine(booking.NewGormStore(db), logger)
	r := NewRouter(cfg, db, engine, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.WithField("port", cfg.Port).Info("API server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		logger.WithField("signal", sig.String()).Info("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	logger.Info("server stopped")
	return nil
}

// NewRouter wires middleware and routes. Everything except health, register
// and login requires a bearer token; catalog writes require the admin role.
func NewRouter(cfg *config.Config, db *gorm.DB, engine *booking.Engine, logger *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(logger),
		gin.Recovery(),
		cors.New(corsConfig(cfg)),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	setupRoutes(r, cfg, db, engine)
	return r
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Request-ID"}
	corsCfg.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	if len(cfg.CORSAllowedOrigins) == 0 || cfg.CORSAllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
		corsCfg.AllowCredentials = true
	}
	return corsCfg
}

func setupRoutes(r *gin.Engine, cfg *config.Config, db *gorm.DB, engine *booking.Engine) {
	api := r.Group("/api/v1")
	api.Use(
		middleware.DatabaseMiddleware(db),
		middleware.BookingMiddleware(engine),
		middleware.ConfigMiddleware(cfg),
	)

	public := api.Group("")
	{
		public.POST("/register", handlers.Register)
		public.POST("/login", handlers.Login)
	}

	protected := api.Group("")
	protected.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	admin := middleware.RequireRoles(models.RoleAdmin)
	{
		protected.GET("/me", handlers.GetProfile)

		protected.GET("/airplane_types", handlers.ListAirplaneTypes)
		protected.POST("/airplane_types", admin, handlers.CreateAirplaneType)

		protected.GET("/airplanes", handlers.ListAirplanes)
		protected.GET("/airplanes/:id", handlers.GetAirplane)
		protected.POST("/airplanes", admin, handlers.CreateAirplane)

		protected.GET("/crews", handlers.ListCrews)
		protected.POST("/crews", admin, handlers.CreateCrew)

		protected.GET("/countries", handlers.ListCountries)
		protected.POST("/countries", admin, handlers.CreateCountry)

		protected.GET("/cities", handlers.ListCities)
		protected.POST("/cities", admin, handlers.CreateCity)

		protected.GET("/airports", handlers.ListAirports)
		protected.GET("/airports/:id", handlers.GetAirport)
		protected.POST("/airports", admin, handlers.CreateAirport)

		protected.GET("/routes", handlers.ListRoutes)
		protected.GET("/routes/:id", handlers.GetRoute)
		protected.POST("/routes", admin, handlers.CreateRoute)

		protected.GET("/flights", handlers.ListFlights)
		protected.GET("/flights/:id", handlers.GetFlight)
		protected.POST("/flights", admin, handlers.CreateFlight)
		protected.DELETE("/flights/:id", admin, handlers.DeleteFlight)

		orders := protected.Group("/orders")
		{
			orders.GET("", handlers.ListOrders)
			orders.POST("", handlers.CreateOrder)
			orders.GET("/:id", handlers.GetOrder)
			orders.GET("/:id/tickets/:ticketId/qr", handlers.GenerateTicketQR)
			orders.GET("/:id/eticket.pdf", handlers.GetETicketPDF)
		}

		protected.POST("/boarding/validate", admin, handlers.ValidateBoardingPass)
	}
}
