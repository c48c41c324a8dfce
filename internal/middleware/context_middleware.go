package middleware

import (
	"github.com/farellandr/airport/config"
	"github.com/farellandr/airport/internal/booking"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func DatabaseMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("db", db)
		c.Next()
	}
}

func BookingMiddleware(engine *booking.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("booking_engine", engine)
		c.Next()
	}
}

func ConfigMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("config", cfg)
		c.Next()
	}
}

func GetBookingEngine(c *gin.Context) *booking.Engine {
	engine, exists := c.Get("booking_engine")
	if !exists {
		return nil
	}
	return engine.(*booking.Engine)
}

func GetConfig(c *gin.Context) *config.Config {
	cfg, exists := c.Get("config")
	if !exists {
		return nil
	}
	return cfg.(*config.Config)
}
