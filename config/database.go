package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/farellandr/airport/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const dbWaitInterval = time.Second

// InitDatabase connects to postgres, waiting for it to accept connections,
// then migrates the schema and seeds roles and the optional admin account.
func InitDatabase(cfg *Config, log *logrus.Logger) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.New(log, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormLogLevel(log.GetLevel()),
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: true,
	}

	db, err := waitForDatabase(cfg, gormConfig, log)
	if err != nil {
		return nil, err
	}

	if err := enableUUIDExtension(db); err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	if err := seedRoles(db); err != nil {
		return nil, err
	}
	if err := seedAdmin(db, cfg, log); err != nil {
		return nil, err
	}

	return db, nil
}

func waitForDatabase(cfg *Config, gormConfig *gorm.Config, log *logrus.Logger) (*gorm.DB, error) {
	attempts := cfg.DBWaitAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 1; i <= attempts; i++ {
		db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
		if err == nil {
			sqlDB, dbErr := db.DB()
			if dbErr == nil {
				dbErr = sqlDB.Ping()
			}
			if dbErr == nil {
				log.WithField("attempt", i).Info("database available")
				return db, nil
			}
			err = dbErr
		}
		lastErr = err
		log.WithFields(logrus.Fields{
			"attempt": i,
			"of":      attempts,
		}).WithError(err).Warn("database unavailable, waiting")
		if i < attempts {
			time.Sleep(dbWaitInterval)
		}
	}
	return nil, fmt.Errorf("database not available after %d attempts: %w", attempts, lastErr)
}

func enableUUIDExtension(db *gorm.DB) error {
	return db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.AirplaneType{},
		&models.Airplane{},
		&models.Crew{},
		&models.Country{},
		&models.City{},
		&models.Airport{},
		&models.Route{},
		&models.Flight{},
		&models.Order{},
		&models.Ticket{},
	)
}

func seedRoles(db *gorm.DB) error {
	roles := []models.Role{
		{Name: models.RoleAdmin},
		{Name: models.RoleCustomer},
	}

	for _, role := range roles {
		var existingRole models.Role
		err := db.Where("name = ?", role.Name).First(&existingRole).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&role).Error; err != nil {
				return fmt.Errorf("failed to seed role %s: %w", role.Name, err)
			}
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func seedAdmin(db *gorm.DB, cfg *Config, log *logrus.Logger) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	var existing models.User
	err := db.Where("email = ?", cfg.AdminEmail).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	var role models.Role
	if err := db.Where("name = ?", models.RoleAdmin).First(&role).Error; err != nil {
		return fmt.Errorf("admin role missing: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:    cfg.AdminEmail,
		Password: string(hashedPassword),
		RoleID:   role.ID,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}
	log.WithField("email", admin.Email).Info("admin account created")
	return nil
}

func gormLogLevel(level logrus.Level) logger.LogLevel {
	switch {
	case level >= logrus.DebugLevel:
		return logger.Info
	case level >= logrus.WarnLevel:
		return logger.Warn
	default:
		return logger.Error
	}
}
