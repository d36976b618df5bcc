package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Options holds the Postgres connection parameters.
type Options struct {
	User     string
	Password string
	DBName   string
	Host     string
	Port     string
	SSLMode  string
	TimeZone string
}

// Connect opens a GORM Postgres connection with a bounded retry loop,
// tunes the pool and runs AutoMigrate for the given models.
func Connect(logger *zap.Logger, opts Options, autoMigrateModels ...interface{}) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		opts.Host, opts.User, opts.Password, opts.DBName, opts.Port, opts.SSLMode, opts.TimeZone,
	)

	var db *gorm.DB
	var err error

	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			break
		}
		logger.Warn("Postgres not ready, retrying",
			zap.Int("attempt", i+1),
			zap.Error(err),
		)
		time.Sleep(3 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres after retries: %w", err)
	}

	sqlDB, poolErr := db.DB()
	if poolErr == nil {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	logger.Info("Connected to PostgreSQL successfully")

	if len(autoMigrateModels) > 0 {
		if err := db.AutoMigrate(autoMigrateModels...); err != nil {
			return nil, fmt.Errorf("auto migration failed: %w", err)
		}
		logger.Info("Database migration completed")
	}

	return db, nil
}

// Close closes the underlying sql.DB.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
