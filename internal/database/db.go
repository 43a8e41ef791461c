package database

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/justsurfingit/trackjob/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"moul.io/zapgorm2"
)

// Connect opens the database for driver ("postgres" or "sqlite") and runs
// the migrations.
func Connect(driver, dsn string, logger *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	gormLogger := zapgorm2.New(logger.Named("gorm"))
	gormLogger.IgnoreRecordNotFoundError = true

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", driver, err)
	}
	logger.Info("database connection established", zap.String("driver", driver))

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates every table the server uses.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Job{},
		&models.FollowUp{},
		&models.EmailSettings{},
		&models.DispatchedFollowUp{},
	)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
