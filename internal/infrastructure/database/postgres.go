package database

import (
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ahashem12/LaunchpadX-sub001/internal/infrastructure/database/models"
)

// newGormLogger routes gorm's warnings and slow query reports into log.
func newGormLogger(log *zap.Logger) (logger.Interface, error) {
	stdLog, err := zap.NewStdLogAt(log.Named("gorm"), zap.WarnLevel)
	if err != nil {
		return nil, errors.Wrap(err, "gorm logger")
	}
	return logger.New(
		stdLog,
		logger.Config{
			SlowThreshold:             300 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	), nil
}

func NewPostgres(dsn string, log *zap.Logger) (*gorm.DB, error) {
	gormLogger, err := newGormLogger(log)
	if err != nil {
		return nil, err
	}

	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger,
	})
}

func MigratePostgres(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Profile{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Role{},
		&models.RoleApplication{},
		&models.NextStep{},
		&models.EcosystemEntry{},
	)
}
