package config

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the back-office inbox database. It returns nil for the
// simulated back office.
func InitDB(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.BackOffice {
	case BackOfficeSimulated:
		return nil, nil
	case BackOfficeMySQL:
		dialector = mysql.Open(cfg.BackOfficeDSN)
	case BackOfficeSQLite:
		dialector = sqlite.Open(cfg.BackOfficeDSN)
	default:
		return nil, fmt.Errorf("unsupported back office driver %q", cfg.BackOffice)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s back office: %w", cfg.BackOffice, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}
