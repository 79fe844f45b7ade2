package database

import (
	"github.com/yeremiapane/blackfish/models"
	"github.com/yeremiapane/blackfish/utils"
	"gorm.io/gorm"
)

// Migrate creates or updates the back-office inbox table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.ReservationRecord{}); err != nil {
		return err
	}

	var count int64
	if err := db.Model(&models.ReservationRecord{}).Count(&count).Error; err != nil {
		return err
	}
	utils.InfoLogger.Printf("Back office inbox ready (%d pending requests)", count)
	return nil
}
