package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/yeremiapane/blackfish/models"
	"gorm.io/gorm"
)

const ReasonDuplicate = "a request for this date and time is already waiting for our staff"

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

// SQLBackOffice drops requests into the reservation_requests inbox that the
// venue's staff tooling works from.
type SQLBackOffice struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewSQLBackOffice(db *gorm.DB) *SQLBackOffice {
	return &SQLBackOffice{DB: db, Now: time.Now}
}

func (b *SQLBackOffice) Accept(ctx context.Context, req models.ReservationRequest) (models.ReservationOutcome, error) {
	record := models.NewReservationRecord(NewReference(), req)
	record.CreatedAt = b.Now()

	var outcome models.ReservationOutcome
	err := b.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pending int64
		if err := tx.Model(&models.ReservationRecord{}).
			Where("email = ? AND date = ? AND time = ?", record.Email, record.Date, record.Time).
			Count(&pending).Error; err != nil {
			return fmt.Errorf("check pending requests: %w", err)
		}
		if pending > 0 {
			outcome = models.Rejected(ReasonDuplicate)
			return nil
		}
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("store reservation request: %w", err)
		}
		outcome = models.Accepted(record.Reference)
		return nil
	})
	if err != nil {
		// a concurrent request for the same seating won the insert
		if isDuplicateKey(err) {
			return models.Rejected(ReasonDuplicate), nil
		}
		return models.ReservationOutcome{}, err
	}
	return outcome, nil
}

// isDuplicateKey reports a unique index violation, translated by gorm or
// still in the MySQL driver's form.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *gomysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry
}

// PendingFor lists inbox rows for one guest email, newest first.
func (b *SQLBackOffice) PendingFor(ctx context.Context, email string) ([]models.ReservationRecord, error) {
	var records []models.ReservationRecord
	err := b.DB.WithContext(ctx).
		Where("email = ?", strings.TrimSpace(email)).
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}
