package models

import (
	"strings"
	"time"
	"unicode/utf8"
)

// GuestsCallUs is the guests sentinel for parties of seven or more. Those
// parties are asked to call; the request is still forwarded.
const GuestsCallUs = "7+"

const DefaultGuests = "2"

// TimeSlots are the bookable seatings, half-hourly from 6:00 PM to 10:00 PM.
var TimeSlots = []string{
	"6:00 PM", "6:30 PM", "7:00 PM", "7:30 PM", "8:00 PM",
	"8:30 PM", "9:00 PM", "9:30 PM", "10:00 PM",
}

var GuestOptions = []string{"1", "2", "3", "4", "5", "6", GuestsCallUs}

type ReservationState string

const (
	ReservationEditing    ReservationState = "editing"
	ReservationSubmitting ReservationState = "submitting"
	ReservationConfirmed  ReservationState = "confirmed"
	ReservationFailed     ReservationState = "failed"
)

// ReservationRequest is the reservation draft as typed into the form.
type ReservationRequest struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Phone   string `json:"phone" form:"phone"`
	Date    string `json:"date" form:"date"`
	Time    string `json:"time" form:"time"`
	Guests  string `json:"guests" form:"guests"`
	Message string `json:"message" form:"message"`
}

func NewReservationRequest() ReservationRequest {
	return ReservationRequest{Guests: DefaultGuests}
}

// MissingField returns the first required field that is empty, or "" when
// the draft may be submitted. Only presence is checked.
func (r ReservationRequest) MissingField() string {
	required := []struct {
		name  string
		value string
		legal []string
	}{
		{"name", r.Name, nil},
		{"email", r.Email, nil},
		{"phone", r.Phone, nil},
		{"date", r.Date, nil},
		{"time", r.Time, TimeSlots},
		{"guests", r.Guests, GuestOptions},
	}
	for _, f := range required {
		v := strings.TrimSpace(f.value)
		if v == "" {
			return f.name
		}
		if f.legal != nil && !contains(f.legal, v) {
			return f.name
		}
	}
	return ""
}

func (r ReservationRequest) IsLargeParty() bool {
	return strings.TrimSpace(r.Guests) == GuestsCallUs
}

// Set assigns one form field by its input name.
func (r *ReservationRequest) Set(field, value string) error {
	switch field {
	case "name":
		r.Name = value
	case "email":
		r.Email = value
	case "phone":
		r.Phone = value
	case "date":
		r.Date = value
	case "time":
		r.Time = value
	case "guests":
		r.Guests = value
	case "message":
		r.Message = value
	default:
		return ValidationError{Field: field, Msg: "unknown reservation field"}
	}
	return nil
}

// Column widths of the inbox table. NewReservationRecord clips free text to
// them so strict-mode MySQL never refuses a row for length.
const (
	nameWidth   = 255
	emailWidth  = 255
	phoneWidth  = 50
	dateWidth   = 32
	timeWidth   = 16
	guestsWidth = 4
)

// ReservationRecord is a forwarded request as it lands in the back-office inbox.
// idx_reservation_slot allows one waiting request per guest and seating.
type ReservationRecord struct {
	ID         uint      `gorm:"primaryKey"`
	Reference  string    `gorm:"type:varchar(40);uniqueIndex;not null"`
	Name       string    `gorm:"type:varchar(255);not null"`
	Email      string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_reservation_slot,priority:1"`
	Phone      string    `gorm:"type:varchar(50);not null"`
	Date       string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_reservation_slot,priority:2"`
	Time       string    `gorm:"type:varchar(16);not null;uniqueIndex:idx_reservation_slot,priority:3"`
	Guests     string    `gorm:"type:varchar(4);not null"`
	LargeParty bool      `gorm:"not null;default:false"`
	Message    string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"not null"`
}

func (ReservationRecord) TableName() string {
	return "reservation_requests"
}

func NewReservationRecord(reference string, r ReservationRequest) ReservationRecord {
	return ReservationRecord{
		Reference:  reference,
		Name:       clip(r.Name, nameWidth),
		Email:      clip(r.Email, emailWidth),
		Phone:      clip(r.Phone, phoneWidth),
		Date:       clip(r.Date, dateWidth),
		Time:       clip(r.Time, timeWidth),
		Guests:     clip(r.Guests, guestsWidth),
		LargeParty: r.IsLargeParty(),
		Message:    r.Message,
	}
}

// clip trims s and cuts it to at most width characters.
func clip(s string, width int) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:width]))
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

const ReasonUnavailable = "we could not reach the reservation desk, please try again or call us"

// ReservationOutcome is the back office's answer to a forwarded request.
type ReservationOutcome struct {
	Accepted  bool   `json:"accepted"`
	Reason    string `json:"reason,omitempty"`
	Reference string `json:"reference,omitempty"`
}

func Accepted(reference string) ReservationOutcome {
	return ReservationOutcome{Accepted: true, Reference: reference}
}

func Rejected(reason string) ReservationOutcome {
	return ReservationOutcome{Reason: reason}
}
