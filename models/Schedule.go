package models

import (
	"encoding/json"
	"time"
)

// Schedule label values shown on catalog cards.
const (
	ScheduleOpenLabel   = "신청 가능"
	ScheduleClosedLabel = "마감"
)

// Schedule is a bookable time slot owned by a partner or an agent.
// Invariant: CurrentSlots <= MaxSlots; when equal the schedule is closed
// to new applications.
type Schedule struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	OwnerType string `json:"ownerType" gorm:"size:12;index:idx_schedule_owner;not null"` // partner | agent
	OwnerID   uint   `json:"ownerID" gorm:"index:idx_schedule_owner;not null"`

	Date        string `json:"date" gorm:"size:10;not null"` // "2006-01-02"
	Time        string `json:"time" gorm:"size:5"`           // "14:00"
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`

	MaxSlots     int `json:"maxSlots" gorm:"not null"`
	CurrentSlots int `json:"currentSlots" gorm:"default:0"`

	// Zero/absent price means the booking is free for that viewer mode.
	PersonalPrice float64 `json:"personalPrice"`
	CompanyPrice  float64 `json:"companyPrice"`

	DetailImage string `json:"detailImage"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsClosed reports whether the schedule accepts no further applications.
func (s *Schedule) IsClosed() bool {
	return s.CurrentSlots >= s.MaxSlots
}

// MarshalJSON adds the computed open/closed label the storefront renders.
func (s *Schedule) MarshalJSON() ([]byte, error) {
	type Alias Schedule
	label := ScheduleOpenLabel
	if s.IsClosed() {
		label = ScheduleClosedLabel
	}
	return json.Marshal(&struct {
		*Alias
		Status string `json:"status"`
	}{
		Alias:  (*Alias)(s),
		Status: label,
	})
}
