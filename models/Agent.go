package models

import "time"

// Agent is a booking intermediary with its own schedule catalog. Same
// storefront shape as Partner but a separate back-office and admin role.
type Agent struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"not null"`
	Category    string `json:"category" gorm:"size:20;index;not null"` // course | beauty | performance | travel | food
	Description string `json:"description" gorm:"type:text"`
	Image       string `json:"image"`
	Phone       string `json:"phone" gorm:"size:20"`
	Address     string `json:"address"`
	Status      string `json:"status" gorm:"size:12;default:'approved';index"` // pending | approved | hidden

	Schedules []Schedule `json:"schedules" gorm:"polymorphic:Owner;polymorphicValue:agent"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
