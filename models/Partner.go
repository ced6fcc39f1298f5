package models

import "time"

// Partner categories as they appear in storefront route segments.
var PartnerCategories = []string{"course", "beauty", "performance", "travel", "food"}

// Partner is an external business offering scheduled experiences.
type Partner struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"not null"`
	Category    string `json:"category" gorm:"size:20;index;not null"` // course | beauty | performance | travel | food
	Description string `json:"description" gorm:"type:text"`
	Image       string `json:"image"`
	Phone       string `json:"phone" gorm:"size:20"`
	Address     string `json:"address"`
	Status      string `json:"status" gorm:"size:12;default:'approved';index"` // pending | approved | hidden

	Schedules []Schedule `json:"schedules" gorm:"polymorphic:Owner;polymorphicValue:partner"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
