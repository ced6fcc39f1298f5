package models

import "time"

// Freelancer sells standalone content offerings (no schedule capacity).
type Freelancer struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"not null"`
	Field string `json:"field" gorm:"size:40;index"` // design, video, writing, ...
	Bio   string `json:"bio" gorm:"type:text"`
	Image string `json:"image"`

	Contents []Content `json:"contents" gorm:"foreignKey:FreelancerID"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Content is a purchasable item in the freelancer marketplace.
type Content struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	FreelancerID uint       `json:"freelancerID" gorm:"not null;index"`
	Freelancer   Freelancer `json:"-" gorm:"foreignKey:FreelancerID"`

	Title       string  `json:"title" gorm:"not null"`
	Description string  `json:"description" gorm:"type:text"`
	Price       float64 `json:"price"`
	Thumbnail   string  `json:"thumbnail"`
	Status      string  `json:"status" gorm:"size:12;default:'live';index"` // draft | live | hidden

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
