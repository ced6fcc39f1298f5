package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Product is a storefront item sold outside the booking flow.
type Product struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"not null"`
	Category    string         `json:"category" gorm:"size:20;index"`
	Description string         `json:"description" gorm:"type:text"`
	Price       float64        `json:"price" gorm:"not null"`
	Stock       int            `json:"stock" gorm:"default:0"`
	Images      datatypes.JSON `json:"images" gorm:"type:jsonb"`
	Status      string         `json:"status" gorm:"size:12;default:'live';index"` // draft | live | hidden

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MarshalJSON unwraps the Images JSON column into a plain string array.
func (p *Product) MarshalJSON() ([]byte, error) {
	type Alias Product
	aux := &struct {
		Images []string `json:"images"`
		*Alias
	}{
		Images: []string{},
		Alias:  (*Alias)(p),
	}
	if p.Images != nil {
		var images []string
		if err := json.Unmarshal(p.Images, &images); err == nil {
			aux.Images = images
		}
	}
	return json.Marshal(aux)
}
