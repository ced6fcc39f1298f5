package models

import "gorm.io/gorm"

// User is a storefront member. IsCompany selects which schedule price
// applies during booking.
type User struct {
	gorm.Model
	Name        string `json:"name"`
	Email       string `json:"email" gorm:"uniqueIndex"`
	Password    string `json:"-"`
	Phone       string `json:"phone" gorm:"size:20"`
	IsCompany   bool   `json:"isCompany"`
	CompanyName string `json:"companyName"`
	Role        string `json:"role" gorm:"type:varchar(20);default:user;index"` // user, admin
}
