package models

import "time"

// Admin roles. Non-super roles carry a TargetID scoping visibility to one
// partner, agent or freelancer record.
const (
	RoleSuper      = "super"
	RolePartner    = "partner"
	RoleAgent      = "agent"
	RoleFreelancer = "freelancer"
)

var AdminRoles = []string{RoleSuper, RolePartner, RoleAgent, RoleFreelancer}

// AdminAccount is a back-office credential. Managed by super admins only.
type AdminAccount struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Username string `json:"username" gorm:"uniqueIndex;not null"`
	Password string `json:"-" gorm:"not null"`
	Role     string `json:"role" gorm:"size:12;index;not null"` // super | partner | agent | freelancer
	TargetID uint   `json:"targetID"`                           // zero for super

	LastLoginAt *time.Time `json:"lastLoginAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ValidAdminRole reports whether role is a known admin role.
func ValidAdminRole(role string) bool {
	for _, r := range AdminRoles {
		if r == role {
			return true
		}
	}
	return false
}
