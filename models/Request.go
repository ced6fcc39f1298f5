package models

import "time"

// Request kinds. A kind selects the status vocabulary below.
const (
	RequestKindPartner = "partner"
	RequestKindAgent   = "agent"
	RequestKindContent = "content"
)

// Status vocabularies per kind. Partner/agent requests walk the back-office
// pipeline; content requests are purchase approvals.
var (
	PartnerRequestStatuses = []string{"pending", "approved", "sent_to_partner", "confirmation_sent"}
	ContentRequestStatuses = []string{"pending", "approved", "rejected", "paid"}
)

// Request is a user's application against a schedule or a content offering.
// Repeated submissions with identical content are all retained; repurchase
// is always allowed.
type Request struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Kind string `json:"kind" gorm:"size:12;index;not null"` // partner | agent | content

	// TargetID is the owning partner, agent or freelancer ID.
	TargetID uint   `json:"targetID" gorm:"index;not null"`
	UserID   uint   `json:"userID" gorm:"index;not null"`
	UserName string `json:"userName"`

	ScheduleID    uint   `json:"scheduleID" gorm:"index"`
	ScheduleTitle string `json:"scheduleTitle"`
	ScheduleDate  string `json:"scheduleDate" gorm:"size:10"`

	// ContentID is set for content-kind requests only.
	ContentID uint `json:"contentID"`

	Status string `json:"status" gorm:"size:20;index"`

	PaymentStatus string  `json:"paymentStatus" gorm:"size:12"` // pending | paid
	PaymentAmount float64 `json:"paymentAmount"`
	PaymentMethod string  `json:"paymentMethod" gorm:"size:20"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RequestStatuses returns the valid status values for a request kind.
func RequestStatuses(kind string) []string {
	if kind == RequestKindContent {
		return ContentRequestStatuses
	}
	return PartnerRequestStatuses
}

// ValidRequestStatus reports whether status belongs to the kind's vocabulary.
func ValidRequestStatus(kind, status string) bool {
	for _, s := range RequestStatuses(kind) {
		if s == status {
			return true
		}
	}
	return false
}
