package models

import (
	"time"

	"gorm.io/datatypes"
)

// Order lifecycle statuses handled by the back-office.
var OrderStatuses = []string{"paid", "preparing", "shipped", "delivered", "cancelled"}

// Return flow statuses. "none" means no return was requested.
var ReturnStatuses = []string{"none", "requested", "approved", "rejected", "refunded"}

// Order is a product purchase with mock payment. Shipping, invoice and
// return handling live on the same record.
type Order struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	UserID   uint   `json:"userID" gorm:"index;not null"`
	UserName string `json:"userName"`

	// Items is a JSON array of {productID, name, price, quantity}.
	Items datatypes.JSON `json:"items" gorm:"type:jsonb"`
	Total float64        `json:"total" gorm:"not null"`

	Status        string `json:"status" gorm:"size:12;default:'paid';index"` // paid | preparing | shipped | delivered | cancelled
	PaymentMethod string `json:"paymentMethod" gorm:"size:20"`
	PaymentStatus string `json:"paymentStatus" gorm:"size:12;default:'paid'"`

	ShippingAddress string `json:"shippingAddress"`
	TrackingNumber  string `json:"trackingNumber" gorm:"size:40"`
	InvoiceNumber   string `json:"invoiceNumber" gorm:"size:40;index"`

	ReturnStatus string `json:"returnStatus" gorm:"size:12;default:'none'"` // none | requested | approved | rejected | refunded
	ReturnReason string `json:"returnReason"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
