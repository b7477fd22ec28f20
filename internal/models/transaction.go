package models

import (
	"time"

	"github.com/xaosao/xaosao-admin-sub001/internal/domain"

	"gorm.io/gorm"
)

// Transaction is the ledger row every money movement hangs off. Rows are never
// deleted; status only moves forward. Holds are stored with a negative amount.
type Transaction struct {
	ID         uint                         `gorm:"primaryKey" json:"id"`
	Identifier domain.TransactionIdentifier `gorm:"size:30;not null;index" json:"identifier"`
	Status     domain.TransactionStatus     `gorm:"size:20;not null;index" json:"status"`

	AmountCents     int64 `gorm:"not null" json:"amount_cents"`
	CommissionCents int64 `gorm:"not null;default:0" json:"commission_cents"`
	FeeCents        int64 `gorm:"not null;default:0" json:"fee_cents"`

	ModelID    *uint `gorm:"index" json:"model_id"`
	CustomerID *uint `gorm:"index" json:"customer_id"`
	// BookingID is the structured link to a service booking. Reason stays
	// free text; old rows created before this column may only carry a
	// "booking #<ref>" fragment in Reason.
	BookingID *uint `gorm:"index" json:"booking_id"`

	Reason       string `gorm:"size:512" json:"reason"`
	RejectReason string `gorm:"size:512" json:"reject_reason"`

	ProcessedByID *uint           `gorm:"index" json:"processed_by_id"`
	Decision      domain.Decision `gorm:"size:20" json:"decision"`
	ProcessedAt   *time.Time      `json:"processed_at"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Model       *Model    `gorm:"foreignKey:ModelID" json:"model,omitempty"`
	Customer    *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	ProcessedBy *User     `gorm:"foreignKey:ProcessedByID" json:"-"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// AbsAmountCents returns the magnitude of the amount; hold transactions store
// their amount negative.
func (t *Transaction) AbsAmountCents() int64 {
	if t.AmountCents < 0 {
		return -t.AmountCents
	}
	return t.AmountCents
}

// OwnerType reports which wallet side the transaction settles against.
// Payment transactions reference both sides; the customer pays, so customer wins.
func (t *Transaction) OwnerType() domain.OwnerType {
	if t.CustomerID != nil {
		return domain.OwnerCustomer
	}
	return domain.OwnerModel
}
