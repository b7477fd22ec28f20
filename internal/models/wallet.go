package models

import (
	"time"

	"github.com/xaosao/xaosao-admin-sub001/internal/domain"

	"gorm.io/gorm"
)

// Wallet holds running balance totals for exactly one owner: a model or a
// customer, never both. All amounts are integer cents. Available balance is
// derived, never stored — see AvailableBalanceCents.
type Wallet struct {
	ID         uint  `gorm:"primaryKey" json:"id"`
	ModelID    *uint `gorm:"uniqueIndex" json:"model_id"`
	CustomerID *uint `gorm:"uniqueIndex" json:"customer_id"`

	TotalBalanceCents int64 `gorm:"not null;default:0" json:"total_balance_cents"`
	// TotalRechargeCents is kept for compatibility with the client backend's
	// reporting; no workflow reads it back.
	TotalRechargeCents int64 `gorm:"not null;default:0" json:"total_recharge_cents"`
	TotalWithdrawCents int64 `gorm:"not null;default:0" json:"total_withdraw_cents"`
	TotalDepositCents  int64 `gorm:"not null;default:0" json:"total_deposit_cents"`
	TotalSpendCents    int64 `gorm:"not null;default:0" json:"total_spend_cents"`
	TotalRefundedCents int64 `gorm:"not null;default:0" json:"total_refunded_cents"`
	TotalPendingCents  int64 `gorm:"not null;default:0" json:"total_pending_cents"`

	Status    domain.WalletStatus `gorm:"size:20;not null;default:'active';index" json:"status"`
	Currency  string              `gorm:"size:3;default:'USD'" json:"currency"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
	DeletedAt gorm.DeletedAt      `gorm:"index" json:"-"`

	Model    *Model    `gorm:"foreignKey:ModelID" json:"-"`
	Customer *Customer `gorm:"foreignKey:CustomerID" json:"-"`
}

func (Wallet) TableName() string {
	return "wallets"
}

// OwnerType reports which side owns this wallet.
func (w *Wallet) OwnerType() domain.OwnerType {
	if w.ModelID != nil {
		return domain.OwnerModel
	}
	return domain.OwnerCustomer
}

// AvailableBalanceCents is the single place the derived balance is computed.
// Models: totalBalance − totalWithdraw. Customers: totalBalance − totalSpend +
// totalRefunded. Callers must not re-apply either derivation.
func (w *Wallet) AvailableBalanceCents() int64 {
	if w.OwnerType() == domain.OwnerModel {
		return w.TotalBalanceCents - w.TotalWithdrawCents
	}
	return w.TotalBalanceCents - w.TotalSpendCents + w.TotalRefundedCents
}
