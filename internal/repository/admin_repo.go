package repository

import (
	"github.com/xaosao/xaosao-admin-sub001/internal/domain"
	"github.com/xaosao/xaosao-admin-sub001/internal/models"

	"gorm.io/gorm"
)

type DashboardStats struct {
	TotalModels         int64 `json:"total_models"`
	TotalCustomers      int64 `json:"total_customers"`
	TotalTransactions   int64 `json:"total_transactions"`
	PendingTransactions int64 `json:"pending_transactions"`
	HeldTransactions    int64 `json:"held_transactions"`
	TotalBookings       int64 `json:"total_bookings"`
	DisputedBookings    int64 `json:"disputed_bookings"`
	TotalRevenueCents   int64 `json:"total_revenue_cents"`
	CommissionCents     int64 `json:"commission_cents"`
	TotalReferrals      int64 `json:"total_referrals"`
}

type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) GetDashboardStats() (*DashboardStats, error) {
	var s DashboardStats
	r.db.Model(&models.Model{}).Count(&s.TotalModels)
	r.db.Model(&models.Customer{}).Count(&s.TotalCustomers)
	r.db.Model(&models.Transaction{}).Count(&s.TotalTransactions)
	r.db.Model(&models.Transaction{}).Where("status = ?", domain.TxStatusPending).Count(&s.PendingTransactions)
	r.db.Model(&models.Transaction{}).Where("status = ?", domain.TxStatusHeld).Count(&s.HeldTransactions)
	r.db.Model(&models.ServiceBooking{}).Count(&s.TotalBookings)
	r.db.Model(&models.ServiceBooking{}).Where("status = ?", domain.BookingDisputed).Count(&s.DisputedBookings)

	var rev struct{ Total int64 }
	r.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount_cents), 0) as total").
		Where("identifier = ? AND status = ?", domain.TxRecharge, domain.TxStatusApproved).
		Scan(&rev)
	s.TotalRevenueCents = rev.Total

	var comm struct{ Total int64 }
	r.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(commission_cents), 0) as total").
		Where("status IN ?", []domain.TransactionStatus{domain.TxStatusApproved, domain.TxStatusReleased}).
		Scan(&comm)
	s.CommissionCents = comm.Total

	r.db.Model(&models.Referral{}).Count(&s.TotalReferrals)
	return &s, nil
}
