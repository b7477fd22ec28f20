package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/xaosao/xaosao-admin-sub001/internal/domain"
	"github.com/xaosao/xaosao-admin-sub001/internal/models"
	"github.com/xaosao/xaosao-admin-sub001/internal/repository"

	"gorm.io/gorm"
)

// ReferralResult reports whether a booking completion paid a referral commission.
type ReferralResult struct {
	Paid            bool  `json:"paid"`
	ReferrerModelID uint  `json:"referrer_model_id,omitempty"`
	CommissionCents int64 `json:"commission_cents,omitempty"`
}

// ReferralService pays referrers a cut of their referred models' first
// qualifying completed bookings.
type ReferralService struct {
	db           *gorm.DB
	referralRepo *repository.ReferralRepository
	settingRepo  *repository.SettingRepository
}

func NewReferralService(db *gorm.DB, referralRepo *repository.ReferralRepository, settingRepo *repository.SettingRepository) *ReferralService {
	return &ReferralService{db: db, referralRepo: referralRepo, settingRepo: settingRepo}
}

// ProcessBookingReferralCommission credits the referrer of modelID with a
// percentage of totalAmountCents for a completed booking. No-op when the model
// was not referred or the referral already exhausted its qualifying bookings.
func (s *ReferralService) ProcessBookingReferralCommission(modelID uint, totalAmountCents int64, bookingID uint) (*ReferralResult, error) {
	ref, err := s.referralRepo.GetByReferredModelID(modelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ReferralResult{}, nil
		}
		return nil, err
	}
	maxBookings := s.settingInt(domain.SettingReferralMaxBookings, domain.ReferralMaxBookings)
	if ref.CompletedCount >= maxBookings {
		return &ReferralResult{}, nil
	}
	percent := s.settingInt(domain.SettingReferralCommissionPercent, domain.ReferralCommissionPercent)
	commission := totalAmountCents * int64(percent) / 100
	if commission <= 0 {
		return &ReferralResult{}, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		wallets := repository.NewWalletRepository(tx)
		wallet, err := wallets.GetOrCreate(domain.OwnerModel, ref.ReferrerModelID)
		if err != nil {
			return err
		}
		wallet.TotalBalanceCents += commission
		if err := wallets.Update(wallet); err != nil {
			return err
		}

		now := time.Now()
		if err := repository.NewTransactionRepository(tx).Create(&models.Transaction{
			Identifier:  domain.TxPayment,
			Status:      domain.TxStatusApproved,
			AmountCents: commission,
			ModelID:     &ref.ReferrerModelID,
			BookingID:   &bookingID,
			Reason:      fmt.Sprintf("referral commission for model %d booking %d", modelID, bookingID),
			Decision:    domain.DecisionApproved,
			ProcessedAt: &now,
		}); err != nil {
			return err
		}

		return repository.NewReferralRepository(tx).IncrementCompletedCount(ref.ID)
	})
	if err != nil {
		return nil, err
	}
	return &ReferralResult{Paid: true, ReferrerModelID: ref.ReferrerModelID, CommissionCents: commission}, nil
}

func (s *ReferralService) settingInt(key string, fallback int) int {
	val, err := s.settingRepo.Get(key)
	if err != nil || val == "" {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return n
}
