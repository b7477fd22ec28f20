package domain

// Admin roles.
const (
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPER_ADMIN"
)

// OwnerType identifies which side of the platform a wallet or transaction belongs to.
type OwnerType string

const (
	OwnerModel    OwnerType = "model"
	OwnerCustomer OwnerType = "customer"
)

func (o OwnerType) Valid() bool {
	return o == OwnerModel || o == OwnerCustomer
}

// TransactionIdentifier tags what a transaction row represents. Values are stored
// as-is in the database and shared with the client backend.
type TransactionIdentifier string

const (
	TxRecharge TransactionIdentifier = "recharge"
	TxWithdraw TransactionIdentifier = "withdraw"
	// TxWithdrawal is a legacy alias for TxWithdraw still present in old rows.
	TxWithdrawal     TransactionIdentifier = "withdrawal"
	TxDeposit        TransactionIdentifier = "deposit"
	TxPayment        TransactionIdentifier = "payment"
	TxBookingHold    TransactionIdentifier = "booking_hold"
	TxBookingRefund  TransactionIdentifier = "booking_refund"
	TxBookingEarning TransactionIdentifier = "booking_earning"
)

// IsWithdrawalLike reports whether the identifier debits the withdrawable side
// of a wallet when approved.
func (t TransactionIdentifier) IsWithdrawalLike() bool {
	return t == TxWithdraw || t == TxWithdrawal || t == TxDeposit
}

// TransactionStatus is the lifecycle state of a transaction. Statuses only move
// forward; terminal states are never left.
type TransactionStatus string

const (
	TxStatusPending  TransactionStatus = "pending"
	TxStatusApproved TransactionStatus = "approved"
	TxStatusRejected TransactionStatus = "rejected"
	TxStatusHeld     TransactionStatus = "held"
	TxStatusReleased TransactionStatus = "released"
	TxStatusRefunded TransactionStatus = "refunded"
)

var txTransitions = map[TransactionStatus][]TransactionStatus{
	TxStatusPending: {TxStatusApproved, TxStatusRejected},
	TxStatusHeld:    {TxStatusReleased, TxStatusRefunded},
	// approved, rejected, released, refunded are terminal
}

// CanTransitionTo reports whether moving from s to next is a legal forward transition.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	for _, allowed := range txTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether s admits no further transitions.
func (s TransactionStatus) Terminal() bool {
	return len(txTransitions[s]) == 0
}

// Decision records how an admin resolved a pending transaction.
type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

// BookingStatus is the lifecycle state of a service booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
	BookingRejected  BookingStatus = "rejected"
	BookingDisputed  BookingStatus = "disputed"
)

// AllowsCompensation reports whether a booking whose hold already left "held"
// may still be refunded or completed. Confirmed and disputed bookings keep both
// compensating actions reachable so late disputes can be resolved.
func (s BookingStatus) AllowsCompensation() bool {
	return s == BookingConfirmed || s == BookingDisputed
}

// BookingPaymentStatus tracks the money side of a booking independently of its
// service status.
type BookingPaymentStatus string

const (
	PaymentHeld     BookingPaymentStatus = "held"
	PaymentReleased BookingPaymentStatus = "released"
	PaymentRefunded BookingPaymentStatus = "refunded"
)

// SubscriptionStatus is the lifecycle state of a customer subscription.
type SubscriptionStatus string

const (
	SubscriptionPendingPayment SubscriptionStatus = "pending_payment"
	SubscriptionActive         SubscriptionStatus = "active"
	SubscriptionExpired        SubscriptionStatus = "expired"
)

var subscriptionTransitions = map[SubscriptionStatus][]SubscriptionStatus{
	SubscriptionPendingPayment: {SubscriptionActive, SubscriptionExpired},
	SubscriptionActive:         {SubscriptionExpired},
}

func (s SubscriptionStatus) CanTransitionTo(next SubscriptionStatus) bool {
	for _, allowed := range subscriptionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// WalletStatus gates whether a wallet can move money.
type WalletStatus string

const (
	WalletActive    WalletStatus = "active"
	WalletSuspended WalletStatus = "suspended"
)

// AuditStatus marks a workflow invocation outcome in the audit log.
type AuditStatus string

const (
	AuditSuccess AuditStatus = "success"
	AuditFailed  AuditStatus = "failed"
)

// Referral commission defaults; overridable via system settings.
const (
	ReferralCommissionPercent = 5
	ReferralMaxBookings       = 2
)

// System setting keys.
const (
	SettingReferralCommissionPercent = "referral_commission_percent"
	SettingReferralMaxBookings       = "referral_max_bookings"
)
