package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/xaosao/xaosao-admin-sub001/internal/database"
	"github.com/xaosao/xaosao-admin-sub001/internal/domain"
	"github.com/xaosao/xaosao-admin-sub001/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// One shared in-memory database per test so every pooled connection sees
	// the same tables.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open test database")
	require.NoError(t, database.AutoMigrate(db), "failed to migrate test database")
	return db
}

func newTestLedger(db *gorm.DB) *LedgerService {
	return NewLedgerService(db, nil, nil)
}

func createAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	u := &models.User{
		Username:     "ops",
		Email:        "ops@example.com",
		PasswordHash: "x",
		Role:         domain.RoleAdmin,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func createModel(t *testing.T, db *gorm.DB, name string) *models.Model {
	t.Helper()
	m := &models.Model{
		DisplayName: name,
		Email:       name + "@example.com",
		IsActive:    true,
	}
	require.NoError(t, db.Create(m).Error)
	return m
}

func createCustomer(t *testing.T, db *gorm.DB, username string) *models.Customer {
	t.Helper()
	c := &models.Customer{
		Username: username,
		Email:    username + "@example.com",
		IsActive: true,
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

func createWallet(t *testing.T, db *gorm.DB, owner domain.OwnerType, ownerID uint, mutate func(*models.Wallet)) *models.Wallet {
	t.Helper()
	w := &models.Wallet{Status: domain.WalletActive, Currency: "USD"}
	if owner == domain.OwnerModel {
		w.ModelID = &ownerID
	} else {
		w.CustomerID = &ownerID
	}
	if mutate != nil {
		mutate(w)
	}
	require.NoError(t, db.Create(w).Error)
	return w
}

func reloadWallet(t *testing.T, db *gorm.DB, id uint) *models.Wallet {
	t.Helper()
	var w models.Wallet
	require.NoError(t, db.First(&w, id).Error)
	return &w
}

func reloadTransaction(t *testing.T, db *gorm.DB, id uint) *models.Transaction {
	t.Helper()
	var tx models.Transaction
	require.NoError(t, db.First(&tx, id).Error)
	return &tx
}

// bookingFixture is a complete escrowed booking: hold transaction, booking
// row, both parties and the customer wallet.
type bookingFixture struct {
	Model    *models.Model
	Customer *models.Customer
	Booking  *models.ServiceBooking
	Hold     *models.Transaction
	Wallet   *models.Wallet // customer wallet
}

// createBookingFixture wires a held booking for priceCents with the given
// platform commission. The hold amount is stored negative, the booking linked
// both ways (FK and hold back-reference).
func createBookingFixture(t *testing.T, db *gorm.DB, priceCents int64, commissionPercent int, reference string) *bookingFixture {
	t.Helper()
	m := createModel(t, db, "model-"+reference)
	c := createCustomer(t, db, "customer-"+reference)
	wallet := createWallet(t, db, domain.OwnerCustomer, c.ID, func(w *models.Wallet) {
		w.TotalBalanceCents = priceCents * 2
		w.TotalSpendCents = priceCents
	})

	svc := &models.Service{Name: "companionship", CommissionPercent: commissionPercent}
	require.NoError(t, db.Create(svc).Error)
	ms := &models.ModelService{ModelID: m.ID, ServiceID: svc.ID, PriceCents: priceCents, IsActive: true}
	require.NoError(t, db.Create(ms).Error)

	hold := &models.Transaction{
		Identifier:  domain.TxBookingHold,
		Status:      domain.TxStatusHeld,
		AmountCents: -priceCents,
		CustomerID:  &c.ID,
		Reason:      fmt.Sprintf("hold for booking #%s", reference),
	}
	require.NoError(t, db.Create(hold).Error)

	booking := &models.ServiceBooking{
		Reference:         reference,
		CustomerID:        c.ID,
		ModelID:           m.ID,
		ModelServiceID:    ms.ID,
		Status:            domain.BookingPending,
		PaymentStatus:     domain.PaymentHeld,
		PriceCents:        priceCents,
		HoldTransactionID: &hold.ID,
	}
	require.NoError(t, db.Create(booking).Error)

	hold.BookingID = &booking.ID
	require.NoError(t, db.Save(hold).Error)

	return &bookingFixture{Model: m, Customer: c, Booking: booking, Hold: hold, Wallet: wallet}
}

func countTransactions(t *testing.T, db *gorm.DB, identifier domain.TransactionIdentifier) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Transaction{}).Where("identifier = ?", identifier).Count(&n).Error)
	return n
}

func countAuditLogs(t *testing.T, db *gorm.DB, action string, status domain.AuditStatus) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.AuditLog{}).Where("action = ? AND status = ?", action, status).Count(&n).Error)
	return n
}
