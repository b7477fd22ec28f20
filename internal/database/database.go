package database

import (
	"log"

	"github.com/xaosao/xaosao-admin-sub001/config"
	"github.com/xaosao/xaosao-admin-sub001/internal/domain"
	"github.com/xaosao/xaosao-admin-sub001/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Model{},
		&models.Customer{},
		&models.Wallet{},
		&models.Transaction{},
		&models.Service{},
		&models.ModelService{},
		&models.ServiceBooking{},
		&models.SubscriptionPlan{},
		&models.Subscription{},
		&models.SubscriptionHistory{},
		&models.Referral{},
		&models.Notification{},
		&models.AuditLog{},
		&models.SystemSetting{},
		&models.OutboxEvent{},
	)
}

// SeedAdmin creates the bootstrap admin account if no admin exists yet.
func SeedAdmin(db *gorm.DB) {
	var count int64
	db.Model(&models.User{}).Where("role IN ?", []string{domain.RoleAdmin, domain.RoleSuperAdmin}).Count(&count)
	if count > 0 {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[Seed] bcrypt failed: %v", err)
		return
	}
	u := &models.User{
		Username:     "admin",
		Email:        "admin@xaosao.local",
		PasswordHash: string(hash),
		Role:         domain.RoleSuperAdmin,
	}
	if err := db.Create(u).Error; err != nil {
		log.Printf("[Seed] failed to create admin: %v", err)
		return
	}
	log.Printf("[Seed] created bootstrap admin %s (change the password)", u.Email)
}
