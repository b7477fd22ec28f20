package router

import (
	"log"
	"time"

	"github.com/xaosao/xaosao-admin-sub001/config"
	"github.com/xaosao/xaosao-admin-sub001/internal/handler"
	"github.com/xaosao/xaosao-admin-sub001/internal/middleware"
	"github.com/xaosao/xaosao-admin-sub001/internal/repository"
	"github.com/xaosao/xaosao-admin-sub001/internal/service"
	"github.com/xaosao/xaosao-admin-sub001/internal/ws"
	"github.com/xaosao/xaosao-admin-sub001/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Setup wires repositories, services and handlers and returns the engine plus
// the outbox dispatcher the caller must run.
func Setup(cfg *config.Config, db *gorm.DB, cloud cloudinary.Client) (*gin.Engine, *service.OutboxDispatcher) {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	txRepo := repository.NewTransactionRepository(db)
	walletRepo := repository.NewWalletRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	modelRepo := repository.NewModelRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	referralRepo := repository.NewReferralRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	outboxRepo := repository.NewOutboxRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	feed := ws.NewHub()

	// Services
	authSvc := service.NewAuthService(cfg, userRepo)
	fcmSvc := service.NewFCMService(cfg.Firebase.ServiceAccountPath)
	if fcmSvc != nil {
		log.Printf("[FCM] Push notifications enabled")
	} else if cfg.Firebase.ServiceAccountPath != "" {
		log.Printf("[FCM] Push notifications disabled: failed to init (check service account file)")
	} else {
		log.Printf("[FCM] Push notifications disabled: set FIREBASE_SERVICE_ACCOUNT_PATH to enable")
	}
	notifSvc := service.NewNotificationService(notificationRepo, userRepo, fcmSvc)
	eventClient := service.NewSubscriptionEventClient(cfg.ClientApp)
	referralSvc := service.NewReferralService(db, referralRepo, settingRepo)
	ledgerSvc := service.NewLedgerService(db, referralSvc, feed)
	dispatcher := service.NewOutboxDispatcher(outboxRepo, notifSvc, eventClient, cfg.Outbox)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc, userRepo)
	txHandler := handler.NewTransactionHandler(txRepo, ledgerSvc)
	walletHandler := handler.NewWalletHandler(walletRepo)
	bookingHandler := handler.NewBookingHandler(bookingRepo)
	subHandler := handler.NewSubscriptionHandler(subRepo)
	auditHandler := handler.NewAuditHandler(auditRepo)
	notificationHandler := handler.NewNotificationHandler(notificationRepo, notifSvc)
	adminHandler := handler.NewAdminHandler(adminRepo, modelRepo, customerRepo, settingRepo, referralRepo, outboxRepo)
	uploadHandler := handler.NewUploadHandler(cloud)

	authMw := middleware.AuthRequired(&cfg.JWT)
	adminMw := middleware.AdminRequired()

	api := r.Group("/api/v1")
	{
		api.POST("/admin/login", authHandler.Login)
		api.POST("/admin/refresh", authHandler.Refresh)

		admin := api.Group("/admin")
		admin.Use(authMw, adminMw)
		{
			admin.POST("/fcm-token", authHandler.RegisterFCMToken)
			admin.GET("/dashboard", adminHandler.Dashboard)

			admin.GET("/transactions", txHandler.List)
			admin.GET("/transactions/:id", txHandler.Get)
			admin.POST("/transactions/:id/approve", txHandler.Approve)
			admin.POST("/transactions/:id/reject", txHandler.Reject)
			admin.POST("/transactions/:id/refund", txHandler.Refund)
			admin.POST("/transactions/:id/complete", txHandler.Complete)

			admin.GET("/wallets", walletHandler.List)
			admin.GET("/wallets/:id", walletHandler.Get)

			admin.GET("/bookings", bookingHandler.List)
			admin.GET("/bookings/:id", bookingHandler.Get)

			admin.GET("/subscriptions", subHandler.List)
			admin.GET("/audit-logs", auditHandler.List)

			admin.GET("/models", adminHandler.ListModels)
			admin.GET("/models/:id", adminHandler.GetModel)
			admin.GET("/customers", adminHandler.ListCustomers)
			admin.GET("/customers/:id", adminHandler.GetCustomer)
			admin.GET("/referrals", adminHandler.ListReferrals)
			admin.GET("/outbox", adminHandler.ListOutboxEvents)

			admin.GET("/settings", adminHandler.ListSettings)
			admin.PUT("/settings", adminHandler.UpdateSetting)

			admin.GET("/notifications", notificationHandler.List)
			admin.POST("/notifications/broadcast", notificationHandler.Broadcast)

			admin.POST("/uploads", uploadHandler.UploadImage)
		}

		api.GET("/ws/admin", ws.UpgradeAdminWS(&cfg.JWT, feed))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r, dispatcher
}
