package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/xaosao/xaosao-admin-sub001/config"
	"github.com/xaosao/xaosao-admin-sub001/internal/database"
	"github.com/xaosao/xaosao-admin-sub001/internal/domain"
	"github.com/xaosao/xaosao-admin-sub001/internal/repository"
	"github.com/xaosao/xaosao-admin-sub001/internal/router"
	"github.com/xaosao/xaosao-admin-sub001/pkg/cloudinary"
)

func main() {
	cfg := config.Load()
	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	database.SeedAdmin(db)
	if err := repository.NewSettingRepository(db).SeedDefaults(map[string]string{
		domain.SettingReferralCommissionPercent: strconv.Itoa(domain.ReferralCommissionPercent),
		domain.SettingReferralMaxBookings:       strconv.Itoa(domain.ReferralMaxBookings),
	}); err != nil {
		log.Printf("settings seed: %v", err)
	}

	var cloud cloudinary.Client
	if cfg.Cloudinary.CloudName != "" {
		cloud, err = cloudinary.NewClientFromParams(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)
		if err != nil {
			log.Fatalf("cloudinary: %v", err)
		}
	} else {
		log.Printf("[Cloudinary] uploads disabled: set CLOUDINARY_CLOUD_NAME to enable")
	}

	engine, dispatcher := router.Setup(cfg, db, cloud)

	ctx, stop := context.WithCancel(context.Background())
	go dispatcher.Run(ctx)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		log.Printf("server listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")
	stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("server shutdown:", err)
	}
	log.Println("server stopped")
}
