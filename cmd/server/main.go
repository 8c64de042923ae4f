package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/maisonrony/shop_backend/internal/auth"
	"github.com/maisonrony/shop_backend/internal/config"
	"github.com/maisonrony/shop_backend/internal/es"
	"github.com/maisonrony/shop_backend/internal/handlers"
	"github.com/maisonrony/shop_backend/internal/logging"
	"github.com/maisonrony/shop_backend/internal/mail"
	"github.com/maisonrony/shop_backend/internal/mykafka"
	httpserver "github.com/maisonrony/shop_backend/internal/transport/http"
	"github.com/maisonrony/shop_backend/pkg/db"
)

const productIndex = "produits"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logging.New(cfg.LOG_LEVEL)
	handlers.Verbose = !cfg.IsProduction()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	database, err := db.Open(ctx, cfg.DSN())
	cancel()
	if err != nil {
		log.Error("database open failed", "error", err)
		os.Exit(1)
	}
	if err := db.Migrate(database); err != nil {
		log.Error("database migration failed", "error", err)
		os.Exit(1)
	}

	var producer *mykafka.Producer
	if cfg.KAFKA_ADDRESS != "" {
		producer = mykafka.NewProducer(cfg.KAFKA_ADDRESS)
		log.Info("kafka producer configured", "address", cfg.KAFKA_ADDRESS)
	}

	var searchHandler *handlers.SearchHandler
	if cfg.ES_URL != "" {
		client, err := es.NewClient(cfg.ES_URL, cfg.ES_USER, cfg.ES_PASSWORD)
		if err != nil {
			log.Error("elasticsearch unavailable, search disabled", "error", err)
		} else {
			searchHandler = &handlers.SearchHandler{ES: client, Index: productIndex}
		}
	}

	mailClient := mail.NewClient(cfg.BREVO_URL, cfg.BREVO_API_KEY, "Maison Rony", cfg.EMAIL_USER)

	jwtSecret := []byte(cfg.JWT_SECRET)
	guard := &auth.Guard{DB: database, Secret: jwtSecret}

	imageAdmin := &handlers.ImageAdminHandler{DB: database, Producer: producer, Index: productIndex}
	if searchHandler != nil {
		imageAdmin.ES = searchHandler.ES
	}

	deps := httpserver.Deps{
		Guard:            guard,
		AdminHandler:     &handlers.AdminHandler{DB: database, JWTSecret: jwtSecret, Secure: cfg.IsProduction()},
		CategoryAdmin:    &handlers.CategoryAdminHandler{DB: database, Producer: producer},
		ImageAdmin:       imageAdmin,
		PromotionAdmin:   &handlers.PromotionAdminHandler{DB: database, Producer: producer},
		PublicCatalog:    &handlers.PublicCatalogHandler{DB: database},
		PublicPromotions: &handlers.PublicPromotionHandler{DB: database},
		ReviewHandler:    &handlers.ReviewHandler{DB: database, Producer: producer},
		AnalyticsHandler: &handlers.AnalyticsHandler{DB: database},
		ContactHandler:   &handlers.ContactHandler{Mail: mailClient, ContactEmail: cfg.CONTACT_EMAIL, Producer: producer},
		SearchHandler:    searchHandler,
	}
	if cfg.IsProduction() {
		deps.StaticDir = cfg.STATIC_DIR
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(
		middleware.Recover(),
		middleware.RequestID(),
		middleware.BodyLimit("10M"),
		middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     []string{cfg.FRONTEND_URL},
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowCredentials: true,
		}),
		logging.RequestMiddleware(log),
	)

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + cfg.PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server listening", "port", cfg.PORT, "environment", cfg.ENVIRONMENT)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := database.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("db close error", "error", err)
		}
	}

	if err := producer.Close(); err != nil {
		log.Error("kafka close error", "error", err)
	}

	log.Info("shutdown complete")
}
