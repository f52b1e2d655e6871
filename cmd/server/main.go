package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/waleedan253-cmd/Moxiepro/internal/app"
	"github.com/waleedan253-cmd/Moxiepro/internal/config"
	"github.com/waleedan253-cmd/Moxiepro/internal/ratelimit"
	"github.com/waleedan253-cmd/Moxiepro/internal/server"
	"github.com/waleedan253-cmd/Moxiepro/internal/util"
	"github.com/waleedan253-cmd/Moxiepro/pkg/ai"
	"github.com/waleedan253-cmd/Moxiepro/pkg/audit"
	"github.com/waleedan253-cmd/Moxiepro/pkg/mail"
	"github.com/waleedan253-cmd/Moxiepro/pkg/payment"
	"github.com/waleedan253-cmd/Moxiepro/pkg/scrape"
	"github.com/waleedan253-cmd/Moxiepro/pkg/storage"
	"github.com/waleedan253-cmd/Moxiepro/pkg/store"
)

func main() {
	cfg, err := config.Load(config.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: failed to load config: %v\n", err)
		os.Exit(1)
	}
	util.InitLogger(cfg.LogLevel)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	kv := store.NewRedisKV(redisClient)
	audits := store.NewAuditRepository(kv)
	users := store.NewUserDirectory(kv)

	limiter, err := ratelimit.NewDailyLimiter(redisClient, "ratelimit", cfg.MaxAuditsPerDay, 24*time.Hour)
	if err != nil {
		slog.Error("failed to init rate limiter", "err", err)
		os.Exit(1)
	}

	extractor := scrape.NewExtractor(scrape.Options{
		NavigateTimeout: time.Duration(cfg.ScrapeNavigateTimeoutSeconds) * time.Second,
		LandmarkTimeout: time.Duration(cfg.ScrapeLandmarkTimeoutSeconds) * time.Second,
	})
	generator := audit.NewGenerator(ai.NewAnthropicGenerator(
		cfg.AnthropicBaseURL, cfg.AnthropicAPIKey, cfg.AnthropicModel))

	reports, err := storage.NewMinioReportStore(
		cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
	if err != nil {
		slog.Error("failed to init report store", "err", err)
		os.Exit(1)
	}

	mailer := mail.NewMailer(mail.NewClient(cfg.MailBaseURL, cfg.MailAPIKey, cfg.MailFrom), cfg.AppURL)
	checkout := payment.NewCheckoutClient(
		cfg.CheckoutBaseURL, cfg.CheckoutAPIKey, cfg.CheckoutStoreID, cfg.CheckoutVariantID, cfg.AppURL)

	appCore := app.New(app.Config{EnforceRateLimit: cfg.EnforceRateLimit},
		audits, users, limiter, extractor, generator, reports, mailer, checkout)

	httpServer := server.New(server.Config{
		App:           appCore,
		WebhookSecret: cfg.WebhookSecret,
		AllowedOrigin: cfg.AppURL,
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      httpServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("audit server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "err", err)
	}
}
