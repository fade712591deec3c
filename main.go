package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gollllden/Done/config"
	"github.com/gollllden/Done/internal/auth"
	"github.com/gollllden/Done/internal/campaign"
	"github.com/gollllden/Done/internal/clock"
	"github.com/gollllden/Done/internal/consumer"
	"github.com/gollllden/Done/internal/handler"
	"github.com/gollllden/Done/internal/metrics"
	"github.com/gollllden/Done/internal/middleware"
	"github.com/gollllden/Done/internal/notify"
	"github.com/gollllden/Done/internal/promo"
	"github.com/gollllden/Done/internal/repository"
	"github.com/gollllden/Done/internal/service"
	"github.com/gollllden/Done/internal/slots"
	"github.com/gollllden/Done/internal/validation"
	"github.com/gollllden/Done/pkg/database"
	"github.com/gollllden/Done/pkg/logger"
	"github.com/gollllden/Done/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	db, err := database.NewPostgresDB(cfg.DSN(), log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// RabbitMQ: the API publishes booking events, the consumer turns them
	// into emails.
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL, log)
	if err != nil {
		log.Fatal("failed to connect to RabbitMQ", zap.Error(err))
	}
	defer publisher.Close()

	mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL, rabbitmq.NotificationQueue, rabbitmq.BookingBindingKey, log)
	if err != nil {
		log.Fatal("failed to connect to RabbitMQ", zap.Error(err))
	}
	msgs, err := mqConsumer.Consume()
	if err != nil {
		log.Fatal("failed to start consuming", zap.Error(err))
	}

	sender := notify.NewSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.FromEmail,
		FromName:  cfg.FromName,
	}, log)
	templates, err := notify.NewTemplates(cfg.FromName)
	if err != nil {
		log.Fatal("failed to parse email templates", zap.Error(err))
	}

	notifications := consumer.NewNotificationConsumer(sender, templates, cfg.BusinessEmail, m, log)
	consumerDone := notifications.Start(msgs)

	clk := clock.NewSystem()
	promos := promo.NewValidator(cfg.Promos())

	// Repositories
	bookingRepo := repository.NewBookingRepository(db)
	statusRepo := repository.NewStatusCheckRepository(db)

	// Services
	bookingSvc := service.NewBookingService(bookingRepo, promos, slots.Defaults(cfg.SlotCapacity), publisher, clk, m, log)
	adminSvc := service.NewAdminService(bookingRepo, clk)
	statusSvc := service.NewStatusService(statusRepo, clk)
	messagingSvc := service.NewMessagingService(sender, templates, cfg.BusinessEmail, m, log)

	runner := campaign.NewRunner(bookingRepo, sender, templates, campaign.DefaultPace, m, log)
	scheduler, err := campaign.NewScheduler(runner, cfg.MondayCampaignCron, cfg.FridayCampaignCron, log)
	if err != nil {
		log.Fatal("invalid campaign schedule", zap.Error(err))
	}
	scheduler.Start()

	rdb, guard := newLoginGuard(cfg, log)
	if rdb != nil {
		defer rdb.Close()
	}
	tokens := auth.NewTokenIssuer(jwtSecret(cfg, log), cfg.AdminTokenTTL, clk)
	authenticator := auth.NewAuthenticator(cfg.AdminPassword, tokens, guard)

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.Validator = validation.New()
	e.HTTPErrorHandler = middleware.ErrorHandler(log)
	e.Use(echoMw.Recover())
	e.Use(echoMw.RequestID())
	e.Use(middleware.RequestLogger(log, m))
	e.Use(middleware.SecurityHeaders())
	e.Use(echoMw.CORSWithConfig(echoMw.CORSConfig{
		AllowOrigins: cfg.Origins(),
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.RateLimit(cfg.MaxRequestsPerMin, log, m))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": "goldentouch-api"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Admin auth is attached per route so unknown /api paths still 404.
	api := e.Group("/api")
	requireAdmin := middleware.AdminAuth(tokens)

	handler.NewPublicHandler(bookingSvc, statusSvc, messagingSvc, promos).RegisterRoutes(api)
	handler.NewBookingHandler(bookingSvc).RegisterRoutes(api, requireAdmin)
	handler.NewAdminHandler(authenticator, adminSvc, messagingSvc, runner, m).RegisterRoutes(api, requireAdmin)

	go func() {
		log.Info("booking API starting", zap.String("port", cfg.ServerPort), zap.String("env", cfg.Env))
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}

	scheduler.Stop()
	runner.Wait()
	messagingSvc.Wait()

	mqConsumer.Close()
	select {
	case <-consumerDone:
	case <-shutdownCtx.Done():
		log.Warn("notification consumer did not drain in time")
	}
}

// newLoginGuard connects to Redis for login throttling. Without Redis the
// admin login still works, just unthrottled.
func newLoginGuard(cfg *config.Config, log *zap.Logger) (*redis.Client, *auth.LoginGuard) {
	if cfg.RedisAddr == "" {
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("redis unavailable, admin login will not be throttled", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		_ = rdb.Close()
		return nil, nil
	}
	return rdb, auth.NewLoginGuard(rdb)
}

func jwtSecret(cfg *config.Config, log *zap.Logger) string {
	if cfg.JWTSecret != "" {
		return cfg.JWTSecret
	}
	if cfg.IsProduction() && cfg.AdminPassword != "" {
		log.Warn("ADMIN_JWT_SECRET not set, admin tokens will not survive a restart")
	}
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		log.Fatal("failed to generate token secret", zap.Error(err))
	}
	return hex.EncodeToString(secret)
}
