// Command adminwatch logs in as admin and polls the booking list, logging an
// alert whenever new bookings arrive.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gollllden/Done/internal/client"
	"github.com/gollllden/Done/internal/dto"
	"github.com/gollllden/Done/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("API_URL", "http://localhost:8001")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("POLL_INTERVAL", client.DefaultPollInterval)

	log, err := logger.New(v.GetString("ENV"), v.GetString("LOG_LEVEL"))
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := client.New(v.GetString("API_URL"))
	loginCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	err = api.Login(loginCtx, v.GetString("ADMIN_PASSWORD"))
	cancel()
	if err != nil {
		log.Fatal("admin login failed", zap.Error(err))
	}

	poller := client.NewPoller(api, v.GetDuration("POLL_INTERVAL"), func(fresh []dto.BookingResponse) {
		for _, b := range fresh {
			log.Info("new booking received",
				zap.String("booking_id", b.BookingID),
				zap.String("customer", b.Name),
				zap.String("service", b.ServiceName),
				zap.String("date", b.Date),
				zap.String("time", b.Time),
			)
		}
	}, log)

	log.Info("watching for new bookings", zap.String("api", v.GetString("API_URL")), zap.Duration("interval", v.GetDuration("POLL_INTERVAL")))
	if err := poller.Run(ctx); err != nil && ctx.Err() == nil {
		log.Error("poller stopped", zap.Error(err))
	}
}
