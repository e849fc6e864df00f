package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/flightinventory/config"
	"github.com/Domenick1991/flightinventory/internal/cache"
	"github.com/Domenick1991/flightinventory/internal/email"
	"github.com/Domenick1991/flightinventory/internal/kafka"
	"github.com/Domenick1991/flightinventory/internal/repository"
	"github.com/Domenick1991/flightinventory/internal/service/tickets"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := logrus.New()
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logger.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()
	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.FlightsCacheTTL)*time.Second)

	flightRepo := repository.NewFlightRepository(pool)
	scheduleRepo := repository.NewScheduleRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	ticketService := tickets.NewTicketService(
		ticketRepo,
		scheduleRepo,
		flightRepo,
		redisCache,
		producer,
		cfg.Kafka.TicketEventsTopic,
		time.Duration(cfg.Booking.SeatLockTTLMinutes)*time.Minute,
		logger,
		tickets.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	emailSender := email.NewSender(logger)

	go func() {
		err := consumer.Consume(ctx, emailSender.Send, func(err error) {
			logger.Warnf("skip notification: %v", err)
		})
		if err != nil {
			logger.Warnf("consumer stopped: %v", err)
		}
	}()

	sweepTicker := time.NewTicker(time.Duration(cfg.Worker.DelaySweepMinutes) * time.Minute)
	defer sweepTicker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-sweepTicker.C:
			published, err := ticketService.NotifyDelayedSchedules(ctx)
			if err != nil {
				logger.Warnf("delay sweep error: %v", err)
				continue
			}
			if published > 0 {
				logger.Infof("published %d delay notifications", published)
			}
		case s := <-sig:
			logger.Infof("received signal %v, shutting down", s)
			return
		}
	}
}
