package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/config"
	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/domain/commission"
	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/fixtures"
	appAMQP "github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/handler/amqp"
	appHTTP "github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/handler/http"
	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/pkg/cron"
	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/pkg/database"
	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/pkg/jwt"
	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/pkg/logger"
	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/pkg/metrics"
	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/pkg/rabbitmq"
	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/pkg/webhook"
	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/repository/postgresql"
	commissionService "github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/service/commission"
)

const version = "v1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		App:     "global-home-solutions-commission",
		Version: version,
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
	})
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	if cfg.Database.MigrateOnStart {
		if err := postgresql.Migrate(ctx, db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	rateRepo := postgresql.NewServiceRateRepository(db)
	recordRepo := postgresql.NewCommissionRecordRepository(db)
	adjustmentRepo := postgresql.NewCommissionAdjustmentRepository(db)
	paymentRepo := postgresql.NewCommissionPaymentRepository(db)
	leadRepo := postgresql.NewLeadStatsRepository(db)
	transactor := postgresql.NewTransactor(db)

	var publisher interface {
		commission.EventPublisher
		Close()
	} = rabbitmq.NoopPublisher{Logger: log}
	if cfg.RabbitMQ.URL != "" {
		producer, err := rabbitmq.NewProducer(cfg.RabbitMQ.URL, cfg.RabbitMQ.CommissionExchange)
		if err != nil {
			return fmt.Errorf("connect commission event producer: %w", err)
		}
		publisher = producer
	}
	defer publisher.Close()

	svc := commissionService.NewCommissionService(
		transactor,
		commissionService.Repositories{
			Rates:       rateRepo,
			Records:     recordRepo,
			Adjustments: adjustmentRepo,
			Payments:    paymentRepo,
			Leads:       leadRepo,
		},
		publisher,
		metrics.Commission(),
		commissionService.Options{
			Policy:               cfg.AdjustmentPolicy(),
			StrictRates:          cfg.Commission.StrictRates,
			CorpAccountID:        cfg.Commission.CorpAccountID,
			DefaultPaymentMethod: cfg.Payout.DefaultMethod,
		},
		log,
	)

	if cfg.Commission.SeedDefaultRates {
		if _, err := svc.SeedDefaultRates(ctx, fixtures.GetDefaultServiceRates()); err != nil {
			return fmt.Errorf("seed service rates: %w", err)
		}
	}

	if cfg.RabbitMQ.URL != "" {
		consumer, err := rabbitmq.NewConsumer(cfg.RabbitMQ.URL)
		if err != nil {
			return fmt.Errorf("connect bid event consumer: %w", err)
		}
		defer consumer.Close()

		bidEvents := appAMQP.NewBidEventConsumer(svc, log)
		if err := consumer.ConsumeWithBindings(cfg.RabbitMQ.BidExchange, cfg.RabbitMQ.BidQueue, bidEvents.Bindings()); err != nil {
			return fmt.Errorf("consume bid events: %w", err)
		}
		log.Info("consuming bid request events", "exchange", cfg.RabbitMQ.BidExchange, "queue", cfg.RabbitMQ.BidQueue)
	} else {
		log.Warn("RABBITMQ_URL not set, bid request events are not consumed")
	}

	if cfg.Payout.AutoBatchEnabled {
		scheduler := cron.NewScheduler(log)
		if err := cron.NewPayoutJobs(svc, cfg.Payout.AutoBatchSchedule, log).RegisterJobs(scheduler); err != nil {
			return fmt.Errorf("register payout jobs: %w", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	router := appHTTP.NewRouter(log, JWTService, cfg.App.CORSAllowedOrigins, appHTTP.Handlers{
		Commission:    appHTTP.NewCommissionHandler(svc),
		Payment:       appHTTP.NewPaymentHandler(svc),
		Rate:          appHTTP.NewRateHandler(svc),
		PayoutWebhook: appHTTP.NewPayoutWebhookHandler(svc, webhook.NewVerifier(cfg.Payout.WebhookToken)),
		Metrics:       metrics.Handler(),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server running", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	log.Info("shutdown signal received, gracefully shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
