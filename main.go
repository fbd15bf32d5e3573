// main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/atherlangga/dddtix/cmd"
	"github.com/atherlangga/dddtix/internal/data/repository"
	"github.com/atherlangga/dddtix/internal/domain"
	"github.com/atherlangga/dddtix/internal/eventing"
	"github.com/atherlangga/dddtix/internal/listener"
	"github.com/atherlangga/dddtix/internal/messaging"
	"github.com/atherlangga/dddtix/internal/usecase"
	"github.com/atherlangga/dddtix/internal/wire"
	"github.com/atherlangga/dddtix/pkg/database"
	"github.com/atherlangga/dddtix/pkg/utils"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	policy := domain.RatePolicy{
		BookingRate: config.Rates.Booking,
		RefundRate:  config.Rates.Refund,
	}
	if err := policy.Validate(); err != nil {
		logger.Fatal("Invalid rate policy", zap.Error(err))
	}

	// The in-process bus carries the local listeners and the persistence
	// subscriptions; the broker backend, when enabled, mirrors every event
	// out to external consumers.
	events := eventing.NewCompositeEventing(eventing.NewInProcessEventing(logger))

	if config.AMQP.Enabled {
		broker := messaging.NewAmqpEventing(config.AMQP.URL, config.AMQP.Exchange, logger)
		if err := broker.Connect(); err != nil {
			logger.Fatal("Failed to connect to broker", zap.Error(err))
		}
		defer broker.Close()
		events.Add(broker)
		logger.Info("Broker connected successfully", zap.String("exchange", config.AMQP.Exchange))
	}

	repos, err := buildRepository(config, policy, events, logger)
	if err != nil {
		logger.Fatal("Failed to initialize storage", zap.Error(err))
	}

	if config.App.Seed {
		if err := repository.Seed(context.Background(), repos, policy, events); err != nil {
			logger.Fatal("Failed to seed sample data", zap.Error(err))
		}
		logger.Info("Sample data seeded")
	}

	listener.RegisterEcho(events, logger)

	service := usecase.NewService(repos, events, logger)

	// Wire all dependencies
	app := wire.Wiring(service, logger)

	startConsumers(config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}

// buildRepository picks the storage backend from config.
func buildRepository(config *utils.Config, policy domain.RatePolicy, events domain.Eventing, logger *zap.Logger) (*repository.Repository, error) {
	switch config.Storage.Driver {
	case "file":
		if err := os.MkdirAll(config.Storage.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir %s: %w", config.Storage.DataDir, err)
		}
		logger.Info("Using file storage", zap.String("data_dir", config.Storage.DataDir))
		return repository.NewFileRepository(config.Storage.DataDir, policy, events, logger), nil
	case "postgres":
		db, err := database.InitDB(config.Database)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		if err := repository.EnsureSchema(context.Background(), db); err != nil {
			return nil, err
		}
		logger.Info("Database connected successfully")
		return repository.NewPostgresRepository(db, policy, events, logger), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", config.Storage.Driver)
	}
}

// startConsumers runs the broker-fed listeners that are enabled in config.
// They live on their own queues, so each gets every published event.
func startConsumers(config *utils.Config, logger *zap.Logger) {
	if !config.AMQP.Enabled {
		return
	}

	if config.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     config.Redis.Addr,
			Password: config.Redis.Password,
			DB:       config.Redis.DB,
		})
		persister := listener.NewRedisPersister(client, logger)
		consumer := messaging.NewConsumer(config.AMQP.URL, config.AMQP.Exchange,
			"redis_listener", persister.HandleEnvelope, logger)
		go func() {
			if err := consumer.Run(context.Background()); err != nil {
				logger.Error("Redis consumer stopped", zap.Error(err))
			}
		}()
	}

	if config.Email.Enabled {
		dialer := listener.NewEmailDialer(config.Email.Host, config.Email.Port,
			config.Email.User, config.Email.Password)
		notifier := listener.NewEmailNotifier(dialer, config.Email.From, logger)
		consumer := messaging.NewConsumer(config.AMQP.URL, config.AMQP.Exchange,
			"email_listener", notifier.HandleEnvelope, logger)
		go func() {
			if err := consumer.Run(context.Background()); err != nil {
				logger.Error("Email consumer stopped", zap.Error(err))
			}
		}()
	}
}
