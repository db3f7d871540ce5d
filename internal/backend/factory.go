package backend

import (
	"context"
	"fmt"
	"log/slog"

	"actlog/internal/amqp"
	"actlog/internal/services"
	"actlog/internal/storage"
	csvstore "actlog/internal/store/csv"
	"actlog/internal/store/memory"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

// CreateBackend builds the configured store, wraps it in an ActivityService
// for mirror publishing, and returns it with its cleanup function.
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case CSVBackend:
		return f.createCSVBackend(config)
	case SQLiteBackend:
		return f.createSQLiteBackend(config)
	case MemoryBackend:
		return f.createMemoryBackend(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createCSVBackend(config Config) (*BackendResult, error) {
	st := csvstore.New(config.CSVPath)
	amqpClient := f.newAMQPClient(config)
	service := services.NewActivityService(st, amqpClient)

	f.logger.Info("Initialized CSV backend",
		"csv_path", config.CSVPath,
		"amqp_enabled", amqpClient != nil)

	return &BackendResult{
		Backend: service,
		Cleanup: service.Close,
	}, nil
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*BackendResult, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	amqpClient := f.newAMQPClient(config)
	service := services.NewActivityService(repo, amqpClient)

	f.logger.Info("Initialized SQLite backend",
		"db_path", config.SQLiteDBPath,
		"amqp_enabled", amqpClient != nil)

	return &BackendResult{
		Backend: service,
		Cleanup: func() error {
			if err := service.Close(); err != nil {
				repo.Close()
				return err
			}
			return repo.Close()
		},
	}, nil
}

func (f *DefaultFactory) createMemoryBackend(config Config) (*BackendResult, error) {
	st := memory.New()
	amqpClient := f.newAMQPClient(config)
	service := services.NewActivityService(st, amqpClient)

	f.logger.Info("Initialized memory backend", "amqp_enabled", amqpClient != nil)

	return &BackendResult{
		Backend: service,
		Cleanup: service.Close,
	}, nil
}

func (f *DefaultFactory) newAMQPClient(config Config) *amqp.Client {
	if config.AMQPURL == "" {
		return nil
	}

	client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
	if err != nil {
		f.logger.Warn("Failed to initialize AMQP client, continuing without mirror", "error", err)
		return nil
	}

	f.logger.Info("Initialized AMQP client",
		"exchange", config.AMQPExchange,
		"queue", config.AMQPQueue)
	return client
}
