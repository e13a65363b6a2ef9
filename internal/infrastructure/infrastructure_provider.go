package infrastructure

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"colloquy/dialogue-api/internal/config"
	"colloquy/dialogue-api/internal/domain/dialogue"
	"colloquy/dialogue-api/internal/infrastructure/database"
	"colloquy/dialogue-api/internal/infrastructure/database/repository"
	"colloquy/dialogue-api/internal/infrastructure/database/transaction"
	"colloquy/dialogue-api/internal/infrastructure/inference"
	"colloquy/dialogue-api/internal/infrastructure/logger"
)

// ProvideConfig loads and provides the application configuration
func ProvideConfig() (*config.Config, error) {
	return config.Load()
}

// ProvideDatabase provides a database connection
func ProvideDatabase(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.NewDB(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	// Run migrations if AUTO_MIGRATE is enabled
	if cfg.AutoMigrate {
		log.Info().Msg("Running database migrations...")
		if err := database.AutoMigrate(db); err != nil {
			log.Error().Err(err).Msg("Failed to run database migrations")
			return nil, err
		}
		log.Info().Msg("Database migrations completed successfully")
	}

	return db, nil
}

// ProvideTransactionDatabase provides a transaction database wrapper
func ProvideTransactionDatabase(db *gorm.DB) *transaction.Database {
	return transaction.NewDatabase(db)
}

// ProvideLogger provides the application logger configured from the
// environment
func ProvideLogger(cfg *config.Config) (zerolog.Logger, error) {
	return logger.New(cfg.LogLevel, cfg.LogFormat)
}

// ProvideCompletionGateway provides the completion backend gateway
func ProvideCompletionGateway(cfg *config.Config) dialogue.CompletionGateway {
	return inference.NewGateway(cfg)
}

// Infrastructure holds all infrastructure dependencies
type Infrastructure struct {
	DB     *gorm.DB
	Logger zerolog.Logger
}

// NewInfrastructure creates a new infrastructure instance
func NewInfrastructure(db *gorm.DB, logger zerolog.Logger) *Infrastructure {
	return &Infrastructure{
		DB:     db,
		Logger: logger,
	}
}

// InfrastructureProvider provides all infrastructure dependencies
var InfrastructureProvider = wire.NewSet(
	ProvideConfig,
	ProvideLogger,
	ProvideDatabase,
	ProvideTransactionDatabase,
	ProvideCompletionGateway,
	NewInfrastructure,
	repository.RepositoryProvider,
)
