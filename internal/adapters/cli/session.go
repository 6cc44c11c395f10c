package cli

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/carrierplus-go/internal/adapters/engine"
	"github.com/andrescamacho/carrierplus-go/internal/application/setup"
	"github.com/andrescamacho/carrierplus-go/internal/domain/shared"
	"github.com/andrescamacho/carrierplus-go/internal/infrastructure/config"
	"github.com/andrescamacho/carrierplus-go/internal/infrastructure/database"
	"github.com/andrescamacho/carrierplus-go/internal/infrastructure/logging"
)

// session is what a command needs to talk to the database
type session struct {
	cfg    *config.Config
	db     *gorm.DB
	logger *logging.ZapLogger
}

func openSession() (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return newSession(cfg)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func newSession(cfg *config.Config) (*session, error) {
	logCfg := cfg.Logging
	logCfg.Output = "stderr"
	if verbose {
		logCfg.Level = "debug"
		logCfg.Format = "text"
	}
	logger, err := logging.NewLogger(logCfg)
	if err != nil {
		return nil, err
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &session{cfg: cfg, db: db, logger: logger}, nil
}

func (s *session) engine() (*setup.Engine, error) {
	return engine.New(s.cfg, s.db, s.logger, shared.NewRealClock())
}

func (s *session) Close() {
	_ = s.logger.Sync()
	_ = database.Close(s.db)
}
