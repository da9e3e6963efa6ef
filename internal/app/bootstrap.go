package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/nsqio/go-nsq"

	"taskforge/backend/internal/config"
	"taskforge/backend/internal/database"
	"taskforge/backend/internal/events"
)

// Dependencies are the process-lifetime resources shared by every request.
type Dependencies struct {
	DB       *sql.DB
	Producer events.Producer

	nsqProducer *nsq.Producer
}

func Bootstrap(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	db, err := database.Open(cfg.DSN(), cfg.DBMaxOpenConns)
	if err != nil {
		return nil, err
	}

	retryDelay := time.Duration(cfg.BootstrapRetryDelaySeconds) * time.Second
	if err := database.PingWithRetry(ctx, db, cfg.BootstrapRetryAttempts, retryDelay); err != nil {
		db.Close()
		return nil, err
	}

	if err := database.Migrate(db, cfg.MigrationPath); err != nil {
		db.Close()
		return nil, err
	}
	slog.InfoContext(ctx, "migrations applied successfully")

	deps := &Dependencies{DB: db, Producer: events.NoopProducer{}}

	if cfg.EventsEnabled {
		producer, err := events.NewNSQProducer(cfg.NSQDHost)
		if err != nil {
			db.Close()
			return nil, err
		}
		deps.nsqProducer = producer
		deps.Producer = producer
		slog.InfoContext(ctx, "change events enabled", "nsqd", cfg.NSQDHost)
	}

	return deps, nil
}

// Close releases everything Bootstrap acquired.
func (d *Dependencies) Close() error {
	if d.nsqProducer != nil {
		d.nsqProducer.Stop()
	}
	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			return fmt.Errorf("close db: %w", err)
		}
	}
	return nil
}
