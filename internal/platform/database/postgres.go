package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/srgjo27/sitterbook/internal/platform/config"
)

// NewPostgresDB opens the pool and waits for the server to answer, retrying
// while it is still starting up.
func NewPostgresDB(ctx context.Context, cfg config.DatabaseConfig, log logrus.FieldLogger) (*sql.DB, error) {
	retries := cfg.ConnectRetries
	if retries < 1 {
		retries = 1
	}

	var (
		db  *sql.DB
		err error
	)

	for i := 1; i <= retries; i++ {
		log.WithFields(logrus.Fields{"attempt": i, "max": retries, "host": cfg.Host}).Info("connecting to database")

		db, err = sql.Open("postgres", cfg.DSN())
		if err == nil {
			err = db.PingContext(ctx)
		}

		if err == nil {
			db.SetMaxOpenConns(cfg.MaxOpenConns)
			db.SetMaxIdleConns(cfg.MaxIdleConns)
			db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
			log.Info("database connected")
			return db, nil
		}

		if db != nil {
			db.Close()
		}
		log.WithError(err).Warn("database not ready yet")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(cfg.RetryDelay):
		}
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", retries, err)
}
