package app

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/cnfl/fantasy-cricket/internal/config"
)

func openArchiveDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	attrs := []attribute.KeyValue{attribute.String("db.system", "postgresql")}
	if name := dbNameFromURL(dsn); name != "" {
		attrs = append(attrs, attribute.String("db.name", name))
	}

	db, err := otelsqlx.Open("postgres", dsn, otelsql.WithAttributes(attrs...))
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}
