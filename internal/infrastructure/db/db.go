package db

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS host_groups (
	id           TEXT PRIMARY KEY,
	infra_env_id TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS host_static_network_configs (
	host_group_id     TEXT    NOT NULL,
	position          INTEGER NOT NULL,
	network_yaml      TEXT    NOT NULL,
	mac_interface_map JSONB   NOT NULL DEFAULT '[]',
	PRIMARY KEY (host_group_id, position)
);
`

type DB struct {
	*sql.DB
}

func NewDB(db *sql.DB) *DB {
	return &DB{DB: db}
}

// Open connects to PostgreSQL and checks the connection.
func Open(ctx context.Context, dsn string) (*DB, error) {
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	return NewDB(sqlDB), nil
}

// Migrate creates the tables the repositories use.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return errors.Wrap(err, "failed to migrate database schema")
	}
	return nil
}
