package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/apex/log"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DB is an open connection to the prefix store.
type DB struct {
	db     *sqlx.DB
	driver string
}

type prefixRow struct {
	GuildID   string    `db:"guild_id"`
	Prefix    string    `db:"prefix"`
	UpdatedAt time.Time `db:"updated_at"`
}

var ErrUnsupportedDriver = errors.New("unsupported database driver")

func Open(ctx context.Context, config Config) (*DB, error) {
	driver, dsn, err := config.DriverName()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		log.WithField("driver", driver).WithError(err).Error("store.connect")
		return nil, fmt.Errorf("could not connect to %s database: %w", driver, err)
	}
	if config.MaxOpenConns > 0 {
		db.SetMaxOpenConns(config.MaxOpenConns)
		db.SetMaxIdleConns(config.MaxOpenConns)
	}

	log.WithField("driver", driver).WithField("duration", time.Since(start)).Debug("store.connect")
	return &DB{db: db, driver: driver}, nil
}

// Prefix returns the stored prefix of a guild; found is false when there is none.
func (d *DB) Prefix(ctx context.Context, guildID string) (prefix string, found bool, err error) {
	var row prefixRow
	err = d.db.GetContext(ctx, &row, d.db.Rebind("SELECT guild_id, prefix, updated_at FROM guild_prefixes WHERE guild_id = ?"), guildID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", false, nil
	case err != nil:
		return "", false, fmt.Errorf("could not read prefix of guild %s: %w", guildID, err)
	}
	return row.Prefix, true, nil
}

// SetPrefix creates or replaces the prefix of a guild.
func (d *DB) SetPrefix(ctx context.Context, guildID, prefix string) error {
	query := d.db.Rebind(`INSERT INTO guild_prefixes (guild_id, prefix, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (guild_id) DO UPDATE SET prefix = excluded.prefix, updated_at = excluded.updated_at`)
	if _, err := d.db.ExecContext(ctx, query, guildID, prefix, time.Now().UTC()); err != nil {
		return fmt.Errorf("could not save prefix of guild %s: %w", guildID, err)
	}
	log.WithField("guildID", guildID).WithField("prefix", prefix).Debug("store.prefix.saved")
	return nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) String() string {
	return fmt.Sprintf("store(%s)", d.driver)
}
