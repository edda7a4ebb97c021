// Package store persists generated identifiers, together with their renderings,
// in a SQL registry. MySQL and SQLite are supported.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/Lzww0608/gid"
	"github.com/Lzww0608/gid/internal/config"
)

var (
	// ErrNotFound is returned when an identifier is not in the registry.
	ErrNotFound = errors.New("store: identifier not found")

	// ErrDuplicate is returned when an identifier is already registered.
	ErrDuplicate = errors.New("store: identifier already registered")
)

const schema = `CREATE TABLE IF NOT EXISTS id_registry (
	id         BIGINT      NOT NULL PRIMARY KEY,
	kind       VARCHAR(16) NOT NULL,
	base36     VARCHAR(16) NOT NULL,
	base64     VARCHAR(16) NOT NULL,
	hex        VARCHAR(24) NOT NULL,
	created_at BIGINT      NOT NULL
)`

// Record is one registered identifier.
type Record struct {
	gid.View
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

// NewRecord renders id in every format and stamps it with kind and createdAt.
func NewRecord(id gid.ID, kind string, createdAt time.Time) Record {
	return Record{View: gid.ConvertAll(id), Kind: kind, CreatedAt: createdAt}
}

// Registry encapsulates all database operations on registered identifiers.
type Registry struct {
	db     *sql.DB
	driver string
	logger zerolog.Logger
}

// Open connects to the configured database, tunes the pool and creates the schema.
func Open(ctx context.Context, cfg config.StoreConfig, logger zerolog.Logger) (*Registry, error) {
	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", cfg.Driver, err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: ping %s: %w", cfg.Driver, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: migrate: %w", err)
	}

	logger = logger.With().Str("component", "store").Str("driver", cfg.Driver).Logger()
	logger.Info().Msg("identifier registry ready")

	return &Registry{db: db, driver: cfg.Driver, logger: logger}, nil
}

// Close closes the underlying database.
func (r *Registry) Close() error {
	return r.db.Close()
}

// Save registers one identifier.
func (r *Registry) Save(ctx context.Context, rec Record) error {
	return r.SaveAll(ctx, []Record{rec})
}

// SaveAll registers a batch of identifiers in a single transaction.
// Either every record is stored or none is.
func (r *Registry) SaveAll(ctx context.Context, recs []Record) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO id_registry (id, kind, base36, base64, hex, created_at) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("store: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range recs {
		_, err := stmt.ExecContext(ctx, rec.Value, rec.Kind, rec.Base36, rec.Base64, rec.Hex, rec.CreatedAt.UnixMilli())
		if isDuplicate(err) {
			return fmt.Errorf("%w: %s", ErrDuplicate, rec.Value)
		}
		if err != nil {
			return fmt.Errorf("store: insert %s: %w", rec.Value, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	r.logger.Debug().Int("count", len(recs)).Msg("identifiers registered")
	return nil
}

// Get returns the record for id.
func (r *Registry) Get(ctx context.Context, id gid.ID) (Record, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, kind, base36, base64, hex, created_at FROM id_registry WHERE id = ?", id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return rec, err
}

// List returns up to limit records, highest identifier first.
func (r *Registry) List(ctx context.Context, limit int) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, kind, base36, base64, hex, created_at FROM id_registry ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	defer rows.Close()

	var recs []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	return recs, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(s scanner) (Record, error) {
	var rec Record
	var createdAt int64
	err := s.Scan(&rec.Value, &rec.Kind, &rec.Base36, &rec.Base64, &rec.Hex, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, err
	}
	if err != nil {
		return Record{}, fmt.Errorf("store: scan: %w", err)
	}
	rec.CreatedAt = time.UnixMilli(createdAt)
	return rec, nil
}

// isDuplicate reports whether err is a primary key violation from either driver.
func isDuplicate(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
