package store

import (
	"context"
	"fmt"

	"pump_launch/internal/common"
	"pump_launch/internal/model"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const tableName = "launches"

var schemas = map[string]string{
	"sqlite3": `CREATE TABLE IF NOT EXISTS ` + tableName + ` (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		mint TEXT NOT NULL,
		name TEXT NOT NULL,
		symbol TEXT NOT NULL,
		image_url TEXT NOT NULL DEFAULT '',
		creator TEXT NOT NULL DEFAULT '',
		signature TEXT NOT NULL DEFAULT '',
		timestamp INTEGER NOT NULL,
		external_view_url TEXT NOT NULL DEFAULT ''
	)`,
	"postgres": `CREATE TABLE IF NOT EXISTS ` + tableName + ` (
		seq BIGSERIAL PRIMARY KEY,
		id TEXT NOT NULL UNIQUE,
		mint TEXT NOT NULL,
		name TEXT NOT NULL,
		symbol TEXT NOT NULL,
		image_url TEXT NOT NULL DEFAULT '',
		creator TEXT NOT NULL DEFAULT '',
		signature TEXT NOT NULL DEFAULT '',
		timestamp BIGINT NOT NULL,
		external_view_url TEXT NOT NULL DEFAULT ''
	)`,
}

// SQL 基于 sqlx 的存储，支持 sqlite3 与 postgres
type SQL struct {
	db     *sqlx.DB
	driver string
}

// OpenSQL 打开数据库并建表
func OpenSQL(ctx context.Context, driver, dsn string) (*SQL, error) {
	schema, ok := schemas[driver]
	if !ok {
		return nil, fmt.Errorf("不支持的数据库驱动: %s", driver)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, &common.StorageUnavailableError{Backend: driver, Err: err}
	}
	if driver == "sqlite3" {
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, &common.StorageUnavailableError{Backend: driver, Err: err}
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, &common.StorageUnavailableError{Backend: driver, Err: fmt.Errorf("建表失败: %w", err)}
	}

	common.Log.WithField("driver", driver).Info("发行记录数据库已就绪")
	return &SQL{db: db, driver: driver}, nil
}

func (s *SQL) Append(ctx context.Context, record *model.LaunchRecord) error {
	if err := prepare(record); err != nil {
		return err
	}
	id := uuid.NewString()

	query := s.db.Rebind(`INSERT INTO ` + tableName + `
		(id, mint, name, symbol, image_url, creator, signature, timestamp, external_view_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := s.db.ExecContext(ctx, query,
		id,
		record.Mint,
		record.Name,
		record.Symbol,
		record.ImageURI,
		record.Creator,
		record.Signature,
		record.Timestamp,
		record.ExternalViewURL,
	)
	if err != nil {
		return &common.StorageUnavailableError{Backend: s.driver, Err: err}
	}
	record.ID = id
	return nil
}

func (s *SQL) ListRecent(ctx context.Context, limit int) ([]*model.LaunchRecord, error) {
	query := s.db.Rebind(`SELECT
		id, mint, name, symbol, image_url, creator, signature, timestamp, external_view_url
		FROM ` + tableName + `
		ORDER BY timestamp DESC, seq DESC
		LIMIT ?`)

	records := []*model.LaunchRecord{}
	if err := s.db.SelectContext(ctx, &records, query, normalizeLimit(limit)); err != nil {
		return nil, &common.StorageUnavailableError{Backend: s.driver, Err: err}
	}
	return records, nil
}

func (s *SQL) Close() error { return s.db.Close() }
