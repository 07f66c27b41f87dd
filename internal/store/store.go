package store

import (
	"context"
	"fmt"
	"time"

	"pump_launch/internal/common"
	"pump_launch/internal/config"
	"pump_launch/internal/model"
)

// MaxLaunchLimit 单次查询的最大条数
const MaxLaunchLimit = 100

// Store 发行记录存储
type Store interface {
	// Append 写入记录并回填 ID
	Append(ctx context.Context, record *model.LaunchRecord) error
	// ListRecent 按时间倒序返回最近 limit 条
	ListRecent(ctx context.Context, limit int) ([]*model.LaunchRecord, error)
	Close() error
}

// New 按配置创建存储后端
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.StoreBackend {
	case common.STORE_MEMORY:
		return NewMemory(), nil
	case common.STORE_SQLITE:
		return OpenSQL(ctx, "sqlite3", cfg.DatabaseDSN)
	case common.STORE_POSTGRES:
		return OpenSQL(ctx, "postgres", cfg.DatabaseDSN)
	case common.STORE_FIREBASE:
		return NewFirebase(ctx, cfg.FirebaseDatabaseURL, cfg.FirebaseCredentials)
	default:
		return nil, fmt.Errorf("不支持的记录存储后端: %s", cfg.StoreBackend)
	}
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return common.DEFAULT_LAUNCH_LIMIT
	}
	if limit > MaxLaunchLimit {
		return MaxLaunchLimit
	}
	return limit
}

func prepare(record *model.LaunchRecord) error {
	if record == nil {
		return &common.MissingFieldError{Field: "record"}
	}
	if record.Mint == "" {
		return &common.MissingFieldError{Field: "mint"}
	}
	if record.Name == "" {
		return &common.MissingFieldError{Field: "name"}
	}
	if record.Symbol == "" {
		return &common.MissingFieldError{Field: "symbol"}
	}
	if record.Timestamp == 0 {
		record.Timestamp = time.Now().UnixMilli()
	}
	return nil
}
