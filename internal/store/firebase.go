package store

import (
	"context"
	"fmt"

	"pump_launch/internal/common"
	"pump_launch/internal/model"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"google.golang.org/api/option"
)

const firebaseBackend = "firebase"

// Firebase 实时数据库存储，记录位于 launches 节点下
type Firebase struct {
	ref *db.Ref
}

func NewFirebase(ctx context.Context, databaseURL, credentials string) (*Firebase, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("FIREBASE_DATABASE_URL 为空")
	}

	var opts []option.ClientOption
	if credentials != "" {
		opts = append(opts, option.WithCredentialsFile(credentials))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{DatabaseURL: databaseURL}, opts...)
	if err != nil {
		return nil, &common.StorageUnavailableError{Backend: firebaseBackend, Err: fmt.Errorf("初始化 Firebase 失败: %w", err)}
	}
	client, err := app.Database(ctx)
	if err != nil {
		return nil, &common.StorageUnavailableError{Backend: firebaseBackend, Err: fmt.Errorf("连接实时数据库失败: %w", err)}
	}
	return &Firebase{ref: client.NewRef(tableName)}, nil
}

func (f *Firebase) Append(ctx context.Context, record *model.LaunchRecord) error {
	if err := prepare(record); err != nil {
		return err
	}
	value := *record
	value.ID = ""

	pushed, err := f.ref.Push(ctx, &value)
	if err != nil {
		return &common.StorageUnavailableError{Backend: firebaseBackend, Err: err}
	}
	record.ID = pushed.Key
	return nil
}

func (f *Firebase) ListRecent(ctx context.Context, limit int) ([]*model.LaunchRecord, error) {
	nodes, err := f.ref.OrderByChild("timestamp").LimitToLast(normalizeLimit(limit)).GetOrdered(ctx)
	if err != nil {
		return nil, &common.StorageUnavailableError{Backend: firebaseBackend, Err: err}
	}

	records := make([]*model.LaunchRecord, 0, len(nodes))
	for i := len(nodes) - 1; i >= 0; i-- {
		var record model.LaunchRecord
		if err := nodes[i].Unmarshal(&record); err != nil {
			common.Log.WithError(err).Warnf("跳过无法解析的记录 %s", nodes[i].Key())
			continue
		}
		record.ID = nodes[i].Key()
		records = append(records, &record)
	}
	return records, nil
}

func (f *Firebase) Close() error { return nil }
