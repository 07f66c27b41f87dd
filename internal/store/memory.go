package store

import (
	"context"
	"sort"
	"sync"

	"pump_launch/internal/model"

	"github.com/google/uuid"
)

// Memory 进程内存储，重启后丢失
type Memory struct {
	mutex   sync.RWMutex
	records []*model.LaunchRecord
}

func NewMemory() *Memory {
	return &Memory{records: make([]*model.LaunchRecord, 0)}
}

func (m *Memory) Append(ctx context.Context, record *model.LaunchRecord) error {
	if err := prepare(record); err != nil {
		return err
	}
	record.ID = uuid.NewString()

	copied := *record
	m.mutex.Lock()
	m.records = append(m.records, &copied)
	m.mutex.Unlock()
	return nil
}

func (m *Memory) ListRecent(ctx context.Context, limit int) ([]*model.LaunchRecord, error) {
	limit = normalizeLimit(limit)

	m.mutex.RLock()
	sorted := make([]*model.LaunchRecord, len(m.records))
	copy(sorted, m.records)
	m.mutex.RUnlock()

	// 时间相同时后写入的在前
	for i, j := 0, len(sorted)-1; i < j; i, j = i+1, j-1 {
		sorted[i], sorted[j] = sorted[j], sorted[i]
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp > sorted[j].Timestamp
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	out := make([]*model.LaunchRecord, len(sorted))
	for i, r := range sorted {
		copied := *r
		out[i] = &copied
	}
	return out, nil
}

func (m *Memory) Close() error { return nil }
