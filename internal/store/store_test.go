package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"pump_launch/internal/common"
	"pump_launch/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecord(i int, ts int64) *model.LaunchRecord {
	mint := fmt.Sprintf("Mint%dpump", i)
	return &model.LaunchRecord{
		Mint:            mint,
		Name:            fmt.Sprintf("Token %d", i),
		Symbol:          fmt.Sprintf("T%d", i),
		Creator:         "Creator111",
		Signature:       fmt.Sprintf("sig%d", i),
		Timestamp:       ts,
		ExternalViewURL: "https://pump.fun/coin/" + mint,
	}
}

func backends(t *testing.T) map[string]Store {
	t.Helper()
	sqlite, err := OpenSQL(context.Background(), "sqlite3", filepath.Join(t.TempDir(), "launches.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close() })

	return map[string]Store{
		"memory": NewMemory(),
		"sqlite": sqlite,
	}
}

func TestStore_AppendAndListRecent(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for i := 1; i <= 12; i++ {
				record := newRecord(i, int64(1000+i))
				require.NoError(t, s.Append(ctx, record))
				assert.NotEmpty(t, record.ID)
			}

			recent, err := s.ListRecent(ctx, 0)
			require.NoError(t, err)
			require.Len(t, recent, common.DEFAULT_LAUNCH_LIMIT)
			assert.Equal(t, "Mint12pump", recent[0].Mint)
			assert.Equal(t, "Mint3pump", recent[9].Mint)
			assert.Equal(t, "https://pump.fun/coin/Mint12pump", recent[0].ExternalViewURL)

			three, err := s.ListRecent(ctx, 3)
			require.NoError(t, err)
			assert.Len(t, three, 3)
		})
	}
}

func TestStore_SameTimestampNewestFirst(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Append(ctx, newRecord(1, 5000)))
			require.NoError(t, s.Append(ctx, newRecord(2, 5000)))

			recent, err := s.ListRecent(ctx, 10)
			require.NoError(t, err)
			require.Len(t, recent, 2)
			assert.Equal(t, "Mint2pump", recent[0].Mint)
		})
	}
}

func TestStore_AppendValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *model.LaunchRecord)
	}{
		{name: "缺少mint", mutate: func(r *model.LaunchRecord) { r.Mint = "" }},
		{name: "缺少名称", mutate: func(r *model.LaunchRecord) { r.Name = "" }},
		{name: "缺少符号", mutate: func(r *model.LaunchRecord) { r.Symbol = "" }},
	}

	s := NewMemory()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := newRecord(1, 1)
			tt.mutate(record)
			assert.ErrorIs(t, s.Append(context.Background(), record), common.ErrValidation)
		})
	}

	empty, err := s.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestStore_DefaultTimestamp(t *testing.T) {
	record := newRecord(1, 0)
	require.NoError(t, NewMemory().Append(context.Background(), record))
	assert.NotZero(t, record.Timestamp)
}

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, common.DEFAULT_LAUNCH_LIMIT, normalizeLimit(-1))
	assert.Equal(t, 7, normalizeLimit(7))
	assert.Equal(t, MaxLaunchLimit, normalizeLimit(1000))
}

func TestOpenSQL_UnknownDriver(t *testing.T) {
	_, err := OpenSQL(context.Background(), "mysql", "dsn")
	assert.Error(t, err)
}
