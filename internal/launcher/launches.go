package launcher

import (
	"context"
	"errors"

	"pump_launch/internal/common"
	"pump_launch/internal/model"
)

var errNoStore = &common.StorageUnavailableError{Backend: "store", Err: errors.New("未配置记录存储")}

// SaveLaunch 同步保存外部提交的发行记录，外部链接总是由 mint 生成
func (l *Launcher) SaveLaunch(ctx context.Context, record *model.LaunchRecord) error {
	if l.store == nil {
		return errNoStore
	}
	if record != nil {
		record.ExternalViewURL = ""
		if record.Mint != "" {
			record.ExternalViewURL = l.viewBase + record.Mint
		}
	}
	return l.store.Append(ctx, record)
}

// RecentLaunches 最近的发行记录，新的在前
func (l *Launcher) RecentLaunches(ctx context.Context, limit int) ([]*model.LaunchRecord, error) {
	if l.store == nil {
		return nil, errNoStore
	}
	return l.store.ListRecent(ctx, limit)
}
