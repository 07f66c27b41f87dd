package launcher

import (
	"context"
	"fmt"
	"io"
	"sync"

	"pump_launch/internal/analyzer"
	"pump_launch/internal/common"
	"pump_launch/internal/model"
	"pump_launch/internal/pump"
	"pump_launch/internal/queue"
	"pump_launch/internal/storage"
	"pump_launch/internal/store"
	"pump_launch/internal/wallet"

	"github.com/gagliardetto/solana-go"
)

// Submitter 签名并提交指令，直到确认或失败
type Submitter interface {
	Submit(ctx context.Context, instructions []solana.Instruction, payer solana.PublicKey, signers ...wallet.Signer) (solana.Signature, error)
}

// AccountReader 读取链上账户
type AccountReader interface {
	GetMultipleAccounts(ctx context.Context, keys ...solana.PublicKey) ([]*model.AccountData, error)
}

// Options 可选协作者，为空时对应功能不可用
type Options struct {
	Uploader    storage.Uploader
	Store       store.Store
	MaxInFlight int
	ViewBase    string // 发行记录外部链接前缀
}

// Launcher 发行与购买流程
type Launcher struct {
	builder   *pump.Builder
	submitter Submitter
	accounts  AccountReader
	uploader  storage.Uploader
	store     store.Store
	queue     *queue.MessageQueue // 发行记录异步写入
	filters   *analyzer.Config
	viewBase  string

	workerPool chan struct{}  // 限制同时进行的链上流程数
	workerWg   sync.WaitGroup // 等待进行中的流程
}

func New(builder *pump.Builder, submitter Submitter, accounts AccountReader, opts Options) *Launcher {
	if opts.MaxInFlight <= 0 {
		opts.MaxInFlight = 1
	}
	l := &Launcher{
		builder:    builder,
		submitter:  submitter,
		accounts:   accounts,
		uploader:   opts.Uploader,
		store:      opts.Store,
		filters:    analyzer.DefaultConfig(),
		viewBase:   opts.ViewBase,
		workerPool: make(chan struct{}, opts.MaxInFlight),
	}
	if l.store != nil {
		l.queue = queue.NewMessageQueue("launch_queue", 100)
		l.queue.RegisterHandler(queue.NewStoreHandler(l.store))
		l.queue.Start()
	}
	return l
}

// acquire 获取工作池槽位，ctx 结束时放弃
func (l *Launcher) acquire(ctx context.Context) (func(), error) {
	select {
	case l.workerPool <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	l.workerWg.Add(1)
	return func() {
		<-l.workerPool
		l.workerWg.Done()
	}, nil
}

// Close 等待进行中的流程结束并刷新发行记录
func (l *Launcher) Close() error {
	l.workerWg.Wait()
	if l.queue != nil {
		l.queue.Stop()
	}
	if closer, ok := l.uploader.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			common.Log.WithError(err).Warn("关闭上传客户端失败")
		}
	}
	if l.store != nil {
		if err := l.store.Close(); err != nil {
			return fmt.Errorf("关闭记录存储失败: %w", err)
		}
	}
	common.Log.Info("Launcher 已关闭")
	return nil
}
