package launcher

import (
	"context"
	"fmt"
	"io"

	"pump_launch/internal/chainTx"
	"pump_launch/internal/common"
	"pump_launch/internal/config"
	"pump_launch/internal/pda"
	"pump_launch/internal/pump"
	solclient "pump_launch/internal/solana"
	"pump_launch/internal/storage"
	"pump_launch/internal/store"
	"pump_launch/internal/ws"
)

// Setup 按配置组装 RPC、确认方式、上传与记录存储
func Setup(ctx context.Context, cfg *config.Config) (*Launcher, error) {
	network, err := cfg.Network()
	if err != nil {
		return nil, err
	}

	client := solclient.New(cfg.RPCURL)
	var confirmer chainTx.Confirmer = chainTx.NewPollConfirmer(client, cfg.ConfirmInterval)
	if cfg.ConfirmMode == common.CONFIRM_WS {
		confirmer = chainTx.NewWSConfirmer(ws.NewSignatureWatcher(cfg.WSURL), confirmer)
	}
	submitter := chainTx.NewSubmitter(client, confirmer, cfg.ConfirmTimeout)

	uploader, err := newUploader(ctx, cfg)
	if err != nil {
		return nil, err
	}
	records, err := store.New(ctx, cfg)
	if err != nil {
		if closer, ok := uploader.(io.Closer); ok {
			_ = closer.Close()
		}
		return nil, fmt.Errorf("初始化记录存储失败: %w", err)
	}

	builder := pump.NewBuilder(network, pda.NewDeriver(), cfg.TxOptions())
	common.Log.WithField("confirm_mode", cfg.ConfirmMode).
		WithField("storage", uploader.Name()).
		WithField("store", cfg.StoreBackend).
		Info("Launcher 初始化完成")

	return New(builder, submitter, client, Options{
		Uploader:    uploader,
		Store:       records,
		MaxInFlight: cfg.MaxInFlight,
		ViewBase:    cfg.ExternalViewBase,
	}), nil
}

func newUploader(ctx context.Context, cfg *config.Config) (storage.Uploader, error) {
	switch cfg.StorageBackend {
	case common.STORAGE_GCS:
		return storage.NewGCS(ctx, cfg.GCSBucket, cfg.GCSPublicURL, cfg.GCSCredentials)
	default:
		if cfg.PinataJWT == "" {
			common.Log.Warn("未配置 PINATA_JWT，上传将失败")
		}
		return storage.NewPinata(cfg.PinataJWT, cfg.PinataAPIURL, cfg.PinataGateway), nil
	}
}
