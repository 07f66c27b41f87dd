package chainTx

import (
	"context"
	"fmt"
	"time"

	"pump_launch/internal/common"
	"pump_launch/internal/model"

	"github.com/gagliardetto/solana-go"
)

// StatusReader 查询签名状态
type StatusReader interface {
	GetSignatureStatus(ctx context.Context, sig solana.Signature) (*model.SignatureStatus, error)
}

// SignatureWaiter 订阅签名通知
type SignatureWaiter interface {
	WaitForSignature(ctx context.Context, sig solana.Signature) (*model.SignatureStatus, error)
}

// PollConfirmer 按固定间隔轮询签名状态
type PollConfirmer struct {
	reader   StatusReader
	interval time.Duration
}

func NewPollConfirmer(reader StatusReader, interval time.Duration) *PollConfirmer {
	return &PollConfirmer{reader: reader, interval: interval}
}

func (c *PollConfirmer) Confirm(ctx context.Context, sig solana.Signature) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		status, err := c.reader.GetSignatureStatus(ctx, sig)
		if err != nil {
			common.Log.WithError(err).Debugf("查询交易 %s 状态失败", sig)
		} else if done, err := checkStatus(status); done {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// WSConfirmer 订阅失败时退回 fallback
type WSConfirmer struct {
	waiter   SignatureWaiter
	fallback Confirmer
}

func NewWSConfirmer(waiter SignatureWaiter, fallback Confirmer) *WSConfirmer {
	return &WSConfirmer{waiter: waiter, fallback: fallback}
}

func (c *WSConfirmer) Confirm(ctx context.Context, sig solana.Signature) error {
	status, err := c.waiter.WaitForSignature(ctx, sig)
	if err != nil {
		if ctx.Err() != nil || c.fallback == nil {
			return err
		}
		common.Log.WithError(err).Warn("签名订阅失败，改为轮询")
		return c.fallback.Confirm(ctx, sig)
	}
	if _, err := checkStatus(status); err != nil {
		return err
	}
	return nil
}

// checkStatus 返回是否已有结论；链上执行失败为提交错误
func checkStatus(status *model.SignatureStatus) (bool, error) {
	if status == nil {
		return false, nil
	}
	if status.Err != nil {
		return true, &common.SubmissionError{Reason: fmt.Sprintf("交易执行失败: %v", status.Err)}
	}
	return status.Confirmed, nil
}
