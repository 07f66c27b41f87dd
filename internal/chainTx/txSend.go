package chainTx

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pump_launch/internal/common"
	"pump_launch/internal/wallet"

	"github.com/gagliardetto/solana-go"
	"github.com/sirupsen/logrus"
)

// Ledger 账本接口：获取区块哈希与广播交易
type Ledger interface {
	GetLatestBlockhash(ctx context.Context) (solana.Hash, error)
	SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)
}

// Confirmer 等待已广播交易达到确认状态
type Confirmer interface {
	Confirm(ctx context.Context, sig solana.Signature) error
}

// Submitter 签名、发送并确认交易，不做自动重试
type Submitter struct {
	ledger    Ledger
	confirmer Confirmer
	timeout   time.Duration
}

func NewSubmitter(ledger Ledger, confirmer Confirmer, timeout time.Duration) *Submitter {
	return &Submitter{
		ledger:    ledger,
		confirmer: confirmer,
		timeout:   timeout,
	}
}

// Submit payer 为手续费支付者；signers 必须覆盖所有需要签名的账户
func (s *Submitter) Submit(ctx context.Context, instructions []solana.Instruction, payer solana.PublicKey, signers ...wallet.Signer) (solana.Signature, error) {
	tx, err := s.buildAndSign(ctx, instructions, payer, signers)
	if err != nil {
		return solana.Signature{}, err
	}

	// 广播前取消不会产生链上影响
	if err := ctx.Err(); err != nil {
		return solana.Signature{}, err
	}

	sig, err := s.ledger.SendTransaction(ctx, tx)
	if err != nil {
		common.Log.WithError(err).Error("发送交易失败")
		return solana.Signature{}, &common.SubmissionError{Reason: err.Error(), Err: err}
	}

	log := common.Log.WithFields(logrus.Fields{"signature": sig.String()})
	log.Infof("交易发送成功: https://solscan.io/tx/%s", sig.String())

	if err := s.confirm(ctx, sig); err != nil {
		log.WithError(err).Warn("交易未确认")
		return sig, err
	}

	log.Info("交易已确认")
	return sig, nil
}

func (s *Submitter) buildAndSign(ctx context.Context, instructions []solana.Instruction, payer solana.PublicKey, signers []wallet.Signer) (*solana.Transaction, error) {
	recent, err := s.ledger.GetLatestBlockhash(ctx)
	if err != nil {
		return nil, &common.SubmissionError{Reason: "获取区块哈希失败", Err: err}
	}

	tx, err := solana.NewTransaction(instructions, recent, solana.TransactionPayer(payer))
	if err != nil {
		return nil, &common.SubmissionError{Reason: "构造交易失败", Err: err}
	}

	message, err := tx.Message.MarshalBinary()
	if err != nil {
		return nil, &common.SubmissionError{Reason: "序列化交易消息失败", Err: err}
	}

	bySigner := make(map[solana.PublicKey]wallet.Signer, len(signers))
	for _, signer := range signers {
		bySigner[signer.PublicKey()] = signer
	}

	required := tx.Message.AccountKeys[:tx.Message.Header.NumRequiredSignatures]
	tx.Signatures = make([]solana.Signature, 0, len(required))
	for _, key := range required {
		signer, ok := bySigner[key]
		if !ok {
			return nil, &common.SubmissionError{Reason: fmt.Sprintf("缺少签名者 %s", key)}
		}
		sig, err := signer.SignTransaction(message)
		if err != nil {
			return nil, &common.SubmissionError{Reason: fmt.Sprintf("签名者 %s 签名失败", key), Err: err}
		}
		tx.Signatures = append(tx.Signatures, sig)
	}

	common.Log.WithFields(logrus.Fields{
		"instructions": len(tx.Message.Instructions),
		"accounts":     len(tx.Message.AccountKeys),
		"signers":      len(required),
	}).Debug("交易已签名")
	return tx, nil
}

// confirm 广播后无法确认的情况一律视为确认超时
func (s *Submitter) confirm(ctx context.Context, sig solana.Signature) error {
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := s.confirmer.Confirm(cctx, sig)
	if err == nil {
		return nil
	}
	if errors.Is(err, common.ErrSubmission) {
		return err
	}
	if !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
		common.Log.WithError(err).Warn("确认交易时出错")
	}
	return &common.ConfirmationTimeoutError{Signature: sig, Timeout: s.timeout}
}
