package solana

import (
	"context"

	"pump_launch/internal/model"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// Client 包装Solana客户端功能
type Client struct {
	rpcClient  *rpc.Client
	commitment rpc.CommitmentType
}

// New 创建新的Solana客户端
func New(endpoint string) *Client {
	return &Client{
		rpcClient:  rpc.New(endpoint),
		commitment: rpc.CommitmentConfirmed,
	}
}

// GetLatestBlockhash 获取最新的区块哈希
func (c *Client) GetLatestBlockhash(ctx context.Context) (solana.Hash, error) {
	out, err := c.rpcClient.GetLatestBlockhash(ctx, c.commitment)
	if err != nil {
		return solana.Hash{}, err
	}
	return out.Value.Blockhash, nil
}

// SendTransaction 发送交易，由调用方决定是否重试
func (c *Client) SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	return c.rpcClient.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       false,
		PreflightCommitment: c.commitment,
		MaxRetries:          new(uint),
	})
}

// GetSignatureStatus 获取交易签名状态，账本尚未见到该签名时返回 nil
func (c *Client) GetSignatureStatus(ctx context.Context, sig solana.Signature) (*model.SignatureStatus, error) {
	out, err := c.rpcClient.GetSignatureStatuses(ctx, false, sig)
	if err != nil {
		return nil, err
	}
	if out == nil || len(out.Value) == 0 || out.Value[0] == nil {
		return nil, nil
	}
	status := out.Value[0]
	return &model.SignatureStatus{
		Slot: status.Slot,
		Confirmed: status.ConfirmationStatus == rpc.ConfirmationStatusConfirmed ||
			status.ConfirmationStatus == rpc.ConfirmationStatusFinalized,
		Err: status.Err,
	}, nil
}

// GetMultipleAccounts 批量读取账户，不存在的账户对应位置为 nil
func (c *Client) GetMultipleAccounts(ctx context.Context, keys ...solana.PublicKey) ([]*model.AccountData, error) {
	out, err := c.rpcClient.GetMultipleAccountsWithOpts(ctx, keys, &rpc.GetMultipleAccountsOpts{
		Encoding:   solana.EncodingBase64,
		Commitment: c.commitment,
	})
	if err != nil {
		return nil, err
	}
	accounts := make([]*model.AccountData, len(keys))
	for i, acc := range out.Value {
		if i >= len(accounts) || acc == nil || acc.Data == nil {
			continue
		}
		accounts[i] = &model.AccountData{
			Owner: acc.Owner,
			Data:  acc.Data.GetBinary(),
		}
	}
	return accounts, nil
}
