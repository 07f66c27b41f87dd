package model

import "github.com/gagliardetto/solana-go"

// CreateTokenRequest 创建代币请求
type CreateTokenRequest struct {
	Name        string           `json:"name"`
	Symbol      string           `json:"symbol"`
	MetadataURI string           `json:"metadataUri"`
	ImageURI    string           `json:"imageUrl,omitempty"` // 仅用于发行记录
	Creator     solana.PublicKey `json:"creator"`
	MayhemMode  bool             `json:"mayhemMode"`
	InitialBuy  *InitialBuy      `json:"initialBuy,omitempty"`
}

// InitialBuy 创建时在同一笔交易中买入
type InitialBuy struct {
	NativeAmountIn   string `json:"nativeAmountIn"`
	MinimumTokensOut string `json:"minimumTokensOut"`
}

// BuyTokenRequest 购买已有代币请求，金额均为十进制字符串
type BuyTokenRequest struct {
	TargetMint       solana.PublicKey `json:"mint"`
	NativeAmountIn   string           `json:"nativeAmountIn"`
	MinimumTokensOut string           `json:"minimumTokensOut,omitempty"`
	SlippageBps      uint64           `json:"slippageBps,omitempty"` // 未提供 MinimumTokensOut 时使用
}

// TransactionResult 交易确认后的结果
type TransactionResult struct {
	Signature   solana.Signature  `json:"signature"`
	CreatedMint *solana.PublicKey `json:"createdMint,omitempty"`
}
