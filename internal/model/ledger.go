package model

import "github.com/gagliardetto/solana-go"

// SignatureStatus 账本返回的签名状态
type SignatureStatus struct {
	Slot      uint64
	Confirmed bool        // 已达到 confirmed 或 finalized
	Err       interface{} // 链上执行失败原因，原样保留
}

// AccountData 账户的所有者与原始数据
type AccountData struct {
	Owner solana.PublicKey
	Data  []byte
}
