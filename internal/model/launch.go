package model

import (
	"time"
)

// LaunchRecord 一次成功发行的记录
type LaunchRecord struct {
	ID              string `json:"id,omitempty" db:"id"`                  // 记录ID
	Mint            string `json:"mint" db:"mint"`                        // 代币地址
	Name            string `json:"name" db:"name"`                        // 代币名称
	Symbol          string `json:"symbol" db:"symbol"`                    // 代币符号
	ImageURI        string `json:"imageUrl" db:"image_url"`               // 图片地址
	Creator         string `json:"creator" db:"creator"`                  // 创建者钱包地址
	Signature       string `json:"signature" db:"signature"`              // 交易签名
	Timestamp       int64  `json:"timestamp" db:"timestamp"`              // 毫秒时间戳
	ExternalViewURL string `json:"pumpfunUrl" db:"external_view_url"`     // 外部浏览链接
}

// NewLaunchRecord 根据交易结果创建发行记录
func NewLaunchRecord(req *CreateTokenRequest, result *TransactionResult, viewBase string) *LaunchRecord {
	mint := ""
	if result.CreatedMint != nil {
		mint = result.CreatedMint.String()
	}
	return &LaunchRecord{
		Mint:            mint,
		Name:            req.Name,
		Symbol:          req.Symbol,
		ImageURI:        req.ImageURI,
		Creator:         req.Creator.String(),
		Signature:       result.Signature.String(),
		Timestamp:       time.Now().UnixMilli(),
		ExternalViewURL: viewBase + mint,
	}
}
