package model

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// BondingCurve 联合曲线账户状态，前8字节为账户鉴别符
type BondingCurve struct {
	Discriminator        [8]byte
	VirtualTokenReserves uint64
	VirtualSolReserves   uint64
	RealTokenReserves    uint64
	RealSolReserves      uint64
	TokenTotalSupply     uint64
	Complete             bool
	Creator              solana.PublicKey
	IsMayhemMode         bool
}

// MarketCapLamports 按虚拟储备估算市值
func (c *BondingCurve) MarketCapLamports() uint64 {
	if c.VirtualTokenReserves == 0 {
		return 0
	}
	return uint64(float64(c.TokenTotalSupply) * float64(c.VirtualSolReserves) / float64(c.VirtualTokenReserves))
}

// FormatBondingCurve 格式化显示联合曲线信息
func FormatBondingCurve(address solana.PublicKey, c *BondingCurve) string {
	return fmt.Sprintf(`
		==== 联合曲线信息 ====
		address: %s
		creator: %s
		virtualTokenReserves: %d
		virtualSolReserves: %d
		realTokenReserves: %d
		realSolReserves: %d
		tokenTotalSupply: %d
		complete: %t
		isMayhemMode: %t
		marketCapLamports: %d
		========================
	`,
		address,
		c.Creator,
		c.VirtualTokenReserves,
		c.VirtualSolReserves,
		c.RealTokenReserves,
		c.RealSolReserves,
		c.TokenTotalSupply,
		c.Complete,
		c.IsMayhemMode,
		c.MarketCapLamports(),
	)
}
