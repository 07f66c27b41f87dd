package common

import "github.com/gagliardetto/solana-go"

// CreateV2Instruction create_v2 指令的账户与参数，字段顺序即链上账户顺序
type CreateV2Instruction struct {
	Mint                   solana.PublicKey
	MintAuthority          solana.PublicKey
	BondingCurve           solana.PublicKey
	AssociatedBondingCurve solana.PublicKey
	Global                 solana.PublicKey
	User                   solana.PublicKey
	SystemProgram          solana.PublicKey
	TokenProgram           solana.PublicKey
	AssociatedTokenProgram solana.PublicKey
	MayhemProgram          solana.PublicKey
	GlobalParams           solana.PublicKey
	SolVault               solana.PublicKey
	MayhemState            solana.PublicKey
	MayhemTokenVault       solana.PublicKey
	EventAuthority         solana.PublicKey
	Program                solana.PublicKey
	Input                  *CreateV2Args
}

// CreateV2Args 定义创建指令的输入数据
type CreateV2Args struct {
	Name         string
	Symbol       string
	Uri          string
	Creator      solana.PublicKey
	IsMayhemMode bool
}

// BuyExactSolInInstruction buy_exact_sol_in 指令的账户与参数
type BuyExactSolInInstruction struct {
	Global                  solana.PublicKey
	FeeRecipient            solana.PublicKey
	Mint                    solana.PublicKey
	BondingCurve            solana.PublicKey
	AssociatedBondingCurve  solana.PublicKey
	AssociatedUser          solana.PublicKey
	User                    solana.PublicKey
	SystemProgram           solana.PublicKey
	TokenProgram            solana.PublicKey
	CreatorVault            solana.PublicKey
	EventAuthority          solana.PublicKey
	Program                 solana.PublicKey
	GlobalVolumeAccumulator solana.PublicKey
	UserVolumeAccumulator   solana.PublicKey
	FeeConfig               solana.PublicKey
	FeeProgram              solana.PublicKey
	Input                   *BuyExactSolInArgs
}

// BuyExactSolInArgs 定义购买指令的输入数据
type BuyExactSolInArgs struct {
	SpendableSolIn uint64
	MinTokensOut   uint64
	TrackVolume    OptionBool
}

// OptionBool 链上 OptionBool 类型，编码为单字节
type OptionBool struct {
	Value bool
}
