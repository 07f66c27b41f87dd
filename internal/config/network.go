package config

import (
	"pump_launch/internal/common"

	"github.com/gagliardetto/solana-go"
)

// Network 进程内固定的程序标识，构造后只读
type Network struct {
	IssuanceProgram        solana.PublicKey // pump
	ExtensionProgram       solana.PublicKey // mayhem
	TokenProgram           solana.PublicKey // Token-2022
	AssociatedTokenProgram solana.PublicKey
	SystemProgram          solana.PublicKey
	FeeProgram             solana.PublicKey
	FeeRecipient           solana.PublicKey
	MayhemFeeRecipient     solana.PublicKey
	FeeTierSeed            []byte
	FeeBasisPoints         uint64
	NativeDecimals         int32
	TokenDecimals          int32
}

var (
	PumpProgramID          = solana.MustPublicKeyFromBase58("6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P")
	MayhemProgramID        = solana.MustPublicKeyFromBase58("MAyhSmzXzV1pTf7LsNkrNwkWKTo4ougAJ1PPg47MD4e")
	Token2022ProgramID     = solana.MustPublicKeyFromBase58("TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb")
	PumpFeeProgramID       = solana.MustPublicKeyFromBase58("pfeeUxB6jkeY1Hxd7CsFCAjcbHA9rWtchMGdZ6VojVZ")
	FeeRecipientID         = solana.MustPublicKeyFromBase58("CebN5WGQ4jvEPvsVU4EoHEpgzq1VV7AbicfhtW4xC9iM")
	MayhemFeeRecipientID   = solana.MustPublicKeyFromBase58("GesfTA3X2arioaHp8bbKdjG9vJtskViWACZoYvxp4twS")
	DefaultFeeBasisPoints  = uint64(125)
	DefaultExternalViewURL = "https://pump.fun/coin/"
)

// MainnetNetwork 主网默认值，费率档位种子为发行程序地址
func MainnetNetwork() Network {
	return Network{
		IssuanceProgram:        PumpProgramID,
		ExtensionProgram:       MayhemProgramID,
		TokenProgram:           Token2022ProgramID,
		AssociatedTokenProgram: solana.SPLAssociatedTokenAccountProgramID,
		SystemProgram:          solana.SystemProgramID,
		FeeProgram:             PumpFeeProgramID,
		FeeRecipient:           FeeRecipientID,
		MayhemFeeRecipient:     MayhemFeeRecipientID,
		FeeTierSeed:            PumpProgramID.Bytes(),
		FeeBasisPoints:         DefaultFeeBasisPoints,
		NativeDecimals:         common.NATIVE_DECIMALS,
		TokenDecimals:          common.TOKEN_DECIMALS,
	}
}

// FeeRecipientFor mayhem 模式的曲线使用单独的手续费接收账户
func (n Network) FeeRecipientFor(mayhemMode bool) solana.PublicKey {
	if mayhemMode {
		return n.MayhemFeeRecipient
	}
	return n.FeeRecipient
}
