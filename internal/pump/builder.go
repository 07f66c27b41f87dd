package pump

import (
	"fmt"

	"pump_launch/internal/common"
	"pump_launch/internal/config"
	"pump_launch/internal/pda"

	"github.com/gagliardetto/solana-go"
)

// Plan 一笔交易所需的指令及签名者
type Plan struct {
	Instructions    []solana.Instruction
	Accounts        AccountTable // 主指令的账户表
	RequiredSigners []solana.PublicKey
}

// Builder 构造 create_v2 与 buy_exact_sol_in 指令
type Builder struct {
	net       config.Network
	issuance  pda.Issuance
	extension pda.Extension
	ata       pda.AssociatedToken
	fees      pda.FeeProgram
	opts      common.TxOptions
	newMint   func() (solana.PrivateKey, error)
}

// NewBuilder 每个程序的地址只能通过对应的 owner 派生
func NewBuilder(net config.Network, d pda.Deriver, opts common.TxOptions) *Builder {
	tierSeed := append([]byte(nil), net.FeeTierSeed...)
	return &Builder{
		net:       net,
		issuance:  pda.NewIssuance(d, net.IssuanceProgram),
		extension: pda.NewExtension(d, net.ExtensionProgram),
		ata:       pda.NewAssociatedToken(d, net.AssociatedTokenProgram),
		fees:      pda.NewFeeProgram(d, net.FeeProgram, tierSeed),
		opts:      opts,
		newMint:   solana.NewRandomPrivateKey,
	}
}

// WithMintGenerator 替换 mint 密钥生成方式
func (b *Builder) WithMintGenerator(gen func() (solana.PrivateKey, error)) *Builder {
	b.newMint = gen
	return b
}

// curveAccounts 创建与购买共用的联合曲线地址
type curveAccounts struct {
	Global                 solana.PublicKey
	BondingCurve           solana.PublicKey
	AssociatedBondingCurve solana.PublicKey
	EventAuthority         solana.PublicKey
}

func (b *Builder) bondingCurveAccounts(mint, tokenProgram solana.PublicKey) (*curveAccounts, error) {
	global, err := b.issuance.Global()
	if err != nil {
		return nil, fmt.Errorf("派生 global 失败: %w", err)
	}
	curve, err := b.issuance.BondingCurve(mint)
	if err != nil {
		return nil, fmt.Errorf("派生 bonding curve 失败: %w", err)
	}
	curveATA, err := b.ata.Address(curve.Key, tokenProgram, mint)
	if err != nil {
		return nil, fmt.Errorf("派生 bonding curve 代币账户失败: %w", err)
	}
	eventAuthority, err := b.issuance.EventAuthority()
	if err != nil {
		return nil, fmt.Errorf("派生 event authority 失败: %w", err)
	}
	return &curveAccounts{
		Global:                 global.Key,
		BondingCurve:           curve.Key,
		AssociatedBondingCurve: curveATA.Key,
		EventAuthority:         eventAuthority.Key,
	}, nil
}

// BondingCurveAddress 供读取链上曲线状态
func (b *Builder) BondingCurveAddress(mint solana.PublicKey) (solana.PublicKey, error) {
	curve, err := b.issuance.BondingCurve(mint)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return curve.Key, nil
}

func (b *Builder) withBudget(ixs ...solana.Instruction) ([]solana.Instruction, error) {
	budget, err := computeBudgetInstructions(b.opts)
	if err != nil {
		return nil, err
	}
	return append(budget, ixs...), nil
}
