package pda

import "github.com/gagliardetto/solana-go"

// 发行程序(pump)的种子
const (
	SeedGlobal                  = "global"
	SeedMintAuthority           = "mint-authority"
	SeedBondingCurve            = "bonding-curve"
	SeedEventAuthority          = "__event_authority"
	SeedGlobalVolumeAccumulator = "global_volume_accumulator"
	SeedUserVolumeAccumulator   = "user_volume_accumulator"
	SeedCreatorVault            = "creator-vault"
)

// 扩展程序(mayhem)的种子
const (
	SeedGlobalParams = "global-params"
	SeedSolVault     = "sol-vault"
	SeedMayhemState  = "mayhem-state"
)

// 手续费程序的种子
const SeedFeeConfig = "fee_config"

// Issuance 发行程序拥有的地址
type Issuance struct {
	d       Deriver
	program solana.PublicKey
}

func NewIssuance(d Deriver, program solana.PublicKey) Issuance {
	return Issuance{d: d, program: program}
}

func (o Issuance) Program() solana.PublicKey { return o.program }

func (o Issuance) Global() (Address, error) {
	return o.d.Derive(o.program, []byte(SeedGlobal))
}

func (o Issuance) MintAuthority() (Address, error) {
	return o.d.Derive(o.program, []byte(SeedMintAuthority))
}

func (o Issuance) BondingCurve(mint solana.PublicKey) (Address, error) {
	return o.d.Derive(o.program, []byte(SeedBondingCurve), mint.Bytes())
}

func (o Issuance) EventAuthority() (Address, error) {
	return o.d.Derive(o.program, []byte(SeedEventAuthority))
}

func (o Issuance) GlobalVolumeAccumulator() (Address, error) {
	return o.d.Derive(o.program, []byte(SeedGlobalVolumeAccumulator))
}

func (o Issuance) UserVolumeAccumulator(user solana.PublicKey) (Address, error) {
	return o.d.Derive(o.program, []byte(SeedUserVolumeAccumulator), user.Bytes())
}

func (o Issuance) CreatorVault(creator solana.PublicKey) (Address, error) {
	return o.d.Derive(o.program, []byte(SeedCreatorVault), creator.Bytes())
}

// Extension 扩展程序拥有的地址
type Extension struct {
	d       Deriver
	program solana.PublicKey
}

func NewExtension(d Deriver, program solana.PublicKey) Extension {
	return Extension{d: d, program: program}
}

func (o Extension) Program() solana.PublicKey { return o.program }

func (o Extension) GlobalParams() (Address, error) {
	return o.d.Derive(o.program, []byte(SeedGlobalParams))
}

func (o Extension) SolVault() (Address, error) {
	return o.d.Derive(o.program, []byte(SeedSolVault))
}

func (o Extension) MayhemState(mint solana.PublicKey) (Address, error) {
	return o.d.Derive(o.program, []byte(SeedMayhemState), mint.Bytes())
}

// AssociatedToken 关联代币账户，种子为 [owner, tokenProgram, mint]
type AssociatedToken struct {
	d       Deriver
	program solana.PublicKey
}

func NewAssociatedToken(d Deriver, program solana.PublicKey) AssociatedToken {
	return AssociatedToken{d: d, program: program}
}

func (o AssociatedToken) Program() solana.PublicKey { return o.program }

func (o AssociatedToken) Address(owner, tokenProgram, mint solana.PublicKey) (Address, error) {
	return o.d.Derive(o.program, owner.Bytes(), tokenProgram.Bytes(), mint.Bytes())
}

// FeeProgram 手续费程序拥有的地址，费率档位种子在构造时固定
type FeeProgram struct {
	d        Deriver
	program  solana.PublicKey
	tierSeed []byte
}

func NewFeeProgram(d Deriver, program solana.PublicKey, tierSeed []byte) FeeProgram {
	return FeeProgram{d: d, program: program, tierSeed: tierSeed}
}

func (o FeeProgram) Program() solana.PublicKey { return o.program }

func (o FeeProgram) FeeConfig() (Address, error) {
	return o.d.Derive(o.program, []byte(SeedFeeConfig), o.tierSeed)
}
