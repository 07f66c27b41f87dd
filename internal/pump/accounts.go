package pump

import (
	"pump_launch/internal/common"

	"github.com/gagliardetto/solana-go"
)

// AccountRole 账户在指令中的读写与签名属性
type AccountRole struct {
	Writable bool
	Signer   bool
}

var (
	Readonly       = AccountRole{}
	Writable       = AccountRole{Writable: true}
	WritableSigner = AccountRole{Writable: true, Signer: true}
)

// AccountEntry 带名称的账户项，方便日志与测试核对顺序
type AccountEntry struct {
	Name string
	Key  solana.PublicKey
	Role AccountRole
}

// AccountTable 指令账户列表，顺序即链上顺序
type AccountTable []AccountEntry

// Metas 转换为 solana-go 的账户元数据
func (t AccountTable) Metas() solana.AccountMetaSlice {
	metas := make(solana.AccountMetaSlice, 0, len(t))
	for _, entry := range t {
		metas = append(metas, solana.NewAccountMeta(entry.Key, entry.Role.Writable, entry.Role.Signer))
	}
	return metas
}

// Names 按顺序返回账户名称
func (t AccountTable) Names() []string {
	names := make([]string, len(t))
	for i, entry := range t {
		names[i] = entry.Name
	}
	return names
}

// Signers 需要签名的账户
func (t AccountTable) Signers() []solana.PublicKey {
	var signers []solana.PublicKey
	for _, entry := range t {
		if entry.Role.Signer {
			signers = append(signers, entry.Key)
		}
	}
	return signers
}

// createV2Table create_v2 的16个账户
func createV2Table(ix *common.CreateV2Instruction) AccountTable {
	return AccountTable{
		{"mint", ix.Mint, WritableSigner},
		{"mint_authority", ix.MintAuthority, Readonly},
		{"bonding_curve", ix.BondingCurve, Writable},
		{"associated_bonding_curve", ix.AssociatedBondingCurve, Writable},
		{"global", ix.Global, Readonly},
		{"user", ix.User, WritableSigner},
		{"system_program", ix.SystemProgram, Readonly},
		{"token_program", ix.TokenProgram, Readonly},
		{"associated_token_program", ix.AssociatedTokenProgram, Readonly},
		{"mayhem_program_id", ix.MayhemProgram, Writable},
		{"global_params", ix.GlobalParams, Readonly},
		{"sol_vault", ix.SolVault, Writable},
		{"mayhem_state", ix.MayhemState, Writable},
		{"mayhem_token_vault", ix.MayhemTokenVault, Writable},
		{"event_authority", ix.EventAuthority, Readonly},
		{"program", ix.Program, Readonly},
	}
}

// buyExactSolInTable buy_exact_sol_in 的16个账户
func buyExactSolInTable(ix *common.BuyExactSolInInstruction) AccountTable {
	return AccountTable{
		{"global", ix.Global, Readonly},
		{"fee_recipient", ix.FeeRecipient, Writable},
		{"mint", ix.Mint, Readonly},
		{"bonding_curve", ix.BondingCurve, Writable},
		{"associated_bonding_curve", ix.AssociatedBondingCurve, Writable},
		{"associated_user", ix.AssociatedUser, Writable},
		{"user", ix.User, WritableSigner},
		{"system_program", ix.SystemProgram, Readonly},
		{"token_program", ix.TokenProgram, Readonly},
		{"creator_vault", ix.CreatorVault, Writable},
		{"event_authority", ix.EventAuthority, Readonly},
		{"program", ix.Program, Readonly},
		{"global_volume_accumulator", ix.GlobalVolumeAccumulator, Readonly},
		{"user_volume_accumulator", ix.UserVolumeAccumulator, Writable},
		{"fee_config", ix.FeeConfig, Readonly},
		{"fee_program", ix.FeeProgram, Readonly},
	}
}
