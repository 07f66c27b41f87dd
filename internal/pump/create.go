package pump

import (
	"fmt"
	"strings"

	"pump_launch/internal/common"
	"pump_launch/internal/model"

	"github.com/gagliardetto/solana-go"
)

// CreatePlan 创建交易，Mint 私钥只用于本次签名
type CreatePlan struct {
	Plan
	Mint        solana.PrivateKey
	Instruction *common.CreateV2Instruction
	Buy         *common.BuyExactSolInInstruction // 附带首次买入时非空
}

func validateCreate(req *model.CreateTokenRequest) error {
	if req == nil {
		return &common.MissingFieldError{Field: "request"}
	}
	for _, f := range []struct{ name, value string }{
		{"name", req.Name},
		{"symbol", req.Symbol},
		{"metadataUri", req.MetadataURI},
	} {
		if strings.TrimSpace(f.value) == "" {
			return &common.MissingFieldError{Field: f.name}
		}
	}
	if req.InitialBuy != nil {
		if _, err := parsePositiveAmount("initialBuy.nativeAmountIn", req.InitialBuy.NativeAmountIn); err != nil {
			return err
		}
		if strings.TrimSpace(req.InitialBuy.MinimumTokensOut) == "" {
			return &common.MissingFieldError{Field: "initialBuy.minimumTokensOut"}
		}
	}
	return nil
}

// BuildCreate 校验请求、生成 mint 并构造 create_v2 指令
func (b *Builder) BuildCreate(req *model.CreateTokenRequest, user solana.PublicKey) (*CreatePlan, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	creator := req.Creator
	if creator.IsZero() {
		creator = user
	}

	mintKey, err := b.newMint()
	if err != nil {
		return nil, fmt.Errorf("生成 mint 密钥失败: %w", err)
	}
	mint := mintKey.PublicKey()
	tokenProgram := b.net.TokenProgram

	curve, err := b.bondingCurveAccounts(mint, tokenProgram)
	if err != nil {
		return nil, err
	}
	mintAuthority, err := b.issuance.MintAuthority()
	if err != nil {
		return nil, fmt.Errorf("派生 mint authority 失败: %w", err)
	}
	globalParams, err := b.extension.GlobalParams()
	if err != nil {
		return nil, fmt.Errorf("派生 global params 失败: %w", err)
	}
	solVault, err := b.extension.SolVault()
	if err != nil {
		return nil, fmt.Errorf("派生 sol vault 失败: %w", err)
	}
	mayhemState, err := b.extension.MayhemState(mint)
	if err != nil {
		return nil, fmt.Errorf("派生 mayhem state 失败: %w", err)
	}
	mayhemVault, err := b.ata.Address(solVault.Key, tokenProgram, mint)
	if err != nil {
		return nil, fmt.Errorf("派生 mayhem 代币账户失败: %w", err)
	}

	ix := &common.CreateV2Instruction{
		Mint:                   mint,
		MintAuthority:          mintAuthority.Key,
		BondingCurve:           curve.BondingCurve,
		AssociatedBondingCurve: curve.AssociatedBondingCurve,
		Global:                 curve.Global,
		User:                   user,
		SystemProgram:          b.net.SystemProgram,
		TokenProgram:           tokenProgram,
		AssociatedTokenProgram: b.net.AssociatedTokenProgram,
		MayhemProgram:          b.extension.Program(),
		GlobalParams:           globalParams.Key,
		SolVault:               solVault.Key,
		MayhemState:            mayhemState.Key,
		MayhemTokenVault:       mayhemVault.Key,
		EventAuthority:         curve.EventAuthority,
		Program:                b.issuance.Program(),
		Input: &common.CreateV2Args{
			Name:         req.Name,
			Symbol:       req.Symbol,
			Uri:          req.MetadataURI,
			Creator:      creator,
			IsMayhemMode: req.MayhemMode,
		},
	}

	data, err := encodeCreateV2Args(ix.Input)
	if err != nil {
		return nil, fmt.Errorf("编码 create_v2 参数失败: %w", err)
	}
	table := createV2Table(ix)

	plan := &CreatePlan{
		Plan: Plan{
			Instructions:    []solana.Instruction{solana.NewInstruction(b.issuance.Program(), table.Metas(), data)},
			Accounts:        table,
			RequiredSigners: []solana.PublicKey{user, mint},
		},
		Mint:        mintKey,
		Instruction: ix,
	}

	if req.InitialBuy != nil {
		target := &CurveTarget{
			Mint:         mint,
			Creator:      creator,
			TokenProgram: tokenProgram,
			MayhemMode:   req.MayhemMode,
		}
		buyReq := &model.BuyTokenRequest{
			TargetMint:       mint,
			NativeAmountIn:   req.InitialBuy.NativeAmountIn,
			MinimumTokensOut: req.InitialBuy.MinimumTokensOut,
		}
		buyIxs, buyIx, err := b.buyInstructions(buyReq, user, target)
		if err != nil {
			return nil, err
		}
		plan.Instructions = append(plan.Instructions, buyIxs...)
		plan.Buy = buyIx
	}

	ixs, err := b.withBudget(plan.Instructions...)
	if err != nil {
		return nil, err
	}
	plan.Instructions = ixs
	return plan, nil
}
