package pump

import (
	"fmt"
	"strings"

	"pump_launch/internal/common"
	"pump_launch/internal/model"
	"pump_launch/internal/units"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

// CurveTarget 购买所需的链上曲线信息
type CurveTarget struct {
	Mint         solana.PublicKey
	Creator      solana.PublicKey
	TokenProgram solana.PublicKey
	MayhemMode   bool
	State        *model.BondingCurve // 用于按滑点估算最少获得数量，可为空
}

// BuyPlan 购买交易
type BuyPlan struct {
	Plan
	Instruction *common.BuyExactSolInInstruction
}

// parsePositiveAmount 金额必须大于0
func parsePositiveAmount(field, amount string) (decimal.Decimal, error) {
	if strings.TrimSpace(amount) == "" {
		return decimal.Zero, &common.InvalidAmountError{Field: field, Amount: amount, Reason: "金额为空"}
	}
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return decimal.Zero, &common.MalformedAmountError{Amount: amount, Err: err}
	}
	if !d.IsPositive() {
		return decimal.Zero, &common.InvalidAmountError{Field: field, Amount: amount, Reason: "金额必须大于0"}
	}
	return d, nil
}

// buyAmounts 已换算为最小单位的购买金额
type buyAmounts struct {
	spendable uint64
	minOut    uint64
	hasMinOut bool
}

// parseBuyAmounts 只做换算与范围检查，不依赖链上状态
func (b *Builder) parseBuyAmounts(req *model.BuyTokenRequest) (*buyAmounts, error) {
	solIn, err := parsePositiveAmount("nativeAmountIn", req.NativeAmountIn)
	if err != nil {
		return nil, err
	}
	spendable, err := units.DecimalToBaseUnits(solIn, b.net.NativeDecimals)
	if err != nil {
		return nil, err
	}
	if spendable == 0 {
		return nil, &common.InvalidAmountError{Field: "nativeAmountIn", Amount: req.NativeAmountIn, Reason: "小于最小单位"}
	}

	amounts := &buyAmounts{spendable: spendable}
	if strings.TrimSpace(req.MinimumTokensOut) != "" {
		minOut, err := units.ToBaseUnits(req.MinimumTokensOut, b.net.TokenDecimals)
		if err != nil {
			return nil, err
		}
		amounts.minOut, amounts.hasMinOut = minOut, true
		return amounts, nil
	}

	if req.SlippageBps == 0 {
		return nil, &common.MissingFieldError{Field: "minimumTokensOut"}
	}
	if req.SlippageBps >= BasisPoints {
		return nil, &common.InvalidAmountError{Field: "slippageBps", Amount: fmt.Sprint(req.SlippageBps), Reason: "滑点必须小于10000"}
	}
	return amounts, nil
}

// ValidateBuy 不依赖链上状态的检查，在读取曲线之前调用
func (b *Builder) ValidateBuy(req *model.BuyTokenRequest) error {
	if req == nil {
		return &common.MissingFieldError{Field: "request"}
	}
	if req.TargetMint.IsZero() {
		return &common.MissingFieldError{Field: "mint"}
	}
	_, err := b.parseBuyAmounts(req)
	return err
}

// BuildBuy 构造购买已有代币的交易：先幂等创建用户代币账户再调用 buy_exact_sol_in
func (b *Builder) BuildBuy(req *model.BuyTokenRequest, user solana.PublicKey, target *CurveTarget) (*BuyPlan, error) {
	if err := b.ValidateBuy(req); err != nil {
		return nil, err
	}
	if target == nil {
		return nil, &common.MissingFieldError{Field: "bondingCurve"}
	}

	ixs, ix, err := b.buyInstructions(req, user, target)
	if err != nil {
		return nil, err
	}

	ixs, err = b.withBudget(ixs...)
	if err != nil {
		return nil, err
	}

	table := buyExactSolInTable(ix)
	return &BuyPlan{
		Plan: Plan{
			Instructions:    ixs,
			Accounts:        table,
			RequiredSigners: []solana.PublicKey{user},
		},
		Instruction: ix,
	}, nil
}

func (b *Builder) buyInstructions(req *model.BuyTokenRequest, user solana.PublicKey, target *CurveTarget) ([]solana.Instruction, *common.BuyExactSolInInstruction, error) {
	amounts, err := b.parseBuyAmounts(req)
	if err != nil {
		return nil, nil, err
	}
	spendable := amounts.spendable
	minOut, err := b.minimumTokensOut(amounts, req.SlippageBps, target.State)
	if err != nil {
		return nil, nil, err
	}

	mint := req.TargetMint
	tokenProgram := target.TokenProgram
	if tokenProgram.IsZero() {
		tokenProgram = b.net.TokenProgram
	}

	curve, err := b.bondingCurveAccounts(mint, tokenProgram)
	if err != nil {
		return nil, nil, err
	}
	userATA, err := b.ata.Address(user, tokenProgram, mint)
	if err != nil {
		return nil, nil, fmt.Errorf("派生用户代币账户失败: %w", err)
	}
	creatorVault, err := b.issuance.CreatorVault(target.Creator)
	if err != nil {
		return nil, nil, fmt.Errorf("派生 creator vault 失败: %w", err)
	}
	globalVolume, err := b.issuance.GlobalVolumeAccumulator()
	if err != nil {
		return nil, nil, fmt.Errorf("派生 global volume accumulator 失败: %w", err)
	}
	userVolume, err := b.issuance.UserVolumeAccumulator(user)
	if err != nil {
		return nil, nil, fmt.Errorf("派生 user volume accumulator 失败: %w", err)
	}
	feeConfig, err := b.fees.FeeConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("派生 fee config 失败: %w", err)
	}

	ix := &common.BuyExactSolInInstruction{
		Global:                  curve.Global,
		FeeRecipient:            b.net.FeeRecipientFor(target.MayhemMode),
		Mint:                    mint,
		BondingCurve:            curve.BondingCurve,
		AssociatedBondingCurve:  curve.AssociatedBondingCurve,
		AssociatedUser:          userATA.Key,
		User:                    user,
		SystemProgram:           b.net.SystemProgram,
		TokenProgram:            tokenProgram,
		CreatorVault:            creatorVault.Key,
		EventAuthority:          curve.EventAuthority,
		Program:                 b.issuance.Program(),
		GlobalVolumeAccumulator: globalVolume.Key,
		UserVolumeAccumulator:   userVolume.Key,
		FeeConfig:               feeConfig.Key,
		FeeProgram:              b.fees.Program(),
		Input: &common.BuyExactSolInArgs{
			SpendableSolIn: spendable,
			MinTokensOut:   minOut,
			TrackVolume:    common.OptionBool{Value: true},
		},
	}

	data, err := encodeBuyExactSolInArgs(ix.Input)
	if err != nil {
		return nil, nil, fmt.Errorf("编码 buy_exact_sol_in 参数失败: %w", err)
	}

	createATA := newCreateIdempotentATAInstruction(
		b.net.AssociatedTokenProgram,
		user, userATA.Key, user, mint, b.net.SystemProgram, tokenProgram,
	)
	buy := solana.NewInstruction(b.issuance.Program(), buyExactSolInTable(ix).Metas(), data)
	return []solana.Instruction{createATA, buy}, ix, nil
}

// minimumTokensOut 优先使用请求中的数量，否则按曲线报价和滑点计算
func (b *Builder) minimumTokensOut(amounts *buyAmounts, slippageBps uint64, state *model.BondingCurve) (uint64, error) {
	if amounts.hasMinOut {
		return amounts.minOut, nil
	}
	if state == nil {
		return 0, &common.MissingFieldError{Field: "minimumTokensOut"}
	}
	out := QuoteTokensOut(state, amounts.spendable, b.net.FeeBasisPoints)
	return ApplySlippage(out, slippageBps), nil
}
