package launcher

import (
	"context"
	"fmt"

	"pump_launch/internal/common"
	"pump_launch/internal/model"
	"pump_launch/internal/pump"
	"pump_launch/internal/units"
	"pump_launch/internal/wallet"

	"github.com/gagliardetto/solana-go"
	"github.com/sirupsen/logrus"
)

// BuyTokens 按固定 SOL 数量购买已有代币
func (l *Launcher) BuyTokens(ctx context.Context, caller wallet.Signer, req *model.BuyTokenRequest) (*model.TransactionResult, error) {
	if err := l.builder.ValidateBuy(req); err != nil {
		return nil, err
	}

	release, err := l.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	target, err := l.LookupCurve(ctx, req.TargetMint)
	if err != nil {
		return nil, err
	}

	user := caller.PublicKey()
	plan, err := l.builder.BuildBuy(req, user, target)
	if err != nil {
		return nil, err
	}

	log := common.Log.WithFields(logrus.Fields{
		"mint":           req.TargetMint.String(),
		"spendable_sol":  units.LamportsToSol(plan.Instruction.Input.SpendableSolIn).String(),
		"min_tokens_out": units.FormatBaseUnits(plan.Instruction.Input.MinTokensOut, common.TOKEN_DECIMALS),
	})
	log.Info("开始购买代币")

	sig, err := l.submitter.Submit(ctx, plan.Instructions, user, caller)
	if err != nil {
		log.WithError(err).Error("购买代币失败")
		return nil, err
	}

	log.WithField("signature", sig.String()).Info("购买成功")
	return &model.TransactionResult{Signature: sig}, nil
}

// LookupCurve 读取 mint 与联合曲线账户，得到代币程序、创建者与 mayhem 标志
func (l *Launcher) LookupCurve(ctx context.Context, mint solana.PublicKey) (*pump.CurveTarget, error) {
	curveKey, err := l.builder.BondingCurveAddress(mint)
	if err != nil {
		return nil, err
	}

	accounts, err := l.accounts.GetMultipleAccounts(ctx, mint, curveKey)
	if err != nil {
		return nil, &common.SubmissionError{Reason: fmt.Sprintf("读取联合曲线账户失败: %v", err), Err: err}
	}
	if len(accounts) < 2 || accounts[0] == nil {
		return nil, &common.AccountNotFoundError{Account: mint, Kind: "mint"}
	}
	if accounts[1] == nil {
		return nil, &common.AccountNotFoundError{Account: curveKey, Kind: "bonding curve"}
	}

	state, err := pump.DecodeBondingCurve(accounts[1].Data)
	if err != nil {
		common.Log.WithError(err).Warnf("解析联合曲线 %s 失败", curveKey)
		return nil, &common.AccountNotFoundError{Account: curveKey, Kind: "bonding curve"}
	}
	if state.Complete {
		return nil, &common.AccountNotFoundError{Account: curveKey, Kind: "active bonding curve"}
	}

	common.Log.Debug(model.FormatBondingCurve(curveKey, state))
	return &pump.CurveTarget{
		Mint:         mint,
		Creator:      state.Creator,
		TokenProgram: accounts[0].Owner,
		MayhemMode:   state.IsMayhemMode,
		State:        state,
	}, nil
}
