package pump

import (
	"math/big"

	"pump_launch/internal/model"
)

const BasisPoints = 10_000

// QuoteTokensOut 恒定乘积报价：扣除手续费后的 SOL 换算为代币数量，不超过实际剩余储备
func QuoteTokensOut(curve *model.BondingCurve, spendableSol uint64, feeBps uint64) uint64 {
	if curve == nil || curve.Complete || spendableSol == 0 {
		return 0
	}

	bps := big.NewInt(BasisPoints)
	netSol := new(big.Int).Mul(new(big.Int).SetUint64(spendableSol), bps)
	netSol.Quo(netSol, new(big.Int).Add(bps, new(big.Int).SetUint64(feeBps)))

	vSol := new(big.Int).SetUint64(curve.VirtualSolReserves)
	vToken := new(big.Int).SetUint64(curve.VirtualTokenReserves)

	denom := new(big.Int).Add(vSol, netSol)
	if denom.Sign() == 0 {
		return 0
	}
	out := new(big.Int).Mul(netSol, vToken)
	out.Quo(out, denom)

	remaining := new(big.Int).SetUint64(curve.RealTokenReserves)
	if out.Cmp(remaining) > 0 {
		out = remaining
	}
	return out.Uint64()
}

// ApplySlippage 按基点下调最少获得数量
func ApplySlippage(amount uint64, slippageBps uint64) uint64 {
	if slippageBps >= BasisPoints {
		return 0
	}
	v := new(big.Int).SetUint64(amount)
	v.Mul(v, big.NewInt(int64(BasisPoints-slippageBps)))
	v.Quo(v, big.NewInt(BasisPoints))
	return v.Uint64()
}
