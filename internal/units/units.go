package units

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"pump_launch/internal/common"

	"github.com/shopspring/decimal"
)

var maxUint64 = fromUint64(math.MaxUint64)

func fromUint64(v uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0)
}

// maxBaseUnitDigits uint64 最大值的十进制位数
const maxBaseUnitDigits = 20

// ToBaseUnits 十进制金额换算为整数最小单位，多余小数位向零截断
func ToBaseUnits(amount string, decimals int32) (uint64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return 0, &common.MalformedAmountError{Amount: amount, Err: err}
	}
	return toBaseUnits(d, decimals, amount)
}

// DecimalToBaseUnits 同 ToBaseUnits，输入为已解析的十进制数
func DecimalToBaseUnits(amount decimal.Decimal, decimals int32) (uint64, error) {
	return toBaseUnits(amount, decimals, compact(amount))
}

// toBaseUnits 先按位数判断量级，避免对巨大指数展开
func toBaseUnits(amount decimal.Decimal, decimals int32, raw string) (uint64, error) {
	if amount.IsNegative() {
		return 0, &common.NegativeAmountError{Amount: raw}
	}
	if amount.IsZero() {
		return 0, nil
	}

	// 缩放后整数部分的位数
	digits := int64(amount.NumDigits()) + int64(amount.Exponent()) + int64(decimals)
	if digits > maxBaseUnitDigits {
		return 0, &common.OverflowError{Amount: raw, Decimals: decimals}
	}
	if digits <= 0 {
		return 0, nil
	}

	scaled := amount.Shift(decimals).Truncate(0)
	if scaled.GreaterThan(maxUint64) {
		return 0, &common.OverflowError{Amount: raw, Decimals: decimals}
	}

	return scaled.BigInt().Uint64(), nil
}

// compact 科学计数法表示，不展开指数
func compact(d decimal.Decimal) string {
	return fmt.Sprintf("%se%d", d.Coefficient().String(), d.Exponent())
}

// FromBaseUnits 整数最小单位换算回十进制金额
func FromBaseUnits(amount uint64, decimals int32) decimal.Decimal {
	return fromUint64(amount).Shift(-decimals)
}

// FormatBaseUnits 去掉末尾多余的零
func FormatBaseUnits(amount uint64, decimals int32) string {
	return FromBaseUnits(amount, decimals).String()
}

// LamportsToSol 原生代币最小单位换算
func LamportsToSol(lamports uint64) decimal.Decimal {
	return FromBaseUnits(lamports, common.NATIVE_DECIMALS)
}
