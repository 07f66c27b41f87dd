package pump

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	"pump_launch/internal/common"
	"pump_launch/internal/model"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"
)

var (
	createV2Discriminator      = discriminator("global", "create_v2")
	buyExactSolInDiscriminator = discriminator("global", "buy_exact_sol_in")
	bondingCurveDiscriminator  = discriminator("account", "BondingCurve")
)

// discriminator anchor 鉴别符 sha256("<namespace>:<name>")[:8]
func discriminator(namespace, name string) [8]byte {
	var out [8]byte
	sum := sha256.Sum256([]byte(namespace + ":" + name))
	copy(out[:], sum[:8])
	return out
}

// encodeCreateV2Args 鉴别符 + name + symbol + uri + creator + is_mayhem_mode
func encodeCreateV2Args(args *common.CreateV2Args) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := bin.NewBorshEncoder(buf)

	if err := enc.WriteBytes(createV2Discriminator[:], false); err != nil {
		return nil, err
	}
	for _, s := range []string{args.Name, args.Symbol, args.Uri} {
		if err := writeString(enc, s); err != nil {
			return nil, err
		}
	}
	if err := enc.WriteBytes(args.Creator.Bytes(), false); err != nil {
		return nil, err
	}
	if err := enc.WriteBool(args.IsMayhemMode); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// encodeBuyExactSolInArgs 鉴别符 + spendable_sol_in + min_tokens_out + track_volume
func encodeBuyExactSolInArgs(args *common.BuyExactSolInArgs) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := bin.NewBorshEncoder(buf)

	if err := enc.WriteBytes(buyExactSolInDiscriminator[:], false); err != nil {
		return nil, err
	}
	if err := enc.WriteUint64(args.SpendableSolIn, bin.LE); err != nil {
		return nil, err
	}
	if err := enc.WriteUint64(args.MinTokensOut, bin.LE); err != nil {
		return nil, err
	}
	if err := enc.WriteBool(args.TrackVolume.Value); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// borsh 字符串：u32 小端长度 + 字节
func writeString(enc *bin.Encoder, s string) error {
	if err := enc.WriteUint32(uint32(len(s)), bin.LE); err != nil {
		return err
	}
	return enc.WriteBytes([]byte(s), false)
}

// newCreateIdempotentATAInstruction 创建关联代币账户，已存在时不报错
func newCreateIdempotentATAInstruction(
	associatedTokenProgram solana.PublicKey,
	payer, ata, owner, mint, systemProgram, tokenProgram solana.PublicKey,
) solana.Instruction {
	accounts := AccountTable{
		{"payer", payer, WritableSigner},
		{"associated_token", ata, Writable},
		{"owner", owner, Readonly},
		{"mint", mint, Readonly},
		{"system_program", systemProgram, Readonly},
		{"token_program", tokenProgram, Readonly},
	}
	return solana.NewInstruction(associatedTokenProgram, accounts.Metas(), []byte{1})
}

// computeBudgetInstructions 优先费与计算单元上限，未设置时返回空
func computeBudgetInstructions(opts common.TxOptions) ([]solana.Instruction, error) {
	var out []solana.Instruction
	if opts.ComputeUnitLimit > 0 {
		ix, err := computebudget.NewSetComputeUnitLimitInstruction(opts.ComputeUnitLimit).ValidateAndBuild()
		if err != nil {
			return nil, fmt.Errorf("构造计算单元上限指令失败: %w", err)
		}
		out = append(out, ix)
	}
	if opts.PriorityFee > 0 {
		ix, err := computebudget.NewSetComputeUnitPriceInstruction(opts.PriorityFee).ValidateAndBuild()
		if err != nil {
			return nil, fmt.Errorf("构造优先费指令失败: %w", err)
		}
		out = append(out, ix)
	}
	return out, nil
}

// DecodeBondingCurve 解析联合曲线账户，旧账户没有 is_mayhem_mode 字段
func DecodeBondingCurve(data []byte) (*model.BondingCurve, error) {
	if len(data) < 8 || !bytes.Equal(data[:8], bondingCurveDiscriminator[:]) {
		return nil, fmt.Errorf("联合曲线账户鉴别符不匹配")
	}

	dec := bin.NewBorshDecoder(data)
	var state model.BondingCurve
	disc, err := dec.ReadNBytes(8)
	if err != nil {
		return nil, err
	}
	copy(state.Discriminator[:], disc)

	for _, dst := range []*uint64{
		&state.VirtualTokenReserves,
		&state.VirtualSolReserves,
		&state.RealTokenReserves,
		&state.RealSolReserves,
		&state.TokenTotalSupply,
	} {
		if *dst, err = dec.ReadUint64(bin.LE); err != nil {
			return nil, fmt.Errorf("解析联合曲线储备失败: %w", err)
		}
	}
	if state.Complete, err = dec.ReadBool(); err != nil {
		return nil, fmt.Errorf("解析联合曲线状态失败: %w", err)
	}

	if dec.Remaining() >= solana.PublicKeyLength {
		creator, err := dec.ReadNBytes(solana.PublicKeyLength)
		if err != nil {
			return nil, err
		}
		state.Creator = solana.PublicKeyFromBytes(creator)
	}
	if dec.Remaining() >= 1 {
		if state.IsMayhemMode, err = dec.ReadBool(); err != nil {
			return nil, err
		}
	}
	return &state, nil
}

// EncodeBondingCurve 按链上布局编码联合曲线账户
func EncodeBondingCurve(c *model.BondingCurve) []byte {
	buf := new(bytes.Buffer)
	enc := bin.NewBorshEncoder(buf)
	_ = enc.WriteBytes(bondingCurveDiscriminator[:], false)
	for _, v := range []uint64{
		c.VirtualTokenReserves,
		c.VirtualSolReserves,
		c.RealTokenReserves,
		c.RealSolReserves,
		c.TokenTotalSupply,
	} {
		_ = enc.WriteUint64(v, bin.LE)
	}
	_ = enc.WriteBool(c.Complete)
	_ = enc.WriteBytes(c.Creator.Bytes(), false)
	_ = enc.WriteBool(c.IsMayhemMode)
	return buf.Bytes()
}
