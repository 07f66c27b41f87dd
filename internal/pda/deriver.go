package pda

import (
	"fmt"

	"pump_launch/internal/common"

	"github.com/gagliardetto/solana-go"
)

// Address 派生地址及其 bump
type Address struct {
	Key  solana.PublicKey
	Bump uint8
}

// Deriver 程序派生地址计算
type Deriver interface {
	Derive(program solana.PublicKey, seeds ...[]byte) (Address, error)
}

// CreateFunc 由完整种子(含 bump)计算地址，落在曲线上时返回错误
type CreateFunc func(seeds [][]byte, program solana.PublicKey) (solana.PublicKey, error)

// ProgramDeriver 从 255 开始递减寻找第一个不在曲线上的 bump
type ProgramDeriver struct {
	create CreateFunc
}

// NewDeriver 创建默认派生器
func NewDeriver() *ProgramDeriver {
	return &ProgramDeriver{create: solana.CreateProgramAddress}
}

// NewDeriverWithCreate 使用自定义的地址计算函数
func NewDeriverWithCreate(create CreateFunc) *ProgramDeriver {
	return &ProgramDeriver{create: create}
}

func (d *ProgramDeriver) Derive(program solana.PublicKey, seeds ...[]byte) (Address, error) {
	if err := validateSeeds(seeds, 1); err != nil {
		return Address{}, err
	}

	full := make([][]byte, len(seeds)+1)
	copy(full, seeds)

	bump := []byte{0}
	full[len(seeds)] = bump
	for b := 255; b > 0; b-- {
		bump[0] = uint8(b)
		key, err := d.create(full, program)
		if err == nil {
			return Address{Key: key, Bump: uint8(b)}, nil
		}
	}

	return Address{}, &common.NoValidBumpError{Program: program}
}

// CreateAddress 不带 bump 的地址计算，种子超限或落在曲线上时报错
func CreateAddress(program solana.PublicKey, seeds ...[]byte) (solana.PublicKey, error) {
	if err := validateSeeds(seeds, 0); err != nil {
		return solana.PublicKey{}, err
	}
	key, err := solana.CreateProgramAddress(seeds, program)
	if err != nil {
		return solana.PublicKey{}, &common.NoValidBumpError{Program: program}
	}
	return key, nil
}

func validateSeeds(seeds [][]byte, reserved int) error {
	if len(seeds)+reserved > solana.MaxSeeds {
		return &common.InvalidSeedError{
			Reason: fmt.Sprintf("种子数量 %d 超过上限 %d", len(seeds)+reserved, solana.MaxSeeds),
		}
	}
	for i, seed := range seeds {
		if len(seed) > solana.MaxSeedLength {
			return &common.InvalidSeedError{
				Reason: fmt.Sprintf("第 %d 个种子长度 %d 超过 %d 字节", i, len(seed), solana.MaxSeedLength),
			}
		}
	}
	return nil
}
