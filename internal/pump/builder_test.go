package pump

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"testing"

	"pump_launch/internal/common"
	"pump_launch/internal/config"
	"pump_launch/internal/model"
	"pump_launch/internal/pda"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingDeriver 统计派生次数
type countingDeriver struct {
	inner pda.Deriver
	calls int
}

func (c *countingDeriver) Derive(program solana.PublicKey, seeds ...[]byte) (pda.Address, error) {
	c.calls++
	return c.inner.Derive(program, seeds...)
}

func newTestBuilder(t *testing.T, opts common.TxOptions) (*Builder, *countingDeriver, solana.PrivateKey) {
	t.Helper()
	mintKey, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)

	d := &countingDeriver{inner: pda.NewDeriver()}
	b := NewBuilder(config.MainnetNetwork(), d, opts).WithMintGenerator(func() (solana.PrivateKey, error) {
		return mintKey, nil
	})
	return b, d, mintKey
}

func validCreateRequest(creator solana.PublicKey) *model.CreateTokenRequest {
	return &model.CreateTokenRequest{
		Name:        "Test",
		Symbol:      "TST",
		MetadataURI: "https://gateway.pinata.cloud/ipfs/QmTest",
		Creator:     creator,
		MayhemMode:  false,
	}
}

func TestDiscriminators(t *testing.T) {
	sum := sha256.Sum256([]byte("global:create_v2"))
	assert.Equal(t, sum[:8], createV2Discriminator[:])

	sum = sha256.Sum256([]byte("global:buy_exact_sol_in"))
	assert.Equal(t, sum[:8], buyExactSolInDiscriminator[:])
}

func TestBuildCreate_AccountTable(t *testing.T) {
	b, _, mintKey := newTestBuilder(t, common.TxOptions{})
	user := solana.NewWallet().PublicKey()
	net := config.MainnetNetwork()

	plan, err := b.BuildCreate(validCreateRequest(user), user)
	require.NoError(t, err)

	table := plan.Accounts
	require.Len(t, table, 16)
	assert.Equal(t, []string{
		"mint", "mint_authority", "bonding_curve", "associated_bonding_curve", "global", "user",
		"system_program", "token_program", "associated_token_program", "mayhem_program_id",
		"global_params", "sol_vault", "mayhem_state", "mayhem_token_vault", "event_authority", "program",
	}, table.Names())

	mint := mintKey.PublicKey()
	assert.Equal(t, mint, table[0].Key)
	assert.Equal(t, WritableSigner, table[0].Role)
	assert.Equal(t, user, table[5].Key)
	assert.Equal(t, WritableSigner, table[5].Role)
	assert.Equal(t, net.ExtensionProgram, table[9].Key)
	assert.Equal(t, net.IssuanceProgram, table[15].Key)
	assert.Equal(t, net.TokenProgram, table[7].Key)

	assert.Equal(t, []solana.PublicKey{user, mint}, plan.RequiredSigners)
	assert.ElementsMatch(t, plan.RequiredSigners, table.Signers())

	d := pda.NewDeriver()
	curve, err := d.Derive(net.IssuanceProgram, []byte("bonding-curve"), mint.Bytes())
	require.NoError(t, err)
	assert.Equal(t, curve.Key, table[2].Key)

	curveATA, err := d.Derive(net.AssociatedTokenProgram, curve.Key.Bytes(), net.TokenProgram.Bytes(), mint.Bytes())
	require.NoError(t, err)
	assert.Equal(t, curveATA.Key, table[3].Key)

	solVault, err := d.Derive(net.ExtensionProgram, []byte("sol-vault"))
	require.NoError(t, err)
	assert.Equal(t, solVault.Key, table[11].Key)

	mayhemState, err := d.Derive(net.ExtensionProgram, []byte("mayhem-state"), mint.Bytes())
	require.NoError(t, err)
	assert.Equal(t, mayhemState.Key, table[12].Key)

	vault, err := d.Derive(net.AssociatedTokenProgram, solVault.Key.Bytes(), net.TokenProgram.Bytes(), mint.Bytes())
	require.NoError(t, err)
	assert.Equal(t, vault.Key, table[13].Key)
}

func TestBuildCreate_InstructionData(t *testing.T) {
	b, _, _ := newTestBuilder(t, common.TxOptions{})
	user := solana.NewWallet().PublicKey()
	req := validCreateRequest(user)
	req.MayhemMode = true

	plan, err := b.BuildCreate(req, user)
	require.NoError(t, err)
	require.Len(t, plan.Instructions, 1)

	ix := plan.Instructions[0]
	assert.Equal(t, config.PumpProgramID, ix.ProgramID())
	assert.Len(t, ix.Accounts(), 16)

	data, err := ix.Data()
	require.NoError(t, err)
	assert.Equal(t, createV2Discriminator[:], data[:8])

	offset := 8
	for _, want := range []string{req.Name, req.Symbol, req.MetadataURI} {
		n := int(binary.LittleEndian.Uint32(data[offset:]))
		offset += 4
		assert.Equal(t, want, string(data[offset:offset+n]))
		offset += n
	}
	assert.Equal(t, user.Bytes(), data[offset:offset+32])
	offset += 32
	assert.Equal(t, byte(1), data[offset])
	assert.Len(t, data, offset+1)
}

func TestBuildCreate_MissingFields(t *testing.T) {
	tests := []struct {
		name  string
		field string
		edit  func(r *model.CreateTokenRequest)
	}{
		{name: "缺少名称", field: "name", edit: func(r *model.CreateTokenRequest) { r.Name = "" }},
		{name: "缺少符号", field: "symbol", edit: func(r *model.CreateTokenRequest) { r.Symbol = "" }},
		{name: "缺少元数据", field: "metadataUri", edit: func(r *model.CreateTokenRequest) { r.MetadataURI = "  " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mintCalls := 0
			d := &countingDeriver{inner: pda.NewDeriver()}
			b := NewBuilder(config.MainnetNetwork(), d, common.TxOptions{}).WithMintGenerator(func() (solana.PrivateKey, error) {
				mintCalls++
				return solana.NewRandomPrivateKey()
			})

			user := solana.NewWallet().PublicKey()
			req := validCreateRequest(user)
			tt.edit(req)

			_, err := b.BuildCreate(req, user)
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrValidation)

			var missing *common.MissingFieldError
			require.True(t, errors.As(err, &missing))
			assert.Equal(t, tt.field, missing.Field)
			assert.Equal(t, 0, d.calls)
			assert.Equal(t, 0, mintCalls)
		})
	}
}

func TestBuildCreate_WithInitialBuy(t *testing.T) {
	b, _, mintKey := newTestBuilder(t, common.TxOptions{PriorityFee: 5000, ComputeUnitLimit: 300000})
	user := solana.NewWallet().PublicKey()
	req := validCreateRequest(user)
	req.MayhemMode = true
	req.InitialBuy = &model.InitialBuy{NativeAmountIn: "0.5", MinimumTokensOut: "100"}

	plan, err := b.BuildCreate(req, user)
	require.NoError(t, err)

	// 计算预算 x2 + create + 创建ATA + buy
	require.Len(t, plan.Instructions, 5)
	assert.Equal(t, solana.ComputeBudget, plan.Instructions[0].ProgramID())
	assert.Equal(t, solana.ComputeBudget, plan.Instructions[1].ProgramID())
	assert.Equal(t, config.PumpProgramID, plan.Instructions[2].ProgramID())
	assert.Equal(t, solana.SPLAssociatedTokenAccountProgramID, plan.Instructions[3].ProgramID())
	assert.Equal(t, config.PumpProgramID, plan.Instructions[4].ProgramID())

	// 幂等创建 ATA，代币程序取 Token-2022
	ataData, err := plan.Instructions[3].Data()
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, ataData)
	ataAccounts := plan.Instructions[3].Accounts()
	require.Len(t, ataAccounts, 6)
	assert.Equal(t, solana.Token2022ProgramID, ataAccounts[5].PublicKey)

	require.NotNil(t, plan.Buy)
	assert.Equal(t, mintKey.PublicKey(), plan.Buy.Mint)
	assert.Equal(t, uint64(500_000_000), plan.Buy.Input.SpendableSolIn)
	assert.Equal(t, uint64(100_000_000), plan.Buy.Input.MinTokensOut)
	assert.Equal(t, config.MayhemFeeRecipientID, plan.Buy.FeeRecipient)
	assert.Equal(t, []solana.PublicKey{user, mintKey.PublicKey()}, plan.RequiredSigners)
}

func TestBuildCreate_InitialBuyInvalid(t *testing.T) {
	b, d, _ := newTestBuilder(t, common.TxOptions{})
	user := solana.NewWallet().PublicKey()
	req := validCreateRequest(user)
	req.InitialBuy = &model.InitialBuy{NativeAmountIn: "0", MinimumTokensOut: "1"}

	_, err := b.BuildCreate(req, user)
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Equal(t, 0, d.calls)
}

func testTarget(mint solana.PublicKey, mayhem bool) *CurveTarget {
	return &CurveTarget{
		Mint:         mint,
		Creator:      solana.NewWallet().PublicKey(),
		TokenProgram: config.Token2022ProgramID,
		MayhemMode:   mayhem,
	}
}

func TestBuildBuy_Scaling(t *testing.T) {
	b, _, _ := newTestBuilder(t, common.TxOptions{})
	user := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()

	plan, err := b.BuildBuy(&model.BuyTokenRequest{
		TargetMint:       mint,
		NativeAmountIn:   "0.1",
		MinimumTokensOut: "1000",
	}, user, testTarget(mint, false))
	require.NoError(t, err)

	assert.Equal(t, uint64(100_000_000), plan.Instruction.Input.SpendableSolIn)
	assert.Equal(t, uint64(1_000_000_000), plan.Instruction.Input.MinTokensOut)
	assert.True(t, plan.Instruction.Input.TrackVolume.Value)
	assert.Equal(t, config.FeeRecipientID, plan.Instruction.FeeRecipient)
	assert.Equal(t, []solana.PublicKey{user}, plan.RequiredSigners)

	require.Len(t, plan.Instructions, 2)
	data, err := plan.Instructions[1].Data()
	require.NoError(t, err)
	require.Len(t, data, 8+8+8+1)
	assert.Equal(t, buyExactSolInDiscriminator[:], data[:8])
	assert.Equal(t, uint64(100_000_000), binary.LittleEndian.Uint64(data[8:16]))
	assert.Equal(t, uint64(1_000_000_000), binary.LittleEndian.Uint64(data[16:24]))
	assert.Equal(t, byte(1), data[24])

	ataData, err := plan.Instructions[0].Data()
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, ataData)
	assert.Equal(t, plan.Instruction.AssociatedUser, plan.Instructions[0].Accounts()[1].PublicKey)
}

func TestBuildBuy_AccountTable(t *testing.T) {
	b, _, _ := newTestBuilder(t, common.TxOptions{})
	user := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()
	target := testTarget(mint, true)
	net := config.MainnetNetwork()

	plan, err := b.BuildBuy(&model.BuyTokenRequest{
		TargetMint:       mint,
		NativeAmountIn:   "1",
		MinimumTokensOut: "0",
	}, user, target)
	require.NoError(t, err)

	table := plan.Accounts
	require.Len(t, table, 16)
	assert.Equal(t, []string{
		"global", "fee_recipient", "mint", "bonding_curve", "associated_bonding_curve", "associated_user",
		"user", "system_program", "token_program", "creator_vault", "event_authority", "program",
		"global_volume_accumulator", "user_volume_accumulator", "fee_config", "fee_program",
	}, table.Names())
	assert.Equal(t, config.MayhemFeeRecipientID, table[1].Key)
	assert.Equal(t, WritableSigner, table[6].Role)
	assert.Equal(t, net.FeeProgram, table[15].Key)

	d := pda.NewDeriver()
	vault, err := d.Derive(net.IssuanceProgram, []byte("creator-vault"), target.Creator.Bytes())
	require.NoError(t, err)
	assert.Equal(t, vault.Key, table[9].Key)

	feeConfig, err := d.Derive(net.FeeProgram, []byte("fee_config"), net.IssuanceProgram.Bytes())
	require.NoError(t, err)
	assert.Equal(t, feeConfig.Key, table[14].Key)

	userVolume, err := d.Derive(net.IssuanceProgram, []byte("user_volume_accumulator"), user.Bytes())
	require.NoError(t, err)
	assert.Equal(t, userVolume.Key, table[13].Key)
}

func TestComputeBudgetInstructions(t *testing.T) {
	ixs, err := computeBudgetInstructions(common.TxOptions{PriorityFee: 5000, ComputeUnitLimit: 300000})
	require.NoError(t, err)
	require.Len(t, ixs, 2)

	limit, err := ixs[0].Data()
	require.NoError(t, err)
	assert.Equal(t, []byte{2, 0xe0, 0x93, 0x04, 0x00}, limit)

	price, err := ixs[1].Data()
	require.NoError(t, err)
	assert.Equal(t, []byte{3, 0x88, 0x13, 0, 0, 0, 0, 0, 0}, price)

	ixs, err = computeBudgetInstructions(common.TxOptions{})
	require.NoError(t, err)
	assert.Empty(t, ixs)

	_, err = computeBudgetInstructions(common.TxOptions{ComputeUnitLimit: 2_000_000})
	assert.Error(t, err)
}

func TestBuildBuy_InvalidAmounts(t *testing.T) {
	b, _, _ := newTestBuilder(t, common.TxOptions{})
	user := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()

	tests := []struct {
		name    string
		amount  string
		minOut  string
		wantErr error
	}{
		{name: "零", amount: "0", minOut: "1", wantErr: common.ErrValidation},
		{name: "负数", amount: "-0.1", minOut: "1", wantErr: common.ErrValidation},
		{name: "空", amount: "", minOut: "1", wantErr: common.ErrValidation},
		{name: "低于最小单位", amount: "0.0000000001", minOut: "1", wantErr: common.ErrValidation},
		{name: "无法解析", amount: "one", minOut: "1", wantErr: common.ErrConversion},
		{name: "最少获得为负", amount: "0.1", minOut: "-5", wantErr: common.ErrConversion},
		{name: "缺少最少获得且无滑点", amount: "0.1", minOut: "", wantErr: common.ErrValidation},
		{name: "最少获得无法解析", amount: "0.1", minOut: "abc", wantErr: common.ErrConversion},
		{name: "最少获得超出范围", amount: "0.1", minOut: "1e10000000", wantErr: common.ErrConversion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := b.BuildBuy(&model.BuyTokenRequest{
				TargetMint:       mint,
				NativeAmountIn:   tt.amount,
				MinimumTokensOut: tt.minOut,
			}, user, testTarget(mint, false))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBuildBuy_SlippageFloor(t *testing.T) {
	b, _, _ := newTestBuilder(t, common.TxOptions{})
	user := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()
	target := testTarget(mint, false)
	target.State = &model.BondingCurve{
		VirtualTokenReserves: 1_073_000_000_000_000,
		VirtualSolReserves:   30_000_000_000,
		RealTokenReserves:    793_100_000_000_000,
		TokenTotalSupply:     1_000_000_000_000_000,
	}

	plan, err := b.BuildBuy(&model.BuyTokenRequest{
		TargetMint:     mint,
		NativeAmountIn: "0.1",
		SlippageBps:    500,
	}, user, target)
	require.NoError(t, err)

	quote := QuoteTokensOut(target.State, 100_000_000, config.DefaultFeeBasisPoints)
	assert.Equal(t, ApplySlippage(quote, 500), plan.Instruction.Input.MinTokensOut)
	assert.Greater(t, plan.Instruction.Input.MinTokensOut, uint64(0))
	assert.Less(t, plan.Instruction.Input.MinTokensOut, quote)
}

func TestValidateBuy(t *testing.T) {
	b, d, _ := newTestBuilder(t, common.TxOptions{})
	mint := solana.NewWallet().PublicKey()

	tests := []struct {
		name    string
		req     *model.BuyTokenRequest
		wantErr error
	}{
		{name: "有效", req: &model.BuyTokenRequest{TargetMint: mint, NativeAmountIn: "0.1", MinimumTokensOut: "1000"}},
		{name: "仅滑点", req: &model.BuyTokenRequest{TargetMint: mint, NativeAmountIn: "0.1", SlippageBps: 500}},
		{name: "空请求", req: nil, wantErr: common.ErrValidation},
		{name: "缺少mint", req: &model.BuyTokenRequest{NativeAmountIn: "0.1", MinimumTokensOut: "1"}, wantErr: common.ErrValidation},
		{name: "最少获得为负", req: &model.BuyTokenRequest{TargetMint: mint, NativeAmountIn: "0.1", MinimumTokensOut: "-1"}, wantErr: common.ErrConversion},
		{name: "最少获得无法解析", req: &model.BuyTokenRequest{TargetMint: mint, NativeAmountIn: "0.1", MinimumTokensOut: "abc"}, wantErr: common.ErrConversion},
		{name: "金额超出范围", req: &model.BuyTokenRequest{TargetMint: mint, NativeAmountIn: "1e30", MinimumTokensOut: "1"}, wantErr: common.ErrConversion},
		{name: "滑点过大", req: &model.BuyTokenRequest{TargetMint: mint, NativeAmountIn: "0.1", SlippageBps: 10000}, wantErr: common.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := b.ValidateBuy(tt.req)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
	assert.Equal(t, 0, d.calls)
}

func TestBuildBuy_MissingTarget(t *testing.T) {
	b, _, _ := newTestBuilder(t, common.TxOptions{})
	_, err := b.BuildBuy(&model.BuyTokenRequest{NativeAmountIn: "1", MinimumTokensOut: "1"}, solana.NewWallet().PublicKey(), nil)
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestBondingCurveAccountsShared(t *testing.T) {
	b, _, mintKey := newTestBuilder(t, common.TxOptions{})
	user := solana.NewWallet().PublicKey()

	created, err := b.BuildCreate(validCreateRequest(user), user)
	require.NoError(t, err)

	mint := mintKey.PublicKey()
	bought, err := b.BuildBuy(&model.BuyTokenRequest{
		TargetMint:       mint,
		NativeAmountIn:   "0.1",
		MinimumTokensOut: "1",
	}, user, testTarget(mint, false))
	require.NoError(t, err)

	assert.Equal(t, created.Instruction.BondingCurve, bought.Instruction.BondingCurve)
	assert.Equal(t, created.Instruction.AssociatedBondingCurve, bought.Instruction.AssociatedBondingCurve)
	assert.Equal(t, created.Instruction.Global, bought.Instruction.Global)
	assert.Equal(t, created.Instruction.EventAuthority, bought.Instruction.EventAuthority)
}
