package common

// TxOptions 每笔交易附加的计算预算设置，0 表示不设置
type TxOptions struct {
	PriorityFee      uint64 `json:"priorityFee"`      // 每计算单元的价格(micro-lamports)
	ComputeUnitLimit uint32 `json:"computeUnitLimit"` // 计算单元上限
}
