package common

import (
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
)

// 错误类别，调用方通过 errors.Is 判断
var (
	ErrValidation          = errors.New("请求校验失败")
	ErrDerivation          = errors.New("地址派生失败")
	ErrConversion          = errors.New("单位换算失败")
	ErrSubmission          = errors.New("交易提交失败")
	ErrConfirmationTimeout = errors.New("交易确认超时")
	ErrStorageUnavailable  = errors.New("存储服务不可用")
)

// MissingFieldError 必填字段为空
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("缺少必填字段: %s", e.Field)
}

func (e *MissingFieldError) Is(target error) bool { return target == ErrValidation }

// InvalidAmountError 金额不合法（为空、非正数或换算后为0）
type InvalidAmountError struct {
	Field  string
	Amount string
	Reason string
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("金额不合法 %s=%q: %s", e.Field, e.Amount, e.Reason)
}

func (e *InvalidAmountError) Is(target error) bool { return target == ErrValidation }

// AccountNotFoundError 链上账户不存在或无法解析
type AccountNotFoundError struct {
	Account solana.PublicKey
	Kind    string
}

func (e *AccountNotFoundError) Error() string {
	return fmt.Sprintf("%s 账户不存在: %s", e.Kind, e.Account)
}

func (e *AccountNotFoundError) Is(target error) bool { return target == ErrValidation }

// InvalidSeedError 种子数量或长度超出限制
type InvalidSeedError struct {
	Reason string
}

func (e *InvalidSeedError) Error() string {
	return "无效的种子: " + e.Reason
}

func (e *InvalidSeedError) Is(target error) bool { return target == ErrDerivation }

// NoValidBumpError 所有 bump 都落在曲线上
type NoValidBumpError struct {
	Program solana.PublicKey
}

func (e *NoValidBumpError) Error() string {
	return fmt.Sprintf("程序 %s 下找不到有效的 bump", e.Program)
}

func (e *NoValidBumpError) Is(target error) bool { return target == ErrDerivation }

// NegativeAmountError 负数金额
type NegativeAmountError struct {
	Amount string
}

func (e *NegativeAmountError) Error() string {
	return fmt.Sprintf("金额不能为负数: %s", e.Amount)
}

func (e *NegativeAmountError) Is(target error) bool { return target == ErrConversion }

// OverflowError 换算结果超出 uint64
type OverflowError struct {
	Amount   string
	Decimals int32
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("金额 %s (精度 %d) 超出 uint64 范围", e.Amount, e.Decimals)
}

func (e *OverflowError) Is(target error) bool { return target == ErrConversion }

// MalformedAmountError 金额无法解析为十进制数
type MalformedAmountError struct {
	Amount string
	Err    error
}

func (e *MalformedAmountError) Error() string {
	return fmt.Sprintf("无法解析金额 %q: %v", e.Amount, e.Err)
}

func (e *MalformedAmountError) Unwrap() error { return e.Err }

func (e *MalformedAmountError) Is(target error) bool { return target == ErrConversion }

// SubmissionError 账本拒绝交易或签名失败，Reason 保留账本原始信息
type SubmissionError struct {
	Reason string
	Err    error
}

func (e *SubmissionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("交易提交失败: %s: %v", e.Reason, e.Err)
	}
	return "交易提交失败: " + e.Reason
}

func (e *SubmissionError) Unwrap() error { return e.Err }

func (e *SubmissionError) Is(target error) bool { return target == ErrSubmission }

// ConfirmationTimeoutError 交易已广播但在超时时间内未确认
type ConfirmationTimeoutError struct {
	Signature solana.Signature
	Timeout   time.Duration
}

func (e *ConfirmationTimeoutError) Error() string {
	return fmt.Sprintf("交易 %s 在 %s 内未确认", e.Signature, e.Timeout)
}

func (e *ConfirmationTimeoutError) Is(target error) bool { return target == ErrConfirmationTimeout }

// StorageUnavailableError 上传或持久化后端失败
type StorageUnavailableError struct {
	Backend string
	Err     error
}

func (e *StorageUnavailableError) Error() string {
	return fmt.Sprintf("%s 不可用: %v", e.Backend, e.Err)
}

func (e *StorageUnavailableError) Unwrap() error { return e.Err }

func (e *StorageUnavailableError) Is(target error) bool { return target == ErrStorageUnavailable }

// MetadataRejectedError 元数据未通过过滤器
type MetadataRejectedError struct {
	FilteredBy []string
}

func (e *MetadataRejectedError) Error() string {
	return fmt.Sprintf("元数据未通过检查: %v", e.FilteredBy)
}

func (e *MetadataRejectedError) Is(target error) bool { return target == ErrValidation }
