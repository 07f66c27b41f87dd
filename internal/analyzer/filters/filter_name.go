package filters

import (
	"pump_launch/internal/model"
	"strings"
	"unicode/utf8"
)

// 发行程序对名称与符号的长度限制
const (
	MaxNameLength   = 32
	MaxSymbolLength = 10
)

type NameFilter struct{}

func NewNameFilter() *NameFilter {
	return &NameFilter{}
}

func (f *NameFilter) Name() string {
	return "NameFilter"
}
func (f *NameFilter) Type() FilterType {
	return NameLength
}

func (f *NameFilter) Filter(metadata *model.TokenMetadata) bool {
	if metadata == nil {
		return false
	}
	name := strings.TrimSpace(metadata.Name)
	symbol := strings.TrimSpace(metadata.Symbol)
	if name == "" || symbol == "" {
		return false
	}
	return utf8.RuneCountInString(name) <= MaxNameLength && utf8.RuneCountInString(symbol) <= MaxSymbolLength
}
