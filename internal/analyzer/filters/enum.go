package filters

import "pump_launch/internal/model"

type Filter interface {
	// Filter 返回元数据是否通过检查
	Filter(metadata *model.TokenMetadata) bool
	Name() string
	Type() FilterType
}

type FilterType int

const (
	TwitterLink FilterType = 1
	WebsiteLink FilterType = 2
	NameLength  FilterType = 3
	ImageLink   FilterType = 4
)
