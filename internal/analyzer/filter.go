package analyzer

import (
	"pump_launch/internal/analyzer/filters"
	"pump_launch/internal/model"
	"time"
)

// FilterResult 过滤结果
type FilterResult struct {
	Metadata     *model.TokenMetadata
	IsFiltered   bool
	FilteredBy   []string
	AnalysisTime time.Time
}

// ProcessMetadata 对待发布的元数据应用过滤器
func ProcessMetadata(metadata *model.TokenMetadata, config *Config) *FilterResult {
	result := &FilterResult{
		Metadata:     metadata,
		IsFiltered:   false,
		FilteredBy:   []string{},
		AnalysisTime: time.Now(),
	}

	// 检查元数据是否存在
	if metadata == nil {
		result.IsFiltered = true
		result.FilteredBy = append(result.FilteredBy, "NoMetadata")
		return result
	}

	for _, filter := range config.Filters {
		if !filter.Filter(metadata) {
			result.IsFiltered = true
			result.FilteredBy = append(result.FilteredBy, filter.Name())
		}
	}

	return result
}

// Config 过滤器配置
type Config struct {
	Filters []filters.Filter // 过滤器列表
}

// DefaultConfig 返回默认过滤器配置
func DefaultConfig() *Config {
	return &Config{
		Filters: []filters.Filter{
			filters.NewNameFilter(),
			filters.NewImageFilter(),
			filters.NewTwitterFilter(),
			filters.NewWebsiteFilter(),
		},
	}
}
