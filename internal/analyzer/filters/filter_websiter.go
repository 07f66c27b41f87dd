package filters

import (
	"pump_launch/internal/model"
	"strings"
)

type WebsiteFilter struct{}

func NewWebsiteFilter() *WebsiteFilter {
	return &WebsiteFilter{}
}

func (f *WebsiteFilter) Name() string {
	return "WebsiteFilter"
}
func (f *WebsiteFilter) Type() FilterType {
	return WebsiteLink
}

// Filter 未填写时通过；填写时排除无效URL或默认值
func (f *WebsiteFilter) Filter(metadata *model.TokenMetadata) bool {
	if metadata == nil {
		return false
	}
	if metadata.Website == "" {
		return true
	}
	return isLink(metadata.Website)
}

// isLink 例如 javascript:void(0), #, about:blank 等都不算有效链接
func isLink(raw string) bool {
	invalidPatterns := []string{
		"javascript:",
		"#",
		"about:blank",
		"mailto:",
		"tel:",
		"file:",
		"undefined",
		"null",
	}

	link := strings.ToLower(strings.TrimSpace(raw))
	for _, pattern := range invalidPatterns {
		if strings.Contains(link, pattern) {
			return false
		}
	}

	// 检查是否包含有效域名部分
	return strings.Contains(link, ".")
}
