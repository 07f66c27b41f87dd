package filters

import (
	"pump_launch/internal/model"
	"strings"
)

type TwitterFilter struct{}

func NewTwitterFilter() *TwitterFilter {
	return &TwitterFilter{}
}

func (f *TwitterFilter) Name() string {
	return "twitterFilter"
}
func (f *TwitterFilter) Type() FilterType {
	return TwitterLink
}

// Filter 未填写时通过；填写时必须是 twitter.com 或 x.com 链接
func (f *TwitterFilter) Filter(metadata *model.TokenMetadata) bool {
	if metadata == nil {
		return false
	}
	if metadata.Twitter == "" {
		return true
	}

	twitter := strings.ToLower(strings.TrimSpace(metadata.Twitter))
	twitter = strings.TrimPrefix(twitter, "https://")
	twitter = strings.TrimPrefix(twitter, "http://")
	twitter = strings.TrimPrefix(twitter, "www.")

	return strings.HasPrefix(twitter, "twitter.com/") || strings.HasPrefix(twitter, "x.com/")
}
