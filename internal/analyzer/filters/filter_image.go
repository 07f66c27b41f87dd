package filters

import (
	"pump_launch/internal/model"
	"strings"
)

type ImageFilter struct{}

func NewImageFilter() *ImageFilter {
	return &ImageFilter{}
}

func (f *ImageFilter) Name() string {
	return "ImageFilter"
}
func (f *ImageFilter) Type() FilterType {
	return ImageLink
}

// Filter 图片必须是 http(s) 或 ipfs 地址
func (f *ImageFilter) Filter(metadata *model.TokenMetadata) bool {
	if metadata == nil || metadata.Image == "" {
		return false
	}
	image := strings.ToLower(strings.TrimSpace(metadata.Image))
	switch {
	case strings.HasPrefix(image, "ipfs://"):
		return len(image) > len("ipfs://")
	case strings.HasPrefix(image, "https://"), strings.HasPrefix(image, "http://"):
		return isLink(image)
	}
	return false
}
