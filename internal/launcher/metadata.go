package launcher

import (
	"context"
	"errors"
	"strings"

	"pump_launch/internal/analyzer"
	"pump_launch/internal/common"
	"pump_launch/internal/model"
	"pump_launch/internal/storage"
)

// MetadataRequest 待发布的代币元数据
type MetadataRequest struct {
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Twitter     string `json:"twitter,omitempty"`
	Website     string `json:"website,omitempty"`
	Telegram    string `json:"telegram,omitempty"`
}

var errNoUploader = &common.StorageUnavailableError{Backend: "uploader", Err: errors.New("未配置上传后端")}

// UploadImage 上传代币图片
func (l *Launcher) UploadImage(ctx context.Context, name, contentType string, data []byte) (*storage.Object, error) {
	if l.uploader == nil {
		return nil, errNoUploader
	}
	if len(data) == 0 {
		return nil, &common.MissingFieldError{Field: "file"}
	}
	return l.uploader.Upload(ctx, name, contentType, data)
}

// PublishMetadata 检查元数据并上传，返回可作为 metadataUri 的地址
func (l *Launcher) PublishMetadata(ctx context.Context, req *MetadataRequest) (*storage.Object, error) {
	if req == nil {
		return nil, &common.MissingFieldError{Field: "request"}
	}
	for _, f := range []struct{ name, value string }{
		{"name", req.Name},
		{"symbol", req.Symbol},
		{"imageUrl", req.ImageURL},
	} {
		if strings.TrimSpace(f.value) == "" {
			return nil, &common.MissingFieldError{Field: f.name}
		}
	}

	metadata := &model.TokenMetadata{
		Name:        strings.TrimSpace(req.Name),
		Symbol:      strings.TrimSpace(req.Symbol),
		Description: req.Description,
		Image:       strings.TrimSpace(req.ImageURL),
		ShowName:    true,
		CreatedOn:   "https://pump.fun",
		Twitter:     req.Twitter,
		Website:     req.Website,
		Telegram:    req.Telegram,
	}

	result := analyzer.ProcessMetadata(metadata, l.filters)
	if result.IsFiltered {
		common.Log.Warnf("代币 %s 的元数据被过滤器拦截，原因: %v", metadata.Symbol, result.FilteredBy)
		return nil, &common.MetadataRejectedError{FilteredBy: result.FilteredBy}
	}

	if l.uploader == nil {
		return nil, errNoUploader
	}
	return l.uploader.UploadJSON(ctx, metadata.Symbol+".json", metadata)
}
