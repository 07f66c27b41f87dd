package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"pump_launch/internal/common"
)

const gcsBackend = "gcs"

// GCS 上传到公开读的存储桶
type GCS struct {
	client    *gcs.Client
	bucket    string
	publicURL string
	prefix    string
}

// NewGCS credentials 为空时使用默认凭据
func NewGCS(ctx context.Context, bucket, publicURL, credentials string) (*GCS, error) {
	if strings.TrimSpace(bucket) == "" {
		return nil, fmt.Errorf("GCS_BUCKET 为空")
	}

	var opts []option.ClientOption
	if credentials != "" {
		opts = append(opts, option.WithCredentialsFile(credentials))
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, &common.StorageUnavailableError{Backend: gcsBackend, Err: err}
	}
	return NewGCSWithClient(client, bucket, publicURL), nil
}

func NewGCSWithClient(client *gcs.Client, bucket, publicURL string) *GCS {
	if !strings.HasSuffix(publicURL, "/") {
		publicURL += "/"
	}
	return &GCS{
		client:    client,
		bucket:    strings.TrimSpace(bucket),
		publicURL: publicURL,
		prefix:    "launch",
	}
}

func (g *GCS) Name() string { return gcsBackend }

func (g *GCS) Close() error { return g.client.Close() }

func (g *GCS) Upload(ctx context.Context, name, contentType string, data []byte) (*Object, error) {
	object := objectName(g.prefix, name, data)

	w := g.client.Bucket(g.bucket).Object(object).NewWriter(ctx)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.ContentType = contentType
	w.CacheControl = "public, max-age=31536000, immutable"

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, &common.StorageUnavailableError{Backend: gcsBackend, Err: fmt.Errorf("写入对象 %s 失败: %w", object, err)}
	}
	if err := w.Close(); err != nil {
		return nil, &common.StorageUnavailableError{Backend: gcsBackend, Err: fmt.Errorf("提交对象 %s 失败: %w", object, err)}
	}

	common.Log.WithField("object", object).Info("已上传到 GCS")
	return &Object{URL: g.objectURL(object), Hash: contentHash(data)}, nil
}

func (g *GCS) UploadJSON(ctx context.Context, name string, doc interface{}) (*Object, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("序列化元数据失败: %w", err)
	}
	if !strings.HasSuffix(strings.ToLower(name), ".json") {
		name += ".json"
	}
	return g.Upload(ctx, name, "application/json", data)
}

func (g *GCS) objectURL(object string) string {
	return g.publicURL + g.bucket + "/" + strings.TrimLeft(object, "/")
}
