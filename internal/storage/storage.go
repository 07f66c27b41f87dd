package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"path"
	"strings"
)

// Object 上传结果
type Object struct {
	URL  string `json:"url"`
	Hash string `json:"hash"`
}

// Uploader 图片与元数据上传后端
type Uploader interface {
	Upload(ctx context.Context, name, contentType string, data []byte) (*Object, error)
	UploadJSON(ctx context.Context, name string, doc interface{}) (*Object, error)
	Name() string
}

// contentHash 内容的 sha256 十六进制串
func contentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// objectName 按内容寻址，保留原文件扩展名
func objectName(prefix, name string, data []byte) string {
	ext := strings.ToLower(path.Ext(name))
	return path.Join(prefix, contentHash(data)+ext)
}
