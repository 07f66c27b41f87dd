package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"pump_launch/internal/common"
)

const pinataBackend = "pinata"

// Pinata 通过 Pinata 固定到 IPFS
type Pinata struct {
	jwt     string
	apiURL  string
	gateway string
	client  *http.Client
}

func NewPinata(jwt, apiURL, gateway string) *Pinata {
	if !strings.HasSuffix(gateway, "/") {
		gateway += "/"
	}
	return &Pinata{
		jwt:     jwt,
		apiURL:  strings.TrimRight(apiURL, "/"),
		gateway: gateway,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *Pinata) Name() string { return pinataBackend }

type pinResponse struct {
	IpfsHash  string `json:"IpfsHash"`
	PinSize   int64  `json:"PinSize"`
	Timestamp string `json:"Timestamp"`
}

// Upload 调用 pinFileToIPFS
func (p *Pinata) Upload(ctx context.Context, name, contentType string, data []byte) (*Object, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("创建表单失败: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("写入文件内容失败: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("关闭表单失败: %w", err)
	}

	return p.pin(ctx, "/pinning/pinFileToIPFS", writer.FormDataContentType(), &body)
}

// UploadJSON 调用 pinJSONToIPFS
func (p *Pinata) UploadJSON(ctx context.Context, name string, doc interface{}) (*Object, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"pinataContent":  doc,
		"pinataMetadata": map[string]string{"name": name},
	})
	if err != nil {
		return nil, fmt.Errorf("序列化元数据失败: %w", err)
	}
	return p.pin(ctx, "/pinning/pinJSONToIPFS", "application/json", bytes.NewReader(payload))
}

func (p *Pinata) pin(ctx context.Context, endpoint, contentType string, body io.Reader) (*Object, error) {
	if p.jwt == "" {
		return nil, &common.StorageUnavailableError{Backend: pinataBackend, Err: errors.New("未配置 PINATA_JWT")}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+p.jwt)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, &common.StorageUnavailableError{Backend: pinataBackend, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &common.StorageUnavailableError{Backend: pinataBackend, Err: fmt.Errorf("读取响应失败: %w", err)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &common.StorageUnavailableError{
			Backend: pinataBackend,
			Err:     fmt.Errorf("状态码 %d: %s", resp.StatusCode, strings.TrimSpace(string(raw))),
		}
	}

	var pinned pinResponse
	if err := json.Unmarshal(raw, &pinned); err != nil || pinned.IpfsHash == "" {
		return nil, &common.StorageUnavailableError{Backend: pinataBackend, Err: fmt.Errorf("无法解析响应: %s", string(raw))}
	}

	common.Log.WithField("hash", pinned.IpfsHash).Infof("已上传到 IPFS (%d 字节)", pinned.PinSize)
	return &Object{URL: p.gateway + pinned.IpfsHash, Hash: pinned.IpfsHash}, nil
}
