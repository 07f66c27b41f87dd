package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"pump_launch/internal/common"
	"pump_launch/internal/model"

	"github.com/gagliardetto/solana-go"
	"github.com/gorilla/websocket"
)

// SignatureWatcher 通过 signatureSubscribe 等待交易确认
type SignatureWatcher struct {
	url        string
	dialer     *websocket.Dialer
	commitment string
}

// NewSignatureWatcher 创建签名订阅客户端
func NewSignatureWatcher(url string) *SignatureWatcher {
	return &SignatureWatcher{
		url:        url,
		dialer:     websocket.DefaultDialer,
		commitment: "confirmed",
	}
}

type rpcMessage struct {
	ID     *int            `json:"id,omitempty"`
	Method string          `json:"method,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
	Params *struct {
		Result struct {
			Context struct {
				Slot uint64 `json:"slot"`
			} `json:"context"`
			Value struct {
				Err interface{} `json:"err"`
			} `json:"value"`
		} `json:"result"`
		Subscription int `json:"subscription"`
	} `json:"params,omitempty"`
}

// WaitForSignature 阻塞直到收到确认通知或 ctx 结束
func (w *SignatureWatcher) WaitForSignature(ctx context.Context, sig solana.Signature) (*model.SignatureStatus, error) {
	conn, _, err := w.dialer.DialContext(ctx, w.url, nil)
	if err != nil {
		return nil, fmt.Errorf("连接WebSocket服务失败: %w", err)
	}

	var closeOnce sync.Once
	closeConn := func() { closeOnce.Do(func() { conn.Close() }) }
	defer closeConn()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			closeConn()
		case <-done:
		}
	}()

	payload := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "signatureSubscribe",
		"params": []interface{}{
			sig.String(),
			map[string]interface{}{"commitment": w.commitment},
		},
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("序列化订阅请求失败: %w", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return nil, fmt.Errorf("发送订阅请求失败: %w", err)
	}
	common.Log.WithField("signature", sig.String()).Debug("已发送签名订阅请求")

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("读取消息出错: %w", err)
		}

		var msg rpcMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			common.Log.Warnf("解析消息失败: %v", err)
			continue
		}
		if msg.Error != nil {
			return nil, fmt.Errorf("订阅失败: %d %s", msg.Error.Code, msg.Error.Message)
		}
		if msg.Method != "signatureNotification" || msg.Params == nil {
			continue
		}

		return &model.SignatureStatus{
			Slot:      msg.Params.Result.Context.Slot,
			Confirmed: true,
			Err:       msg.Params.Result.Value.Err,
		}, nil
	}
}
