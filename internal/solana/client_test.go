package solana

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newRPCServer 按方法名返回固定 result
func newRPCServer(t *testing.T, results map[string]interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		result, ok := results[req.Method]
		if !ok {
			t.Errorf("未预期的方法: %s", req.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  result,
		})
	}))
}

func TestClient_GetSignatureStatus(t *testing.T) {
	tests := []struct {
		name          string
		value         interface{}
		wantNil       bool
		wantConfirmed bool
	}{
		{
			name:          "已确认",
			value:         []interface{}{map[string]interface{}{"slot": 10, "confirmations": 1, "err": nil, "confirmationStatus": "confirmed"}},
			wantConfirmed: true,
		},
		{
			name:          "已处理未确认",
			value:         []interface{}{map[string]interface{}{"slot": 10, "confirmations": 0, "err": nil, "confirmationStatus": "processed"}},
			wantConfirmed: false,
		},
		{
			name:    "未知签名",
			value:   []interface{}{nil},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newRPCServer(t, map[string]interface{}{
				"getSignatureStatuses": map[string]interface{}{
					"context": map[string]interface{}{"slot": 10},
					"value":   tt.value,
				},
			})
			defer server.Close()

			client := New(server.URL)
			status, err := client.GetSignatureStatus(context.Background(), solana.Signature{1})
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, status)
				return
			}
			require.NotNil(t, status)
			assert.Equal(t, tt.wantConfirmed, status.Confirmed)
			assert.Equal(t, uint64(10), status.Slot)
		})
	}
}

func TestClient_GetMultipleAccounts(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	data := []byte{1, 2, 3}

	server := newRPCServer(t, map[string]interface{}{
		"getMultipleAccounts": map[string]interface{}{
			"context": map[string]interface{}{"slot": 1},
			"value": []interface{}{
				map[string]interface{}{
					"data":       []string{base64.StdEncoding.EncodeToString(data), "base64"},
					"executable": false,
					"lamports":   1000,
					"owner":      owner.String(),
					"rentEpoch":  0,
				},
				nil,
			},
		},
	})
	defer server.Close()

	client := New(server.URL)
	accounts, err := client.GetMultipleAccounts(context.Background(), solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey())
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	require.NotNil(t, accounts[0])
	assert.Equal(t, owner, accounts[0].Owner)
	assert.Equal(t, data, accounts[0].Data)
	assert.Nil(t, accounts[1])
}
