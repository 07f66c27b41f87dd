package wallet

import (
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
)

// Signer 交易签名者，只需提供公钥并对消息字节签名
type Signer interface {
	PublicKey() solana.PublicKey
	SignTransaction(message []byte) (solana.Signature, error)
}

// Keypair 本地私钥签名
type Keypair struct {
	key solana.PrivateKey
}

func NewKeypair(key solana.PrivateKey) *Keypair {
	return &Keypair{key: key}
}

// FromBase58 解析 base58 私钥
func FromBase58(privateKey string) (*Keypair, error) {
	key, err := solana.PrivateKeyFromBase58(strings.TrimSpace(privateKey))
	if err != nil {
		return nil, fmt.Errorf("无效的私钥: %w", err)
	}
	return NewKeypair(key), nil
}

// FromKeygenFile 读取 solana-keygen 生成的 JSON 文件
func FromKeygenFile(path string) (*Keypair, error) {
	key, err := solana.PrivateKeyFromSolanaKeygenFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取密钥文件 %s 失败: %w", path, err)
	}
	return NewKeypair(key), nil
}

// Load 私钥优先，其次密钥文件
func Load(privateKey, keypairPath string) (*Keypair, error) {
	switch {
	case strings.TrimSpace(privateKey) != "":
		return FromBase58(privateKey)
	case keypairPath != "":
		return FromKeygenFile(keypairPath)
	default:
		return nil, fmt.Errorf("未配置私钥或密钥文件")
	}
}

func (k *Keypair) PublicKey() solana.PublicKey {
	return k.key.PublicKey()
}

func (k *Keypair) SignTransaction(message []byte) (solana.Signature, error) {
	return k.key.Sign(message)
}
