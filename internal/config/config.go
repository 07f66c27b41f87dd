package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"pump_launch/internal/common"

	"github.com/gagliardetto/solana-go"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 应用配置，来自环境变量与 .env 文件
type Config struct {
	LogLevel string `mapstructure:"log_level"`
	LogDir   string `mapstructure:"log_dir"`
	HTTPAddr string `mapstructure:"http_addr"`

	RPCURL      string `mapstructure:"rpc_url"`
	WSURL       string `mapstructure:"ws_url"`
	PrivateKey  string `mapstructure:"private_key"`
	KeypairPath string `mapstructure:"keypair_path"`

	// 程序标识覆盖，留空使用主网默认值
	PumpProgramID      string `mapstructure:"pump_program_id"`
	MayhemProgramID    string `mapstructure:"mayhem_program_id"`
	TokenProgramID     string `mapstructure:"token_program_id"`
	FeeProgramID       string `mapstructure:"fee_program_id"`
	FeeRecipient       string `mapstructure:"fee_recipient"`
	MayhemFeeRecipient string `mapstructure:"mayhem_fee_recipient"`
	FeeTierSeed        string `mapstructure:"fee_tier_seed"` // base58
	FeeBasisPoints     uint64 `mapstructure:"fee_basis_points"`

	ConfirmMode     common.ConfirmMode `mapstructure:"confirm_mode"`
	ConfirmTimeout  time.Duration      `mapstructure:"confirm_timeout"`
	ConfirmInterval time.Duration      `mapstructure:"confirm_interval"`

	PriorityFee      uint64 `mapstructure:"priority_fee_microlamports"`
	ComputeUnitLimit uint32 `mapstructure:"compute_unit_limit"`
	MaxInFlight      int    `mapstructure:"max_in_flight"`

	StorageBackend common.StorageBackend `mapstructure:"storage_backend"`
	PinataJWT      string                `mapstructure:"pinata_jwt"`
	PinataAPIURL   string                `mapstructure:"pinata_api_url"`
	PinataGateway  string                `mapstructure:"pinata_gateway"`
	GCSBucket      string                `mapstructure:"gcs_bucket"`
	GCSPublicURL   string                `mapstructure:"gcs_public_url"`
	GCSCredentials string                `mapstructure:"gcs_credentials"`

	StoreBackend        common.StoreBackend `mapstructure:"store_backend"`
	DatabaseDSN         string              `mapstructure:"database_dsn"`
	FirebaseDatabaseURL string              `mapstructure:"firebase_database_url"`
	FirebaseCredentials string              `mapstructure:"firebase_credentials"`

	ExternalViewBase string `mapstructure:"external_view_base"`
}

var defaults = map[string]interface{}{
	"log_level": "info",
	"log_dir":   "logs",
	"http_addr": ":8080",

	"rpc_url": "https://api.mainnet-beta.solana.com",
	"ws_url":  "wss://api.mainnet-beta.solana.com",

	"fee_basis_points": DefaultFeeBasisPoints,

	"confirm_mode":     string(common.CONFIRM_POLL),
	"confirm_timeout":  "60s",
	"confirm_interval": "2s",

	"priority_fee_microlamports": 0,
	"compute_unit_limit":         0,
	"max_in_flight":              4,

	"storage_backend": string(common.STORAGE_PINATA),
	"pinata_api_url":  "https://api.pinata.cloud",
	"pinata_gateway":  "https://gateway.pinata.cloud/ipfs/",
	"gcs_public_url":  "https://storage.googleapis.com/",

	"store_backend": string(common.STORE_MEMORY),
	"database_dsn":  "launches.db",

	"external_view_base": DefaultExternalViewURL,
}

var envKeys = map[string]string{
	"log_level":                  "LOG_LEVEL",
	"log_dir":                    "LOG_DIR",
	"http_addr":                  "HTTP_ADDR",
	"rpc_url":                    "SOLANA_RPC_URL",
	"ws_url":                     "SOLANA_WS_URL",
	"private_key":                "SOLANA_PRIVATE_KEY",
	"keypair_path":               "SOLANA_KEYPAIR_PATH",
	"pump_program_id":            "PUMP_PROGRAM_ID",
	"mayhem_program_id":          "MAYHEM_PROGRAM_ID",
	"token_program_id":           "TOKEN_PROGRAM_ID",
	"fee_program_id":             "FEE_PROGRAM_ID",
	"fee_recipient":              "FEE_RECIPIENT",
	"mayhem_fee_recipient":       "MAYHEM_FEE_RECIPIENT",
	"fee_tier_seed":              "FEE_TIER_SEED",
	"fee_basis_points":           "FEE_BASIS_POINTS",
	"confirm_mode":               "CONFIRM_MODE",
	"confirm_timeout":            "CONFIRM_TIMEOUT",
	"confirm_interval":           "CONFIRM_INTERVAL",
	"priority_fee_microlamports": "PRIORITY_FEE_MICROLAMPORTS",
	"compute_unit_limit":         "COMPUTE_UNIT_LIMIT",
	"max_in_flight":              "MAX_IN_FLIGHT",
	"storage_backend":            "STORAGE_BACKEND",
	"pinata_jwt":                 "PINATA_JWT",
	"pinata_api_url":             "PINATA_API_URL",
	"pinata_gateway":             "PINATA_GATEWAY",
	"gcs_bucket":                 "GCS_BUCKET",
	"gcs_public_url":             "GCS_PUBLIC_URL",
	"gcs_credentials":            "GCS_CREDENTIALS",
	"store_backend":              "STORE_BACKEND",
	"database_dsn":               "DATABASE_DSN",
	"firebase_database_url":      "FIREBASE_DATABASE_URL",
	"firebase_credentials":       "FIREBASE_CREDENTIALS",
	"external_view_base":         "EXTERNAL_VIEW_BASE",
}

// Load 读取 .env（不存在时忽略）和环境变量
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("加载环境变量文件 %s 失败: %w", file, err)
		}
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("绑定环境变量 %s 失败: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 检查枚举类配置
func (c *Config) Validate() error {
	switch c.ConfirmMode {
	case common.CONFIRM_POLL, common.CONFIRM_WS:
	default:
		return fmt.Errorf("不支持的确认方式: %s", c.ConfirmMode)
	}
	switch c.StorageBackend {
	case common.STORAGE_PINATA, common.STORAGE_GCS:
	default:
		return fmt.Errorf("不支持的存储后端: %s", c.StorageBackend)
	}
	switch c.StoreBackend {
	case common.STORE_MEMORY, common.STORE_SQLITE, common.STORE_POSTGRES, common.STORE_FIREBASE:
	default:
		return fmt.Errorf("不支持的记录存储后端: %s", c.StoreBackend)
	}
	if c.ConfirmTimeout <= 0 {
		return fmt.Errorf("确认超时必须大于0")
	}
	if c.MaxInFlight <= 0 {
		return fmt.Errorf("最大并发数必须大于0")
	}
	return nil
}

// Network 在主网默认值上应用覆盖项
func (c *Config) Network() (Network, error) {
	n := MainnetNetwork()

	overrides := []struct {
		name  string
		value string
		dst   *solana.PublicKey
	}{
		{"PUMP_PROGRAM_ID", c.PumpProgramID, &n.IssuanceProgram},
		{"MAYHEM_PROGRAM_ID", c.MayhemProgramID, &n.ExtensionProgram},
		{"TOKEN_PROGRAM_ID", c.TokenProgramID, &n.TokenProgram},
		{"FEE_PROGRAM_ID", c.FeeProgramID, &n.FeeProgram},
		{"FEE_RECIPIENT", c.FeeRecipient, &n.FeeRecipient},
		{"MAYHEM_FEE_RECIPIENT", c.MayhemFeeRecipient, &n.MayhemFeeRecipient},
	}
	for _, o := range overrides {
		if strings.TrimSpace(o.value) == "" {
			continue
		}
		key, err := solana.PublicKeyFromBase58(strings.TrimSpace(o.value))
		if err != nil {
			return Network{}, fmt.Errorf("%s 不是有效地址: %w", o.name, err)
		}
		*o.dst = key
	}

	if c.FeeTierSeed != "" {
		seed, err := solana.PublicKeyFromBase58(c.FeeTierSeed)
		if err != nil {
			return Network{}, fmt.Errorf("FEE_TIER_SEED 不是有效地址: %w", err)
		}
		n.FeeTierSeed = seed.Bytes()
	} else {
		n.FeeTierSeed = n.IssuanceProgram.Bytes()
	}
	if c.FeeBasisPoints > 0 {
		n.FeeBasisPoints = c.FeeBasisPoints
	}
	return n, nil
}

// TxOptions 计算预算设置
func (c *Config) TxOptions() common.TxOptions {
	return common.TxOptions{
		PriorityFee:      c.PriorityFee,
		ComputeUnitLimit: c.ComputeUnitLimit,
	}
}
