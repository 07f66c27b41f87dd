package common

type TradeAction string

const (
	CREATE TradeAction = "create"
	BUY    TradeAction = "buy"
)

// StorageBackend 元数据上传后端
type StorageBackend string

const (
	STORAGE_PINATA StorageBackend = "pinata"
	STORAGE_GCS    StorageBackend = "gcs"
)

// StoreBackend 发行记录存储后端
type StoreBackend string

const (
	STORE_MEMORY   StoreBackend = "memory"
	STORE_SQLITE   StoreBackend = "sqlite"
	STORE_POSTGRES StoreBackend = "postgres"
	STORE_FIREBASE StoreBackend = "firebase"
)

// ConfirmMode 交易确认方式
type ConfirmMode string

const (
	CONFIRM_POLL ConfirmMode = "poll"
	CONFIRM_WS   ConfirmMode = "ws"
)

const NATIVE_DECIMALS = 9
const TOKEN_DECIMALS = 6

const DEFAULT_LAUNCH_LIMIT = 10
