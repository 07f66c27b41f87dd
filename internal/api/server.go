package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"pump_launch/internal/common"
	"pump_launch/internal/launcher"
	"pump_launch/internal/model"
	"pump_launch/internal/storage"
	"pump_launch/internal/wallet"

	"github.com/gorilla/mux"
)

// maxImageSize 上传图片大小上限
const maxImageSize = 10 << 20

// Service API 依赖的发行流程
type Service interface {
	UploadImage(ctx context.Context, name, contentType string, data []byte) (*storage.Object, error)
	PublishMetadata(ctx context.Context, req *launcher.MetadataRequest) (*storage.Object, error)
	CreateToken(ctx context.Context, caller wallet.Signer, req *model.CreateTokenRequest) (*model.TransactionResult, error)
	BuyTokens(ctx context.Context, caller wallet.Signer, req *model.BuyTokenRequest) (*model.TransactionResult, error)
	SaveLaunch(ctx context.Context, record *model.LaunchRecord) error
	RecentLaunches(ctx context.Context, limit int) ([]*model.LaunchRecord, error)
}

// Server 使用配置的钱包代替调用方签名
type Server struct {
	service  Service
	signer   wallet.Signer
	viewBase string
	router   *mux.Router
}

func NewServer(service Service, signer wallet.Signer, viewBase string) *Server {
	s := &Server{
		service:  service,
		signer:   signer,
		viewBase: viewBase,
		router:   mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	// 子路由在方法不匹配时返回 404，这里直接注册在根路由上
	s.router.HandleFunc("/api/upload-image", s.handleUploadImage).Methods(http.MethodPost)
	s.router.HandleFunc("/api/upload-metadata", s.handleUploadMetadata).Methods(http.MethodPost)
	s.router.HandleFunc("/api/create-token", s.handleCreateToken).Methods(http.MethodPost)
	s.router.HandleFunc("/api/buy", s.handleBuy).Methods(http.MethodPost)
	s.router.HandleFunc("/api/save-launch", s.handleSaveLaunch).Methods(http.MethodPost)
	s.router.HandleFunc("/api/get-launches", s.handleGetLaunches).Methods(http.MethodGet)
	s.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	})
	s.router.Use(logRequests)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		common.Log.Debugf("%s %s (%s)", r.Method, r.URL.Path, time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		common.Log.WithError(err).Warn("写入响应失败")
	}
}

// statusFor 错误类别到状态码
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrValidation), errors.Is(err, common.ErrConversion):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, common.ErrSubmission):
		return http.StatusBadGateway
	case errors.Is(err, common.ErrConfirmationTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		common.Log.WithError(err).Error("请求处理失败")
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
