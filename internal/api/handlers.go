package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"pump_launch/internal/common"
	"pump_launch/internal/launcher"
	"pump_launch/internal/model"

	"github.com/gagliardetto/solana-go"
)

type createTokenBody struct {
	Name        string            `json:"name"`
	Symbol      string            `json:"symbol"`
	MetadataURI string            `json:"metadataUri"`
	ImageURL    string            `json:"imageUrl"`
	Creator     string            `json:"creator"`
	MayhemMode  bool              `json:"mayhemMode"`
	InitialBuy  *model.InitialBuy `json:"initialBuy,omitempty"`
}

type buyBody struct {
	Mint             string `json:"mint"`
	NativeAmountIn   string `json:"nativeAmountIn"`
	MinimumTokensOut string `json:"minimumTokensOut"`
	SlippageBps      uint64 `json:"slippageBps"`
}

type txResponse struct {
	Signature  string `json:"signature"`
	Mint       string `json:"mint,omitempty"`
	PumpfunURL string `json:"pumpfunUrl,omitempty"`
}

func decodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &common.MissingFieldError{Field: "body"}
	}
	return nil
}

// parseKey 空字符串返回零值
func parseKey(field, value string) (solana.PublicKey, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return solana.PublicKey{}, nil
	}
	key, err := solana.PublicKeyFromBase58(value)
	if err != nil {
		return solana.PublicKey{}, &common.InvalidAmountError{Field: field, Amount: value, Reason: "不是有效地址"}
	}
	return key, nil
}

func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize+1<<20)
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		writeError(w, &common.MissingFieldError{Field: "file"})
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, &common.MissingFieldError{Field: "file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, err)
		return
	}

	obj, err := s.service.UploadImage(r.Context(), header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, obj)
}

func (s *Server) handleUploadMetadata(w http.ResponseWriter, r *http.Request) {
	var req launcher.MetadataRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	obj, err := s.service.PublishMetadata(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, obj)
}

func (s *Server) handleCreateToken(w http.ResponseWriter, r *http.Request) {
	var body createTokenBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	creator, err := parseKey("creator", body.Creator)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := s.service.CreateToken(r.Context(), s.signer, &model.CreateTokenRequest{
		Name:        body.Name,
		Symbol:      body.Symbol,
		MetadataURI: body.MetadataURI,
		ImageURI:    body.ImageURL,
		Creator:     creator,
		MayhemMode:  body.MayhemMode,
		InitialBuy:  body.InitialBuy,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	resp := txResponse{Signature: result.Signature.String()}
	if result.CreatedMint != nil {
		resp.Mint = result.CreatedMint.String()
		resp.PumpfunURL = s.viewBase + resp.Mint
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBuy(w http.ResponseWriter, r *http.Request) {
	var body buyBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	mint, err := parseKey("mint", body.Mint)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := s.service.BuyTokens(r.Context(), s.signer, &model.BuyTokenRequest{
		TargetMint:       mint,
		NativeAmountIn:   body.NativeAmountIn,
		MinimumTokensOut: body.MinimumTokensOut,
		SlippageBps:      body.SlippageBps,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, txResponse{Signature: result.Signature.String()})
}

func (s *Server) handleSaveLaunch(w http.ResponseWriter, r *http.Request) {
	var record model.LaunchRecord
	if err := decodeBody(r, &record); err != nil {
		writeError(w, err)
		return
	}
	record.ID = ""
	if err := s.service.SaveLaunch(r.Context(), &record); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "launchId": record.ID})
}

func (s *Server) handleGetLaunches(w http.ResponseWriter, r *http.Request) {
	limit := common.DEFAULT_LAUNCH_LIMIT
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, &common.InvalidAmountError{Field: "limit", Amount: raw, Reason: "必须是正整数"})
			return
		}
		limit = n
	}

	launches, err := s.service.RecentLaunches(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"launches": launches})
}
