// Package imagegen 封裝對外部文生圖服務的呼叫。
//
// 這一層不帶任何遊戲邏輯：單純的請求／回應。任何失敗（網路、認證、
// 格式錯誤、逾時）都會收斂成 ErrGenerationFailed 回傳，細節只寫進日誌，
// 絕不讓錯誤以其他形式穿過這個邊界。是否重試由呼叫端決定。
package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// ErrGenerationFailed 是本層唯一對外的錯誤值
var ErrGenerationFailed = errors.New("圖片生成失敗")

// Generator 產生一張對應提示語的圖片，回傳可直接給前端使用的圖片位址
// （data URL 或外部 URL）。實作不可 panic、不可回傳未包裝的底層錯誤
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Config 是 Stability AI 的連線設定，由 viper 配置餵入
type Config struct {
	APIKey  string
	Engine  string
	BaseURL string
	Timeout time.Duration
}

// StabilityClient 呼叫 Stability AI 的 text-to-image API
type StabilityClient struct {
	cfg    Config
	client *http.Client
}

// NewStabilityClient 建立 Stability AI 客戶端，未設定的欄位套用預設值
func NewStabilityClient(cfg Config) *StabilityClient {
	if cfg.Engine == "" {
		cfg.Engine = "stable-diffusion-xl-1024-v1-0"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.stability.ai"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &StabilityClient{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

type textPrompt struct {
	Text   string  `json:"text"`
	Weight float64 `json:"weight"`
}

type generationRequest struct {
	TextPrompts []textPrompt `json:"text_prompts"`
	CfgScale    int          `json:"cfg_scale"`
	Height      int          `json:"height"`
	Width       int          `json:"width"`
	Samples     int          `json:"samples"`
	Steps       int          `json:"steps"`
	StylePreset string       `json:"style_preset"`
}

type generationResponse struct {
	Artifacts []struct {
		Base64       string `json:"base64"`
		FinishReason string `json:"finishReason"`
	} `json:"artifacts"`
}

// Generate 以提示語產生一張圖，成功時回傳 data URL
func (c *StabilityClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c.cfg.APIKey == "" {
		log.Printf("imagegen: STABILITY_API_KEY 未設定")
		return "", ErrGenerationFailed
	}

	reqBody := generationRequest{
		TextPrompts: []textPrompt{{Text: prompt, Weight: 1}},
		CfgScale:    7,
		Height:      1024,
		Width:       1024,
		Samples:     1,
		Steps:       30,
		StylePreset: "digital-art",
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		log.Printf("imagegen: request encoding error: %v", err)
		return "", ErrGenerationFailed
	}

	url := fmt.Sprintf("%s/v1/generation/%s/text-to-image", c.cfg.BaseURL, c.cfg.Engine)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		log.Printf("imagegen: request build error: %v", err)
		return "", ErrGenerationFailed
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		log.Printf("imagegen: request failed: %v", err)
		return "", ErrGenerationFailed
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		log.Printf("imagegen: response read error: %v", err)
		return "", ErrGenerationFailed
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("imagegen: API 回應 %d: %.200s", resp.StatusCode, string(body))
		return "", ErrGenerationFailed
	}

	var result generationResponse
	if err := json.Unmarshal(body, &result); err != nil {
		log.Printf("imagegen: response parse error: %v", err)
		return "", ErrGenerationFailed
	}

	if len(result.Artifacts) == 0 || result.Artifacts[0].Base64 == "" {
		log.Printf("imagegen: 回應中沒有可用的圖片")
		return "", ErrGenerationFailed
	}

	return "data:image/png;base64," + result.Artifacts[0].Base64, nil
}
