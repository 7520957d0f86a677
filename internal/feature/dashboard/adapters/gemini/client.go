// Package gemini はGoogle Gemini APIを使用したダッシュボードデータ取得クライアントを提供します。
package gemini

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"market_dashboard/internal/feature/dashboard/usecase"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"
)

// SearchGroundedGenerator はGoogle検索による根拠付けを有効にしてテキストを生成します。
// 検索ツールとJSON出力モード（ResponseMIMEType）は併用できないため、応答は自由形式のテキストです。
type SearchGroundedGenerator struct {
	cfg        Config
	httpClient *http.Client
}

// SearchGroundedGeneratorがReplyGeneratorを実装していることをコンパイル時に検証します。
var _ usecase.ReplyGenerator = (*SearchGroundedGenerator)(nil)

// NewSearchGroundedGenerator はSearchGroundedGeneratorの新しいインスタンスを生成します。
// httpClientがnilの場合はSDKのデフォルトを使用します。
func NewSearchGroundedGenerator(cfg Config, httpClient *http.Client) *SearchGroundedGenerator {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return &SearchGroundedGenerator{cfg: cfg, httpClient: httpClient}
}

// Generate はプロンプトを送信し、応答テキストを返します。
// クライアントは呼び出しごとに生成し、呼び出し間で状態を保持しません。
func (g *SearchGroundedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, g.clientConfig())
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}

	config := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
	}
	resp, err := client.Models.GenerateContent(ctx, g.cfg.Model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}

	return resp.Text(), nil
}

func (g *SearchGroundedGenerator) clientConfig() *genai.ClientConfig {
	cc := &genai.ClientConfig{
		APIKey:     g.cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: g.httpClient,
	}
	if g.cfg.BaseURL != "" {
		cc.HTTPOptions.BaseURL = g.cfg.BaseURL
	}
	return cc
}
