package gemini

import "time"

// Config はGemini API クライアントの設定です。
type Config struct {
	APIKey  string        // APIキー（未設定でも検証せず、呼び出し時の認証エラーとして表面化する）
	Model   string        // モデル名（例: "gemini-2.5-flash"）
	BaseURL string        // エンドポイントの上書き（空ならSDKのデフォルト）
	Timeout time.Duration // HTTPリクエスト全体のタイムアウト
}
