package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient は外部API（Gemini）呼び出し用に設定されたHTTPクライアントを作成します。
//
// 設定:
//   - Proxy: 環境変数（HTTPS_PROXYなど）が設定されている場合に使用
//   - Dialer.Timeout: TCP接続タイムアウト
//   - ForceAttemptHTTP2: Google APIはHTTP/2で応答する
//   - MaxIdleConnsPerHost: 呼び出し先は1ホストのみのため小さく保つ
//   - TLSHandshakeTimeout: HTTPSハンドシェイクの最大時間
//   - Client.Timeout: リクエスト全体のタイムアウト（検索付き生成は時間がかかるため呼び出し元で長めに指定）
//
// 取得パイプライン自体はタイムアウトを持たず、このクライアントの設定に委ねます。
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
