// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DetailsFunc はヘルスチェックのレスポンスに含める追加情報を返します。
type DetailsFunc func() map[string]any

// Health はサービスヘルスチェック用の /healthz エンドポイントのハンドラーを返します。
// HTTPメソッドに応じて適切にレスポンスし、キャッシュを防止します。
// detailsがnilでなければ、その戻り値をJSONレスポンスに含めます。
func Health(details DetailsFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 明示的にキャッシュを防止
		c.Header("Cache-Control", "no-store")

		switch c.Request.Method {
		case http.MethodHead:
			c.Status(http.StatusOK)
		case http.MethodOptions:
			c.Status(http.StatusNoContent)
		default:
			body := gin.H{"status": "ok"}
			if details != nil {
				for k, v := range details() {
					if k == "status" {
						continue
					}
					body[k] = v
				}
			}
			c.JSON(http.StatusOK, body)
		}
	}
}
