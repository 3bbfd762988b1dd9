// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health は死活監視用の /healthz エンドポイントを処理します。
// 監視系がどのHTTPメソッドで叩いても安全に応答し、レスポンスのキャッシュを防止します。
func Health(c *gin.Context) {
	// ロードバランサやプロキシにキャッシュさせない
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "auth"})
	}
}
