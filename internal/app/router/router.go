package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "auth_backend/internal/feature/auth/transport/handler"
	"auth_backend/internal/platform/http/handler"
	jwtmw "auth_backend/internal/platform/jwt"
)

func NewRouter(auth *authhandler.AuthHandler, issuer *jwtmw.Issuer) *gin.Engine {
	r := gin.Default()
	// CORS のデフォルト設定を有効
	r.Use(cors.Default())

	// 導通確認用
	r.GET("/healthz", handler.Health)

	// 認証不要
	// 全ユーザー取得
	r.GET("/user", auth.List)
	// 新規ユーザー登録
	r.POST("/register", auth.Register)
	// ログイン（JWT 発行）
	r.POST("/login", auth.Login)
	// パスワードリセット要求（リセットリンクをメール）
	r.POST("/forgot-password", auth.ForgotPassword)
	// パスワードリセット完了（トークンはパスパラメータ）
	r.POST("/reset-password/:token", auth.ResetPassword)

	// 認証必須のルート
	// r.Group("/") でルートグループを作成
	authed := r.Group("/")
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに JWT が必要になる
	authed.Use(jwtmw.AuthRequired(issuer))
	{
		authed.GET("/me", auth.Me)
	}

	return r
}
