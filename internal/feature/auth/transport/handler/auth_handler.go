// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"auth_backend/internal/feature/auth/domain"
	"auth_backend/internal/feature/auth/domain/entity"
	"auth_backend/internal/feature/auth/transport/http/dto"
	jwtmw "auth_backend/internal/platform/jwt"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は指定されたユーザー名・メールアドレス・パスワードで新規ユーザーを登録します。
	Register(ctx context.Context, username, email, password string) (*entity.User, string, error)
	// Login はユーザーを認証し、成功時にユーザーとベアラートークンを返します。
	Login(ctx context.Context, username, password string) (*entity.User, string, error)
	// RequestReset はリセットトークンを発行してリセットリンクをメールします。
	RequestReset(ctx context.Context, email string) error
	// CompleteReset はリセットトークンを検証して新しいパスワードを設定します。
	CompleteReset(ctx context.Context, token, newPassword string) error
	// ListUsers は全ユーザーを取得します。
	ListUsers(ctx context.Context) ([]*entity.User, error)
	// GetUser は指定されたIDのユーザーを取得します。
	GetUser(ctx context.Context, id uint) (*entity.User, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
// AuthUsecaseインターフェースに依存し、JSONリクエスト/レスポンスを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からAuthUsecaseを注入します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// toUserRes はエンティティを公開用レスポンスに変換します。
func toUserRes(u *entity.User) dto.UserRes {
	return dto.UserRes{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// Register はユーザー登録APIエンドポイントを処理します。
// - リクエストJSONをRegisterReqにバインド
// - バリデーションエラー時は400を返却
// - ユーザー名またはメールアドレス重複時は400を返却
// - 成功時はベアラートークン付きで201を返却
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.MessageRes{Message: "invalid request"})
		return
	}

	user, token, err := h.auth.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			slog.Warn("register conflict", "username", req.Username, "remote_addr", c.ClientIP())
			c.JSON(http.StatusBadRequest, dto.MessageRes{Message: "User already exists"})
			return
		}
		slog.Error("register failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, dto.MessageRes{Message: "Internal Server Error"})
		return
	}

	slog.Info("user registered", "username", user.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.AuthRes{
		Message: "User created successfully",
		User:    toUserRes(user),
		Token:   token,
	})
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - リクエストJSONをLoginReqにバインド
// - バリデーションエラー時は400を返却
// - 認証失敗時は401を返却（ユーザー名とパスワードのどちらが誤っていたかは公開しない）
// - 認証成功時はベアラートークン付きで200を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.MessageRes{Message: "invalid request"})
		return
	}

	user, token, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			slog.Warn("login failed", "username", req.Username, "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, dto.MessageRes{Message: "Invalid username or password"})
			return
		}
		slog.Error("login failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, dto.MessageRes{Message: "Internal Server Error"})
		return
	}

	slog.Info("user login successful", "username", user.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.AuthRes{
		Message: "Login successful",
		User:    toUserRes(user),
		Token:   token,
	})
}

// ForgotPassword はパスワードリセット要求APIエンドポイントを処理します。
// - リクエストJSONをForgotPasswordReqにバインド
// - メールアドレスが未登録の場合は404を返却
// - 成功時はトークン自体は返さず、汎用の受付応答を200で返却
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("forgot-password validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.MessageRes{Message: "invalid request"})
		return
	}

	if err := h.auth.RequestReset(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			slog.Warn("forgot-password for unknown email", "remote_addr", c.ClientIP())
			c.JSON(http.StatusNotFound, dto.MessageRes{Message: "User not found"})
			return
		}
		slog.Error("forgot-password failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, dto.MessageRes{Message: "Internal Server Error"})
		return
	}

	slog.Info("reset mail sent", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.MessageRes{Message: "Reset email sent successfully"})
}

// ResetPassword はパスワードリセット完了APIエンドポイントを処理します。
// - トークンはパスパラメータ、新パスワードはリクエストJSONで受け取る
// - トークンの検証失敗・期限切れ・再利用はすべて400を返却
// - 成功時は200を返却
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	token := c.Param("token")

	var req dto.ResetPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("reset-password validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.MessageRes{Message: "invalid request"})
		return
	}

	if err := h.auth.CompleteReset(c.Request.Context(), token, req.NewPassword); err != nil {
		if errors.Is(err, domain.ErrInvalidResetToken) {
			slog.Warn("reset-password with invalid token", "remote_addr", c.ClientIP())
			c.JSON(http.StatusBadRequest, dto.MessageRes{Message: "Invalid or expired token"})
			return
		}
		slog.Error("reset-password failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, dto.MessageRes{Message: "Internal Server Error"})
		return
	}

	slog.Info("password reset completed", "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.MessageRes{Message: "Password reset successful"})
}

// List は全ユーザー取得APIエンドポイントを処理します。
// パスワードハッシュとリセットトークンはレスポンスに含めません。
func (h *AuthHandler) List(c *gin.Context) {
	users, err := h.auth.ListUsers(c.Request.Context())
	if err != nil {
		slog.Error("list users failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, dto.MessageRes{Message: "Internal Server Error"})
		return
	}

	res := make([]dto.UserRes, 0, len(users))
	for _, u := range users {
		res = append(res, toUserRes(u))
	}
	c.JSON(http.StatusOK, res)
}

// Me は認証済みユーザー自身の情報を返すAPIエンドポイントを処理します。
// jwtmw.AuthRequiredミドルウェアが設定したuserIDを使用します。
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, dto.MessageRes{Message: "invalid token"})
		return
	}

	user, err := h.auth.GetUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, dto.MessageRes{Message: "User not found"})
			return
		}
		slog.Error("get user failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, dto.MessageRes{Message: "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, toUserRes(user))
}
