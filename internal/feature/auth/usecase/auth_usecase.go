// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auth_backend/internal/feature/auth/domain"
	"auth_backend/internal/feature/auth/domain/entity"
	"auth_backend/internal/platform/passwords"
)

// resetNonceLength はリセットトークンに埋め込むナンスの文字数を定義します。
const resetNonceLength = 20

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じユーザー名またはメールアドレスのユーザーが既に存在する場合、domain.ErrUserAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// Save は変更されたユーザーのフィールドを永続化します。
	Save(ctx context.Context, user *entity.User) error

	// FindAll は全ユーザーを取得します。
	FindAll(ctx context.Context) ([]*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// FindByUsername は指定されたユーザー名に一致するユーザーを取得します。
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByUsernameOrEmail はユーザー名またはメールアドレスのいずれかに一致するユーザーを取得します。
	// 登録時の重複チェックに使用します。
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*entity.User, error)

	// FindByEmailAndResetToken はメールアドレスと保存済みリセットトークンの両方に一致するユーザーを取得します。
	FindByEmailAndResetToken(ctx context.Context, email, token string) (*entity.User, error)
}

// TokenIssuer はトークンの発行・検証のインターフェースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/jwt）ではなくコンシューマー（usecase）が定義します。
type TokenIssuer interface {
	// IssueAuthToken は指定されたユーザーの署名済みベアラートークンを発行します。
	IssueAuthToken(userID uint, username string) (string, error)

	// IssueResetToken はメールアドレスとナンスを束ねた署名済みリセットトークンと、その有効期限を発行します。
	IssueResetToken(email, nonce string) (string, time.Time, error)

	// VerifyResetToken はリセットトークンを検証し、埋め込まれたメールアドレスとナンスを返します。
	VerifyResetToken(token string) (string, string, error)
}

// ResetMailer はリセットリンク通知の送信を抽象化します。
type ResetMailer interface {
	// SendPasswordReset は指定されたトークンのリセットリンクをユーザーにメールします。
	SendPasswordReset(ctx context.Context, to, token string) error
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users  UserRepository
	tokens TokenIssuer
	mailer ResetMailer
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, tokens TokenIssuer, mailer ResetMailer) *authUsecase {
	return &authUsecase{
		users:  users,
		tokens: tokens,
		mailer: mailer,
	}
}

// Register はハッシュ化されたパスワードで新規ユーザーを登録し、ベアラートークンを発行します。
// 同名のユーザー名またはメールアドレスが存在する場合、domain.ErrUserAlreadyExistsを返します。
func (u *authUsecase) Register(ctx context.Context, username, email, password string) (*entity.User, string, error) {
	// ユーザー名またはメールアドレスの重複をチェック
	if _, err := u.users.FindByUsernameOrEmail(ctx, username, email); err == nil {
		return nil, "", domain.ErrUserAlreadyExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, "", fmt.Errorf("failed to check existing user: %w", err)
	}

	hashed, err := passwords.Hash(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{Username: username, Email: email, Password: hashed}
	// 同時登録の競合はストアの一意制約が解決し、domain.ErrUserAlreadyExistsとして返される
	if err := u.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := u.tokens.IssueAuthToken(user.ID, user.Username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// Login はユーザーを認証し、成功時にベアラートークンを返します。
// ユーザー名とパスワードを検証し、署名済みトークンを発行します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもハッシュ比較を実行します。
func (u *authUsecase) Login(ctx context.Context, username, password string) (*entity.User, string, error) {
	// ユーザー名でユーザーを検索
	user, err := u.users.FindByUsername(ctx, username)

	// ユーザー未検出時もダミーハッシュとの比較を行い、比較コストを一定に保つ
	hash := passwords.DummyHash
	if err == nil {
		hash = user.Password
	}

	ok := passwords.Verify(password, hash)

	// ユーザー未検出またはパスワード不一致の場合、汎用エラーを返す
	// どちらが誤っていたかを漏らさない
	if err != nil || !ok {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, tokenErr := u.tokens.IssueAuthToken(user.ID, user.Username)
	if tokenErr != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", tokenErr)
	}

	return user, token, nil
}

// RequestReset はリセットトークンを発行してユーザーレコードに保存し、リセットリンクをメールします。
// メールアドレスに一致するユーザーがいない場合、domain.ErrUserNotFoundを返します。
func (u *authUsecase) RequestReset(ctx context.Context, email string) error {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	// トークンの推測・再生を防ぐためのランダムなナンス
	nonce, err := randString(resetNonceLength)
	if err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}

	token, expiresAt, err := u.tokens.IssueResetToken(user.Email, nonce)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	// 後続のリセット完了時に完全一致を要求するため、トークンを保存する
	user.ResetToken = &token
	user.ResetTokenExpiry = &expiresAt
	if err := u.users.Save(ctx, user); err != nil {
		return fmt.Errorf("failed to persist reset token: %w", err)
	}

	if err := u.mailer.SendPasswordReset(ctx, user.Email, token); err != nil {
		return fmt.Errorf("failed to send reset mail: %w", err)
	}

	return nil
}

// CompleteReset はリセットトークンを検証し、新しいパスワードを設定します。
// 検証失敗・期限切れ・保存済みトークンとの不一致はすべてdomain.ErrInvalidResetTokenにまとめます。
func (u *authUsecase) CompleteReset(ctx context.Context, token, newPassword string) error {
	email, _, err := u.tokens.VerifyResetToken(token)
	if err != nil {
		return domain.ErrInvalidResetToken
	}

	// 提示されたトークンと保存済みトークンの完全一致を要求する
	// 署名が有効でも、新しいリクエストで置き換えられた古いトークンは拒否される
	user, err := u.users.FindByEmailAndResetToken(ctx, email, token)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrInvalidResetToken
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	hashed, err := passwords.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	// トークンは一回限り: パスワード更新と同時にクリアする
	user.Password = hashed
	user.ResetToken = nil
	user.ResetTokenExpiry = nil
	if err := u.users.Save(ctx, user); err != nil {
		return fmt.Errorf("failed to persist new password: %w", err)
	}

	return nil
}

// ListUsers は全ユーザーを取得します。
func (u *authUsecase) ListUsers(ctx context.Context) ([]*entity.User, error) {
	return u.users.FindAll(ctx)
}

// GetUser は指定されたIDのユーザーを取得します。
func (u *authUsecase) GetUser(ctx context.Context, id uint) (*entity.User, error) {
	return u.users.FindByID(ctx, id)
}
