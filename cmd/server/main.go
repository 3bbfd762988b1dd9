package main

import (
	"log/slog"
	"os"

	"auth_backend/internal/app/router"
	authadapters "auth_backend/internal/feature/auth/adapters"
	authhandler "auth_backend/internal/feature/auth/transport/handler"
	authusecase "auth_backend/internal/feature/auth/usecase"
	"auth_backend/internal/platform/config"
	infradb "auth_backend/internal/platform/db"
	jwtmw "auth_backend/internal/platform/jwt"
	"auth_backend/internal/platform/mail"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	// 設定は起動時に一度だけ読み込み、以降は注入する
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// db
	db, err := infradb.Open(cfg.DB)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if cfg.RunMigrations {
		if err := infradb.Migrate(db); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
	}

	// トークン発行・メール送信
	issuer := jwtmw.NewIssuer(cfg.JWT.Secret, cfg.JWT.AuthTTL, cfg.JWT.ResetTTL)
	mailer := mail.NewSMTPSender(cfg.SMTP, cfg.BaseURL)

	// Repository
	userRepo := authadapters.NewUserMySQL(db)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, issuer, mailer)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)

	// ルータ生成
	r := router.NewRouter(authH, issuer)

	if err := r.Run(cfg.Addr); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}
