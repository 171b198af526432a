package main

import (
	"PassVault/internal/auth"
	"PassVault/internal/config"
	"PassVault/internal/crypto"
	"PassVault/internal/handlers"
	"PassVault/internal/middleware"
	"PassVault/internal/repo"
	"PassVault/internal/service"
	"context"
	"net/http"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	// ключ шифрования паролей в БД
	vaultKey, err := crypto.DeriveKey(cfg.VaultSecret)
	if err != nil {
		sugar.Fatalw("failed to derive vault key", "error", err)
	}

	// верификатор identity-токенов: discovery + JWKS провайдера
	verifier, err := auth.NewVerifier(ctx, cfg.GoogleIssuer, cfg.GoogleClientID)
	if err != nil {
		sugar.Fatalw("failed to initialize identity verifier", "error", err, "issuer", cfg.GoogleIssuer)
	}

	entryRepo := repo.NewEntryRepository(gormDB)
	groupRepo := repo.NewGroupRepository(gormDB)
	passwordService := service.NewPasswordService(entryRepo, vaultKey)
	groupService := service.NewGroupService(groupRepo)

	h := handlers.NewHandler(verifier, passwordService, groupService, sugar, cfg)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"GoogleIssuer", cfg.GoogleIssuer,
	)

	if err := http.ListenAndServe(addr, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}
