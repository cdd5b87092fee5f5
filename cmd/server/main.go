package main

import (
	"context"
	"fmt"
	"log"

	"admin-console/internal/auth"
	"admin-console/internal/backend"
	"admin-console/internal/config"
	"admin-console/internal/database"
	"admin-console/internal/handlers"
	"admin-console/internal/logger"
	"admin-console/internal/news"
	"admin-console/internal/registry"
	"admin-console/internal/requests"
	"admin-console/internal/server"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	lg, err := logger.New(cfg.LogLevel, cfg.LogFormat, "admin-console")
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	db, err := database.Open(cfg.DBDSN, lg)
	if err != nil {
		lg.Fatal("database init failed", zap.Error(err))
	}
	database.Seed(db, lg, database.DefaultSeed(cfg.AdminUsername, cfg.AdminPassword, cfg.AdminRoleID))

	audit := database.NewAuditLog(db, lg)
	api := backend.New(cfg.BackendURL, cfg.BackendTimeout, lg)

	roles := registry.New(api, audit, lg)
	// бэкенд может ещё не подняться — снимок дочитаем при первом запросе
	if err := roles.Refresh(context.Background()); err != nil {
		lg.Warn("initial role refresh failed", zap.Error(err))
	}

	h := &handlers.Handlers{
		Gate:     auth.NewGate(database.NewIdentityStore(db), roles, lg),
		Registry: roles,
		Requests: requests.New(api, audit, lg),
		News:     news.New(cfg.NewsAPIURL, cfg.BackendTimeout, audit, lg),
		Audit:    audit,
	}

	r := server.NewRouter(cfg.SessionSecret, h, lg)

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	lg.Info("starting server", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		lg.Fatal("server error", zap.Error(err))
	}
}
