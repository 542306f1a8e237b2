package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/pagarwal884/Aapni-Dairy/internal/config"
	"github.com/pagarwal884/Aapni-Dairy/internal/repository/mongodb"
	"github.com/pagarwal884/Aapni-Dairy/internal/scheduler"
	"github.com/pagarwal884/Aapni-Dairy/internal/server/handlers"
	"github.com/pagarwal884/Aapni-Dairy/internal/server/router"
	accountsvc "github.com/pagarwal884/Aapni-Dairy/internal/service/accounts"
	customersvc "github.com/pagarwal884/Aapni-Dairy/internal/service/customers"
	entrysvc "github.com/pagarwal884/Aapni-Dairy/internal/service/entries"
	summarysvc "github.com/pagarwal884/Aapni-Dairy/internal/service/summary"
	"github.com/pagarwal884/Aapni-Dairy/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	repo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := repo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	tokens := accountsvc.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	accounts := accountsvc.NewService(repo, tokens, baseLogger.Named("svc.accounts"))
	customers := customersvc.NewService(repo, baseLogger.Named("svc.customers"))
	entries := entrysvc.NewService(repo, baseLogger.Named("svc.entries"))
	summaries := summarysvc.NewService(repo, baseLogger.Named("svc.summary"))

	userHandler := handlers.NewUserHandler(accounts, baseLogger.Named("handlers.user"))
	customerHandler := handlers.NewCustomerHandler(customers, baseLogger.Named("handlers.customer"))
	entryHandler := handlers.NewEntryHandler(entries, summaries, baseLogger.Named("handlers.entry"))
	engine := router.New(userHandler, customerHandler, entryHandler, accounts, baseLogger.Named("router"))

	keepAlive := scheduler.NewKeepAlive(cfg.KeepAlive, baseLogger.Named("scheduler"))
	keepAlive.Start()
	defer keepAlive.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
