package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/taskdeck/server/internal/api/http/handler"
	"github.com/taskdeck/server/internal/api/http/router"
	httpServer "github.com/taskdeck/server/internal/api/http/server"
	"github.com/taskdeck/server/internal/config"
	"github.com/taskdeck/server/internal/logger"
	"github.com/taskdeck/server/internal/repository/postgres"
	"github.com/taskdeck/server/internal/service"
	storage "github.com/taskdeck/server/internal/storage/minio"
	"github.com/taskdeck/server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	taskRepo := postgres.NewTaskRepository(db)
	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL)

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket, cfg.Storage.PublicURL)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	authService := service.NewAuth(userRepo, tokenManager, logger)
	userService := service.NewUser(userRepo, storageClient, logger)
	taskService := service.NewTask(taskRepo, logger)

	cookie := handler.CookieOptions{TTL: cfg.JWT.TTL, Secure: cfg.Production()}
	authHandler := handler.NewAuth(authService, cookie, logger)
	userHandler := handler.NewUser(userService, logger)
	taskHandler := handler.NewTask(taskService, logger)

	r := router.New(authHandler, userHandler, taskHandler, tokenManager, userRepo, cfg.HTTP.FrontendURL, logger)
	srv := httpServer.New(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("Starting server on", "address", srv.Address())
		var err error
		if cfg.HTTP.EnableHTTPS {
			err = srv.StartTLS(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
		} else {
			err = srv.Start()
		}
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}()

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
