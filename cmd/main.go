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

	"github.com/quillpress/identity/internal/api/http/router"
	"github.com/quillpress/identity/internal/config"
	"github.com/quillpress/identity/internal/logger"
	"github.com/quillpress/identity/internal/model"
	"github.com/quillpress/identity/internal/repository/postgres"
	"github.com/quillpress/identity/internal/server"
	"github.com/quillpress/identity/internal/service"
	storage "github.com/quillpress/identity/internal/storage/minio"
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
		logger.Fatal("failed to initialize account store", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)

	minioClient, err := minio.New(cfg.Content.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Content.AccessKey, cfg.Content.SecretKey, ""),
		Secure: cfg.Content.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	profileSource, err := storage.NewClient(ctx, minioClient, cfg.Content.Bucket, logger)
	if err != nil {
		logger.Fatal("failed to initialize content store", "error", err)
	}

	cache := service.NewProfileCache(cfg.Identity.ProfileCacheTTL, logger)
	resolver := service.NewResolver(cache, logger)
	resolver.Configure(model.Sources{
		FindByHandle:  userRepo.GetByHandle,
		FindAll:       userRepo.GetAll,
		ListProfiles:  profileSource.ListProfiles,
		NoAuthEnabled: cfg.Identity.NoAuthEnabled,
	})

	if cfg.Identity.NoAuthEnabled {
		logger.Warn("no-auth development fallback is enabled; the admin handle resolves without a backing account")
	}

	r := router.New(resolver, logger)
	httpServer := server.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
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
