package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/tendant/signed-assets/pkg/signedassets/api"
	"github.com/tendant/signed-assets/pkg/signedassets/config"
)

type envConfig struct {
	Port              string `env:"PORT" env-default:"8080"`
	Environment       string `env:"ENVIRONMENT" env-default:"development"`
	CDNHost           string `env:"CDN_HOST"`
	StorageHost       string `env:"STORAGE_HOST"`
	AssetPathPrefix   string `env:"ASSET_PATH_PREFIX" env-default:"/assets/uploads/"`
	KeepPrefixInKey   bool   `env:"KEEP_PREFIX_IN_KEY" env-default:"false"`
	Bucket            string `env:"S3_BUCKET"`
	Region            string `env:"S3_REGION" env-default:"us-east-1"`
	AccessKeyID       string `env:"S3_ACCESS_KEY_ID"`
	SecretAccessKey   string `env:"S3_SECRET_ACCESS_KEY"`
	Endpoint          string `env:"S3_ENDPOINT"`
	UsePathStyle      bool   `env:"S3_USE_PATH_STYLE" env-default:"false"`
	PresignTTLSeconds int    `env:"PRESIGN_TTL_SECONDS" env-default:"3600"`
	SignerType        string `env:"SIGNER_TYPE" env-default:"s3"`
	HMACSecret        string `env:"HMAC_SECRET"`
}

func (e envConfig) toServerConfig() *config.ServerConfig {
	return &config.ServerConfig{
		Port:              e.Port,
		Environment:       e.Environment,
		CDNHost:           e.CDNHost,
		StorageHost:       e.StorageHost,
		AssetPathPrefix:   e.AssetPathPrefix,
		KeepPrefixInKey:   e.KeepPrefixInKey,
		Bucket:            e.Bucket,
		Region:            e.Region,
		AccessKeyID:       e.AccessKeyID,
		SecretAccessKey:   e.SecretAccessKey,
		Endpoint:          e.Endpoint,
		UsePathStyle:      e.UsePathStyle,
		PresignTTLSeconds: e.PresignTTLSeconds,
		SignerType:        e.SignerType,
		HMACSecret:        e.HMACSecret,
	}
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	var env envConfig
	if err := cleanenv.ReadEnv(&env); err != nil {
		logger.Error("Failed to read environment", "error", err)
		os.Exit(1)
	}

	serverConfig := env.toServerConfig()
	if err := serverConfig.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	svc, err := serverConfig.BuildService()
	if err != nil {
		logger.Error("Failed to build service", "error", err)
		os.Exit(1)
	}

	r := chi.NewRouter()
	r.Use(api.RequestID)
	r.Use(api.Logger(logger))
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		render.JSON(w, req, map[string]string{"status": "ok"})
	})
	r.Mount("/api/v1", api.NewRewriteHandler(svc).Routes())

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", serverConfig.Port),
		Handler: r,
	}

	go func() {
		logger.Info("Signed Assets Server starting",
			"port", serverConfig.Port,
			"env", serverConfig.Environment,
			"signer", serverConfig.SignerType,
		)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("Server exiting")
}
