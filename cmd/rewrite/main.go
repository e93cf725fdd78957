// Command rewrite is a one-shot filter: it reads rendered content from
// stdin, rewrites asset references using environment-supplied
// configuration, and writes the result to stdout.
//
//	echo '<img src="https://cdn.example.com/assets/uploads/a.png">' | \
//	  CDN_HOST=cdn.example.com S3_BUCKET=assets S3_REGION=us-east-1 \
//	  S3_ACCESS_KEY_ID=... S3_SECRET_ACCESS_KEY=... rewrite
//
// With -url the input is treated as a single URL value instead of a text
// fragment.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/tendant/signed-assets/pkg/signedassets/config"
)

type envConfig struct {
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

func main() {
	urlMode := flag.Bool("url", false, "treat input as a single URL value")
	flag.Parse()

	var env envConfig
	if err := cleanenv.ReadEnv(&env); err != nil {
		slog.Error("Failed to read environment", "error", err)
		os.Exit(1)
	}

	serverConfig := &config.ServerConfig{
		Port:              "0", // no listener in filter mode
		CDNHost:           env.CDNHost,
		StorageHost:       env.StorageHost,
		AssetPathPrefix:   env.AssetPathPrefix,
		KeepPrefixInKey:   env.KeepPrefixInKey,
		Bucket:            env.Bucket,
		Region:            env.Region,
		AccessKeyID:       env.AccessKeyID,
		SecretAccessKey:   env.SecretAccessKey,
		Endpoint:          env.Endpoint,
		UsePathStyle:      env.UsePathStyle,
		PresignTTLSeconds: env.PresignTTLSeconds,
		SignerType:        env.SignerType,
		HMACSecret:        env.HMACSecret,
	}
	if err := serverConfig.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	svc, err := serverConfig.BuildService()
	if err != nil {
		slog.Error("Failed to build service", "error", err)
		os.Exit(1)
	}

	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		slog.Error("Failed to read stdin", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if *urlMode {
		fmt.Println(svc.RewriteURL(ctx, strings.TrimSpace(string(input))))
		return
	}
	fmt.Print(svc.RewriteContent(ctx, string(input)))
}
