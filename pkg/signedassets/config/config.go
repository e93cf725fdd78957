package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/tendant/signed-assets/pkg/signedassets"
	"github.com/tendant/signed-assets/pkg/signedassets/signer/hmacsigner"
	s3signer "github.com/tendant/signed-assets/pkg/signedassets/signer/s3"
)

// Signer types selectable via ServerConfig.SignerType
const (
	SignerS3   = "s3"
	SignerHMAC = "hmac"
)

// Option applies configuration to a ServerConfig instance.
type Option func(*ServerConfig) error

// Load constructs a ServerConfig by applying the supplied options on top of library defaults.
func Load(opts ...Option) (*ServerConfig, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() ServerConfig {
	return ServerConfig{
		Port:              "8080",
		Environment:       "development",
		Region:            "us-east-1",
		PresignTTLSeconds: 3600,
		SignerType:        SignerS3,
	}
}

// ServerConfig represents server configuration for the signed-assets service
type ServerConfig struct {
	Port        string
	Environment string // development, production, testing

	// Rewrite surface
	CDNHost         string
	StorageHost     string
	AssetPathPrefix string
	KeepPrefixInKey bool

	// Storage credentials and addressing
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
	UsePathStyle    bool

	// Signing
	PresignTTLSeconds int
	SignerType        string // "s3", "hmac"
	HMACSecret        string
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	if c.SignerType != SignerS3 && c.SignerType != SignerHMAC {
		return fmt.Errorf("signer_type must be '%s' or '%s'", SignerS3, SignerHMAC)
	}

	if c.PresignTTLSeconds <= 0 {
		return errors.New("presign_ttl_seconds must be positive")
	}

	return nil
}

// RewriteConfig maps the server configuration onto the pipeline surface.
func (c *ServerConfig) RewriteConfig() signedassets.Config {
	return signedassets.Config{
		CDNHost:         c.CDNHost,
		StorageHost:     c.StorageHost,
		AssetPathPrefix: c.AssetPathPrefix,
		KeepPrefixInKey: c.KeepPrefixInKey,
		TTL:             time.Duration(c.PresignTTLSeconds) * time.Second,
	}
}

// BuildService creates a Service instance from the server configuration.
// When the configuration cannot name a signer (no bucket, or no HMAC
// secret), the returned Service is the pass-through no-op rather than an
// error: an unconfigured deployment renders unsigned references instead of
// failing to boot.
func (c *ServerConfig) BuildService() (signedassets.Service, error) {
	signer, err := c.buildSigner()
	if err != nil {
		return nil, err
	}

	return signedassets.New(
		signedassets.WithConfig(c.RewriteConfig()),
		signedassets.WithSigner(signer),
	)
}

func (c *ServerConfig) buildSigner() (signedassets.URLSigner, error) {
	switch c.SignerType {
	case SignerHMAC:
		if c.HMACSecret == "" {
			return nil, nil
		}
		return hmacsigner.New(
			hmacsigner.WithCredentials(c.AccessKeyID, c.HMACSecret),
			hmacsigner.WithBucket(c.Bucket),
			hmacsigner.WithRegion(c.Region),
			hmacsigner.WithBaseURL(c.Endpoint),
		), nil
	default:
		if c.Bucket == "" || c.Region == "" {
			return nil, nil
		}
		return s3signer.New(s3signer.Config{
			Region:          c.Region,
			Bucket:          c.Bucket,
			AccessKeyID:     c.AccessKeyID,
			SecretAccessKey: c.SecretAccessKey,
			Endpoint:        c.Endpoint,
			UsePathStyle:    c.UsePathStyle,
		})
	}
}
