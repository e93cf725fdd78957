package config

import (
	"fmt"
	"os"
	"strconv"
)

// WithEnv applies environment variable overrides using the provided prefix.
//
// Variables:
//
//	PORT                  - Server port (default: "8080")
//	ENVIRONMENT           - Runtime environment (default: "development")
//	CDN_HOST              - Public CDN domain assets render under
//	STORAGE_HOST          - Raw storage-service domain
//	ASSET_PATH_PREFIX     - Path prefix uploaded assets live under
//	KEEP_PREFIX_IN_KEY    - Retain the prefix in object keys (bool)
//	S3_BUCKET             - Bucket name
//	S3_REGION             - Region (default: "us-east-1")
//	S3_ACCESS_KEY_ID      - Access key ID
//	S3_SECRET_ACCESS_KEY  - Secret access key
//	S3_ENDPOINT           - Custom endpoint for S3-compatible services
//	S3_USE_PATH_STYLE     - Path-style addressing (bool)
//	PRESIGN_TTL_SECONDS   - Signed URL validity (default: 3600)
//	SIGNER_TYPE           - "s3" or "hmac" (default: "s3")
//	HMAC_SECRET           - Secret for the hmac signer
func WithEnv(prefix string) Option {
	return func(c *ServerConfig) error {
		if v, ok := lookupEnv(prefix, "PORT"); ok && v != "" {
			c.Port = v
		}
		if v, ok := lookupEnv(prefix, "ENVIRONMENT"); ok && v != "" {
			c.Environment = v
		}

		if v, ok := lookupEnv(prefix, "CDN_HOST"); ok {
			c.CDNHost = v
		}
		if v, ok := lookupEnv(prefix, "STORAGE_HOST"); ok {
			c.StorageHost = v
		}
		if v, ok := lookupEnv(prefix, "ASSET_PATH_PREFIX"); ok {
			c.AssetPathPrefix = v
		}
		if err := applyBoolEnv(prefix, "KEEP_PREFIX_IN_KEY", &c.KeepPrefixInKey); err != nil {
			return err
		}

		if v, ok := lookupEnv(prefix, "S3_BUCKET"); ok {
			c.Bucket = v
		}
		if v, ok := lookupEnv(prefix, "S3_REGION"); ok && v != "" {
			c.Region = v
		}
		if v, ok := lookupEnv(prefix, "S3_ACCESS_KEY_ID"); ok {
			c.AccessKeyID = v
		}
		if v, ok := lookupEnv(prefix, "S3_SECRET_ACCESS_KEY"); ok {
			c.SecretAccessKey = v
		}
		if v, ok := lookupEnv(prefix, "S3_ENDPOINT"); ok {
			c.Endpoint = v
		}
		if err := applyBoolEnv(prefix, "S3_USE_PATH_STYLE", &c.UsePathStyle); err != nil {
			return err
		}

		if err := applyIntEnv(prefix, "PRESIGN_TTL_SECONDS", &c.PresignTTLSeconds); err != nil {
			return err
		}
		if v, ok := lookupEnv(prefix, "SIGNER_TYPE"); ok && v != "" {
			c.SignerType = v
		}
		if v, ok := lookupEnv(prefix, "HMAC_SECRET"); ok {
			c.HMACSecret = v
		}

		return nil
	}
}

func lookupEnv(prefix, name string) (string, bool) {
	return os.LookupEnv(prefix + name)
}

func applyBoolEnv(prefix, name string, dst *bool) error {
	v, ok := lookupEnv(prefix, name)
	if !ok || v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid boolean for %s%s: %q", prefix, name, v)
	}
	*dst = b
	return nil
}

func applyIntEnv(prefix, name string, dst *int) error {
	v, ok := lookupEnv(prefix, name)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid integer for %s%s: %q", prefix, name, v)
	}
	*dst = n
	return nil
}
