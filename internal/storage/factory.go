package storage

import (
	"context"
	"fmt"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/config"
)

// New picks the backing store from configuration.
func New(ctx context.Context, cfg config.StorageConfig) (Storage, error) {
	switch cfg.Driver {
	case "", "local":
		dir := cfg.LocalDir
		if dir == "" {
			dir = "./storage/uploads"
		}
		prefix := cfg.LocalURLPrefix
		if prefix == "" {
			prefix = "/uploads"
		}
		return NewLocal(dir, prefix), nil

	case "s3":
		if cfg.S3Region == "" || cfg.S3Bucket == "" || cfg.S3PublicBase == "" {
			return nil, fmt.Errorf("storage.s3_region, storage.s3_bucket and storage.s3_public_base_url are required")
		}
		prefix := cfg.S3Prefix
		if prefix == "" {
			prefix = "uploads"
		}
		return NewS3(ctx, S3Config{
			Region:        cfg.S3Region,
			Bucket:        cfg.S3Bucket,
			Prefix:        prefix,
			PublicBaseURL: cfg.S3PublicBase,
		})

	default:
		return nil, fmt.Errorf("unknown storage.driver: %s", cfg.Driver)
	}
}
