// Package storage keeps uploaded images (avatars, product and banner
// pictures) and hands back the public URL the backend stores.
package storage

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/shared/apperr"
)

// MaxImageSize caps a single upload.
const MaxImageSize = 5 << 20

var (
	ErrTooLarge        = apperr.InvalidErr("Ảnh vượt quá dung lượng cho phép (5MB).", map[string]string{"file": "Ảnh vượt quá dung lượng cho phép (5MB)."})
	ErrUnsupportedType = apperr.InvalidErr("Chỉ chấp nhận ảnh PNG, JPG, WEBP hoặc GIF.", map[string]string{"file": "Chỉ chấp nhận ảnh PNG, JPG, WEBP hoặc GIF."})
)

type PutInput struct {
	Folder      string // avatars | products | banners
	Filename    string
	ContentType string
	Size        int64
}

type PutResult struct {
	Key string
	URL string
}

type Storage interface {
	Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error)
	Delete(ctx context.Context, key string) error
}

var imageTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
	".gif":  "image/gif",
}

// CheckImage validates the declared size and extension and returns the
// normalized extension.
func CheckImage(in PutInput) (string, error) {
	if in.Size > MaxImageSize {
		return "", ErrTooLarge
	}
	ext := strings.ToLower(filepath.Ext(in.Filename))
	if _, ok := imageTypes[ext]; !ok {
		return "", ErrUnsupportedType
	}
	if in.ContentType != "" && !strings.HasPrefix(in.ContentType, "image/") {
		return "", ErrUnsupportedType
	}
	return ext, nil
}

func contentType(ext, declared string) string {
	if declared != "" {
		return declared
	}
	return imageTypes[ext]
}

func folder(f string) string {
	f = strings.Trim(filepath.ToSlash(filepath.Clean("/"+f)), "/")
	if f == "" || f == "." {
		return "misc"
	}
	return f
}
