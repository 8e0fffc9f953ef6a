package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type Local struct {
	BaseDir   string
	URLPrefix string
}

func NewLocal(baseDir, urlPrefix string) *Local {
	return &Local{BaseDir: baseDir, URLPrefix: urlPrefix}
}

func (l *Local) Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error) {
	ext, err := CheckImage(in)
	if err != nil {
		return PutResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return PutResult{}, err
	}

	key := path.Join(folder(in.Folder), uuid.NewString()+ext)
	dstPath := filepath.Join(l.BaseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return PutResult{}, err
	}

	f, err := os.OpenFile(dstPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return PutResult{}, err
	}
	defer f.Close()

	// the declared size can lie
	n, err := io.Copy(f, io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		_ = os.Remove(dstPath)
		return PutResult{}, err
	}
	if n > MaxImageSize {
		_ = os.Remove(dstPath)
		return PutResult{}, ErrTooLarge
	}

	url := strings.TrimRight(l.URLPrefix, "/") + "/" + key
	return PutResult{Key: key, URL: url}, nil
}

func (l *Local) Delete(ctx context.Context, key string) error {
	_ = ctx
	clean := path.Clean("/" + filepath.ToSlash(key))
	return os.Remove(filepath.Join(l.BaseDir, filepath.FromSlash(strings.TrimPrefix(clean, "/"))))
}

func (l *Local) String() string { return fmt.Sprintf("local(%s)", l.BaseDir) }
