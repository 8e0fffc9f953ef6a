package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/config"
)

func TestLocalPutAndDelete(t *testing.T) {
	dir := t.TempDir()
	l := NewLocal(dir, "/uploads/")

	res, err := l.Put(context.Background(), strings.NewReader("png-bytes"), PutInput{
		Folder:      "avatars",
		Filename:    "Ảnh đại diện.PNG",
		ContentType: "image/png",
		Size:        9,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.Key, "avatars/"))
	assert.True(t, strings.HasSuffix(res.Key, ".png"))
	assert.Equal(t, "/uploads/"+res.Key, res.URL)

	b, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(res.Key)))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(b))

	require.NoError(t, l.Delete(context.Background(), res.Key))
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(res.Key)))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalKeepsFolderInsideBaseDir(t *testing.T) {
	dir := t.TempDir()
	l := NewLocal(dir, "/uploads")

	res, err := l.Put(context.Background(), strings.NewReader("x"), PutInput{Folder: "../../etc", Filename: "a.jpg"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.Key, "etc/"), res.Key)
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(res.Key)))
	assert.NoError(t, err)
}

func TestLocalRejectsOversizedBody(t *testing.T) {
	l := NewLocal(t.TempDir(), "/uploads")
	body := bytes.Repeat([]byte{1}, MaxImageSize+10)

	_, err := l.Put(context.Background(), bytes.NewReader(body), PutInput{Filename: "big.jpg"})
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestCheckImage(t *testing.T) {
	_, err := CheckImage(PutInput{Filename: "doc.pdf"})
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = CheckImage(PutInput{Filename: "a.png", ContentType: "text/html"})
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = CheckImage(PutInput{Filename: "a.png", Size: MaxImageSize + 1})
	assert.ErrorIs(t, err, ErrTooLarge)

	ext, err := CheckImage(PutInput{Filename: "Ghe.JPEG"})
	require.NoError(t, err)
	assert.Equal(t, ".jpeg", ext)
}

func TestNewFromConfig(t *testing.T) {
	s, err := New(context.Background(), config.StorageConfig{Driver: "local", LocalDir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &Local{}, s)

	_, err = New(context.Background(), config.StorageConfig{Driver: "s3"})
	assert.Error(t, err)

	_, err = New(context.Background(), config.StorageConfig{Driver: "ftp"})
	assert.Error(t, err)
}
