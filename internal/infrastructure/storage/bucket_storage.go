package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/matheusgmdr7/contratando2/internal/pkg/apperror"
)

// BucketStorage — локальное файловое хранилище с раскладкой по bucket.
// Файлы раздаются статикой по publicURL/<bucket>/<path>.
type BucketStorage struct {
	rootPath       string
	publicURL      string
	maxUploadBytes int64
}

func NewBucketStorage(rootPath, publicURL string, maxUploadMB int64) (*BucketStorage, error) {
	if err := os.MkdirAll(rootPath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: не удалось создать каталог %s: %w", rootPath, err)
	}
	return &BucketStorage{
		rootPath:       rootPath,
		publicURL:      strings.TrimRight(publicURL, "/"),
		maxUploadBytes: maxUploadMB * 1024 * 1024,
	}, nil
}

// Upload пишет объект через временный файл и возвращает публичный URL.
func (s *BucketStorage) Upload(ctx context.Context, bucket, objectPath string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	target, clean, err := s.resolve(bucket, objectPath)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("storage: не удалось создать каталог: %w", err)
	}

	tempPath := target + ".tmp"
	f, err := os.Create(tempPath)
	if err != nil {
		return "", fmt.Errorf("storage: не удалось создать файл: %w", err)
	}
	defer f.Close()

	limited := io.LimitedReader{R: r, N: s.maxUploadBytes + 1}
	written, err := io.Copy(f, &limited)
	if err != nil {
		_ = os.Remove(tempPath)
		return "", fmt.Errorf("storage: ошибка записи файла: %w", err)
	}
	if written > s.maxUploadBytes {
		_ = os.Remove(tempPath)
		return "", apperror.Validation(fmt.Sprintf("arquivo excede o limite de %d MB", s.maxUploadBytes/(1024*1024)))
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("storage: ошибка закрытия файла: %w", err)
	}
	if err := os.Rename(tempPath, target); err != nil {
		return "", fmt.Errorf("storage: не удалось переименовать файл: %w", err)
	}

	return s.publicURL + "/" + bucket + "/" + clean, nil
}

func (s *BucketStorage) Delete(ctx context.Context, bucket, objectPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target, _, err := s.resolve(bucket, objectPath)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: не удалось удалить файл: %w", err)
	}
	return nil
}

// resolve не даёт выйти за пределы bucket через ".." и абсолютные пути.
func (s *BucketStorage) resolve(bucket, objectPath string) (string, string, error) {
	if bucket == "" || strings.ContainsAny(bucket, `/\`) || strings.Contains(bucket, "..") {
		return "", "", apperror.Validation("bucket inválido")
	}
	clean := path.Clean("/" + strings.ReplaceAll(objectPath, `\`, "/"))
	clean = strings.TrimPrefix(clean, "/")
	if clean == "" || clean == "." {
		return "", "", apperror.Validation("caminho do arquivo inválido")
	}
	return filepath.Join(s.rootPath, bucket, filepath.FromSlash(clean)), clean, nil
}
