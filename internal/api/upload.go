package api

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"
)

// UploadDir returns the directory KYC uploads are written to.
func UploadDir() string {
	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = "uploads"
	}
	return dir
}

// saveUpload writes a multipart file under the upload directory with a
// timestamped name and returns the stored path.
func saveUpload(file multipart.File, header *multipart.FileHeader) (string, error) {
	defer file.Close()

	dir := UploadDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("error creating upload directory: %w", err)
	}

	name := fmt.Sprintf("%d%s", time.Now().UnixNano(), filepath.Ext(header.Filename))
	path := filepath.Join(dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("error creating upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("error writing upload file: %w", err)
	}
	return path, nil
}
