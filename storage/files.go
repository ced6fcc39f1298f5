package storage

import (
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

var uploadDir string

// InitializeFiles prepares the local upload sink. Uploaded files are stored
// under UPLOAD_DIR and served at /uploads.
func InitializeFiles() {
	uploadDir = os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		log.Panic("could not create upload dir: " + err.Error())
	}
}

// UploadDir returns the static root the router serves.
func UploadDir() string {
	return uploadDir
}

// SaveUpload stores one multipart file under a random name, keeping the
// original extension, and returns its public URL path.
func SaveUpload(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := uuid.NewString() + filepath.Ext(fh.Filename)
	dst, err := os.Create(filepath.Join(uploadDir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}
