package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// allowedExtensions lists the formats the extractor actually handles;
// validation and extraction agree on the same set.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".txt":  true,
	".docx": true,
}

func IsSupportedExtension(ext string) bool {
	return allowedExtensions[strings.ToLower(ext)]
}

type StorageService interface {
	SaveUpload(file *multipart.FileHeader, userID uint) (string, string, error)
	GetFilePath(filename string) string
	DeleteFile(filename string) error
	DeleteUserFiles(userID uint) error
	EnsureUploadDir() error
}

type storageService struct {
	uploadPath string
}

func NewStorageService(uploadPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

// SaveUpload stores the uploaded resume under a unique per-user name and
// returns the stored filename and its full path.
func (s *storageService) SaveUpload(file *multipart.FileHeader, userID uint) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !IsSupportedExtension(ext) {
		return "", "", fmt.Errorf("invalid file extension: %s", ext)
	}

	uniqueFilename := fmt.Sprintf("user_%d_%s%s", userID, uuid.New().String(), ext)
	filePath := filepath.Join(s.uploadPath, uniqueFilename)

	src, err := file.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return "", "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", "", fmt.Errorf("failed to save file: %w", err)
	}

	return uniqueFilename, filePath, nil
}

func (s *storageService) GetFilePath(filename string) string {
	return filepath.Join(s.uploadPath, filename)
}

// DeleteUserFiles removes every stored copy for a user. A fresh upload
// calls this first so only the latest resume file is kept on disk.
func (s *storageService) DeleteUserFiles(userID uint) error {
	pattern := filepath.Join(s.uploadPath, fmt.Sprintf("user_%d_*", userID))
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("failed to list user files: %w", err)
	}

	for _, match := range matches {
		if err := os.Remove(match); err != nil {
			return fmt.Errorf("failed to delete file %s: %w", match, err)
		}
	}

	return nil
}

func (s *storageService) DeleteFile(filename string) error {
	filePath := s.GetFilePath(filename)
	if err := os.Remove(filePath); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
