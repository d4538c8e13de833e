package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotPDF       = errors.New("only PDF files are accepted")
	ErrFileTooLarge = errors.New("uploaded file is too large")
)

type StoredFile struct {
	OriginalName string
	Path         string
}

// StorageService keeps uploaded documents on disk only for as long as it
// takes to extract their text.
type StorageService interface {
	EnsureUploadDir() error
	SaveUpload(file *multipart.FileHeader) (*StoredFile, error)
	Remove(path string) error
}

type storageService struct {
	uploadPath  string
	maxFileSize int64
}

func NewStorageService(uploadPath string, maxFileSize int64) StorageService {
	return &storageService{
		uploadPath:  uploadPath,
		maxFileSize: maxFileSize,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}
	return nil
}

func (s *storageService) SaveUpload(file *multipart.FileHeader) (*StoredFile, error) {
	if strings.ToLower(filepath.Ext(file.Filename)) != ".pdf" {
		return nil, fmt.Errorf("%s: %w", file.Filename, ErrNotPDF)
	}
	if s.maxFileSize > 0 && file.Size > s.maxFileSize {
		return nil, fmt.Errorf("%d bytes exceeds %d: %w", file.Size, s.maxFileSize, ErrFileTooLarge)
	}

	path := filepath.Join(s.uploadPath, fmt.Sprintf("intro_%s.pdf", uuid.New().String()))

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	return &StoredFile{OriginalName: file.Filename, Path: path}, nil
}

func (s *storageService) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
