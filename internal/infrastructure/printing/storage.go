package printing

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PDFStorage stores and retrieves rendered quote PDFs
type PDFStorage interface {
	Store(ctx context.Context, req *StoreRequest) (*StoreResult, error)
	Get(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
	CleanupOlderThan(ctx context.Context, age time.Duration) (int, error)
	GetURL(path string) string
}

// StoreRequest carries one rendered PDF into storage
type StoreRequest struct {
	// OwnerID keeps each user's PDFs under their own prefix
	OwnerID uuid.UUID
	JobID   uuid.UUID
	PDFData []byte
}

// StoreResult describes where the PDF landed
type StoreResult struct {
	// Path is relative to the storage root
	Path string
	URL  string
	Size int64
}

// FileSystemStorageConfig configures local PDF storage
type FileSystemStorageConfig struct {
	// BasePath is the storage root, default /data/prints
	BasePath string
	// BaseURL prefixes download links, default /api/v1/prints
	BaseURL string
	Logger  *zap.Logger
}

// FileSystemStorage keeps PDFs on the local file system under
// {base}/{owner_id}/{year}/{month}/{job_id}.pdf
type FileSystemStorage struct {
	config *FileSystemStorageConfig
	logger *zap.Logger
}

// NewFileSystemStorage creates the storage and its root directory
func NewFileSystemStorage(config *FileSystemStorageConfig) (*FileSystemStorage, error) {
	if config == nil {
		config = &FileSystemStorageConfig{}
	}
	if config.BasePath == "" {
		config.BasePath = "/data/prints"
	}
	if config.BaseURL == "" {
		config.BaseURL = "/api/v1/prints"
	}

	if err := os.MkdirAll(config.BasePath, 0755); err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed,
			fmt.Sprintf("failed to create storage directory: %s", config.BasePath), err)
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &FileSystemStorage{config: config, logger: logger}, nil
}

// Store writes the PDF under the owner's prefix
func (s *FileSystemStorage) Store(ctx context.Context, req *StoreRequest) (*StoreResult, error) {
	select {
	case <-ctx.Done():
		return nil, NewRenderError(ErrCodeStorageFailed, "operation cancelled", ctx.Err())
	default:
	}

	if req == nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "store request is nil", nil)
	}
	if req.OwnerID == uuid.Nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "owner ID is required", nil)
	}
	if req.JobID == uuid.Nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "job ID is required", nil)
	}
	if len(req.PDFData) == 0 {
		return nil, NewRenderError(ErrCodeStorageFailed, "PDF data is empty", nil)
	}

	now := time.Now()
	relativeDir := filepath.Join(
		req.OwnerID.String(),
		fmt.Sprintf("%d", now.Year()),
		fmt.Sprintf("%02d", now.Month()),
	)
	dirPath := filepath.Join(s.config.BasePath, relativeDir)
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "failed to create directory", err)
	}

	fileName := req.JobID.String() + ".pdf"
	if err := os.WriteFile(filepath.Join(dirPath, fileName), req.PDFData, 0644); err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "failed to write PDF file", err)
	}

	relativePath := filepath.Join(relativeDir, fileName)
	url := s.GetURL(relativePath)

	s.logger.Info("PDF stored",
		zap.String("path", relativePath),
		zap.Int("size", len(req.PDFData)))

	return &StoreResult{
		Path: relativePath,
		URL:  url,
		Size: int64(len(req.PDFData)),
	}, nil
}

// Get opens a stored PDF by its relative path
func (s *FileSystemStorage) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, NewRenderError(ErrCodeStorageFailed, "operation cancelled", ctx.Err())
	default:
	}

	fullPath, err := s.resolve(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewRenderError(ErrCodeStorageFailed, "PDF not found", err)
		}
		return nil, NewRenderError(ErrCodeStorageFailed, "failed to open PDF file", err)
	}
	return file, nil
}

// Delete removes a stored PDF; a missing file is not an error
func (s *FileSystemStorage) Delete(ctx context.Context, path string) error {
	select {
	case <-ctx.Done():
		return NewRenderError(ErrCodeStorageFailed, "operation cancelled", ctx.Err())
	default:
	}

	fullPath, err := s.resolve(path)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return NewRenderError(ErrCodeStorageFailed, "failed to delete PDF file", err)
	}
	s.logger.Info("PDF deleted", zap.String("path", path))
	return nil
}

// resolve turns a relative path into an absolute one, rejecting
// anything that would escape the storage root.
func (s *FileSystemStorage) resolve(path string) (string, error) {
	cleanPath := filepath.Clean(path)
	// check the raw path for ".." before any normalization
	if filepath.IsAbs(cleanPath) || containsDotDot(path) {
		s.logger.Warn("blocked suspicious storage path", zap.String("path", path))
		return "", NewRenderError(ErrCodeStorageFailed, "invalid path", nil)
	}

	fullPath := filepath.Join(s.config.BasePath, cleanPath)

	absBase, err := filepath.Abs(s.config.BasePath)
	if err != nil {
		return "", NewRenderError(ErrCodeStorageFailed, "failed to resolve base path", err)
	}
	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return "", NewRenderError(ErrCodeStorageFailed, "failed to resolve file path", err)
	}
	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) && absPath != absBase {
		s.logger.Warn("storage path escape blocked",
			zap.String("path", path),
			zap.String("resolved", absPath))
		return "", NewRenderError(ErrCodeStorageFailed, "invalid path", nil)
	}
	return absPath, nil
}

// CleanupOlderThan removes PDFs older than the given age
func (s *FileSystemStorage) CleanupOlderThan(ctx context.Context, age time.Duration) (int, error) {
	cutoff := time.Now().Add(-age)
	deleted := 0

	err := filepath.Walk(s.config.BasePath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if info.IsDir() || filepath.Ext(path) != ".pdf" {
			return nil
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(path); err == nil {
				deleted++
			}
		}
		return nil
	})
	if err != nil && err != context.Canceled && err != context.DeadlineExceeded {
		return deleted, NewRenderError(ErrCodeStorageFailed, "cleanup walk failed", err)
	}

	s.logger.Info("PDF cleanup completed",
		zap.Int("deleted", deleted),
		zap.Duration("age", age))
	return deleted, nil
}

// GetURL returns the download URL for a stored PDF
func (s *FileSystemStorage) GetURL(path string) string {
	return s.config.BaseURL + "/" + filepath.ToSlash(filepath.Clean(path))
}

func containsDotDot(path string) bool {
	parts := strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == filepath.Separator
	})
	return slices.Contains(parts, "..")
}

var _ PDFStorage = (*FileSystemStorage)(nil)
