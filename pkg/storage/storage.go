// Package storage persists run artifacts: per-lesson text files and YAML
// reports under an output directory. The database keeps the index, disk
// keeps the content operators actually open.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jhondrl6/ucdm-corpus/models"
)

type Storage struct {
	BaseDir string
}

func New(baseDir string) *Storage {
	return &Storage{BaseDir: baseDir}
}

// FileStats holds metadata about a file without reading its contents.
type FileStats struct {
	SizeBytes int64
	ModTime   time.Time
}

// EnsureDir creates the base directory if needed.
func (s *Storage) EnsureDir() error {
	if err := os.MkdirAll(s.BaseDir, 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	return nil
}

// LessonPath returns the artifact path for a lesson number.
func (s *Storage) LessonPath(number int) string {
	return filepath.Join(s.BaseDir, fmt.Sprintf("leccion_%03d.txt", number))
}

// WriteLesson writes one lesson's content as a standalone text file, title
// first. Returns the path written.
func (s *Storage) WriteLesson(rec models.LessonRecord) (string, error) {
	if err := s.EnsureDir(); err != nil {
		return "", err
	}

	path := s.LessonPath(rec.Number)
	body := rec.Content
	if rec.Title != "" {
		body = fmt.Sprintf("Lección %d. %s\n\n%s", rec.Number, rec.Title, rec.Content)
	}
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		return "", fmt.Errorf("failed to write lesson %d: %w", rec.Number, err)
	}
	return path, nil
}

// WriteReport marshals v as YAML into name under the base directory.
func (s *Storage) WriteReport(name string, v interface{}) (string, error) {
	if err := s.EnsureDir(); err != nil {
		return "", err
	}

	data, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}

	path := filepath.Join(s.BaseDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !os.IsNotExist(err)
}

func (s *Storage) HasFile(fn string) bool {
	return fileExists(fn)
}

// GetFileStats returns size and modification time for a written artifact.
func (s *Storage) GetFileStats(filePath string) (*FileStats, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", filePath, err)
	}

	return &FileStats{
		SizeBytes: info.Size(),
		ModTime:   info.ModTime(),
	}, nil
}
