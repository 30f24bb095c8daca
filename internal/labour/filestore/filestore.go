// Package filestore reads batch documents from and writes labour summaries
// to JSON files.
package filestore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aperture/labour-hours/internal/labour/domain"
	"github.com/goccy/go-json"
)

// ReadDocument decodes the batch document at path
func ReadDocument(path string) (*domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input %s: %w", path, err)
	}

	var doc domain.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode input %s: %w", path, err)
	}

	return &doc, nil
}

// WriteSummaries writes the summaries to path as a JSON array. The file is
// replaced atomically, so readers never see a partially written output and
// a failed write leaves any previous file in place.
func WriteSummaries(path string, summaries []domain.EmployeeSummary) (err error) {
	if summaries == nil {
		summaries = []domain.EmployeeSummary{}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err := json.NewEncoder(tmp).Encode(summaries); err != nil {
		return fmt.Errorf("failed to encode summaries: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to set output permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move output into place: %w", err)
	}

	return nil
}
