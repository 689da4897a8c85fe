package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// OutputManager lays out CLI output files under one directory per run
type OutputManager struct {
	BaseOutputDir string
}

// NewOutputManager creates a new output manager
func NewOutputManager(baseOutputDir string) *OutputManager {
	return &OutputManager{
		BaseOutputDir: baseOutputDir,
	}
}

// CreateRunDir creates the directory for one run's outputs
func (om *OutputManager) CreateRunDir(runID string) (string, error) {
	runDir := filepath.Join(om.BaseOutputDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create run output directory: %w", err)
	}
	return runDir, nil
}

// OutputFilePath generates a full path for an output file, creating the run directory
func (om *OutputManager) OutputFilePath(runID, fileName string) (string, error) {
	runDir, err := om.CreateRunDir(runID)
	if err != nil {
		return "", err
	}

	// Clean the filename to remove any path separators
	return filepath.Join(runDir, filepath.Base(fileName)), nil
}

// FileType maps an output extension to the export/render format name
func (om *OutputManager) FileType(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv":
		return "csv"
	case ".xlsx":
		return "xlsx"
	case ".parquet":
		return "parquet"
	case ".png":
		return "png"
	case ".svg":
		return "svg"
	case ".html":
		return "html"
	default:
		return "unknown"
	}
}

// FileSize returns the size of a file in bytes
func (om *OutputManager) FileSize(filePath string) (int64, error) {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return 0, err
	}
	return fileInfo.Size(), nil
}
