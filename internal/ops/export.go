package ops

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"hourzero/internal/config"
	"hourzero/internal/errors"
)

// ExportInput contains parameters for the Export operation.
type ExportInput struct {
	ID   string // run to export
	Path string // optional, default: ~/.hourzero/exports/<name-or-id>-<timestamp>.csv
}

// ExportOutput contains the result of the Export operation.
type ExportOutput struct {
	Path       string `json:"path"`
	Rows       int    `json:"rows"`
	ExportedAt int64  `json:"exported_at"`
}

// Export writes a saved run's schedule to a CSV file. The schedule is
// recomputed from the stored parameters. The file is written to a temp path
// and renamed into place so a failed export never clobbers an existing file.
func Export(database *sql.DB, cfg *config.Config, input ExportInput) (*ExportOutput, error) {
	now := time.Now()

	fetched, err := Fetch(database, input.ID)
	if err != nil {
		return nil, err
	}

	exportPath := input.Path
	if exportPath == "" {
		exportPath, err = defaultExportPath(&fetched.Run, now)
		if err != nil {
			return nil, err
		}
	}

	// Default paths go through validation too; run names feed into them.
	if err := ValidatePath(exportPath, cfg); err != nil {
		return nil, err
	}

	dir := filepath.Dir(exportPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create export directory: %w", err))
	}

	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to generate temp file name: %w", err))
	}
	tempPath := exportPath + "." + hex.EncodeToString(randBytes) + ".tmp"
	file, err := openFileNoFollow(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create export file: %w", err))
	}

	// Clean up the temp file on failure; the original file is preserved.
	success := false
	defer func() {
		if file != nil {
			file.Close()
		}
		if !success {
			os.Remove(tempPath)
		}
	}()

	out := &GenerateOutput{
		Input:   fetched.Run.Input,
		Rows:    fetched.Rows,
		Summary: fetched.Run.Summary,
	}
	if err := WriteCSV(file, out); err != nil {
		return nil, err
	}

	if err := file.Sync(); err != nil {
		return nil, errors.NewInternal(err)
	}

	// Close before the rename (required on Windows; fine elsewhere).
	if err := file.Close(); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to close export file: %w", err))
	}
	file = nil

	// os.Rename would follow a symlink at the destination.
	if info, err := os.Lstat(exportPath); err == nil && info.Mode()&os.ModeSymlink != 0 {
		return nil, errors.NewInternal(fmt.Errorf("export path is a symlink"))
	}

	// On Windows, os.Rename fails if the destination exists. Fail safely
	// (preserving the existing file) instead of a non-atomic delete+rename.
	if err := os.Rename(tempPath, exportPath); err != nil {
		if runtime.GOOS == "windows" {
			if _, statErr := os.Stat(exportPath); statErr == nil {
				return nil, errors.NewInvalidRequest("export destination already exists; choose a new path or delete the existing file")
			}
		}
		return nil, errors.NewInternal(fmt.Errorf("failed to finalize export: %w", err))
	}

	success = true
	return &ExportOutput{
		Path:       exportPath,
		Rows:       len(fetched.Rows),
		ExportedAt: now.Unix(),
	}, nil
}

// defaultExportPath derives ~/.hourzero/exports/<name-or-id>-<timestamp>.csv.
func defaultExportPath(run *RunView, now time.Time) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", errors.NewInternal(fmt.Errorf("failed to get home directory: %w", err))
	}

	name := run.ID
	if run.Name != nil && *run.Name != "" {
		name = sanitizeForFilename(*run.Name)
	}

	timestamp := now.Format("2006-01-02T150405")
	filename := fmt.Sprintf("%s-%s.csv", name, timestamp)
	return filepath.Join(homeDir, ".hourzero", "exports", filename), nil
}
