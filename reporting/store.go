package reporting

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/acarl005/stripansi"
	"github.com/gofrs/flock"
)

// DefaultReportPath is where the driver writes its report unless told otherwise
const DefaultReportPath = "slashy_test_report.json"

const reportFileMode = 0644

// Marshal encodes a report as JSON indented with two spaces
func Marshal(report *Report) ([]byte, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return data, nil
}

func lockFor(path string) *flock.Flock {
	return flock.New(path + ".lock")
}

// PersistReport writes the report to path, replacing any previous report.
// The file is written to a temporary sibling and renamed into place while
// holding an exclusive lock, so readers never see a partial report.
func PersistReport(report *Report, path string) error {
	data, err := Marshal(report)
	if err != nil {
		return err
	}

	lock := lockFor(path)
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock report %s: %w", path, err)
	}
	defer func() { _ = lock.Unlock() }()

	return atomicWrite(path, data)
}

func atomicWrite(path string, content []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".report-tmp-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(reportFileMode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("atomic rename: %w", err)
	}
	return nil
}

// ReadReportBytes returns the raw bytes of the persisted report under a shared lock
func ReadReportBytes(path string) ([]byte, error) {
	lock := lockFor(path)
	if err := lock.RLock(); err != nil {
		return nil, fmt.Errorf("lock report %s: %w", path, err)
	}
	defer func() { _ = lock.Unlock() }()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report %s: %w", path, err)
	}
	return data, nil
}

// LoadReport reads and decodes the persisted report
func LoadReport(path string) (*Report, error) {
	data, err := ReadReportBytes(path)
	if err != nil {
		return nil, err
	}
	report, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("decode report %s: %w", path, err)
	}
	return report, nil
}

// Unmarshal decodes a persisted report document. Unknown statuses are rejected.
func Unmarshal(data []byte) (*Report, error) {
	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// FileWriter writes rendered console output to a file with ANSI escapes stripped
type FileWriter struct {
	path string
}

// NewFileWriter creates a new file writer
func NewFileWriter(path string) *FileWriter {
	return &FileWriter{path: path}
}

// Write writes the content to the file
func (fw *FileWriter) Write(content string) error {
	if err := os.WriteFile(fw.path, []byte(stripansi.Strip(content)), reportFileMode); err != nil {
		return fmt.Errorf("write %s: %w", fw.path, err)
	}
	return nil
}

// WriteSummaryLog writes a plain-text copy of the console summary to path
func WriteSummaryLog(path, content string) error {
	return NewFileWriter(path).Write(content)
}
