package ctxlog

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// MaxLogSize triggers rotation of an existing log file on open
const MaxLogSize = 10 * 1024 * 1024

// OpenFile opens dir/name for appending, creating dir as needed
// A file already larger than maxSize is renamed with a timestamp suffix first
// The interactive terminal owns stdout, so the run command logs here
func OpenFile(dir, name string, maxSize int64) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	path := filepath.Join(dir, name)
	if info, err := os.Stat(path); err == nil && maxSize > 0 && info.Size() > maxSize {
		ext := filepath.Ext(name)
		base := name[:len(name)-len(ext)]
		rotated := filepath.Join(dir, fmt.Sprintf("%s_%s%s", base, time.Now().Format("20060102_150405"), ext))
		if err := os.Rename(path, rotated); err != nil {
			return nil, fmt.Errorf("rotate log: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	return f, nil
}
