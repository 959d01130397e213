package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// RotationConfig holds configuration for log rotation.
type RotationConfig struct {
	// MaxSizeMB is the maximum size of the log file in megabytes before
	// rotation. A value of 0 disables rotation.
	MaxSizeMB int
	// MaxBackups is the number of rotated log files to keep.
	// A value of 0 keeps no backups.
	MaxBackups int
}

// DefaultRotationConfig returns the rotation settings used when the config
// file does not override them.
func DefaultRotationConfig() RotationConfig {
	return RotationConfig{
		MaxSizeMB:  5,
		MaxBackups: 2,
	}
}

// RotatingWriter is an io.Writer over a log file that rotates the file by
// size. Backups are numbered portside.log.1 (newest) through .N (oldest).
// It is safe for concurrent use.
type RotatingWriter struct {
	mu sync.Mutex

	filePath   string
	maxSizeB   int64
	maxBackups int

	file        *os.File
	currentSize int64
}

// NewRotatingWriter creates a RotatingWriter for the given file path.
// If config.MaxSizeMB is 0 the writer never rotates.
func NewRotatingWriter(filePath string, config RotationConfig) (*RotatingWriter, error) {
	rw := &RotatingWriter{
		filePath:   filePath,
		maxSizeB:   int64(config.MaxSizeMB) * 1024 * 1024,
		maxBackups: config.MaxBackups,
	}

	if err := rw.openFile(); err != nil {
		return nil, err
	}
	return rw, nil
}

// openFile opens the log file for appending and records its size.
// The caller must hold the mutex.
func (rw *RotatingWriter) openFile() error {
	if err := os.MkdirAll(filepath.Dir(rw.filePath), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(rw.filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return fmt.Errorf("failed to stat log file: %w", err)
	}

	rw.file = file
	rw.currentSize = info.Size()
	return nil
}

// Write implements io.Writer, rotating first when the write would push the
// file past the size limit. A failed rotation is reported to stderr and the
// write proceeds against the current file so no log data is lost.
func (rw *RotatingWriter) Write(p []byte) (n int, err error) {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	if rw.file == nil {
		return 0, fmt.Errorf("log file is closed")
	}

	if rw.maxSizeB > 0 && rw.currentSize+int64(len(p)) > rw.maxSizeB {
		if err := rw.rotate(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: log rotation failed: %v\n", err)
		}
	}

	n, err = rw.file.Write(p)
	rw.currentSize += int64(n)
	return n, err
}

// rotate performs the rotation. The caller must hold the mutex.
func (rw *RotatingWriter) rotate() error {
	if err := rw.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync log file: %w", err)
	}
	if err := rw.file.Close(); err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	rw.file = nil

	rw.shiftBackups()

	if err := os.Rename(rw.filePath, rw.backupPath(1)); err != nil {
		if openErr := rw.openFile(); openErr != nil {
			return fmt.Errorf("failed to rename log file and reopen: %w", openErr)
		}
		return fmt.Errorf("failed to rename log file: %w", err)
	}

	return rw.openFile()
}

// shiftBackups renumbers existing backups up by one, dropping the oldest.
func (rw *RotatingWriter) shiftBackups() {
	if rw.maxBackups <= 0 {
		os.Remove(rw.backupPath(1))
		return
	}

	os.Remove(rw.backupPath(rw.maxBackups))
	for i := rw.maxBackups - 1; i >= 1; i-- {
		if _, err := os.Stat(rw.backupPath(i)); err == nil {
			os.Rename(rw.backupPath(i), rw.backupPath(i+1))
		}
	}
}

func (rw *RotatingWriter) backupPath(n int) string {
	return fmt.Sprintf("%s.%d", rw.filePath, n)
}

// Sync flushes buffered data to the underlying file.
func (rw *RotatingWriter) Sync() error {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	if rw.file == nil {
		return nil
	}
	return rw.file.Sync()
}

// Close syncs and closes the underlying file.
func (rw *RotatingWriter) Close() error {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	if rw.file == nil {
		return nil
	}

	if err := rw.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync log file: %w", err)
	}
	if err := rw.file.Close(); err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	rw.file = nil
	return nil
}

// CurrentSize returns the current size of the log file in bytes.
func (rw *RotatingWriter) CurrentSize() int64 {
	rw.mu.Lock()
	defer rw.mu.Unlock()
	return rw.currentSize
}
