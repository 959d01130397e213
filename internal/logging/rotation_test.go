package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestRotatingWriterNoRotation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, LogFileName)

	rw, err := NewRotatingWriter(path, RotationConfig{MaxSizeMB: 0})
	if err != nil {
		t.Fatalf("NewRotatingWriter() error = %v", err)
	}
	defer rw.Close()

	payload := bytes.Repeat([]byte("x"), 4096)
	for i := 0; i < 10; i++ {
		if _, err := rw.Write(payload); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}

	if _, err := os.Stat(path + ".1"); !os.IsNotExist(err) {
		t.Error("rotation disabled, but a backup file exists")
	}
	if rw.CurrentSize() != int64(len(payload)*10) {
		t.Errorf("CurrentSize() = %d, want %d", rw.CurrentSize(), len(payload)*10)
	}
}

func TestRotatingWriterRotates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, LogFileName)

	// 1MB limit; write past it.
	rw, err := NewRotatingWriter(path, RotationConfig{MaxSizeMB: 1, MaxBackups: 2})
	if err != nil {
		t.Fatalf("NewRotatingWriter() error = %v", err)
	}
	defer rw.Close()

	chunk := bytes.Repeat([]byte("y"), 512*1024)
	for i := 0; i < 3; i++ {
		if _, err := rw.Write(chunk); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}

	if _, err := os.Stat(path + ".1"); err != nil {
		t.Errorf("expected backup file after rotation: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat current log: %v", err)
	}
	if info.Size() > 1024*1024 {
		t.Errorf("current log exceeds limit: %d bytes", info.Size())
	}
}

func TestRotatingWriterBackupLimit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, LogFileName)

	rw, err := NewRotatingWriter(path, RotationConfig{MaxSizeMB: 1, MaxBackups: 1})
	if err != nil {
		t.Fatalf("NewRotatingWriter() error = %v", err)
	}
	defer rw.Close()

	chunk := bytes.Repeat([]byte("z"), 600*1024)
	for i := 0; i < 6; i++ {
		if _, err := rw.Write(chunk); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}

	if _, err := os.Stat(path + ".2"); !os.IsNotExist(err) {
		t.Error("backup beyond MaxBackups should have been removed")
	}
}

func TestRotatingWriterClosedWrite(t *testing.T) {
	dir := t.TempDir()
	rw, err := NewRotatingWriter(filepath.Join(dir, LogFileName), DefaultRotationConfig())
	if err != nil {
		t.Fatalf("NewRotatingWriter() error = %v", err)
	}
	if err := rw.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, err := rw.Write([]byte("late")); err == nil {
		t.Error("Write after Close should fail")
	}
	// Double close is a no-op.
	if err := rw.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
