package archive

import (
	"fmt"
	"os"
)

// WriteConfig controls how the annotated archive is written to disk.
//
// Adapted from the teacher's core/atomicwriter.go AtomicWriter: this engine
// only ever has one writer per output path (a single classification run is
// not a concurrent-editor scenario the way the teacher's staged-edit
// pipeline was), so the cross-process FileLock/stale-pid machinery and the
// timestamped backup-on-overwrite step are dropped; the temp-file-then-
// rename atomicity itself — the part worth keeping — is preserved.
type WriteConfig struct {
	UseFsync   bool
	TempSuffix string
}

// DefaultWriteConfig matches the teacher's own defaults minus locking.
func DefaultWriteConfig() WriteConfig {
	return WriteConfig{UseFsync: false, TempSuffix: ".stereocode.tmp"}
}

// WriteFile atomically writes content to path: write to a sibling temp file,
// optionally fsync, then rename over the destination.
func WriteFile(path, content string, cfg WriteConfig) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}

	tempPath := path + cfg.TempSuffix
	f, err := os.OpenFile(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if _, err := f.WriteString(content); err != nil {
		f.Close()
		os.Remove(tempPath)
		return fmt.Errorf("write content: %w", err)
	}

	if cfg.UseFsync {
		if err := f.Sync(); err != nil {
			f.Close()
			os.Remove(tempPath)
			return fmt.Errorf("sync: %w", err)
		}
	}

	if err := f.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("atomic rename: %w", err)
	}
	return nil
}
