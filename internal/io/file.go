package ioutils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// renameFunc is swapped in tests to simulate EXDEV and permission errors.
var renameFunc = os.Rename

// ErrDestinationExists is returned by MoveFile under OverwriteFail when the
// destination path is already taken.
var ErrDestinationExists = errors.New("destination already exists")

// OverwritePolicy decides what MoveFile does with an existing destination.
type OverwritePolicy string

const (
	// OverwriteReplace replaces the existing destination file.
	OverwriteReplace OverwritePolicy = "overwrite"

	// OverwriteSkip keeps the existing destination and discards the source.
	OverwriteSkip OverwritePolicy = "skip"

	// OverwriteFail keeps both files and returns ErrDestinationExists.
	OverwriteFail OverwritePolicy = "fail"
)

// ParseOverwritePolicy validates a configuration value.
func ParseOverwritePolicy(s string) (OverwritePolicy, error) {
	switch p := OverwritePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case OverwriteReplace, OverwriteSkip, OverwriteFail:
		return p, nil
	case "":
		return OverwriteReplace, nil
	default:
		return "", fmt.Errorf("unknown overwrite policy %q (want overwrite, skip or fail)", s)
	}
}

// CopyFile copies a file from source to destination.
//
// The destination file is created with mode 0644 if it doesn't exist,
// or truncated if it does. The source file must exist and be readable.
func CopyFile(ctx context.Context, src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		destFile.Close()
		return err
	}
	if err := destFile.Sync(); err != nil {
		destFile.Close()
		return err
	}
	return destFile.Close()
}

// MoveFile moves src to dst, applying policy when dst already exists.
//
// The move is a rename when possible. If the rename fails because src and
// dst are on different devices, the file is copied and src removed.
//
// skipped is true only under OverwriteSkip when dst was already present; in
// that case src is removed and dst is left untouched.
func MoveFile(ctx context.Context, src, dst string, policy OverwritePolicy) (skipped bool, err error) {
	if fi, err := os.Lstat(dst); err == nil {
		if fi.IsDir() {
			return false, fmt.Errorf("destination %q is a directory", dst)
		}
		switch policy {
		case OverwriteSkip:
			return true, os.Remove(src)
		case OverwriteFail:
			return false, fmt.Errorf("%w: %s", ErrDestinationExists, dst)
		}
	} else if !os.IsNotExist(err) {
		return false, err
	}

	if err := renameFunc(src, dst); err != nil {
		if !isEXDEV(err) {
			return false, err
		}
		if err := CopyFile(ctx, src, dst); err != nil {
			_ = os.Remove(dst)
			return false, fmt.Errorf("copy across devices: %w", err)
		}
		return false, os.Remove(src)
	}
	return false, nil
}

// WriteFileAtomic writes data to path through a temporary file in the same
// directory followed by a rename, replacing any existing file. Readers see
// either the previous content or the complete new content.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := EnsureDir(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return renameFunc(tmpName, path)
}

// NewestWithExt returns the most recently modified regular file in dir whose
// extension is ext (with or without the leading dot, case-insensitive).
// found is false when no such file exists.
func NewestWithExt(dir, ext string) (path string, found bool, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false, err
	}

	want := "." + strings.ToLower(strings.TrimPrefix(ext, "."))
	var newest os.FileInfo
	for _, e := range entries {
		if !e.Type().IsRegular() || strings.ToLower(filepath.Ext(e.Name())) != want {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if newest == nil || info.ModTime().After(newest.ModTime()) {
			newest = info
		}
	}

	if newest == nil {
		return "", false, nil
	}
	return filepath.Join(dir, newest.Name()), true, nil
}

// EnsureDir creates a directory and all parent directories if they don't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

// HomeDownloadsDir returns the user's canonical downloads directory
// (~/Downloads, or the shared Download folder on Android).
func HomeDownloadsDir() (string, error) {
	if runtime.GOOS == "android" || os.Getenv("ANDROID_ROOT") != "" {
		return "/sdcard/Download", nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, "Downloads"), nil
}
