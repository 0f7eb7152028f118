// Helper functions for listing and copying posts through afero
package utils

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/Kush-Singh-26/publish/builder/models"
)

// FileExists reports whether path exists and is not a directory.
func FileExists(fs afero.Fs, path string) (bool, error) {
	info, err := fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

// SameFile reports whether a and b name the same file, however they are spelled.
// A missing b is never the same file as a.
func SameFile(fs afero.Fs, a, b string) (bool, error) {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true, nil
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA == nil && errB == nil && absA == absB {
		return true, nil
	}

	infoA, err := fs.Stat(a)
	if err != nil {
		return false, err
	}
	infoB, err := fs.Stat(b)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	// Only OS-backed FileInfo carries device and inode; others compare false
	return os.SameFile(infoA, infoB), nil
}

// ListMarkdown returns the regular files in dir whose name ends with ext,
// in the order afero.ReadDir yields them (sorted by name).
func ListMarkdown(fs afero.Fs, dir, ext string) ([]models.MarkdownFile, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	files := make([]models.MarkdownFile, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		files = append(files, models.MarkdownFile{Name: e.Name(), ModTime: e.ModTime()})
	}
	return files, nil
}

// CopyFile copies src to dst byte for byte, truncating dst if it exists.
func CopyFile(fs afero.Fs, src, dst string) (int64, error) {
	source, err := fs.Open(src)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := source.Close(); cerr != nil {
			slog.Warn("Failed to close source file", "path", src, "error", cerr)
		}
	}()

	info, err := source.Stat()
	if err != nil {
		return 0, err
	}

	destination, err := fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(destination, source)
	if cerr := destination.Close(); err == nil {
		// close errors fail the copy
		err = cerr
	}
	return n, err
}
