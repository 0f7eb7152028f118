package utils

import (
	"encoding/hex"
	"io"

	"github.com/spf13/afero"
	"github.com/zeebo/blake3"
)

// HashFile returns the hex BLAKE3 digest of a file's content.
func HashFile(fs afero.Fs, path string) (string, error) {
	f, err := fs.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	h := blake3.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// SameContent reports whether a and b hash to the same digest.
func SameContent(fs afero.Fs, a, b string) (bool, error) {
	ha, err := HashFile(fs, a)
	if err != nil {
		return false, err
	}
	hb, err := HashFile(fs, b)
	if err != nil {
		return false, err
	}
	return ha == hb, nil
}
