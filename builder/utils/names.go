package utils

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ContainsName reports whether name contains sub once both are NFC normalized.
// macOS stores file names decomposed, so a title typed in composed form would
// otherwise never match its own published file.
func ContainsName(name, sub string) bool {
	return strings.Contains(norm.NFC.String(name), norm.NFC.String(sub))
}
