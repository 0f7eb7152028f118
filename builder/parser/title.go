// Extracts the post title from the frontmatter block without a YAML decoder
package parser

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

// ErrTitleNotFound is returned when a frontmatter block exists but has no title field.
var ErrTitleNotFound = errors.New("frontmatter has no title field")

var (
	// frontmatterRegex matches the first ---...--- block, non-greedy
	frontmatterRegex = regexp.MustCompile(`(?s)---\s(.*?)\s---`)
	// titleRegex is line-bound since . does not cross newlines
	titleRegex = regexp.MustCompile(`title: (.*)`)
)

// ExtractTitle returns the candidate base name ("<title>.md") for content.
// ok is false when there is no frontmatter block at all; callers then fall
// back to the source file name.
func ExtractTitle(content, ext string) (name string, ok bool, err error) {
	block := frontmatterRegex.FindString(content)
	if block == "" {
		return "", false, nil
	}

	m := titleRegex.FindStringSubmatch(block)
	if m == nil {
		return "", true, ErrTitleNotFound
	}

	title := strings.ReplaceAll(strings.TrimRightFunc(m[1], unicode.IsSpace), `"`, "")
	return title + ext, true, nil
}
