package new

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/afero"
)

var (
	// ErrEmptySlug is returned when nothing usable is left of the title.
	ErrEmptySlug = errors.New("title produces empty slug after sanitization")
	// ErrDraftExists is returned instead of overwriting a draft.
	ErrDraftExists = errors.New("draft already exists")
)

// slugRegex matches characters that are unsafe for filenames
var slugRegex = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

// sanitizeSlug converts a title to a safe draft file name stem
func sanitizeSlug(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = slugRegex.ReplaceAllString(slug, "")
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	slug = strings.Trim(slug, "-")
	// Limit length to prevent excessively long filenames
	if len(slug) > 100 {
		slug = slug[:100]
	}
	return slug
}

// draftTemplate must keep title on its own line; publish reads it back with a line regex.
const draftTemplate = `---
title: "%s"
date: "%s"
description: "Enter a short description here..."
tags: []
---

## Introduction

Start writing here...
`

// Run creates dir/<slug><ext> with a frontmatter block for title and returns its path.
func Run(fs afero.Fs, dir, ext, title string, now time.Time, out io.Writer) (string, error) {
	slug := sanitizeSlug(title)
	if slug == "" {
		return "", ErrEmptySlug
	}
	filename := filepath.Join(dir, slug+ext)

	// Check if file exists to avoid overwriting
	exists, err := afero.Exists(fs, filename)
	if err != nil {
		return "", err
	}
	if exists {
		return "", fmt.Errorf("%w: %s", ErrDraftExists, filename)
	}

	if err := fs.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}
	// Double quotes would end the YAML string early and are stripped on publish anyway
	content := fmt.Sprintf(draftTemplate, strings.ReplaceAll(title, `"`, ""), now.Format("2006-01-02"))
	if err := afero.WriteFile(fs, filename, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("error creating file: %w", err)
	}

	fmt.Fprintf(out, "✅ Created: %s\n", filename)
	return filename, nil
}
