// defines the data structures passed between the publish stages
package models

import (
	"path/filepath"
	"time"
)

// MarkdownFile is a candidate draft found while scanning the source directory.
type MarkdownFile struct {
	Name    string
	ModTime time.Time
}

// ResolvedPaths holds the directories and file names computed for one run.
type ResolvedPaths struct {
	SourceDir  string
	DestDir    string
	SourceFile string
	DestFile   string
}

func (p ResolvedPaths) SourcePath() string {
	return filepath.Join(p.SourceDir, p.SourceFile)
}

func (p ResolvedPaths) DestPath() string {
	return filepath.Join(p.DestDir, p.DestFile)
}

// Plan is what a run is going to do. Dry runs print it and stop.
type Plan struct {
	Paths          ResolvedPaths
	Title          string // candidate base name; empty when no frontmatter was found
	ReusedExisting bool
	RemoveSource   bool
}
