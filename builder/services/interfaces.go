package services

import (
	"context"

	"github.com/Kush-Singh-26/publish/builder/models"
)

// PublishService defines the steps of moving one draft between directories
type PublishService interface {
	// SelectSource returns explicit unchanged, or the newest markdown file in dir.
	SelectSource(ctx context.Context, dir, explicit string) (string, error)
	// CandidateName reads the source and derives the base name from its title.
	// found is false when the file has no frontmatter and fallback was used.
	CandidateName(ctx context.Context, sourcePath, fallback string) (name string, found bool, err error)
	// ResolveDestination reuses an existing post containing candidate, or dates a new one.
	ResolveDestination(ctx context.Context, destDir, candidate string) (name string, reused bool, err error)
	Copy(ctx context.Context, paths models.ResolvedPaths) (int64, error)
	RemoveSource(ctx context.Context, paths models.ResolvedPaths) error
}
