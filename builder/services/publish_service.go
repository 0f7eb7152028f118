package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/afero"

	"github.com/Kush-Singh-26/publish/builder/config"
	"github.com/Kush-Singh-26/publish/builder/metrics"
	"github.com/Kush-Singh-26/publish/builder/models"
	"github.com/Kush-Singh-26/publish/builder/parser"
	"github.com/Kush-Singh-26/publish/builder/utils"
)

type publishServiceImpl struct {
	fs      afero.Fs
	cfg     *config.Config
	logger  *slog.Logger
	metrics *metrics.RunMetrics
	now     func() time.Time
}

// NewPublishService creates a PublishService over fs.
// now may be nil, in which case time.Now is used for the date prefix.
func NewPublishService(fs afero.Fs, cfg *config.Config, logger *slog.Logger, m *metrics.RunMetrics, now func() time.Time) PublishService {
	if now == nil {
		now = time.Now
	}
	if m == nil {
		m = metrics.NewRunMetrics()
	}
	return &publishServiceImpl{
		fs:      fs,
		cfg:     cfg,
		logger:  logger,
		metrics: m,
		now:     now,
	}
}

func (s *publishServiceImpl) SelectSource(ctx context.Context, dir, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	files, err := utils.ListMarkdown(s.fs, dir, s.cfg.Extension)
	if err != nil {
		return "", err
	}
	s.metrics.SourcesScanned = len(files)
	if len(files) == 0 {
		return "", fmt.Errorf("%w in %s", ErrNoMarkdownFiles, dir)
	}

	// Strictly newer wins, so equal timestamps keep the first name in listing order
	newest := files[0]
	for _, f := range files[1:] {
		if f.ModTime.After(newest.ModTime) {
			newest = f
		}
	}
	s.logger.Debug("Selected newest draft", "dir", dir, "file", newest.Name, "modified", newest.ModTime, "candidates", len(files))
	return newest.Name, nil
}

func (s *publishServiceImpl) CandidateName(ctx context.Context, sourcePath, fallback string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	content, err := afero.ReadFile(s.fs, sourcePath)
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", sourcePath, err)
	}

	name, found, err := parser.ExtractTitle(string(content), s.cfg.Extension)
	if err != nil {
		return "", found, fmt.Errorf("%s: %w", sourcePath, err)
	}
	if !found {
		s.logger.Debug("No frontmatter, using source file name", "path", sourcePath)
		return fallback, false, nil
	}
	return name, true, nil
}

func (s *publishServiceImpl) ResolveDestination(ctx context.Context, destDir, candidate string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	files, err := utils.ListMarkdown(s.fs, destDir, s.cfg.Extension)
	if err != nil {
		return "", false, err
	}
	s.metrics.DestScanned = len(files)

	// First hit wins; an existing post keeps its original date prefix
	for _, f := range files {
		if utils.ContainsName(f.Name, candidate) {
			s.logger.Debug("Reusing existing post name", "candidate", candidate, "file", f.Name)
			s.metrics.ReusedExisting = true
			return f.Name, true, nil
		}
	}

	return s.now().Format(s.cfg.DateFormat) + "-" + candidate, false, nil
}

func (s *publishServiceImpl) Copy(ctx context.Context, paths models.ResolvedPaths) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	src, dst := paths.SourcePath(), paths.DestPath()
	ok, err := utils.FileExists(s.fs, src)
	if err != nil {
		return 0, fmt.Errorf("failed to stat %s: %w", src, err)
	}
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrSourceMissing, src)
	}

	// Copying a file onto itself would truncate it first
	same, err := utils.SameFile(s.fs, src, dst)
	if err != nil {
		return 0, fmt.Errorf("failed to stat %s: %w", dst, err)
	}
	if same {
		return 0, fmt.Errorf("%w: %s and %s", ErrSameFile, src, dst)
	}

	n, err := utils.CopyFile(s.fs, src, dst)
	if err != nil {
		return n, fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}

	match, err := utils.SameContent(s.fs, src, dst)
	if err != nil {
		return n, fmt.Errorf("failed to verify %s: %w", dst, err)
	}
	if !match {
		return n, fmt.Errorf("%w: %s", ErrCopyMismatch, dst)
	}

	s.metrics.BytesCopied = n
	s.logger.Debug("Copied and verified", "src", src, "dst", dst, "bytes", n)
	return n, nil
}

func (s *publishServiceImpl) RemoveSource(ctx context.Context, paths models.ResolvedPaths) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	src := paths.SourcePath()
	if err := s.fs.Remove(src); err != nil {
		// The copy stays in place
		return fmt.Errorf("failed to remove %s: %w", src, err)
	}
	s.metrics.SourceRemoved = true
	return nil
}
