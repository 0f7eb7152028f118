package publish

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/afero"

	"github.com/Kush-Singh-26/publish/builder/config"
	"github.com/Kush-Singh-26/publish/builder/metrics"
	"github.com/Kush-Singh-26/publish/builder/models"
	"github.com/Kush-Singh-26/publish/builder/services"
	"github.com/Kush-Singh-26/publish/builder/utils"
)

// Options are the per-run values from the command line. Empty strings mean
// "not given" and trigger the defaults.
type Options struct {
	From       string
	To         string
	SourceFile string
	DestFile   string
	Remove     bool
	DryRun     bool
}

// Env is everything a run reads from its surroundings.
type Env struct {
	Fs     afero.Fs
	Cwd    string
	Config *config.Config
	Logger *slog.Logger
	Out    io.Writer
	Now    func() time.Time
}

// Run moves one draft according to opts. The returned error is already
// classified, see ExitCode.
func Run(ctx context.Context, env Env, opts Options) error {
	m := metrics.NewRunMetrics()
	plan, err := run(ctx, env, opts, m)
	m.RecordEnd()
	if err != nil {
		return Classify(err)
	}
	if !opts.DryRun {
		env.Logger.Debug(m.String(), "src", plan.Paths.SourcePath(), "dst", plan.Paths.DestPath())
	}
	return nil
}

func run(ctx context.Context, env Env, opts Options, m *metrics.RunMetrics) (*models.Plan, error) {
	svc := services.NewPublishService(env.Fs, env.Config, env.Logger, m, env.Now)

	paths := resolveDirs(env, opts)
	for _, dir := range []string{paths.SourceDir, paths.DestDir} {
		ok, err := afero.DirExists(env.Fs, dir)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", dir, err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrDirMissing, dir)
		}
	}

	src, err := svc.SelectSource(ctx, paths.SourceDir, opts.SourceFile)
	if err != nil {
		return nil, err
	}
	paths.SourceFile = src
	if err := requireSource(env.Fs, paths); err != nil {
		return nil, err
	}

	plan := &models.Plan{Paths: paths, RemoveSource: opts.Remove}
	if opts.DestFile != "" {
		plan.Paths.DestFile = opts.DestFile
	} else {
		candidate, found, err := svc.CandidateName(ctx, paths.SourcePath(), src)
		if err != nil {
			return nil, err
		}
		if found {
			plan.Title = candidate
			fmt.Fprintf(env.Out, "title: %s\n", candidate)
		} else {
			fmt.Fprintln(env.Out, "Header not found")
		}

		dest, reused, err := svc.ResolveDestination(ctx, paths.DestDir, candidate)
		if err != nil {
			return nil, err
		}
		plan.Paths.DestFile = dest
		plan.ReusedExisting = reused
	}
	if plan.Paths.DestFile == "" {
		return nil, ErrEmptyDestination
	}

	if opts.DryRun {
		printPlan(env.Out, plan)
		return plan, nil
	}

	fmt.Fprintf(env.Out, "copy %s -> %s ", plan.Paths.SourcePath(), plan.Paths.DestPath())
	if _, err := svc.Copy(ctx, plan.Paths); err != nil {
		fmt.Fprintln(env.Out, "failed.")
		return nil, err
	}
	fmt.Fprintln(env.Out, "done.")

	if opts.Remove {
		if err := svc.RemoveSource(ctx, plan.Paths); err != nil {
			return nil, err
		}
		fmt.Fprintf(env.Out, "remove %s done.\n", plan.Paths.SourcePath())
	}
	return plan, nil
}

// resolveDirs applies --from/--to over the working-directory defaults.
func resolveDirs(env Env, opts Options) models.ResolvedPaths {
	from, to := env.Config.DefaultDirs(env.Cwd)
	if opts.From != "" {
		from = opts.From
	}
	if opts.To != "" {
		to = opts.To
	}
	return models.ResolvedPaths{SourceDir: from, DestDir: to}
}

func requireSource(fs afero.Fs, paths models.ResolvedPaths) error {
	ok, err := utils.FileExists(fs, paths.SourcePath())
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", paths.SourcePath(), err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", services.ErrSourceMissing, paths.SourcePath())
	}
	return nil
}

func printPlan(w io.Writer, plan *models.Plan) {
	fmt.Fprintln(w, "🔍 Dry run, nothing was changed")
	if plan.Title != "" {
		fmt.Fprintf(w, "   title:  %s\n", plan.Title)
	}
	fmt.Fprintf(w, "   copy:   %s -> %s\n", plan.Paths.SourcePath(), plan.Paths.DestPath())
	if plan.ReusedExisting {
		fmt.Fprintf(w, "   name:   reusing existing %s\n", plan.Paths.DestFile)
	}
	if plan.RemoveSource {
		fmt.Fprintf(w, "   remove: %s\n", plan.Paths.SourcePath())
	}
}
