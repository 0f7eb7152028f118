package root

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/Kush-Singh-26/publish/builder/config"
	"github.com/Kush-Singh-26/publish/internal/publish"
)

// Version is set at build time via -ldflags "-X .../root.Version=1.2.3"
var Version = "dev"

type flags struct {
	opts       publish.Options
	configPath string
	verbose    bool
}

// NewRootCmd creates the publish command. fs is where posts and publish.yaml live.
func NewRootCmd(fs afero.Fs) *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "publish [source-file [destination-file]]",
		Short: "Move a markdown draft into the published posts directory",
		Long: heredoc.Doc(`
			Copies a draft from the writing directory to the posts directory.

			The destination name comes from the draft's frontmatter title and is
			prefixed with today's date. If a post whose name contains the title
			already exists it is overwritten under its original name, so a
			republished post keeps its date.

			Without --from/--to the directories depend on where you run it:
			  inside writing_posts/   ./ -> ../_posts/
			  inside _posts/          ../writing_posts/ -> ./
			  anywhere else           ./writing_posts/ -> ./_posts/

			Without a source file the most recently modified draft is used.
		`),
		Example: heredoc.Doc(`
			publish
			publish --remove
			publish draft.md
			publish -f drafts -t site/_posts draft.md 2024-01-01-hello.md
		`),
		Args:          cobra.MaximumNArgs(2),
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPublish(cmd, fs, f, args)
		},
	}

	cmd.Flags().StringVarP(&f.opts.From, "from", "f", "", "source directory")
	cmd.Flags().StringVarP(&f.opts.To, "to", "t", "", "destination directory")
	cmd.Flags().StringVarP(&f.opts.SourceFile, "source", "s", "", "source file name (default: newest draft)")
	cmd.Flags().StringVarP(&f.opts.DestFile, "dest", "d", "", "destination file name (default: derived from the title)")
	cmd.Flags().BoolVarP(&f.opts.Remove, "remove", "r", false, "remove the source file after a successful copy")
	cmd.Flags().BoolVarP(&f.opts.DryRun, "dry-run", "n", false, "show what would be copied without touching files")
	cmd.PersistentFlags().BoolVarP(&f.verbose, "verbose", "v", false, "debug logging on stderr")
	cmd.PersistentFlags().StringVar(&f.configPath, "config", "", "configuration file (default: ./"+config.DefaultFile+" or ../"+config.DefaultFile+" if present)")

	cmd.AddCommand(newInitCmd(fs, f))
	cmd.AddCommand(newNewCmd(fs, f))

	return cmd
}

func (f *flags) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if f.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

func (f *flags) loadConfig(fs afero.Fs) (*config.Config, error) {
	cfg, err := config.Load(fs, f.configPath, f.configPath != "")
	if err != nil {
		return nil, publish.Classify(err)
	}
	return cfg, nil
}

func runPublish(cmd *cobra.Command, fs afero.Fs, f *flags, args []string) error {
	opts := f.opts
	// Flags win over positionals
	if len(args) > 0 && opts.SourceFile == "" {
		opts.SourceFile = args[0]
	}
	if len(args) > 1 && opts.DestFile == "" {
		opts.DestFile = args[1]
	}

	cfg, err := f.loadConfig(fs)
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return publish.Classify(fmt.Errorf("failed to get current directory: %w", err))
	}

	env := publish.Env{
		Fs:     fs,
		Cwd:    cwd,
		Config: cfg,
		Logger: f.logger(cmd),
		Out:    cmd.OutOrStdout(),
	}
	return publish.Run(cmd.Context(), env, opts)
}

// Execute runs the root command against the real filesystem.
func Execute(args []string) error {
	cmd := NewRootCmd(afero.NewOsFs())
	cmd.SetArgs(args)
	return cmd.Execute()
}
