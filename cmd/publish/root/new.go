package root

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/Kush-Singh-26/publish/internal/new"
	"github.com/Kush-Singh-26/publish/internal/publish"
)

func newNewCmd(fs afero.Fs, f *flags) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "new <title>",
		Short: "Create a draft with a frontmatter title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.loadConfig(fs)
			if err != nil {
				return err
			}
			if dir == "" {
				cwd, err := os.Getwd()
				if err != nil {
					return publish.Classify(err)
				}
				dir, _ = cfg.DefaultDirs(cwd)
			}

			path, err := new.Run(fs, dir, cfg.Extension, args[0], time.Now(), cmd.OutOrStdout())
			if errors.Is(err, new.ErrEmptySlug) || errors.Is(err, new.ErrDraftExists) {
				return &publish.ExitError{Code: publish.ExitAbort, Err: err}
			}
			if err != nil {
				return publish.Classify(err)
			}
			f.logger(cmd).Debug("Draft created", "path", filepath.Clean(path))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "D", "", "drafts directory (default: the writing directory for the current location)")
	return cmd
}
