package root

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/Kush-Singh-26/publish/internal/publish"
	"github.com/Kush-Singh-26/publish/internal/scaffold"
)

func newInitCmd(fs afero.Fs, f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the drafts and posts directories and publish.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.loadConfig(fs)
			if err != nil {
				return err
			}
			return publish.Classify(scaffold.Run(fs, cfg, cmd.OutOrStdout()))
		},
	}
}
