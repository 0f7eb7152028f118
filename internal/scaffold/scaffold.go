package scaffold

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/Kush-Singh-26/publish/builder/config"
)

const header = `# publish configuration
# writingDir and publishedDir are directory names, not paths; they also
# decide the defaults when publish runs inside one of them.
`

// Run creates the drafts and posts directories for cfg in the working
// directory and writes publish.yaml unless one exists.
func Run(fs afero.Fs, cfg *config.Config, out io.Writer) error {
	fmt.Fprintln(out, "🌱 Initializing publish directories...")

	for _, dir := range []string{cfg.WritingDir, cfg.PublishedDir} {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory '%s': %w", dir, err)
		}
		fmt.Fprintf(out, "   📁 Created '%s/'\n", dir)
	}

	exists, err := afero.Exists(fs, config.DefaultFile)
	if err != nil {
		return err
	}
	if exists {
		fmt.Fprintf(out, "   ⚠️ '%s' already exists, skipping.\n", config.DefaultFile)
	} else {
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		if err := afero.WriteFile(fs, config.DefaultFile, append([]byte(header), data...), 0644); err != nil {
			return fmt.Errorf("failed to create %s: %w", config.DefaultFile, err)
		}
		fmt.Fprintf(out, "   📄 Created '%s'\n", config.DefaultFile)
	}

	fmt.Fprintln(out, "\n✅ Ready. Write drafts in '"+cfg.WritingDir+"/' and run publish.")
	return nil
}
