// Package commands implements the tes command line.
package commands

import (
	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tesgen/tes/pkg/config"
	"github.com/tesgen/tes/pkg/logger"
)

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"src":             "input.src",
	"file":            "input.file",
	"output":          "input.output",
	"targets":         "input.targets",
	"include":         "input.include",
	"ignore-file":     "input.ignore_files",
	"skip-companions": "input.skip_companions",
	"libraries":       "generation.libraries",
	"model":           "generation.model",
	"rpm":             "generation.requests_per_minute",
	"manifest":        "generation.manifest",
	"fake":            "generation.fake",
	"workers":         "run.workers",
	"dry-run":         "run.dry_run",
	"json":            "run.json",
}

// app is the state shared by one command tree.
type app struct {
	v   *viper.Viper
	cfg *config.Config
}

// NewRootCmd builds the tes command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "tes",
		Short: "Generate companion unit tests for JavaScript and TypeScript files",
		Long: `tes reads JavaScript and TypeScript sources, strips their imports, asks a
generation service for unit tests and writes them next to the source as
<name>.test.<ext>. Files that already have a companion are skipped.

Configuration is read from flags, TES_* variables (npm_config_* are also
accepted), the nearest .tesrc.toml and built-in defaults, in that order.

Examples:
  tes --file src/util.ts                 # util.test.ts next to util.ts
  tes --file src/util.ts --targets parse # only test parse
  tes --src src --workers 4              # every eligible file below src
  tes ls src                             # list what --src would process
  tes normalize src/util.ts              # show what is sent for generation`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE:              a.runGenerate,
	}

	pf := root.PersistentFlags()
	pf.CountP("verbose", "v", "Increase output verbosity")
	pf.Bool("json", false, "Emit logs and results as JSON")

	f := root.Flags()
	f.String("file", "", "Source file to generate tests for")
	f.String("src", "", "Source directory to process recursively (wins over --file)")
	f.StringP("output", "o", "", "Explicit output path for single-file mode (companion naming is applied)")
	f.StringSlice("targets", nil, "Functions or classes to restrict tests to")
	f.StringSlice("include", nil, "Only process files matching these globs, relative to --src")
	f.StringSlice("ignore-file", nil, "Ignore pattern files, merged in order")
	f.Bool("skip-companions", true, "Skip inputs that are themselves *.test.* or *.spec.* files")
	f.String("libraries", "", "Test libraries to generate for (e.g. jest)")
	f.String("model", "", "Generation model")
	f.Int("rpm", 0, "Maximum generation requests per minute (0 disables limiting)")
	f.String("manifest", "", "package.json whose dependencies are listed in requests")
	f.Bool("fake", false, "Use the offline placeholder generator")
	f.IntP("workers", "w", 1, "Files processed concurrently in directory mode")
	f.Bool("dry-run", false, "Normalize inputs without generating or writing")

	root.AddCommand(
		newNormalizeCmd(a),
		newLsCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)

	return root
}

// setup initializes logging and resolves configuration before any command runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	pterm.SetDefaultOutput(cmd.OutOrStdout())

	jsonOutput, _ := cmd.Flags().GetBool("json")
	verbosity, _ := cmd.Flags().GetCount("verbose")
	if jsonOutput {
		pterm.DisableStyling()
	}
	if err := logger.Initialize(jsonOutput, verbosity); err != nil {
		return errors.Wrap(err, "initialize logger")
	}

	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	v, err := config.New()
	if err != nil {
		return err
	}
	for name, key := range flagKeys {
		if fl := cmd.Flags().Lookup(name); fl != nil {
			if err := v.BindPFlag(key, fl); err != nil {
				return errors.Wrapf(err, "bind flag --%s", name)
			}
		}
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	a.v = v
	a.cfg = cfg
	return nil
}
