package commands

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/tesgen/tes/pkg/config"
	"github.com/tesgen/tes/pkg/generator"
	"github.com/tesgen/tes/pkg/logger"
	"github.com/tesgen/tes/pkg/runner"
)

func (a *app) runGenerate(cmd *cobra.Command, _ []string) error {
	cfg := a.cfg
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()
	gen, err := newGenerator(ctx, cfg)
	if err != nil {
		return err
	}

	r := runner.New(gen, runnerOptions(cfg)...)
	summary, runErr := r.Run(ctx)
	if summary != nil {
		if err := printSummary(cmd, cfg, summary); err != nil {
			return err
		}
	}
	return runErr
}

func newGenerator(ctx context.Context, cfg *config.Config) (generator.Client, error) {
	if !cfg.NeedsAPIKey() {
		return generator.NewFakeClient(), nil
	}

	gemini, err := generator.NewGeminiClient(ctx, cfg.Generation.APIKey, cfg.Generation.Model)
	if err != nil {
		return nil, err
	}
	logger.Named("generator").Debugw("Using generation model", logger.FieldModel, gemini.Name())

	return generator.Wrap(gemini, generator.RateLimit(cfg.Generation.RequestsPerMinute)), nil
}

func runnerOptions(cfg *config.Config) []runner.Option {
	return []runner.Option{
		runner.WithSourceDir(cfg.Input.Src),
		runner.WithFile(cfg.Input.File),
		runner.WithOutput(cfg.Input.Output),
		runner.WithTargets(cfg.Input.Targets),
		runner.WithInclude(cfg.Input.Include),
		runner.WithIgnoreFiles(cfg.Input.IgnoreFiles),
		runner.WithSkipCompanions(cfg.Input.SkipCompanions),
		runner.WithLibraries(cfg.Generation.Libraries),
		runner.WithManifest(cfg.Generation.Manifest),
		runner.WithWorkers(cfg.Run.Workers),
		runner.WithDryRun(cfg.Run.DryRun),
	}
}

func printSummary(cmd *cobra.Command, cfg *config.Config, s *runner.Summary) error {
	if cfg.Run.JSON {
		out, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return errors.Wrap(err, "format summary")
		}
		_, err = cmd.OutOrStdout().Write(append(out, '\n'))
		return err
	}

	if !cfg.DirectoryMode() {
		return nil
	}

	pterm.Println()
	if s.Failed > 0 {
		pterm.Warning.Printfln("Finished with %d failure(s)", s.Failed)
	} else {
		pterm.Success.Println("Finished")
	}

	data := pterm.TableData{
		{"Visited", "Written", "Skipped", "Unsupported", "Dry run", "Failed", "Time"},
		{
			strconv.Itoa(s.Visited), strconv.Itoa(s.Written), strconv.Itoa(s.Skipped), strconv.Itoa(s.Unsupported),
			strconv.Itoa(s.Planned), strconv.Itoa(s.Failed), s.Duration.Round(time.Millisecond).String(),
		},
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
