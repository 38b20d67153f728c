package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/tesgen/tes/pkg/companion"
	"github.com/tesgen/tes/pkg/domain"
	"github.com/tesgen/tes/pkg/ignore"
	"github.com/tesgen/tes/pkg/logger"
	"github.com/tesgen/tes/pkg/parser"
	"github.com/tesgen/tes/pkg/walker"
)

func newLsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls [DIR]",
		Short: "List the files directory mode would process",
		Long: `Walk DIR (default ".") applying the ignore pattern files and list every
source file with a supported extension, with where its companion goes.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			all, _ := cmd.Flags().GetBool("all")

			mappings, err := listEligible(cmd.Context(), root, a.cfg.Input.IgnoreFiles, all)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.cfg.Run.JSON {
				data, err := json.MarshalIndent(mappings, "", "  ")
				if err != nil {
					return errors.Wrap(err, "format listing")
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			}

			for _, m := range mappings {
				status := ""
				if m.SkipIfExists {
					status = " (exists)"
				}
				fmt.Fprintf(out, "%s -> %s%s\n", m.InputPath, m.OutputPath, status)
			}
			return nil
		},
	}

	cmd.Flags().Bool("all", false, "Include files with unsupported extensions")
	return cmd
}

func listEligible(ctx context.Context, root string, patternFiles []string, all bool) ([]domain.OutputMapping, error) {
	patterns, missing, err := ignore.LoadPatterns(patternFiles...)
	if err != nil {
		return nil, err
	}
	for _, m := range missing {
		logger.Named("ls").Debugw("Pattern file not found", logger.FieldFile, m)
	}

	mappings := []domain.OutputMapping{}
	err = walker.Walk(ctx, root, ignore.Compile(patterns), func(path string) error {
		if _, ok := parser.FamilyForPath(path); !ok && !all {
			return nil
		}
		m, err := companion.Resolve(path, "")
		if err != nil {
			return err
		}
		mappings = append(mappings, m)
		return nil
	})
	return mappings, err
}
