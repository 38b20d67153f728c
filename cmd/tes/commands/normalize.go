package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/tesgen/tes/pkg/domain"
	"github.com/tesgen/tes/pkg/parser"
)

func newNormalizeCmd(_ *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "normalize FILE",
		Short: "Print a file's code with its imports removed",
		Long: `Print the code that would be sent for generation: the file's top-level
statements in source order, without import declarations.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			family, ok := parser.FamilyForPath(path)
			if !ok {
				return errors.Mark(errors.Newf("unsupported file extension for %s", path), domain.ErrUnsupportedSyntaxFamily)
			}

			source, err := os.ReadFile(path)
			if err != nil {
				return errors.Mark(errors.Wrapf(err, "read %s", path), domain.ErrFileSystem)
			}

			opt := parser.WithJSX(parser.JSXForPath(path))
			code, err := parser.Normalize(cmd.Context(), source, family, opt)
			if err != nil {
				return errors.Wrapf(err, "normalize %s", path)
			}

			out := cmd.OutOrStdout()
			if showImports, _ := cmd.Flags().GetBool("imports"); showImports {
				imports := parser.ExtractImports(cmd.Context(), source, family, opt)
				fmt.Fprintf(out, "// imports: %s\n", strings.Join(imports, ", "))
			}
			_, err = fmt.Fprintln(out, code)
			return err
		},
	}

	cmd.Flags().Bool("imports", false, "Also print the module specifiers the file imports")
	return cmd
}
