// Command suiron-kb is a standalone linter for Suiron knowledge-base
// files: it parses the file and reports the first parse error with its
// line/column, exiting 1 on failure and 0 otherwise. It exists to
// exercise internal/parser's error-carrying path as a real, runnable
// program (SPEC_FULL.md §6).
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/indrikoterio/suiron-go/internal/parser"
	"github.com/indrikoterio/suiron-go/internal/session"
)

func main() {
	cmd := &cobra.Command{
		Use:   "suiron-kb <file.kb>",
		Short: "Lint a Suiron knowledge-base file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return lint(cmd.OutOrStdout(), args[0])
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func lint(out io.Writer, path string) error {
	text, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}

	base, err := session.ParseKB(string(text))
	if err != nil {
		var perr *parser.ParseError
		if errors.As(err, &perr) {
			return fmt.Errorf("%s: %s", path, perr)
		}
		return err
	}

	fmt.Fprintf(out, "%s: ok, %d clause(s)\n", path, base.Len())
	return nil
}
