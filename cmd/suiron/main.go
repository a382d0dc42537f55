// Command suiron is a thin host over the Suiron logic-programming core:
// load a knowledge base from a file, run a single query against it, or
// drop into a minimal line-oriented query loop. The full interactive
// REPL (multi-solution stepping on keypress, reload-on-edit) is an
// external collaborator (spec.md §6); this command exists so the core
// is a runnable program, not only a library.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/indrikoterio/suiron-go/internal/kb"
	"github.com/indrikoterio/suiron-go/internal/session"
	"github.com/indrikoterio/suiron-go/internal/solver"
	"github.com/indrikoterio/suiron-go/internal/subst"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "suiron",
		Short: "Run queries against a Suiron knowledge base",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				session.Log.SetLevel(logrus.DebugLevel)
				solver.Log.SetLevel(logrus.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log the solver's backtracking trace")

	root.AddCommand(runCmd())
	root.AddCommand(replCmd())
	return root
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <kb-file> <goal>",
		Short: "Load a knowledge base and print every solution to one query",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := loadKB(args[0])
			if err != nil {
				return err
			}
			return runQuery(cmd.OutOrStdout(), base, args[1])
		},
	}
}

func replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl <kb-file>",
		Short: "Read goals from stdin, one per line, printing solutions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := loadKB(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				fmt.Fprint(out, "?- ")
				if !scanner.Scan() {
					return scanner.Err()
				}
				line := scanner.Text()
				if line == "" {
					continue
				}
				if err := runQuery(out, base, line); err != nil {
					fmt.Fprintln(out, err)
				}
			}
		},
	}
}

func loadKB(path string) (*kb.KB, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading knowledge base file %s", path)
	}
	base, err := session.ParseKB(string(text))
	if err != nil {
		return nil, errors.Wrapf(err, "loading knowledge base file %s", path)
	}
	return base, nil
}

// runQuery parses goalText, solves it against base, and prints every
// solution's bindings to out in spec.md §6's bindings_for form, one line
// per solution, finishing with "No more." once the stream is exhausted,
// or printing only "No." when there was no solution at all.
func runQuery(out io.Writer, base *kb.KB, goalText string) error {
	q, err := session.ParseGoal(goalText)
	if err != nil {
		return err
	}
	stream, err := session.Solve(q, base)
	if err != nil {
		return errors.Wrap(err, "solving goal")
	}

	found := false
	for stream != nil {
		var currentEnv *subst.Env
		var rest *solver.Stream
		currentEnv, rest, err = stream.Next()
		if err != nil {
			return errors.Wrap(err, "solving goal")
		}
		found = true
		printSolution(out, q, currentEnv)
		stream = rest
	}
	if !found {
		fmt.Fprintln(out, "No.")
	} else {
		fmt.Fprintln(out, "No more.")
	}
	return nil
}

func printSolution(out io.Writer, q *session.Query, env *subst.Env) {
	bindings := session.BindingsFor(q, env)
	if len(bindings) == 0 {
		fmt.Fprintln(out, "Yes.")
		return
	}
	for i, b := range bindings {
		if i > 0 {
			fmt.Fprint(out, ", ")
		}
		fmt.Fprintf(out, "%s = %s", b.Name, b.Value)
	}
	fmt.Fprintln(out)
}
