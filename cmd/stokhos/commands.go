package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sandrolain/gostokhos"
	"github.com/sandrolain/gostokhos/pkg/engine"
	"github.com/sandrolain/gostokhos/pkg/wasihost"
)

func newEvalCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "eval <statement>...",
		Short: "Process each argument as a statement in one session",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := s.newEngine(cmd)
			if err != nil {
				return err
			}
			return printLines(cmd.OutOrStdout(), e.ProcessAll(cmd.Context(), args))
		},
	}
}

func newRunCmd(s *settings) *cobra.Command {
	var (
		wasmPath string
		strict   bool
	)

	cmd := &cobra.Command{
		Use:   "run [file|-]",
		Short: "Process a file or stdin, one statement per line",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := "-"
			if len(args) == 1 {
				source = args[0]
			}
			lines, err := readLines(cmd.InOrStdin(), source)
			if err != nil {
				return err
			}

			var results []string
			if wasmPath != "" {
				results, err = s.runWASM(cmd, wasmPath, lines)
			} else {
				var e *engine.Engine
				e, err = s.newEngine(cmd)
				if err == nil {
					results = e.ProcessAll(cmd.Context(), lines)
				}
			}
			if err != nil {
				return err
			}
			if err := printLines(cmd.OutOrStdout(), results); err != nil {
				return err
			}

			if strict {
				if failed := countErrors(results); failed > 0 {
					return fmt.Errorf("%d of %d statements failed", failed, len(results))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&wasmPath, "wasm", "", "Run the statements in a WASI guest module")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit with an error when any statement fails")
	return cmd
}

// runWASM processes lines in the WASI guest. Only the seed and the
// extension sets are forwarded to the guest.
func (s *settings) runWASM(cmd *cobra.Command, path string, lines []string) ([]string, error) {
	cfg, err := s.load(cmd)
	if err != nil {
		return nil, err
	}
	ctx := cmd.Context()
	host, err := wasihost.Load(ctx, path, wasihost.WithLogger(newLogger(cmd, cfg)))
	if err != nil {
		return nil, err
	}
	defer host.Close(ctx)

	resp, err := host.Run(ctx, wasihost.Request{
		Statements: lines,
		Seed:       cfg.Seed,
		Extensions: cfg.Extensions,
	})
	if err != nil {
		return nil, err
	}
	return resp.Results, nil
}

func newLexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lex <text>",
		Short: "Print the tokens of a line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printLines(cmd.OutOrStdout(), []string{engine.New().Lex(args[0])})
		},
	}
}

func newASTCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ast <text>",
		Short: "Print the parse tree of a statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printLines(cmd.OutOrStdout(), []string{engine.New().AST(args[0])})
		},
	}
}

func newFuncsCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "funcs",
		Short: "List the available functions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := s.newEngine(cmd)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, def := range e.Table().Catalog() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", def.Name, def.Signature(), def.Doc)
			}
			return w.Flush()
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "stokhos %s\n", gostokhos.Version())
		},
	}
}

// readLines reads source, "-" meaning stdin.
func readLines(stdin io.Reader, source string) ([]string, error) {
	r := stdin
	if source != "-" {
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("error opening file %s: %w", source, err)
		}
		defer f.Close()
		r = f
	}

	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", source, err)
	}
	return lines, nil
}

func printLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func countErrors(results []string) int {
	n := 0
	for _, r := range results {
		if strings.HasPrefix(r, engine.PrefixError+":") {
			n++
		}
	}
	return n
}
