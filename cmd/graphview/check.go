package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/graphview/harness"
)

type checkOptions struct {
	*rootOptions
	dir string
}

func newCheckCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &checkOptions{rootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check [scenario.yaml...]",
		Short: "Run YAML interaction scenarios headlessly",
		Long: `Run scenarios against a headless world wired to a fresh domain service.

Each scenario scripts domain operations, raw events, clicks, drags and keys,
then checks the settled visual state. Exits non-zero if any scenario fails.

Examples:
  graphview check --dir harness/testdata/scenarios
  graphview check select.yaml drag.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.dir, "dir", "", "directory of scenario files")

	return cmd
}

func runCheck(cmd *cobra.Command, opts *checkOptions, args []string) error {
	var scenarios []*harness.Scenario
	if opts.dir != "" {
		loaded, err := harness.LoadDir(opts.dir)
		if err != nil {
			return err
		}
		scenarios = append(scenarios, loaded...)
	}
	for _, path := range args {
		s, err := harness.LoadScenario(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		scenarios = append(scenarios, s)
	}
	if len(scenarios) == 0 {
		return fmt.Errorf("no scenarios given, use --dir or pass files")
	}

	ctx := opts.context(cmd.Context(), os.Stderr)
	out := cmd.OutOrStdout()

	failed := 0
	for _, s := range scenarios {
		res, err := harness.Run(ctx, s)
		if err != nil {
			return err
		}
		if !res.Passed() {
			failed++
		}
		printResult(out, res)
	}

	fmt.Fprintf(out, "\n%d passed, %d failed\n", len(scenarios)-failed, failed)
	if failed > 0 {
		return fmt.Errorf("%d scenario(s) failed", failed)
	}
	return nil
}

func printResult(w io.Writer, res *harness.Result) {
	if res.Passed() {
		fmt.Fprintf(w, "PASS  %s\n", res.Scenario.Name)
		return
	}
	fmt.Fprintf(w, "FAIL  %s\n", res.Scenario.Name)
	for _, f := range res.Failures {
		fmt.Fprintf(w, "      %s\n", f)
	}
}
