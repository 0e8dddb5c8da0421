package cmd

import (
	"fmt"
	"io"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/zhubert/tenfoot/internal/demo"
	"github.com/zhubert/tenfoot/internal/demo/scenarios"
	"github.com/zhubert/tenfoot/internal/focus"
	"github.com/zhubert/tenfoot/internal/logger"
)

var (
	demoWidth      int
	demoHeight     int
	demoCaptureAll bool
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run scripted browse sessions headlessly",
	Long: `Run scripted browse sessions against the real app model without a terminal.

Each scenario seeds focus state, drives keys and feed pages, and checks where
restoration lands.

Available subcommands:
  list      - List available demo scenarios
  run       - Run a scenario and print its frames
  check     - Run every scenario and report pass or fail`,
}

var demoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available demo scenarios",
	Run: func(cmd *cobra.Command, args []string) {
		listScenarios(cmd.OutOrStdout())
	},
}

var demoRunCmd = &cobra.Command{
	Use:   "run <scenario>",
	Short: "Run a scenario and print its frames",
	Args:  cobra.ExactArgs(1),
	RunE:  runDemoRun,
}

var demoCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Run every scenario and report pass or fail",
	RunE: func(cmd *cobra.Command, args []string) error {
		return checkScenarios(cmd.OutOrStdout())
	},
}

func init() {
	demoRunCmd.Flags().IntVarP(&demoWidth, "width", "w", 120, "Terminal width")
	demoRunCmd.Flags().IntVarP(&demoHeight, "height", "H", 40, "Terminal height")
	demoRunCmd.Flags().BoolVar(&demoCaptureAll, "capture-all", false, "Capture frame after every step (for debugging)")

	demoCmd.AddCommand(demoListCmd)
	demoCmd.AddCommand(demoRunCmd)
	demoCmd.AddCommand(demoCheckCmd)
	rootCmd.AddCommand(demoCmd)
}

func listScenarios(out io.Writer) {
	fmt.Fprintln(out, "Available demo scenarios:")
	fmt.Fprintln(out)
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, s := range scenarios.All() {
		tbl.AddRow(" ", s.Name, s.Description)
	}
	fmt.Fprintln(out, tbl)
}

func getScenario(name string) (*demo.Scenario, error) {
	scenario, err := scenarios.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w\nRun 'tenfoot demo list' to see available scenarios", err)
	}

	// Override dimensions if specified
	if demoWidth > 0 {
		scenario.Width = demoWidth
	}
	if demoHeight > 0 {
		scenario.Height = demoHeight
	}

	return scenario, nil
}

func executeScenario(scenario *demo.Scenario) ([]demo.Frame, []focus.Outcome, error) {
	execCfg := demo.DefaultExecutorConfig()
	execCfg.CaptureEveryStep = demoCaptureAll

	executor := demo.NewExecutor(execCfg)
	frames, err := executor.Run(scenario)
	return frames, executor.Outcomes(), err
}

func runDemoRun(cmd *cobra.Command, args []string) error {
	scenario, err := getScenario(args[0])
	if err != nil {
		return err
	}

	if err := logger.Init(logger.ScenarioLogPath(scenario.Name)); err != nil {
		return err
	}
	defer logger.Close()

	frames, outcomes, err := executeScenario(scenario)
	out := cmd.OutOrStdout()
	printFrames(out, frames)
	if err != nil {
		return fmt.Errorf("error running scenario: %w", err)
	}
	printOutcome(out, outcomes)
	return nil
}

func printFrames(out io.Writer, frames []demo.Frame) {
	fmt.Fprintf(out, "Captured %d frames\n", len(frames))
	for i, f := range frames {
		fmt.Fprintf(out, "\n=== Frame %d (delay: %v) ===\n", i, f.Delay)
		if f.Annotation != "" {
			fmt.Fprintf(out, "Annotation: %s\n", f.Annotation)
		}
		fmt.Fprintln(out, f.Content)
	}
}

func printOutcome(out io.Writer, outcomes []focus.Outcome) {
	if len(outcomes) == 0 {
		fmt.Fprintln(out, "\nNo restoration ran.")
		return
	}
	last := outcomes[len(outcomes)-1]
	fmt.Fprintf(out, "\nLast restoration: %s target=%s focused=%s attempts=%d\n",
		last.Phase, last.Target, last.Clamped, last.Attempts)
	if last.Err != nil {
		fmt.Fprintf(out, "  error: %v\n", last.Err)
	}
}

func checkScenarios(out io.Writer) error {
	failed := 0
	for _, s := range scenarios.All() {
		sc, err := scenarios.Get(s.Name)
		if err == nil {
			_, err = demo.NewExecutor(demo.DefaultExecutorConfig()).Run(sc)
		}
		if err != nil {
			failed++
			fmt.Fprintf(out, "FAIL  %-18s %v\n", s.Name, err)
			continue
		}
		fmt.Fprintf(out, "ok    %s\n", s.Name)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed", failed, len(scenarios.All()))
	}
	return nil
}
