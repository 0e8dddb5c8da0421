package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zhubert/tenfoot/internal/logger"
	"github.com/zhubert/tenfoot/internal/store"
)

var skipConfirm bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove persisted focus state and log files",
	Long: `Clears the persisted focus state of every layout and removes tenfoot's log
files, including per-scenario demo logs.

It will prompt for confirmation before proceeding unless the --yes flag is used.`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	st, err := store.Open(cfg.State.Dir)
	if err != nil {
		return fmt.Errorf("error opening focus state: %w", err)
	}
	return runCleanWithReader(os.Stdin, cmd.OutOrStdout(), st)
}

// runCleanWithReader allows injecting a reader for testing
func runCleanWithReader(input io.Reader, out io.Writer, st *store.Store) error {
	screens := st.Screens()

	fmt.Fprintln(out, "This will clean:")
	if len(screens) > 0 {
		fmt.Fprintf(out, "  - saved focus for %d layout(s): %s\n", len(screens), strings.Join(screens, ", "))
	}
	fmt.Fprintln(out, "  - All tenfoot log files in /tmp")

	if !skipConfirm {
		if !confirm(input, out, "Continue?") {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	// Logger must release its file before the logs are removed
	logger.Close()
	logsCleared, err := logger.ClearLogs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error clearing logs: %v\n", err)
	}

	statesCleared, err := st.ClearAll()
	if err != nil {
		return fmt.Errorf("error clearing focus state: %w", err)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Cleaned:")
	fmt.Fprintf(out, "  - %d focus state(s) cleared\n", statesCleared)
	fmt.Fprintf(out, "  - %d log file(s) removed\n", logsCleared)
	return nil
}

// confirm prompts the user for y/n confirmation
func confirm(input io.Reader, out io.Writer, prompt string) bool {
	reader := bufio.NewReader(input)
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
