package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/zhubert/tenfoot/internal/config"
	"github.com/zhubert/tenfoot/internal/store"
)

var stateJSON bool

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Inspect or reset persisted focus state",
	Long: `Focus state is saved per layout whenever focus moves or a screen is left,
and read back when a layout is shown again.

Available subcommands:
  show      - Print the saved focus of each layout
  clear     - Forget saved focus for one or all layouts`,
}

var stateShowCmd = &cobra.Command{
	Use:   "show [layout...]",
	Short: "Print the saved focus of each layout",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		return showState(cmd.OutOrStdout(), st, args)
	},
}

var stateClearCmd = &cobra.Command{
	Use:   "clear [layout...]",
	Short: "Forget saved focus for the given layouts, or all of them",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		return clearState(cmd.OutOrStdout(), st, args)
	},
}

func init() {
	stateShowCmd.Flags().BoolVar(&stateJSON, "json", false, "Print raw records as JSON")

	stateCmd.AddCommand(stateShowCmd)
	stateCmd.AddCommand(stateClearCmd)
	rootCmd.AddCommand(stateCmd)
}

func openStore() (*store.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	st, err := store.Open(cfg.State.Dir)
	if err != nil {
		return nil, fmt.Errorf("error opening focus state: %w", err)
	}
	return st, nil
}

func checkLayouts(layouts []string) error {
	for _, l := range layouts {
		if !config.IsLayout(l) {
			return fmt.Errorf("unknown layout %q (want one of %v)", l, config.Layouts)
		}
	}
	return nil
}

func showState(out io.Writer, st *store.Store, layouts []string) error {
	if err := checkLayouts(layouts); err != nil {
		return err
	}
	if len(layouts) == 0 {
		layouts = st.Screens()
	}

	var records []store.Record
	for _, l := range layouts {
		rec, ok, err := st.Record(l)
		if err != nil {
			return err
		}
		if ok {
			records = append(records, rec)
		}
	}

	if stateJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Fprintf(out, "No saved focus in %s\n", st.BasePath())
		return nil
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("LAYOUT", "FOCUS", "ROW", "RESTORE", "PROVIDER", "SAVED")
	for _, rec := range records {
		row := rec.State.LastFocusedKey
		if row == "" {
			row = "-"
		}
		tbl.AddRow(
			rec.Screen,
			rec.State.LastFocused.String(),
			row,
			rec.State.ShouldRestore,
			rec.State.CarouselTargetProvider,
			rec.SavedAt.Local().Format(time.DateTime),
		)
	}
	_, err := fmt.Fprintln(out, tbl)
	return err
}

func clearState(out io.Writer, st *store.Store, layouts []string) error {
	if err := checkLayouts(layouts); err != nil {
		return err
	}
	if len(layouts) == 0 {
		n, err := st.ClearAll()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared saved focus for %d layout(s).\n", n)
		return nil
	}
	for _, l := range layouts {
		if err := st.Clear(l); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared saved focus for %s.\n", l)
	}
	return nil
}
