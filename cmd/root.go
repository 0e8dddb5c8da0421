package cmd

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/zhubert/tenfoot/internal/app"
	"github.com/zhubert/tenfoot/internal/config"
	"github.com/zhubert/tenfoot/internal/logger"
	"github.com/zhubert/tenfoot/internal/store"
)

var (
	debugMode             bool
	quietMode             bool
	configFile            string
	layoutFlag            string
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "tenfoot",
	Short: "Remote-control catalog browser with focus restoration",
	Long: `tenfoot is a terminal rendition of a living-room content catalog: a hero
carousel, a provider row, catalog rows and genre rows fed by paginated feeds.

Arrow keys move focus, enter opens an item and esc comes back to the exact
tile you left. Focus is persisted per layout, so it also survives a restart.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", true, "Enable debug logging (on by default)")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default $TENFOOT_CONFIG or ~/.config/tenfoot/config.toml)")
	rootCmd.Flags().StringVarP(&layoutFlag, "layout", "l", "", "Start on this layout (movies, shows, sports)")
}

func initConfig() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("tenfoot %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("tenfoot %s\n", version)
}

// loadConfig honors --config, falling back to the default location.
func loadConfig() (*config.Config, error) {
	if configFile != "" {
		return config.LoadFrom(configFile)
	}
	return config.Load()
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if layoutFlag != "" {
		if !config.IsLayout(layoutFlag) {
			return fmt.Errorf("unknown layout %q (want one of %v)", layoutFlag, config.Layouts)
		}
		cfg.Catalog.Layout = layoutFlag
	}

	if err := logger.Init(cfg.Log.Path); err != nil {
		return err
	}
	if cfg.Log.Debug && !quietMode {
		logger.SetDebug(true)
	}
	defer logger.Close()

	st, err := store.Open(cfg.State.Dir)
	if err != nil {
		return fmt.Errorf("error opening focus state: %w", err)
	}

	m := app.New(cfg, version, app.Options{Store: st})
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
