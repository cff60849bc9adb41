// Command scrollto-demo runs the interactive virtualized-list demo.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kvisser/scrollto/internal/config"
	"github.com/kvisser/scrollto/internal/demo"
	"github.com/kvisser/scrollto/internal/log"
)

func init() {
	// Force lipgloss/termenv to query the terminal background before the
	// Bubble Tea program starts, so the OSC response does not race the
	// input loop.
	_ = lipgloss.HasDarkBackground()
}

var (
	version = "dev"
	cfgFile string
	debug   bool
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:     "scrollto-demo",
	Short:   "Scroll a virtualized list to any index",
	Long:    `An interactive demo of animated index-based scrolling in a virtualized list: jump to arbitrary logical indices, including items that have never been rendered.`,
	Version: version,
	RunE:    runDemo,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/scrollto/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"write debug logs to scrollto-demo.log")
	rootCmd.Flags().StringP("feed", "f", "",
		"path to an item feed file, one item per line")
	rootCmd.Flags().IntP("items", "n", 0,
		"synthetic item count (used when no feed is set)")
	rootCmd.Flags().Bool("no-auto-reload", false,
		"disable reloading the feed when it changes")

	_ = viper.BindPFlag("feed", rootCmd.Flags().Lookup("feed"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("auto_reload", defaults.AutoReload)
	viper.SetDefault("items", defaults.Items)
	viper.SetDefault("scroll.alignment", defaults.Scroll.Alignment)
	viper.SetDefault("scroll.duration_ms", defaults.Scroll.DurationMS)
	viper.SetDefault("scroll.curve", defaults.Scroll.Curve)
	viper.SetDefault("scroll.overscan", defaults.Scroll.Overscan)
	viper.SetDefault("scroll.estimated_height", defaults.Scroll.EstimatedHeight)
	viper.SetDefault("theme.highlight", defaults.Theme.Highlight)
	viper.SetDefault("theme.subtle", defaults.Theme.Subtle)
	viper.SetDefault("theme.accent", defaults.Theme.Accent)
	viper.SetDefault("theme.error", defaults.Theme.Error)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, _ := os.UserHomeDir()
		viper.AddConfigPath(filepath.Join(home, ".config", "scrollto"))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			home, homeErr := os.UserHomeDir()
			if homeErr == nil {
				defaultPath := filepath.Join(home, ".config", "scrollto", "config.yaml")
				if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
					viper.SetConfigFile(defaultPath)
					_ = viper.ReadInConfig()
				}
			}
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func runDemo(cmd *cobra.Command, args []string) error {
	if debug {
		cleanup, err := log.InitWithTeaLog("scrollto-demo.log", "demo")
		if err != nil {
			return fmt.Errorf("enabling debug log: %w", err)
		}
		defer cleanup()
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if n, _ := cmd.Flags().GetInt("items"); n > 0 {
		cfg.Items = n
	}
	if noReload, _ := cmd.Flags().GetBool("no-auto-reload"); noReload {
		cfg.AutoReload = false
	}

	model, err := demo.New(cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, runErr := p.Run()

	if closeErr := model.Close(); closeErr != nil && runErr == nil {
		runErr = closeErr
	}
	if runErr != nil {
		return fmt.Errorf("running program: %w", runErr)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
