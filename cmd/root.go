// Package cmd wires the CLI: flags, settings loading, and program startup.
package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/texit/internal/app"
	"github.com/zjrosen/texit/internal/config"
	"github.com/zjrosen/texit/internal/history"
	"github.com/zjrosen/texit/internal/log"
	"github.com/zjrosen/texit/internal/trace"
)

func init() {
	// Force lipgloss/termenv to query the terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version = "dev"
	cfgFile string
	cfg     config.Config

	debugMode     bool
	traceExporter string
	traceFile     string
	traceEndpoint string
)

var rootCmd = &cobra.Command{
	Use:     "texit [file]",
	Short:   "A terminal text editor with syntax highlighting",
	Long:    `A terminal text editor with syntax highlighting, find and replace, themes, and autosave.`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/texit/config.json)")
	rootCmd.Flags().BoolVar(&debugMode, "debug", false,
		"write debug logs to the config directory")
	rootCmd.Flags().StringVar(&traceExporter, "trace", "",
		"enable tracing with the given exporter (stdout, file, otlp)")
	rootCmd.Flags().StringVar(&traceFile, "trace-file", "",
		"trace output path for the file exporter")
	rootCmd.Flags().StringVar(&traceEndpoint, "trace-endpoint", "",
		"OTLP collector endpoint for the otlp exporter")
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("theme", defaults.Theme)
	viper.SetDefault("font_family", defaults.FontFamily)
	viper.SetDefault("font_size", defaults.FontSize)
	viper.SetDefault("show_line_numbers", defaults.ShowLineNumbers)
	viper.SetDefault("autosave_enabled", defaults.AutosaveEnabled)
	viper.SetDefault("autosave_secs", defaults.AutosaveSecs)
	viper.SetDefault("highlight_debounce_ms", defaults.HighlightDebounceMS)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(config.DefaultConfigDir())
		viper.SetConfigName("config")
		viper.SetConfigType("json")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// First run: write the documented defaults so users have a
			// file to edit.
			defaultPath := config.DefaultConfigPath()
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
		} else {
			// A corrupt settings file falls back to defaults rather than
			// blocking startup.
			log.Warn(log.CatConfig, "Ignoring unreadable settings file", "error", err)
		}
	}

	_ = viper.Unmarshal(&cfg)
	cfg = cfg.Normalize()
}

func runApp(cmd *cobra.Command, args []string) error {
	if debugMode {
		logPath := filepath.Join(config.DefaultConfigDir(), "texit-debug.log")
		cleanup, err := log.InitWithTeaLog(logPath, "texit")
		if err != nil {
			return fmt.Errorf("initializing debug log: %w", err)
		}
		defer cleanup()
	}

	provider, err := trace.NewProvider(trace.Config{
		Enabled:      traceExporter != "",
		Exporter:     traceExporter,
		FilePath:     traceFile,
		OTLPEndpoint: traceEndpoint,
	})
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() { _ = provider.Shutdown(context.Background()) }()

	// The history store is an enhancement; the editor runs without it.
	var hist *history.Store
	if h, err := history.Open(config.DefaultHistoryPath()); err != nil {
		log.Warn(log.CatHistory, "Running without history store", "error", err)
	} else {
		hist = h
		defer func() { _ = hist.Close() }()
	}

	configFilePath := viper.ConfigFileUsed()
	if configFilePath == "" {
		configFilePath = config.DefaultConfigPath()
	}

	initialPath := ""
	if len(args) > 0 {
		initialPath = args[0]
	}

	model, err := app.New(app.Options{
		Config:      cfg,
		ConfigPath:  configFilePath,
		InitialPath: initialPath,
		History:     hist,
		Tracer:      provider.Tracer(),
	})
	if err != nil {
		return fmt.Errorf("initializing editor: %w", err)
	}

	zone.NewGlobal()
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	finalModel, err := p.Run()

	// Close the final model, not the initial one: the watcher may have
	// been restarted while the program ran.
	if fm, ok := finalModel.(app.Model); ok {
		if closeErr := fm.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags).
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// resetForTesting restores mutable package state between test runs.
func resetForTesting() {
	cfgFile = ""
	debugMode = false
	traceExporter = ""
	traceFile = ""
	traceEndpoint = ""
	cfg = config.Config{}
	viper.Reset()
}
