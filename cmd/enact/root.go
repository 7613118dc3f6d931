// Command enact runs the digital carbon footprint service and its
// reporting tools.
package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/enact-eco/enact/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "enact",
	Short: "Track and reduce the carbon footprint of digital activities",
	Long: "enact estimates the energy use and CO2 emissions of digital activities\n" +
		"(streaming, browsing, email, code execution), keeps a per-day emission log,\n" +
		"scores your footprint and suggests ways to shrink it.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")

	rootCmd.AddCommand(serveCmd, reportCmd, scoreCmd)
}

// loadConfig reads the configuration and builds the root logger from its
// log level.
func loadConfig() (config.Config, zerolog.Logger, error) {
	bootLog := newLogger("info")

	cfg, err := config.Load(configPath, bootLog)
	if err != nil {
		return config.Config{}, bootLog, err
	}
	return cfg, newLogger(cfg.LogLevel), nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer = os.Stderr
	if isatty.IsTerminal(os.Stderr.Fd()) {
		out = zerolog.ConsoleWriter{Out: os.Stderr}
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}
