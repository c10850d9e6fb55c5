// hakusyu is a terminal platformer steered by the loudness of your claps.
//
// Usage:
//
//	hakusyu play              - Calibrate a capture device and play
//	hakusyu devices           - List capture devices
//	hakusyu profiles          - Browse stored calibration profiles
//	hakusyu serve             - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>    - Configuration file (default: search path)
//	--preset <name>    - Physics preset: easy, normal, hard, fixed
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible block layouts
//	--db <path>        - Set database path (default: ~/.hakusyu/profiles.db)
//	--log-file <path>  - Log destination for play (default: ~/.hakusyu/hakusyu.log)
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/hakusyu/internal/config"
)

var (
	// Global flags
	flagConfig  string
	flagPreset  string
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLogFile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hakusyu",
	Short: "Hakusyu - a platformer steered by clapping",
	Long: `Hakusyu is a side-scrolling platformer played in the terminal.
Every clap (or any loud noise) picked up by the microphone launches the
character up and forward. Land on every block in order to score.

Available commands:
  play      - Calibrate a capture device and play
  devices   - List capture devices
  profiles  - Browse stored calibration profiles
  serve     - Start SSH server for remote play

Examples:
  hakusyu play
  hakusyu play --preset easy --reuse-calibration
  hakusyu play --wav ./claps.wav
  hakusyu serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Physics preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.hakusyu/profiles.db", "Path to profiles database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.hakusyu/hakusyu.log", "Log file used while the TUI owns the terminal")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(profilesCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig reads the configuration and applies --preset.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if flagPreset != "" {
		preset, err := config.ParsePreset(flagPreset)
		if err != nil {
			return config.Config{}, err
		}
		config.ApplyPreset(&cfg, preset)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// openLogFile creates a file logger. The returned close func is never nil.
func openLogFile(path string) (*log.Logger, func(), error) {
	path = expandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, func() {}, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, func() {}, fmt.Errorf("cannot open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "hakusyu",
		Level:           log.DebugLevel,
	})
	return logger, func() { f.Close() }, nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
