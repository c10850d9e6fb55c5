package main

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/hakusyu/internal/capture"
	_ "github.com/vovakirdan/hakusyu/internal/capture/synth"
	_ "github.com/vovakirdan/hakusyu/internal/capture/system"
	"github.com/vovakirdan/hakusyu/internal/capture/wavfile"
	"github.com/vovakirdan/hakusyu/internal/config"
	"github.com/vovakirdan/hakusyu/internal/core"
	"github.com/vovakirdan/hakusyu/internal/game"
	"github.com/vovakirdan/hakusyu/internal/platform/tui"
	"github.com/vovakirdan/hakusyu/internal/registry"
	"github.com/vovakirdan/hakusyu/internal/sfx"
	"github.com/vovakirdan/hakusyu/internal/storage"
)

var (
	flagWAV         []string
	flagSFX         bool
	flagSFXVolume   float64
	flagReuse bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Calibrate a capture device and play",
	Long: `Start a session: read the help pages, pick a capture device, calibrate
the quiet and loud levels, then play.

Controls:
  Enter      - Continue / start recording / start game
  0-9        - Select a capture device
  Space      - Clap (clap synthesizer device only)
  Esc/Ctrl+C - Quit

Preset options:
  easy   - Lighter gravity, stronger impulses
  normal - Reference tuning
  hard   - Heavier gravity, weaker impulses
  fixed  - Physics exactly as in the config file

Examples:
  hakusyu play
  hakusyu play --preset hard
  hakusyu play --wav ./claps.wav --sfx
  hakusyu play --reuse-calibration`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringSliceVar(&flagWAV, "wav", nil, "Offer a looped WAV recording as a capture device")
	playCmd.Flags().BoolVar(&flagSFX, "sfx", false, "Play a blip on every scored block")
	playCmd.Flags().Float64Var(&flagSFXVolume, "sfx-volume", 0.3, "Blip volume (0-1)")
	playCmd.Flags().BoolVar(&flagReuse, "reuse-calibration", false, "Skip calibration when a stored profile exists")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := openLogFile(flagLogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		logger = log.New(os.Stderr)
		logger.SetLevel(log.ErrorLevel)
	}
	defer closeLog()

	catalog, err := buildCatalog(cfg, logger)
	if err != nil {
		return err
	}

	// Get terminal size
	rt := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rt.ScreenW = w
		rt.ScreenH = h
	}
	if flagFPS > 0 {
		rt.TickRate = flagFPS
	}
	rt.Seed = flagSeed

	opts := game.Options{
		Config:           cfg,
		Devices:          catalog,
		ReuseCalibration: flagReuse,
		Logger:           logger,
		Seed:             flagSeed,
	}

	// Open profile storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open profiles database", "error", err)
		// Continue without storage - calibration still works
	} else {
		defer store.Close()
		opts.Profiles = store
	}

	if flagSFX {
		player, sfxErr := sfx.New(flagSFXVolume)
		if sfxErr != nil {
			logger.Warn("sound effects disabled", "error", sfxErr)
		} else {
			defer player.Close()
			opts.Sounds = player
		}
	}

	session := game.NewSession(opts)
	defer session.Close()

	if err := tui.Run(session, rt); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}

// buildCatalog instantiates the configured backends. --wav adds the replay
// backend when the config does not list it.
func buildCatalog(cfg config.Config, logger *log.Logger) (*capture.Catalog, error) {
	names := cfg.Backends
	if len(flagWAV) > 0 && !slices.Contains(names, wavfile.BackendName) {
		names = append(slices.Clone(names), wavfile.BackendName)
	}

	backends, err := registry.CreateAll(names, registry.Options{
		Logger: logger,
		Seed:   flagSeed,
		Files:  flagWAV,
	})
	if err != nil {
		return nil, err
	}

	catalog, err := capture.NewCatalog(backends...)
	switch {
	case errors.Is(err, capture.ErrNoBackend):
		logger.Info("some capture backends are unavailable", "error", err)
	case err != nil:
		logger.Warn("capture enumeration failed", "error", err)
	}
	return catalog, nil
}
