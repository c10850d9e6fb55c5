package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/hakusyu/internal/capture/system"
	"github.com/vovakirdan/hakusyu/internal/registry"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List capture devices",
	Long: `Shows the registered capture backends and the devices they offer, in
the order play lists them. The index is the digit to press in play.

Examples:
  hakusyu devices
  hakusyu devices --wav ./claps.wav`,
	Args: cobra.NoArgs,
	RunE: runDevices,
}

func init() {
	devicesCmd.Flags().StringSliceVar(&flagWAV, "wav", nil, "Offer a looped WAV recording as a capture device")
}

func runDevices(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "hakusyu", Level: log.WarnLevel})

	fmt.Println("Capture backends:")
	fmt.Println()
	backends := registry.List()
	maxNameLen := 4 // "Name" header
	for _, b := range backends {
		if len(b.Name) > maxNameLen {
			maxNameLen = len(b.Name)
		}
	}
	fmt.Printf("  %-*s  %s\n", maxNameLen, "Name", "Title")
	fmt.Printf("  %-*s  %s\n", maxNameLen, "----", "-----")
	for _, b := range backends {
		fmt.Printf("  %-*s  %s\n", maxNameLen, b.Name, b.Title)
	}
	fmt.Println()

	if dev, err := system.New(logger).Detect(); err == nil {
		fmt.Printf("Microphone recorder: %s\n", dev.Name)
	} else {
		fmt.Println("Microphone recorder: none (install parec, pw-record, arecord or sox)")
	}
	fmt.Println()

	catalog, err := buildCatalog(cfg, logger)
	if err != nil {
		return err
	}
	devs := catalog.Devices()
	if len(devs) == 0 {
		fmt.Println("No capture devices found.")
		return nil
	}

	fmt.Println("Devices:")
	fmt.Println()
	for i, d := range devs {
		fmt.Printf("  %d: %s (%s)\n", i, d.Name, d.Backend)
	}
	if len(devs) > 10 {
		fmt.Println()
		fmt.Println("Only the first 10 devices can be selected in play.")
	}
	return nil
}
