package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/hakusyu/internal/platform/tui"
	"github.com/vovakirdan/hakusyu/internal/storage"
)

var (
	flagClear bool
	flagPlain bool
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Browse stored calibration profiles",
	Long: `Shows the calibration stored for each capture device. In a terminal
the list is interactive and x forgets the selected device.

Examples:
  hakusyu profiles
  hakusyu profiles --plain
  hakusyu profiles --clear`,
	Args: cobra.NoArgs,
	RunE: runProfiles,
}

func init() {
	profilesCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every stored profile")
	profilesCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print the profiles instead of opening the browser")
}

func runProfiles(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening profiles database: %w", err)
	}
	defer store.Close()

	if flagClear {
		n, err := store.ClearProfiles()
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d profile(s).\n", n)
		return nil
	}

	fd := int(os.Stdout.Fd())
	if !flagPlain && term.IsTerminal(fd) {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(fd); termErr == nil {
			width, height = w, h
		}
		return tui.RunProfiles(store, width, height)
	}

	profiles, err := store.Profiles()
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		fmt.Println("No calibrations stored yet.")
		fmt.Println()
		fmt.Println("Run 'hakusyu play' and calibrate a device to save one.")
		return nil
	}

	fmt.Printf("  %-32s  %-12s  %-12s  %s\n", "Device", "Min", "Max", "Updated")
	fmt.Printf("  %-32s  %-12s  %-12s  %s\n", "------", "---", "---", "-------")
	for _, p := range profiles {
		fmt.Printf("  %-32s  %-12.6g  %-12.6g  %s\n", p.Device, p.Min, p.Max, p.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
