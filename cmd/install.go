package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/mrtool/mrtool/cmdshared"
	"github.com/mrtool/mrtool/core"
	"github.com/spf13/cobra"
)

// packInstallCmd represents the pack install command
var packInstallCmd = &cobra.Command{
	Use:   "install <name> [install-path]",
	Short: "Download and verify every mod of a pack into a mods folder",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := LoadConfig()
		m := NewManager(cfg)

		installPath := cfg.InstallPath
		if len(args) > 1 {
			installPath = args[1]
		}
		if installPath == "" {
			installPath = cmdshared.ReadValue("Install path: ", "")
		}
		if installPath == "" {
			fmt.Println("No install path given, pass one or set install-path with \"mrtool settings set\"")
			os.Exit(1)
		}

		installed, err := m.InstallPack(args[0], installPath)
		var partial *core.PartialFailure
		if err != nil && !errors.As(err, &partial) {
			exitLoadError(m.Store, args[0], err)
		}
		fmt.Printf("Installed %d files to %s\n", len(installed), installPath)
		if err != nil {
			ReportError(err)
			os.Exit(1)
		}
	},
}

func init() {
	packCmd.AddCommand(packInstallCmd)
}
