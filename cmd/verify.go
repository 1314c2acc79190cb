package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/mrtool/mrtool/core"
	"github.com/spf13/cobra"
)

// packVerifyCmd represents the pack verify command
var packVerifyCmd = &cobra.Command{
	Use:   "verify <name> [install-path]",
	Short: "Check the installed files of a pack against their pinned hashes",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := LoadConfig()
		m := NewManager(cfg)
		installPath := cfg.InstallPath
		if len(args) > 1 {
			installPath = args[1]
		}
		if installPath == "" {
			fmt.Println("No install path given")
			os.Exit(1)
		}

		checks, err := m.VerifyInstall(args[0], installPath)
		var partial *core.PartialFailure
		if err != nil && !errors.As(err, &partial) {
			exitLoadError(m.Store, args[0], err)
		}
		bad := 0
		for _, c := range checks {
			if c.Status != core.InstallOK {
				fmt.Printf("%s (%s): %s\n", c.Key, c.File, c.Status)
				bad++
			}
		}
		if err != nil {
			ReportError(err)
			os.Exit(1)
		}
		if bad > 0 {
			fmt.Printf("%d of %d files need to be reinstalled, run \"mrtool pack install %s\"\n", bad, len(checks), args[0])
			os.Exit(1)
		}
		fmt.Printf("All %d files are intact\n", len(checks))
	},
}

func init() {
	packCmd.AddCommand(packVerifyCmd)
}
