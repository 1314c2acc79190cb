package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/mrtool/mrtool/core"
	"github.com/spf13/cobra"
)

// packUpdateCmd represents the pack update command
var packUpdateCmd = &cobra.Command{
	Use:     "update <name>",
	Short:   "Re-resolve every mod in the pack with the pack's version info",
	Aliases: []string{"upgrade"},
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		m := NewManager(LoadConfig())

		fmt.Println("Checking for updates...")
		checks, err := m.UpdatePack(args[0])
		var partial *core.PartialFailure
		if err != nil && !errors.As(err, &partial) {
			exitLoadError(m.Store, args[0], err)
		}

		updated := 0
		for _, c := range checks {
			if c.UpdateAvailable {
				if updated == 0 {
					fmt.Println("Updates:")
				}
				fmt.Printf("%s: %s\n", c.New.DisplayName(c.Key), c.UpdateString())
				updated++
			}
		}
		if updated == 0 {
			fmt.Println("All mods are up to date!")
		} else {
			fmt.Printf("%d mods updated\n", updated)
		}
		if err != nil {
			ReportError(err)
			os.Exit(1)
		}
	},
}

func init() {
	packCmd.AddCommand(packUpdateCmd)
}
