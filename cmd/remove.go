package cmd

import (
	"fmt"

	"github.com/mrtool/mrtool/cmdshared"
	"github.com/spf13/cobra"
)

// packRemoveCmd represents the pack remove command
var packRemoveCmd = &cobra.Command{
	Use:     "remove <name>",
	Short:   "Delete a stored pack",
	Aliases: []string{"delete", "rm"},
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		m := NewManager(LoadConfig())
		if !cmdshared.PromptYesNo("Remove pack " + args[0] + "? [Y/n]: ") {
			fmt.Println("Cancelled")
			return
		}
		if err := m.RemovePack(args[0]); err != nil {
			exitLoadError(m.Store, args[0], err)
		}
		fmt.Printf("Pack %s removed successfully!\n", args[0])
	},
}

func init() {
	packCmd.AddCommand(packRemoveCmd)
}
