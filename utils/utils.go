package utils

import (
	"github.com/mrtool/mrtool/cmd"
	"github.com/spf13/cobra"
)

// utilsCmd represents the base command when called without any subcommands
var utilsCmd = &cobra.Command{
	Use:   "utils",
	Short: "Utilities for managing mrtool itself",
}

func init() {
	cmd.Add(utilsCmd)
}
