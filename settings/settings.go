package settings

import (
	"github.com/mrtool/mrtool/cmd"
	"github.com/spf13/cobra"
)

// settingsCmd represents the base command when called without any subcommands
var settingsCmd = &cobra.Command{
	Use:     "settings",
	Aliases: []string{"config"},
	Short:   "Show and change mrtool's configuration",
}

func init() {
	cmd.Add(settingsCmd)
}
