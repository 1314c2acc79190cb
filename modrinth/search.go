package modrinth

import (
	"fmt"
	"os"
	"strings"

	"github.com/mrtool/mrtool/cmd"
	"github.com/mrtool/mrtool/cmdshared"
	"github.com/spf13/cobra"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search Modrinth for mods",
	Args:  cobra.MinimumNArgs(1),
	Run: func(c *cobra.Command, args []string) {
		client := NewClient(cmd.LoadConfig().Staging)
		hits, err := client.Search(strings.Join(args, " "))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		if len(hits) == 0 {
			fmt.Println("No projects found")
			return
		}
		cmdshared.PrintHits(hits)
	},
}

func init() {
	cmd.Add(searchCmd)
}
