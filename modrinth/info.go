package modrinth

import (
	"fmt"
	"os"
	"strings"

	"github.com/mrtool/mrtool/cmd"
	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/cobra"
	"github.com/unascribed/FlexVer/go/flexver"
	"golang.org/x/exp/slices"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info <project>",
	Short: "Show information about a Modrinth project",
	Args:  cobra.ExactArgs(1),
	Run: func(c *cobra.Command, args []string) {
		client := NewClient(cmd.LoadConfig().Staging)
		ref, err := client.ParseRef(args[0])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		project, err := client.GetProject(ref)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		fmt.Printf("%s (%s)\n", project.Title, project.ID)
		if project.Description != "" {
			fmt.Println(project.Description)
		}
		fmt.Printf("Type: %s\n", project.ProjectType)
		fmt.Printf("Downloads: %d\n", project.Downloads)
		fmt.Printf("Client side: %s, server side: %s\n", project.ClientSide, project.ServerSide)
		if len(project.Loaders) > 0 {
			fmt.Printf("Loaders: %s\n", strings.Join(project.Loaders, ", "))
		}
		if n := len(project.GameVersions); n > 0 {
			versions := slices.Clone(project.GameVersions)
			flexver.VersionSlice(versions).Sort()
			fmt.Printf("Minecraft versions: %s to %s\n", versions[0], versions[n-1])
		}
		fmt.Println(project.URL())

		if openPage, _ := c.Flags().GetBool("open"); openPage {
			if err := open.Start(project.URL()); err != nil {
				fmt.Printf("Failed to open the project page: %v\n", err)
				os.Exit(1)
			}
		}
	},
}

func init() {
	cmd.Add(infoCmd)
	infoCmd.Flags().BoolP("open", "o", false, "Open the project page in a browser")
}
