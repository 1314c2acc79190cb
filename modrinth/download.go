package modrinth

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mrtool/mrtool/cmd"
	"github.com/mrtool/mrtool/cmdshared"
	"github.com/mrtool/mrtool/core"
	"github.com/spf13/cobra"
)

// downloadCmd represents the download command
var downloadCmd = &cobra.Command{
	Use:   "download <project|url|search query>",
	Short: "Download the newest matching version of a mod, and its required dependencies",
	Args:  cobra.MinimumNArgs(1),
	Run: func(c *cobra.Command, args []string) {
		cfg := cmd.LoadConfig()
		desc := cmd.Descriptor(cfg)
		m := cmd.NewManager(cfg)
		client, ok := m.Resolver.Catalog.(*Client)
		if !ok {
			client = NewClient(cfg.Staging)
		}

		input := strings.Join(args, " ")
		search, _ := c.Flags().GetBool("search")
		projectID, err := client.ParseRef(input)
		if search || err != nil {
			hit, err := cmdshared.SelectProject(client, input)
			if err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
			projectID = hit.ProjectID
		}

		destDir := cmd.Paths(cfg).DownloadDir
		fmt.Printf("Looking for %s (%s)...\n", projectID, desc)
		res, err := m.FetchProject(projectID, desc, destDir, core.FetchHooks{
			ConfirmVersion: func(v core.CatalogVersion) bool {
				printVersion(v)
				return cmdshared.PromptYesNo("Download it? [Y/n]: ")
			},
			ConfirmDependencies: func(deps []core.CatalogVersion) bool {
				fmt.Printf("%d required dependencies:\n", len(deps))
				var total int64
				for _, d := range deps {
					file, _ := d.PrimaryFile()
					total += file.Size
					fmt.Printf("  %s %s (%s)\n", d.DisplayName(), d.VersionNumber, core.SizeMiB(file.Size))
				}
				fmt.Printf("Total: %s\n", core.SizeMiB(total))
				return cmdshared.PromptYesNo("Download the dependencies? [Y/n]: ")
			},
		})

		var partial *core.PartialFailure
		if err != nil && !errors.As(err, &partial) {
			fmt.Println(err)
			os.Exit(1)
		}
		if res.Path != "" {
			fmt.Println("Downloaded " + res.Path)
		}
		for _, p := range res.DepPaths {
			fmt.Println("Downloaded " + p)
		}
		if res.Declined {
			fmt.Println("Cancelled")
		}
		if err != nil {
			cmd.ReportError(err)
			os.Exit(1)
		}
	},
}

func printVersion(v core.CatalogVersion) {
	file, _ := v.PrimaryFile()
	loaders := make([]string, len(v.Loaders))
	for i, l := range v.Loaders {
		loaders[i] = l.FriendlyName()
	}
	fmt.Printf("Name: %s\n", v.DisplayName())
	fmt.Printf("Version: %s\n", v.VersionNumber)
	fmt.Printf("Version type: %s\n", v.Channel)
	fmt.Printf("Downloads: %d\n", v.Downloads)
	fmt.Printf("Loaders: %s\n", strings.Join(loaders, ", "))
	fmt.Printf("File: %s (%s)\n", file.Filename, core.SizeMiB(file.Size))
}

func init() {
	cmd.Add(downloadCmd)
	downloadCmd.Flags().BoolP("search", "s", false, "Treat the argument as a search query")
}
