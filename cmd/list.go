package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/mrtool/mrtool/core"
	"github.com/spf13/cobra"
	"github.com/unascribed/FlexVer/go/flexver"
)

// packListCmd represents the pack list command
var packListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List the stored packs",
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		m := NewManager(LoadConfig())
		names, err := m.Store.List()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		if len(names) == 0 {
			fmt.Println("No packs yet, create one with \"mrtool pack create\"")
			return
		}

		var packs []core.Pack
		for _, name := range names {
			pack, err := m.Store.Load(name)
			if err != nil {
				fmt.Printf("%s: %v\n", name, err)
				continue
			}
			packs = append(packs, pack)
		}
		if byVersion, _ := cmd.Flags().GetBool("by-version"); byVersion {
			// Newest Minecraft version first
			sort.SliceStable(packs, func(i, j int) bool {
				return flexver.Compare(packs[i].VersionInfo.MCVersion, packs[j].VersionInfo.MCVersion) > 0
			})
		}
		for _, pack := range packs {
			fmt.Printf("%s (%s) - %d mods\n", pack.Name, pack.VersionInfo, len(pack.Mods))
		}
	},
}

// packShowCmd represents the pack show command
var packShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a pack's version info and pinned mods",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		m := NewManager(LoadConfig())
		pack, err := m.Store.Load(args[0])
		if err != nil {
			exitLoadError(m.Store, args[0], err)
		}

		fmt.Println(pack.Name)
		fmt.Printf("Minecraft version: %s\n", pack.VersionInfo.MCVersion)
		fmt.Printf("Mod loader: %s\n", pack.VersionInfo.Loader.FriendlyName())
		fmt.Printf("Version types: %s\n", core.FormatChannels(pack.VersionInfo.Channels))
		if showLoader, _ := cmd.Flags().GetBool("loader-version"); showLoader {
			latest, err := pack.VersionInfo.Loader.LatestVersion(pack.VersionInfo.MCVersion)
			if err != nil {
				fmt.Printf("Failed to get the latest %s version: %v\n", pack.VersionInfo.Loader.FriendlyName(), err)
			} else {
				fmt.Printf("Latest %s version: %s\n", pack.VersionInfo.Loader.FriendlyName(), latest)
			}
		}

		fmt.Printf("Mods (%d):\n", len(pack.Mods))
		var total int64
		for _, key := range pack.SortedKeys() {
			mod := pack.Mods[key]
			total += mod.File.Size
			fmt.Printf("  %s %s [%s] %s (%s)\n", mod.DisplayName(key), mod.VersionNumber, mod.Channel,
				mod.File.Filename, core.SizeMiB(mod.File.Size))
		}
		fmt.Printf("Total size: %s\n", core.SizeMiB(total))
	},
}

func init() {
	packCmd.AddCommand(packListCmd)
	packCmd.AddCommand(packShowCmd)

	packListCmd.Flags().Bool("by-version", false, "Sort packs by Minecraft version, newest first")
	packShowCmd.Flags().Bool("loader-version", false, "Look up the latest loader version for the pack's Minecraft version")
}
