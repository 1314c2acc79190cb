package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mrtool/mrtool/cmdshared"
	"github.com/mrtool/mrtool/core"
	"github.com/spf13/cobra"
)

// packModifyCmd represents the pack modify command
var packModifyCmd = &cobra.Command{
	Use:     "modify <name>",
	Short:   "Rename a pack, change its version info, or add and remove mods",
	Long:    "Without flags, a menu is shown until \"Done\" is chosen. With flags, the changes are applied in the order rename, version info, add, remove.",
	Aliases: []string{"edit"},
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		m := NewManager(LoadConfig())
		s, err := m.ModifyPack(args[0])
		if err != nil {
			exitLoadError(m.Store, args[0], err)
		}
		defer s.Close()

		flags := cmd.Flags()
		if !anyChanged(cmd, "rename", "set-mc-version", "set-loader", "set-version-types", "add", "remove") {
			modifyMenu(s, m.Resolver.Catalog)
			return
		}

		failed := false
		if newName, _ := flags.GetString("rename"); newName != "" {
			failed = !report(s.Rename(newName)) || failed
		}
		if anyChanged(cmd, "set-mc-version", "set-loader", "set-version-types") {
			mcVersion, _ := flags.GetString("set-mc-version")
			loader, _ := flags.GetString("set-loader")
			channels, _ := flags.GetString("set-version-types")
			checks, err := s.EditVersionInfo(func(desc *core.ConstraintDescriptor) error {
				return applyVersionInfo(desc, mcVersion, loader, channels)
			})
			printChecks(checks, err)
			failed = !report(err) || failed
		}
		if add, _ := flags.GetStringSlice("add"); len(add) > 0 {
			added, err := s.AddMods(projectRefs(m.Resolver.Catalog, add))
			printAdded(added)
			failed = !report(err) || failed
		}
		if remove, _ := flags.GetStringSlice("remove"); len(remove) > 0 {
			for _, key := range remove {
				failed = !report(s.RemoveMod(key)) || failed
			}
		}
		if failed {
			os.Exit(1)
		}
	},
}

func init() {
	packCmd.AddCommand(packModifyCmd)

	packModifyCmd.Flags().String("rename", "", "The new name of the pack")
	packModifyCmd.Flags().String("set-mc-version", "", "The new Minecraft version of the pack")
	packModifyCmd.Flags().String("set-loader", "", "The new mod loader of the pack")
	packModifyCmd.Flags().String("set-version-types", "", "The version types the pack accepts, e.g. \"release beta\"")
	packModifyCmd.Flags().StringSlice("add", nil, "Mods to add, by slug, project ID or URL")
	packModifyCmd.Flags().StringSlice("remove", nil, "Mods to remove, by key or project ID")
}

func anyChanged(cmd *cobra.Command, names ...string) bool {
	for _, name := range names {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// report prints err, returning whether it was nil
func report(err error) bool {
	if err == nil {
		return true
	}
	ReportError(err)
	return false
}

// applyVersionInfo changes the fields that are set; the others are kept
func applyVersionInfo(desc *core.ConstraintDescriptor, mcVersion string, loader string, channels string) error {
	if mcVersion != "" {
		desc.MCVersion = mcVersion
	}
	if loader != "" {
		l, err := core.ParseLoader(loader)
		if err != nil {
			return err
		}
		desc.Loader = l
	}
	if channels != "" {
		c, err := core.ParseChannels(channels)
		if err != nil {
			return err
		}
		desc.Channels = c
	}
	return nil
}

func printChecks(checks []core.UpdateCheck, err error) {
	var partial *core.PartialFailure
	if errors.As(err, &partial) {
		fmt.Println("Version info was not changed, as not every mod is available for it")
		return
	} else if err != nil {
		return
	}
	for _, c := range checks {
		if c.UpdateAvailable {
			fmt.Printf("%s: %s\n", c.New.DisplayName(c.Key), c.UpdateString())
		}
	}
	fmt.Println("Version info changed, all mods were re-resolved")
}

func printAdded(added []string) {
	if len(added) > 0 {
		fmt.Println("Added " + strings.Join(added, ", "))
	}
}

const (
	menuRename = iota
	menuVersionInfo
	menuAdd
	menuRemove
	menuDone
)

func modifyMenu(s *core.Session, catalog core.Catalog) {
	options := []string{"Rename", "Edit version info", "Add mods", "Remove a mod", "Done"}
	for {
		pack := s.Pack()
		fmt.Printf("%s (%s) - %d mods\n", pack.Name, pack.VersionInfo, len(pack.Mods))
		choice, err := cmdshared.Choose("What do you want to change?", options, menuDone)
		if errors.Is(err, cmdshared.ErrCancelled) || choice == menuDone {
			return
		} else if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		switch choice {
		case menuRename:
			name := cmdshared.ReadValue("New name ["+pack.Name+"]: ", pack.Name)
			if report(s.Rename(name)) && name != pack.Name {
				fmt.Println("Renamed to " + name)
			}
		case menuVersionInfo:
			desc := readDescriptor(pack.VersionInfo)
			checks, err := s.EditVersionInfo(func(d *core.ConstraintDescriptor) error {
				*d = desc
				return nil
			})
			printChecks(checks, err)
			report(err)
		case menuAdd:
			added, err := s.AddMods(searchLoop(catalog))
			printAdded(added)
			report(err)
		case menuRemove:
			keys := pack.SortedKeys()
			if len(keys) == 0 {
				fmt.Println("The pack has no mods")
				continue
			}
			names := make([]string, len(keys))
			for i, k := range keys {
				names[i] = pack.Mods[k].DisplayName(k) + " (" + k + ")"
			}
			i, err := cmdshared.Choose("Which mod?", names, 0)
			if errors.Is(err, cmdshared.ErrCancelled) {
				continue
			} else if err != nil {
				fmt.Println(err)
				continue
			}
			if report(s.RemoveMod(keys[i])) {
				fmt.Println("Removed " + names[i])
			}
		}
	}
}
