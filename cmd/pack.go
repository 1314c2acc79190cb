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

var packCmd = &cobra.Command{
	Use:     "pack",
	Aliases: []string{"packs"},
	Short:   "Create and manage mod packs",
}

// packCreateCmd represents the pack create command
var packCreateCmd = &cobra.Command{
	Use:   "create [name] [mod...]",
	Short: "Create a pack, resolving the given mods and their dependencies",
	Args:  cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := LoadConfig()
		m := NewManager(cfg)

		var name string
		if len(args) > 0 {
			name = args[0]
		} else {
			name = cmdshared.ReadValue("Pack name: ", "")
		}
		if err := core.ValidatePackName(name); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		if exists, err := m.Store.Exists(name); err != nil {
			fmt.Println(err)
			os.Exit(1)
		} else if exists {
			fmt.Printf("Pack %s already exists, use \"mrtool pack modify\" to change it\n", name)
			os.Exit(1)
		}

		desc := readDescriptor(Descriptor(cfg))
		var projects []string
		if len(args) > 1 {
			projects = projectRefs(m.Resolver.Catalog, args[1:])
		} else {
			projects = searchLoop(m.Resolver.Catalog)
		}

		pack, err := m.CreatePack(name, desc, projects)
		if err != nil && pack.Name == "" {
			ReportError(err)
			os.Exit(1)
		}
		fmt.Printf("Created pack %s (%s) with %d mods\n", pack.Name, pack.VersionInfo, len(pack.Mods))
		if err != nil {
			ReportError(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(packCmd)
	packCmd.AddCommand(packCreateCmd)
}

// readDescriptor asks for each field of the descriptor, defaulting to the configured values
func readDescriptor(def core.ConstraintDescriptor) core.ConstraintDescriptor {
	desc := def.Clone()

	desc.MCVersion = cmdshared.ReadValue("Minecraft version ["+def.MCVersion+"]: ", def.MCVersion)
	if desc.MCVersion != def.MCVersion {
		mcVersions, err := cmdshared.GetValidMCVersions()
		if err != nil {
			core.Log.Warn("failed to check the Minecraft version", "err", err)
		} else if err := mcVersions.CheckValid(desc.MCVersion); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	}

	loaders := []core.Loader{core.Fabric, core.Quilt, core.NeoForge}
	names := make([]string, len(loaders))
	defIdx := 0
	for i, l := range loaders {
		names[i] = l.FriendlyName()
		if l == def.Loader {
			defIdx = i
		}
	}
	i, err := cmdshared.Choose("Mod loader:", names, defIdx)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	desc.Loader = loaders[i]

	channels := cmdshared.ReadValue("Version types ["+core.FormatChannels(def.Channels)+"]: ", core.FormatChannels(def.Channels))
	desc.Channels, err = core.ParseChannels(channels)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := desc.Validate(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	return desc
}

type refParser interface {
	ParseRef(input string) (string, error)
}

// projectRefs turns slugs, project IDs and project URLs into project IDs or slugs
func projectRefs(catalog core.Catalog, inputs []string) []string {
	parser, ok := catalog.(refParser)
	if !ok {
		return inputs
	}
	refs := make([]string, 0, len(inputs))
	for _, in := range inputs {
		ref, err := parser.ParseRef(in)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		refs = append(refs, ref)
	}
	return refs
}

// searchLoop lets the user search for mods until an empty query is entered
func searchLoop(catalog core.Catalog) []string {
	var projects []string
	for {
		query := strings.TrimSpace(cmdshared.ReadValue("Search for a mod to add (leave empty to finish): ", ""))
		if query == "" {
			return projects
		}
		hit, err := cmdshared.SelectProject(catalog, query)
		if errors.Is(err, cmdshared.ErrCancelled) {
			continue
		} else if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Println("Adding " + cmdshared.SearchTitle(hit))
		projects = append(projects, hit.ProjectID)
	}
}

// exitLoadError prints the error and exits, suggesting similar pack names when the pack doesn't exist
func exitLoadError(store *core.PackStore, name string, err error) {
	fmt.Println(err)
	if errors.Is(err, core.ErrNotFound) {
		if suggestions := store.Suggest(name); len(suggestions) > 0 {
			fmt.Println("Did you mean: " + strings.Join(suggestions, ", ") + "?")
		}
	}
	os.Exit(1)
}
