package settings

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mrtool/mrtool/cmd"
	"github.com/mrtool/mrtool/cmdshared"
	"github.com/mrtool/mrtool/core"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

var showCommand = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration, after applying the environment and flags",
	Args:  cobra.NoArgs,
	Run: func(c *cobra.Command, args []string) {
		cfg := cmd.LoadConfig()
		fmt.Println("# " + cmd.ConfigFile())
		enc := toml.NewEncoder(os.Stdout)
		enc.Indent = ""
		if err := enc.Encode(cfg); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

var setCommand = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a value in the config file",
	Long:  "Change a value in the config file. Keys: " + strings.Join(core.ConfigKeys, ", "),
	Args:  cobra.ExactArgs(2),
	Run: func(c *cobra.Command, args []string) {
		path := cmd.ConfigFile()
		cfg, err := setConfigValue(path, cmd.DefaultConfig(), args[0], args[1])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		if args[0] == "mc-version" && cfg.MCVersion != "" {
			mcVersions, err := cmdshared.GetValidMCVersions()
			if err != nil {
				core.Log.Warn("failed to check the Minecraft version", "err", err)
			} else if err := mcVersions.CheckValid(cfg.MCVersion); err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
		}
		if err := core.WriteConfig(path, cfg); err != nil {
			fmt.Printf("Failed to write %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("%s set to %s\n", args[0], args[1])
	},
}

// setConfigValue reads the config file at path and changes one key, validating the new value
func setConfigValue(path string, defaults core.Config, key string, value string) (core.Config, error) {
	if !slices.Contains(core.ConfigKeys, key) {
		return core.Config{}, fmt.Errorf("unknown setting %q, expected one of %s", key, strings.Join(core.ConfigKeys, ", "))
	}
	current := make(map[string]interface{})
	if _, err := toml.DecodeFile(path, &current); err != nil && !errors.Is(err, os.ErrNotExist) {
		return core.Config{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	cfg, err := core.LoadConfig(defaults, current)
	if err != nil {
		return core.Config{}, err
	}
	return core.LoadConfig(cfg, map[string]interface{}{key: value})
}

func init() {
	settingsCmd.AddCommand(showCommand)
	settingsCmd.AddCommand(setCommand)
}
