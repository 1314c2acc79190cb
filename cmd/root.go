package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/mrtool/mrtool/cmdshared"
	"github.com/mrtool/mrtool/core"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var cfgFile string
var defaultPaths core.PathsConfig

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mrtool",
	Short: "A command line tool for searching, downloading and packing Minecraft mods from Modrinth",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		core.SetVerbose(viper.GetBool("verbose"))
	},
}

// Execute starts the root command for mrtool
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// Add adds a new command as a subcommand to mrtool
func Add(newCommand *cobra.Command) {
	rootCmd.AddCommand(newCommand)
}

// Root returns the root command, for generating documentation and completions
func Root() *cobra.Command {
	return rootCmd
}

var catalogFactory func(staging bool) core.Catalog

// SetCatalog registers the catalog that commands resolve and download mods with
func SetCatalog(factory func(staging bool) core.Catalog) {
	catalogFactory = factory
}

// Persistent flag name -> configuration key
var globalFlags = map[string]string{
	"staging":         "staging",
	"pack-path":       "pack-path",
	"download-path":   "download-path",
	"mc-version":      "mc-version",
	"version-type":    "release-types",
	"loader":          "loader",
	"install-path":    "install-path",
	"non-interactive": "non-interactive",
	"verbose":         "verbose",
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.SetGlobalNormalizationFunc(normalizeFlagName)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/mrtool/config.toml)")
	flags.BoolP("staging", "S", false, "Use the Modrinth staging server")
	flags.String("pack-path", "", "The folder packs are stored in")
	flags.StringP("download-path", "p", "", "The folder mods are downloaded to (default ~/Downloads)")
	flags.StringP("mc-version", "v", "", "The Minecraft version to find mods for (default is the latest release)")
	flags.String("version-type", "", "The version types to accept, e.g. \"release beta\"")
	flags.StringP("loader", "l", "", "The mod loader to find mods for: fabric, quilt or neoforge")
	flags.String("install-path", "", "The mods folder packs are installed to")
	flags.Bool("non-interactive", false, "Accept the default answer to every prompt")
	flags.Bool("verbose", false, "Print debug output")
	for name, key := range globalFlags {
		_ = viper.BindPFlag(key, flags.Lookup(name))
	}
}

// normalizeFlagName accepts underscores in place of dashes, and --mc-ver for --mc-version
func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	name = strings.ReplaceAll(name, "_", "-")
	if name == "mc-ver" {
		name = "mc-version"
	}
	return pflag.NormalizedName(name)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	paths, err := core.DefaultPaths()
	if err != nil {
		fmt.Printf("Failed to find the default folders: %v\n", err)
		os.Exit(1)
	}
	defaultPaths = paths

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigFile(paths.ConfigFile())
		createDefaultConfig(paths)
	}
	viper.SetConfigType("toml")
	viper.SetEnvPrefix("MRTOOL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		core.Log.Debug("using config file", "path", viper.ConfigFileUsed())
	} else if !errors.Is(err, fs.ErrNotExist) {
		fmt.Printf("Failed to read config file: %v\n", err)
		os.Exit(1)
	}
}

// createDefaultConfig writes the default config file on first run
func createDefaultConfig(paths core.PathsConfig) {
	if _, err := os.Stat(paths.ConfigFile()); !os.IsNotExist(err) {
		return
	}
	if err := os.MkdirAll(paths.ConfigDir, 0755); err != nil {
		core.Log.Warn("failed to create config folder", "err", err)
		return
	}
	if err := core.WriteConfig(paths.ConfigFile(), core.DefaultConfig(paths)); err != nil {
		core.Log.Warn("failed to create config file", "err", err)
		return
	}
	fmt.Println("Created config file " + paths.ConfigFile())
}

// LoadConfig merges the config file, environment and flags into a Config, exiting on invalid values
func LoadConfig() core.Config {
	settings := make(map[string]interface{})
	for k, v := range viper.AllSettings() {
		// Unset string flags show up as empty values
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		settings[k] = v
	}
	cfg, err := core.LoadConfig(core.DefaultConfig(defaultPaths), settings)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	return cfg
}

// ConfigFile is the path of the config file in use
func ConfigFile() string {
	if cfgFile != "" {
		return cfgFile
	}
	return defaultPaths.ConfigFile()
}

// DefaultConfig is the configuration used for keys that are not set anywhere
func DefaultConfig() core.Config {
	return core.DefaultConfig(defaultPaths)
}

// Paths returns the folders configured for cfg
func Paths(cfg core.Config) core.PathsConfig {
	return cfg.Paths(defaultPaths)
}

// Descriptor returns the constraints configured for cfg, looking up the latest Minecraft release
// when no version is set
func Descriptor(cfg core.Config) core.ConstraintDescriptor {
	desc := cfg.Descriptor()
	if desc.MCVersion == "" {
		mcVersions, err := cmdshared.GetValidMCVersions()
		if err != nil {
			fmt.Printf("Failed to get latest minecraft versions: %s\n", err)
			os.Exit(1)
		}
		desc.MCVersion = mcVersions.Latest.Release
	}
	return desc
}

// Catalog returns the registered catalog for cfg
func Catalog(cfg core.Config) core.Catalog {
	if catalogFactory == nil {
		fmt.Println("No catalog is available")
		os.Exit(1)
	}
	return catalogFactory(cfg.Staging)
}

// NewManager creates the pack manager for cfg
func NewManager(cfg core.Config) *core.Manager {
	m := core.NewManager(core.NewPackStore(Paths(cfg)), Catalog(cfg))
	m.Downloader.Progress = os.Stderr
	return m
}

// ReportError prints an error; the items of a partial failure are listed one per line
func ReportError(err error) {
	var partial *core.PartialFailure
	if errors.As(err, &partial) {
		fmt.Printf("%d item(s) failed:\n", len(partial.Failures))
		for _, f := range partial.Failures {
			fmt.Printf("  %s: %v\n", f.ID, f.Err)
		}
		return
	}
	fmt.Println(err)
}
