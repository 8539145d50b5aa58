package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ojiudezue/frigate-config-builder/cmd/discover"
	"github.com/ojiudezue/frigate-config-builder/cmd/generate"
	"github.com/ojiudezue/frigate-config-builder/internal/conf"
)

// RootCommand creates and returns the root command
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "frigate-config-builder",
		Short: "Discover cameras and build a Frigate configuration",
	}

	// Set up the global flags for the root command.
	setupFlags(rootCmd, settings)

	subcommands := []*cobra.Command{
		discover.Command(settings),
		generate.Command(settings),
	}

	rootCmd.AddCommand(subcommands...)

	return rootCmd
}

// setupFlags defines flags that are global to the command line interface
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) error {
	rootCmd.PersistentFlags().BoolVarP(&settings.Debug, "debug", "d", viper.GetBool("debug"), "Enable debug output")
	rootCmd.PersistentFlags().StringVar(&settings.Directory.Snapshot, "directory-snapshot", viper.GetString("directory.snapshot"), "Path to a host directory snapshot JSON export")
	rootCmd.PersistentFlags().StringVar(&settings.Frigate.Version, "frigate-version", viper.GetString("frigate.version"), "Target Frigate version, one of "+strings.Join(conf.SupportedVersions(), ", "))
	rootCmd.PersistentFlags().StringVar(&settings.Frigate.Hwaccel, "hwaccel", viper.GetString("frigate.hwaccel"), "Hardware acceleration, one of "+strings.Join(conf.HwaccelTypes(), ", "))
	rootCmd.PersistentFlags().StringVar(&settings.Logging.File, "log-file", viper.GetString("logging.file"), "Write pipeline logs to a rotating file")
	rootCmd.PersistentFlags().StringVarP(&settings.Output.Path, "output", "o", viper.GetString("output.path"), "Path of the generated configuration file")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		return fmt.Errorf("error binding flags: %v", err)
	}

	return nil
}
