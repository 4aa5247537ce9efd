package app

import (
	"fmt"

	"github.com/ansel1/merry"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or initialize the settings file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the settings in effect",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", configFilename, b)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default settings file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if config.Exists(configFilename) && !initForce {
			return merry.Errorf("%s exists", configFilename).
				WithUserMessagef("Settings file %s already exists. Use --force to overwrite it.", configFilename)
		}
		if err := config.Save(configFilename, config.Default()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), configFilename)
		return nil
	},
}

var initForce bool

func init() {
	configInitCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing settings file")
	configCmd.AddCommand(configShowCmd, configInitCmd)
	rootCmd.AddCommand(configCmd)
}
