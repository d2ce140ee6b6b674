package main

import (
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lausiv7/candysoda-sub005/internal/config"
)

var flagEffective bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the engine configuration",
	Long: `Print the built-in engine configuration as YAML. Save it to
~/.candysoda/configs/engine.yaml and edit it to change the defaults.

With --effective the configuration after --config and --difficulty is
printed instead.`,
	Run: func(cmd *cobra.Command, args []string) {
		if !flagEffective {
			os.Stdout.Write(config.DefaultYAML())
			return
		}

		cfg := loadConfig()
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			fail("%v", err)
		}
		enc.Close()
	},
}

func init() {
	configCmd.Flags().BoolVar(&flagEffective, "effective", false, "Print the configuration in effect")
}
