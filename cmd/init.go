package cmd

import (
	"github.com/spf13/cobra"
	"github.com/ziadkadry99/sdkview/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize sdkview configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to choose where SDK dumps are read from and generates a .sdkview.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
