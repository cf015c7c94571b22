package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "sdkview",
	Short: "Browse and query reverse-engineered game SDK dumps",
	Long: `sdkview loads the JSON SDK dumps of a game (classes, structs, enums,
functions and global offsets) and lets you browse them in the browser,
filter and search them from the command line, or expose them to AI agents
via MCP.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".sdkview.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
