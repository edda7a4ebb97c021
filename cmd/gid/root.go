package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Lzww0608/gid/internal/config"
)

var (
	// Global flags
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gid",
	Short: "Generate and convert compact 63-bit identifiers",
	Long: `gid mints time-ordered or random 63-bit identifiers and converts them
between decimal, base-36, base-64 (0-9a-zA-Z_-) and hexadecimal.

Quick start:
  gid new                 # one time-ordered id
  gid new --kind random   # one random id
  gid decode 1a           # auto-detect and show every rendering
  gid serve               # start the HTTP API`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (defaults apply when empty)")
}

func loadConfig() (*config.Config, error) {
	return config.Load(cfgFile)
}
