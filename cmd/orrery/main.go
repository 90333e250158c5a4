// Command orrery animates a solar system model in the terminal
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	debugMode  bool
)

var rootCmd = &cobra.Command{
	Use:   "orrery",
	Short: "Animated solar system model",
	Long: `
Orrery composes the Sun, eight planets and the Moon into a scene graph where
every body orbits its parent and spins around its tilted axis. Orbit and spin
speeds can be retuned live.

Examples:
  # Interactive terminal viewer
  orrery view

  # Headless run, print body angles after 30 simulated seconds
  orrery simulate --seconds 30 --orbit 2
`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a TOML config file")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Write debug logs to "+logDir+"/"+logFileName)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "orrery: %v\n", err)
		os.Exit(1)
	}
}
