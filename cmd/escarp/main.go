package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "escarp",
		Short: "Escarpment landscape evolution and habitat-patch workflow",
		Long: `escarp reproduces the escarpment landscape-evolution and habitat-patch
experiments from a single YAML run control.

The pipeline runs strictly forward:
  mesh -> run -> export -> habitat`,
	}

	rootCmd.PersistentFlags().String("config", "samples/escarpment.yaml", "run control file")

	rootCmd.AddCommand(
		newVersionCmd(),
		newMeshCmd(),
		newRunCmd(),
		newExportCmd(),
		newHabitatCmd(),
		newSampleCmd(),
		newCalibrateCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("escarp version %s\n", version)
		},
	}
}
