// Command pathfinderctl is the operator tool for auditing the question bank
// and exercising the assessment and analysis engines offline.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var rootCmd = &cobra.Command{
	Use:           "pathfinderctl",
	Short:         "PathFinder operator tool",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("pathfinderctl", version)
	},
}

func init() {
	rootCmd.PersistentFlags().String("bank", "", "Path to a question bank YAML file (defaults to the embedded bank)")

	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(skillCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
