// Package cmd provides the command-line interface of soaplab.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/KomalYerkal/Preparation-of-Soap/observability"
)

var logLevel string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "soaplab",
	Short: "Soaplab runs the soap-making virtual lab and its helpers.",
	Long: `Soaplab serves the soap-making page API (the mixing vessel, the safety ` +
		`quiz, the recipe calculator and the theme preference) and offers offline ` +
		`helpers to simulate a mix, compute recipes and import quiz banks.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		observability.InitLogger("soaplab", logLevel)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"log level (debug, info, warn, error)")
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Registered exit handlers run before the process ends.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
