package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KomalYerkal/Preparation-of-Soap/theme"
)

var (
	themeDB     string
	themeClient string
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Read or change a saved theme preference",
}

func withThemeStore(cmd *cobra.Command, f func(theme.Store) (theme.Theme, error)) error {
	cmd.SilenceUsage = true

	store, err := theme.OpenSQLiteStore(themeDB)
	if err != nil {
		return err
	}
	defer store.Close()

	t, err := f(store)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), t)
	return nil
}

var themeGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the saved theme",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withThemeStore(cmd, func(s theme.Store) (theme.Theme, error) {
			return s.Load(cmd.Context(), themeClient)
		})
	},
}

var themeSetCmd = &cobra.Command{
	Use:       "set light|dark",
	Short:     "Save a theme",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(theme.Light), string(theme.Dark)},
	RunE: func(cmd *cobra.Command, args []string) error {
		return withThemeStore(cmd, func(s theme.Store) (theme.Theme, error) {
			t, err := theme.Parse(args[0])
			if err != nil {
				return "", err
			}
			return t, s.Save(cmd.Context(), themeClient, t)
		})
	},
}

var themeToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Flip the saved theme",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withThemeStore(cmd, func(s theme.Store) (theme.Theme, error) {
			return theme.Toggle(cmd.Context(), s, themeClient)
		})
	},
}

func init() {
	themeCmd.PersistentFlags().StringVar(&themeDB, "db", "soaplab_theme.sqlite3", "theme database path")
	themeCmd.PersistentFlags().StringVar(&themeClient, "client", "local", "client id")

	themeCmd.AddCommand(themeGetCmd, themeSetCmd, themeToggleCmd)
	rootCmd.AddCommand(themeCmd)
}
