package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/KomalYerkal/Preparation-of-Soap/quiz"
)

var quizOutput string

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Manage quiz banks",
}

var quizImportCmd = &cobra.Command{
	Use:   "import page.html",
	Short: "Extract the quiz of an HTML page into a TOML bank",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		in, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer in.Close()

		bank, err := quiz.ImportHTML(in)
		if err != nil {
			return err
		}

		var out io.Writer = cmd.OutOrStdout()
		if quizOutput != "" {
			f, err := os.Create(quizOutput)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}

		if err := bank.Encode(out); err != nil {
			return err
		}
		if quizOutput != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "%d questions written to %s\n", bank.Len(), quizOutput)
		}
		return nil
	},
}

var quizShowCmd = &cobra.Command{
	Use:   "show [bank.toml]",
	Short: "Print a quiz bank, the built-in one by default",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		bank := quiz.DefaultBank()
		if len(args) == 1 {
			b, err := quiz.LoadBank(args[0])
			if err != nil {
				return err
			}
			bank = b
		}

		out := cmd.OutOrStdout()
		for i, q := range bank.Questions {
			fmt.Fprintf(out, "%d. %s\n", i+1, q.Prompt)
			for j, o := range q.Options {
				mark := " "
				if o.Correct {
					mark = "*"
				}
				fmt.Fprintf(out, "   %s %d) %s\n", mark, j, o.Text)
			}
		}
		return nil
	},
}

func init() {
	quizImportCmd.Flags().StringVarP(&quizOutput, "output", "o", "", "write the bank to this file")

	quizCmd.AddCommand(quizImportCmd, quizShowCmd)
	rootCmd.AddCommand(quizCmd)
}
