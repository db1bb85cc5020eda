package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/KomalYerkal/Preparation-of-Soap/instrumentation/tracing"
	"github.com/KomalYerkal/Preparation-of-Soap/lab"
	"github.com/KomalYerkal/Preparation-of-Soap/timing"
)

var (
	labDelay   time.Duration
	labTraceDB string
)

var labCmd = &cobra.Command{
	Use:   "lab step...",
	Short: "Simulate a mixing session in virtual time",
	Long: `Simulate a mixing session in virtual time. Each step is an ingredient ` +
		`(water, oil, lye), "reset" to empty the vessel, or "wait" to let the ` +
		`reaction delay pass. Pending reactions finish after the last step.`,
	Example: "  soaplab lab oil water lye wait\n  soaplab lab water oil lye reset",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		var w tracing.Writer
		if labTraceDB != "" {
			sw, err := tracing.NewSQLiteWriter(labTraceDB)
			if err != nil {
				return err
			}
			defer sw.Close()
			w = sw
		}

		return simulate(cmd.OutOrStdout(), args, labDelay, w)
	},
}

func init() {
	labCmd.Flags().DurationVar(&labDelay, "reaction-delay", lab.DefaultReactionDelay,
		"time from a complete mixture to success")
	labCmd.Flags().StringVar(&labTraceDB, "trace-db", "",
		"record the transitions in this SQLite file")

	rootCmd.AddCommand(labCmd)
}

// simulate plays steps against a lab on a serial engine and prints the view
// after each one.
func simulate(out io.Writer, steps []string, delay time.Duration, w tracing.Writer) error {
	engine := timing.NewSerialEngine()
	l := lab.New(engine, lab.Config{ReactionDelay: delay})
	if w != nil {
		l.AcceptHook(tracing.NewLabTracer("cli", engine, w))
	}

	for _, step := range steps {
		var view lab.MixtureView

		switch strings.ToLower(strings.TrimSpace(step)) {
		case "reset":
			view = l.Reset()
		case "wait":
			if err := engine.RunUntil(engine.CurrentTime().Add(delay)); err != nil {
				return err
			}
			view = l.View()
		default:
			v, err := l.AddIngredientByName(step)
			if err != nil {
				return err
			}
			view = v
		}

		printView(out, engine.CurrentTime(), step, view)
	}

	if engine.Pending() > 0 {
		if err := engine.Run(); err != nil {
			return err
		}
		printView(out, engine.CurrentTime(), "end", l.View())
	}

	if w != nil {
		return w.Flush()
	}
	return nil
}

func printView(out io.Writer, now timing.VTime, step string, v lab.MixtureView) {
	fmt.Fprintf(out, "[%s] %s -> %d%% %s [%s]", now, step, v.FillHeightPercent, v.Status, v.Color)
	if v.ReactionVisible {
		fmt.Fprintf(out, " %s", v.Reaction)
	}
	fmt.Fprintln(out)
}
