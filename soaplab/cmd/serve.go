package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/browser"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/KomalYerkal/Preparation-of-Soap/config"
	"github.com/KomalYerkal/Preparation-of-Soap/instrumentation/hooking"
	"github.com/KomalYerkal/Preparation-of-Soap/instrumentation/tracing"
	"github.com/KomalYerkal/Preparation-of-Soap/lab"
	"github.com/KomalYerkal/Preparation-of-Soap/observability"
	"github.com/KomalYerkal/Preparation-of-Soap/quiz"
	"github.com/KomalYerkal/Preparation-of-Soap/server"
	"github.com/KomalYerkal/Preparation-of-Soap/session"
	"github.com/KomalYerkal/Preparation-of-Soap/theme"
	"github.com/KomalYerkal/Preparation-of-Soap/timing"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the lab API over HTTP",
	Long: `Serve the lab API over HTTP. Settings come from SOAPLAB_* environment ` +
		`variables and an optional .env file. Flags override both.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cmd.SilenceUsage = true

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		applyServeFlags(cmd, &cfg)

		logger := observability.InitLogger("soaplab", cfg.LogLevel)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return serve(ctx, cfg, logger)
	},
}

func init() {
	f := serveCmd.Flags()
	f.String("addr", "", "listen address")
	f.Duration("reaction-delay", 0, "time from a complete mixture to success")
	f.Bool("trace", false, "record lab transitions in a SQLite trace")
	f.String("trace-db", "", "trace database path (implies --trace)")
	f.String("theme-db", "", "theme preference database path")
	f.String("quiz-bank", "", "quiz bank TOML file")
	f.Bool("open", false, "open the server in a browser")

	rootCmd.AddCommand(serveCmd)
}

// applyServeFlags overrides cfg with the flags given on the command line.
// The root --log-level only wins over SOAPLAB_LOG_LEVEL when it was set.
func applyServeFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if f.Changed("addr") {
		cfg.Addr, _ = f.GetString("addr")
	}
	if f.Changed("reaction-delay") {
		cfg.ReactionDelay, _ = f.GetDuration("reaction-delay")
	}
	if f.Changed("trace") {
		cfg.Trace, _ = f.GetBool("trace")
	}
	if f.Changed("trace-db") {
		cfg.TraceDB, _ = f.GetString("trace-db")
		cfg.Trace = true
	}
	if f.Changed("theme-db") {
		cfg.ThemeDB, _ = f.GetString("theme-db")
	}
	if f.Changed("quiz-bank") {
		cfg.QuizBank, _ = f.GetString("quiz-bank")
	}
	if f.Changed("open") {
		cfg.OpenBrowser, _ = f.GetBool("open")
	}
}

func serve(ctx context.Context, cfg config.Config, logger zerolog.Logger) error {
	bank := quiz.DefaultBank()
	if cfg.QuizBank != "" {
		b, err := quiz.LoadBank(cfg.QuizBank)
		if err != nil {
			return err
		}
		bank = b
	}

	var themes theme.Store = theme.NewMemoryStore()
	if cfg.ThemeDB != "" {
		store, err := theme.OpenSQLiteStore(cfg.ThemeDB)
		if err != nil {
			return err
		}
		defer store.Close()
		themes = store
	}

	clock := timing.NewWallClock()
	clock.ErrorHandler = func(evt timing.ScheduledEvent, err error) {
		logger.Error().Err(err).Str("event", evt.Time.String()).Msg("scheduled event failed")
	}

	metrics := observability.NewLabMetrics()
	hooks := func(string) []hooking.Hook { return []hooking.Hook{metrics} }

	if cfg.Trace {
		writer, err := tracing.NewSQLiteWriter(cfg.TraceDB)
		if err != nil {
			return err
		}
		hooks = func(id string) []hooking.Hook {
			return []hooking.Hook{metrics, tracing.NewLabTracer(id, clock, writer)}
		}
	}

	sessions := session.NewManager(session.Options{
		Scheduler: clock,
		LabConfig: &lab.Config{ReactionDelay: cfg.ReactionDelay},
		Bank:      bank,
		Hooks:     hooks,
	})

	srv := server.New(server.Options{
		Sessions: sessions,
		Themes:   themes,
		Logger:   logger,
	})

	ln, err := server.Listen(cfg.Addr)
	if err != nil {
		return err
	}

	if cfg.OpenBrowser {
		if err := browser.OpenURL(server.URL(ln)); err != nil {
			logger.Warn().Err(err).Msg("cannot open browser")
		}
	}

	return srv.Serve(ctx, ln)
}
