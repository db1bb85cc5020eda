// Package server exposes the lab, the quiz, the recipe calculator and the
// theme preference over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/KomalYerkal/Preparation-of-Soap/idgen"
	"github.com/KomalYerkal/Preparation-of-Soap/observability"
	"github.com/KomalYerkal/Preparation-of-Soap/session"
	"github.com/KomalYerkal/Preparation-of-Soap/theme"
)

// DefaultProfileDuration is how long /api/profile samples the CPU.
const DefaultProfileDuration = time.Second

// Options configure a Server.
type Options struct {
	Sessions        *session.Manager
	Themes          theme.Store
	Logger          zerolog.Logger
	ClientIDs       idgen.Generator
	ProfileDuration time.Duration
}

// Server routes the HTTP API to the sessions and stores behind it.
type Server struct {
	sessions        *session.Manager
	themes          theme.Store
	logger          zerolog.Logger
	clientIDs       idgen.Generator
	profileDuration time.Duration

	router *mux.Router
}

// New creates a Server. Nil stores are replaced by in-memory ones.
func New(opts Options) *Server {
	if opts.Sessions == nil {
		opts.Sessions = session.NewManager(session.Options{})
	}
	if opts.Themes == nil {
		opts.Themes = theme.NewMemoryStore()
	}
	if opts.ClientIDs == nil {
		opts.ClientIDs = idgen.NewXID()
	}
	if opts.ProfileDuration <= 0 {
		opts.ProfileDuration = DefaultProfileDuration
	}

	s := &Server{
		sessions:        opts.Sessions,
		themes:          opts.Themes,
		logger:          opts.Logger,
		clientIDs:       opts.ClientIDs,
		profileDuration: opts.ProfileDuration,
	}
	s.router = s.routes()

	return s
}

func (s *Server) routes() *mux.Router {
	observability.RegisterMetrics()

	r := mux.NewRouter()
	r.Use(observability.RequestLogger(s.logger), observability.RequestMetricsMiddleware)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/sessions", s.createSession).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}", s.deleteSession).Methods(http.MethodDelete)

	sess := api.PathPrefix("/sessions/{id}").Subrouter()
	sess.HandleFunc("/lab", s.labView).Methods(http.MethodGet)
	sess.HandleFunc("/lab/ingredients/{type}", s.addIngredient).Methods(http.MethodPost)
	sess.HandleFunc("/lab/reset", s.resetLab).Methods(http.MethodPost)
	sess.HandleFunc("/inspect", s.inspect).Methods(http.MethodGet)
	sess.HandleFunc("/quiz", s.quizState).Methods(http.MethodGet)
	sess.HandleFunc("/quiz/next", s.quizNext).Methods(http.MethodPost)
	sess.HandleFunc("/quiz/previous", s.quizPrevious).Methods(http.MethodPost)
	sess.HandleFunc("/quiz/answer/{option}", s.quizAnswer).Methods(http.MethodPost)

	api.HandleFunc("/recipe", s.recipe).Methods(http.MethodGet)
	api.HandleFunc("/theme", s.getTheme).Methods(http.MethodGet)
	api.HandleFunc("/theme", s.putTheme).Methods(http.MethodPut)
	api.HandleFunc("/theme", s.toggleTheme).Methods(http.MethodPost)
	api.HandleFunc("/resource", s.listResources).Methods(http.MethodGet)
	api.HandleFunc("/profile", s.collectProfile).Methods(http.MethodGet)

	r.Handle("/metrics", promhttp.Handler())
	r.HandleFunc("/", s.index).Methods(http.MethodGet)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, errors.New("not found"))
	})

	// Subrouters resolve method mismatches on their own, so each needs the
	// handler.
	notAllowed := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed,
			fmt.Errorf("method %s not allowed on %s", r.Method, r.URL.Path))
	})
	for _, router := range []*mux.Router{r, api, sess} {
		router.MethodNotAllowedHandler = notAllowed
	}

	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Listen opens the TCP listener for addr. Port 0 picks a free port.
func Listen(addr string) (net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("server: listen %s: %w", addr, err)
	}
	return ln, nil
}

// URL returns the http address of a listener.
func URL(ln net.Listener) string {
	if tcp, ok := ln.Addr().(*net.TCPAddr); ok && tcp.IP.IsUnspecified() {
		return fmt.Sprintf("http://localhost:%d", tcp.Port)
	}
	return "http://" + ln.Addr().String()
}

// Serve serves on ln until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	s.logger.Info().Str("url", URL(ln)).Msg("serving")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		return nil
	}
}
