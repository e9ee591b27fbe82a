package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/wordwall/pkg/pipeline"
	"github.com/matzehuels/wordwall/pkg/translate"
	"github.com/matzehuels/wordwall/pkg/vocab"
)

// DefaultAddr is the listen address when none is configured.
const DefaultAddr = "127.0.0.1:8080"

const (
	requestTimeout  = 60 * time.Second
	shutdownTimeout = 5 * time.Second
	maxUploadBytes  = 5 << 20
)

// Options configures a [Server].
type Options struct {
	Addr string

	// PublicURL is the base URL encoded in the QR code. When empty it is
	// derived from the request's Host header.
	PublicURL string

	// Pipeline holds the default layout and render options; query
	// parameters override canvas size, seed and style per request.
	Pipeline pipeline.Options

	// Translator enables suggestions; nil disables them.
	Translator *translate.Translator

	Logger *log.Logger
}

// Server serves one word store.
type Server struct {
	store    *vocab.Store
	runner   *pipeline.Runner
	opts     Options
	logger   *log.Logger
	relayout *relayouter
	router   chi.Router
}

// New creates a server and subscribes it to store changes.
func New(store *vocab.Store, runner *pipeline.Runner, opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = DefaultAddr
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, opts.Logger)
	}
	s := &Server{
		store:  store,
		runner: runner,
		opts:   opts,
		logger: opts.Logger,
	}
	s.relayout = newRelayouter(s.warm, s.logger)
	s.router = s.routes()
	store.OnChange(func(c vocab.Change) {
		s.logger.Debug("store changed", "kind", c.Kind, "word", c.Word.Text)
		s.relayout.trigger(context.Background())
	})
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/wall.svg", http.StatusFound)
	})
	r.Get("/wall.svg", s.handleWallSVG)
	r.Get("/qr.png", s.handleQR)

	r.Route("/api", func(r chi.Router) {
		r.Get("/version", s.handleVersion)
		r.Get("/stats", s.handleStats)
		r.Get("/layout", s.handleLayout)
		r.Get("/translate", s.handleTranslate)
		r.Post("/reset", s.handleReset)
		r.Get("/export", s.handleExport)
		r.Post("/import", s.handleImport)

		r.Route("/words", func(r chi.Router) {
			r.Get("/", s.handleList)
			r.Post("/", s.handleAdd)
			r.Delete("/", s.handleClear)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGet)
				r.Put("/", s.handleUpdate)
				r.Delete("/", s.handleRemove)
				r.Post("/mastered", s.handleMastered(true))
				r.Delete("/mastered", s.handleMastered(false))
			})
		})
	})
	return r
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving word wall", "addr", s.opts.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.relayout.stop()
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.relayout.stop()
	s.logger.Info("server stopped")
	return err
}

// warm renders the default wall so the next /wall.svg is a cache hit.
func (s *Server) warm(ctx context.Context) error {
	opts := s.opts.Pipeline
	opts.Formats = []string{pipeline.FormatSVG}
	_, err := s.runner.Execute(ctx, s.store.All(), opts)
	return err
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"id", middleware.GetReqID(r.Context()))
	})
}
