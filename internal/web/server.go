package web

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sakshya-ai/sakshya-web/internal/analysis"
	"github.com/sakshya-ai/sakshya-web/internal/auth"
	"github.com/sakshya-ai/sakshya-web/internal/history"
	"github.com/sakshya-ai/sakshya-web/internal/report"
	"github.com/sakshya-ai/sakshya-web/internal/statement"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// AnalysisClient is the outbound surface of the analysis backend consumed
// by the orchestrator handlers.
type AnalysisClient interface {
	Analyze(ctx context.Context, s1, s2 statement.Input) (*report.Report, error)
	UploadDocument(ctx context.Context, filename string, file io.Reader, stype statement.Type) (*analysis.UploadResult, error)
	SpeechToText(ctx context.Context, filename string, audio io.Reader, stype statement.Type) (string, error)
}

// ServerConfig holds the dependencies for the web server.
type ServerConfig struct {
	Logger         *slog.Logger
	AuthService    auth.Service
	History        history.Repository
	Analysis       AnalysisClient
	AllowedOrigins []string

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Server is the web application: input page, analyze orchestration, media
// upload proxying, session endpoints, and the history browser.
type Server struct {
	router      *chi.Mux
	logger      *slog.Logger
	authService auth.Service
	authHandler *auth.Handlers
	history     history.Repository
	analysis    AnalysisClient
	tmpl        *template.Template

	readTimeout     time.Duration
	writeTimeout    time.Duration
	shutdownTimeout time.Duration
}

// NewServer creates the web server and mounts all routes.
func NewServer(cfg ServerConfig) *Server {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	s := &Server{
		router:      r,
		logger:      cfg.Logger,
		authService: cfg.AuthService,
		authHandler: auth.NewHandlers(cfg.AuthService),
		history:     cfg.History,
		analysis:    cfg.Analysis,
		tmpl:        parseTemplates(),

		readTimeout:     cfg.ReadTimeout,
		writeTimeout:    cfg.WriteTimeout,
		shutdownTimeout: cfg.ShutdownTimeout,
	}
	s.setupRoutes()

	return s
}

func parseTemplates() *template.Template {
	funcs := template.FuncMap{
		// The two statement slots rendered on the input page.
		"mkslots": func() []int { return []int{1, 2} },
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	// Session endpoints (public)
	s.router.Post("/auth/register", s.authHandler.Register)
	s.router.Post("/auth/login", s.authHandler.Login)
	s.router.Post("/auth/logout", s.authHandler.Logout)

	// Guest mode: the full analysis flow works without a session; only
	// history persistence depends on one.
	s.router.Group(func(r chi.Router) {
		r.Use(auth.OptionalMiddleware(s.authService))

		r.Get("/", s.handleIndex)
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/upload-document", s.handleUploadDocument)
		r.Post("/speech-to-text", s.handleSpeechToText)
	})

	s.router.Group(func(r chi.Router) {
		r.Use(auth.Middleware(s.authService))

		r.Get("/auth/me", s.authHandler.Me)
		r.Get("/history", s.handleHistory)
	})

	staticRoot, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticRoot))))
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// httpServer builds the http.Server with the configured timeouts.
func (s *Server) httpServer(addr string) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
	}
}

// Run starts the HTTP server on addr and shuts it down gracefully on
// SIGINT or SIGTERM, waiting at most the configured shutdown timeout for
// in-flight requests.
func (s *Server) Run(addr string) error {
	srv := s.httpServer(addr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		s.logger.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Helper to send JSON responses
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
