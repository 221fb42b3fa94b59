// Package server provides the HTTP surface of the developer page service.
package server

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mofa-org/devpage/internal/config"
	"github.com/mofa-org/devpage/internal/pipeline"
	"github.com/mofa-org/devpage/internal/rendering"
	"github.com/mofa-org/devpage/internal/server/ratelimit"
)

// ShutdownTimeout bounds how long in-flight requests may drain on shutdown.
const ShutdownTimeout = 30 * time.Second

// PageResolver turns a request host into a page.
type PageResolver interface {
	Resolve(ctx context.Context, host string) (*pipeline.Result, error)
}

// IconProvider serves SVG icons by name. It always returns a body.
type IconProvider interface {
	SVG(ctx context.Context, name string) ([]byte, bool)
}

// Server represents the HTTP server
type Server struct {
	settings    *config.Config
	resolver    PageResolver
	icons       IconProvider
	renderer    *rendering.Renderer
	rateLimiter *ratelimit.Limiter
	logger      *zap.Logger
	router      chi.Router

	now        func() time.Time
	incidentID func() string
}

// Config holds server dependencies.
type Config struct {
	Settings *config.Config
	Resolver PageResolver
	Icons    IconProvider
	// Renderer defaults to one built from Settings.
	Renderer *rendering.Renderer
	// RateLimit defaults to ratelimit.LoadConfig().
	RateLimit *ratelimit.Config
	Logger    *zap.Logger
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Settings == nil {
		return nil, errors.New("server: settings are required")
	}
	if cfg.Resolver == nil || cfg.Icons == nil {
		return nil, errors.New("server: resolver and icon provider are required")
	}

	s := &Server{
		settings:   cfg.Settings,
		resolver:   cfg.Resolver,
		icons:      cfg.Icons,
		renderer:   cfg.Renderer,
		logger:     cfg.Logger,
		now:        time.Now,
		incidentID: uuid.NewString,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.renderer == nil {
		renderer, err := rendering.New(rendering.Options{
			LogoURL:      cfg.Settings.LogoURL,
			QRServiceURL: cfg.Settings.QRServiceURL,
			RegistryURL:  cfg.Settings.RegistryURL(),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to build renderer: %w", err)
		}
		s.renderer = renderer
	}

	rateLimit := cfg.RateLimit
	if rateLimit == nil {
		rateLimit = ratelimit.LoadConfig()
	}
	s.rateLimiter = ratelimit.NewLimiter(rateLimit)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.withLogging)
	r.Use(middleware.Recoverer)
	r.Use(middleware.GetHead)
	r.Use(s.withRateLimit)

	r.With(s.withCORS).Get("/health", s.handleHealth)
	r.Get("/favicon.ico", s.handleFavicon)
	r.With(s.withCORS).Get("/icons/{name}.svg", s.handleIcon)
	r.Get("/*", s.handlePage)
	s.router = r

	return s, nil
}

// Handler returns the routed handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until SIGINT or SIGTERM, then drains for up to ShutdownTimeout.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

type listener struct {
	srv *http.Server
	ln  net.Listener
	tls bool
}

// Run serves until ctx is done. With a readable TLS certificate and key it
// serves pages over HTTPS and redirects plain HTTP there, except /health.
func (s *Server) Run(ctx context.Context) error {
	var listeners []listener

	var httpHandler http.Handler = s.router
	if cert, ok := s.loadCertificate(); ok {
		ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.settings.HTTPSPort))
		if err != nil {
			return fmt.Errorf("failed to listen for https: %w", err)
		}
		srv := s.newHTTPServer(s.router)
		srv.TLSConfig = &tls.Config{Certificates: []tls.Certificate{cert}, MinVersion: tls.VersionTLS12}
		listeners = append(listeners, listener{srv: srv, ln: ln, tls: true})
		httpHandler = s.redirectHandler()
	}

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.settings.Port))
	if err != nil {
		for _, l := range listeners {
			l.ln.Close()
		}
		return fmt.Errorf("failed to listen for http: %w", err)
	}
	listeners = append(listeners, listener{srv: s.newHTTPServer(httpHandler), ln: ln})

	return s.serve(ctx, listeners)
}

func (s *Server) newHTTPServer(h http.Handler) *http.Server {
	return &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorLog:          zap.NewStdLog(s.logger.Named("http")),
	}
}

func (s *Server) serve(ctx context.Context, listeners []listener) error {
	g, gCtx := errgroup.WithContext(ctx)

	for _, l := range listeners {
		l := l
		g.Go(func() error {
			s.logger.Info("server listening", zap.String("addr", l.ln.Addr().String()), zap.Bool("tls", l.tls))
			var err error
			if l.tls {
				err = l.srv.ServeTLS(l.ln, "", "")
			} else {
				err = l.srv.Serve(l.ln)
			}
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		})
	}

	g.Go(func() error {
		<-gCtx.Done()
		s.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		var errs []error
		for _, l := range listeners {
			if err := l.srv.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("server shutdown failed: %w", err))
			}
		}
		s.rateLimiter.Stop()
		s.logger.Info("server stopped")
		return errors.Join(errs...)
	})

	return g.Wait()
}

// loadCertificate reads the configured TLS pair. A configured but unreadable
// pair is logged and the server falls back to plain HTTP.
func (s *Server) loadCertificate() (tls.Certificate, bool) {
	if !s.settings.TLSEnabled() {
		return tls.Certificate{}, false
	}
	cert, err := tls.LoadX509KeyPair(s.settings.TLSCertFile, s.settings.TLSKeyFile)
	if err != nil {
		s.logger.Warn("tls certificate unreadable, serving plain http only", zap.Error(err))
		return tls.Certificate{}, false
	}
	return cert, true
}

// redirectHandler sends plain HTTP traffic to the HTTPS listener.
func (s *Server) redirectHandler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.withLogging)
	r.Get("/health", s.handleHealth)
	r.HandleFunc("/*", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, httpsURL(req, s.settings.HTTPSPort), http.StatusMovedPermanently)
	})
	return r
}

func httpsURL(r *http.Request, port int) string {
	host := r.Host
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	if port != 443 {
		host = net.JoinHostPort(host, fmt.Sprint(port))
	}
	return "https://" + host + r.URL.RequestURI()
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, HEAD, OPTIONS")
		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(extractClientID(r), r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging logs one line per request once it completes.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("host", r.Host),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("failed to encode json response", zap.Error(err))
	}
}

// extractClientID identifies the client by IP. RealIP has already applied
// X-Forwarded-For / X-Real-IP when present.
func extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Round(time.Second).Seconds())
		seconds = max(seconds, 1)
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}

	s.logger.Warn("rate limit exceeded",
		zap.String("client", extractClientID(r)),
		zap.String("rule", info.Rule),
		zap.Int("limit", info.Limit),
	)

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
