// Package devserver is a local stand-in for the portfolio backend. It serves
// fixture content and accepts contact submissions under the same routes and
// rules as the real service.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rajshekhar/folio/internal/domain/contact"
	"github.com/rajshekhar/folio/internal/infrastructure/logging"
	"github.com/rajshekhar/folio/internal/ports"
)

const shutdownTimeout = 5 * time.Second

// ContactRecord is a submission accepted by POST /api/contact.
type ContactRecord struct {
	ID         int
	Fields     contact.Fields
	Attachment *UploadedFile
	ReceivedAt time.Time
}

// UploadedFile is the stored "file" part of a contact submission.
type UploadedFile struct {
	Name string
	Size int64
	MIME string
	Data []byte
}

// Option customizes a Server.
type Option func(*Server)

// WithPrimaryAsList makes GET /api/about/primary answer with a one-element
// list instead of a bare object, as some backend versions do.
func WithPrimaryAsList() Option {
	return func(s *Server) { s.primaryAsList = true }
}

// WithLatency delays every API response.
func WithLatency(d time.Duration) Option {
	return func(s *Server) { s.latency = d }
}

// WithClock overrides the timestamp source for received submissions.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// Server is safe for concurrent use.
type Server struct {
	fixtures      Fixtures
	logger        ports.Logger
	primaryAsList bool
	latency       time.Duration
	now           func() time.Time

	mu        sync.Mutex
	contacts  []ContactRecord
	interests []string

	router chi.Router
}

// New builds a Server over fixtures.
func New(fixtures Fixtures, logger ports.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	s := &Server{
		fixtures: fixtures,
		logger:   logger.With("component", "devserver", "layer", "infrastructure"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

// Handler exposes the router, e.g. for httptest.
func (s *Server) Handler() http.Handler { return s.router }

// Contacts returns a copy of the accepted contact submissions.
func (s *Server) Contacts() []ContactRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ContactRecord(nil), s.contacts...)
}

// Interests returns a copy of the accepted quick-contact emails.
func (s *Server) Interests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.interests...)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/health", handleHealth)

	r.Route("/api", func(r chi.Router) {
		if s.latency > 0 {
			r.Use(s.delay)
		}

		r.Get("/about", s.handleListAbout)
		r.Get("/about/primary", s.handlePrimaryAbout)
		r.Get("/about/{id}", s.handleAboutByID)

		r.Get("/skills", s.handleSkills)
		r.Get("/skills/category/{category}", s.handleSkillsByCategory)

		r.Get("/projects", s.handleProjects)
		r.Get("/projects/featured", s.handleFeaturedProjects)
		r.Get("/projects/category/{category}", s.handleProjectsByCategory)

		r.Get("/experience", s.handleExperience)

		r.Post("/contact", s.handleContact)
		r.Post("/contact/interest", s.handleInterest)
	})

	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully. ready, when non-nil, receives the bound address.
func (s *Server) ListenAndServe(ctx context.Context, addr string, ready func(net.Addr)) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	s.logger.Info(ctx, "dev server listening", "addr", ln.Addr().String())
	if ready != nil {
		ready(ln.Addr())
	}

	select {
	case <-ctx.Done():
		s.logger.Info(context.Background(), "dev server shutting down")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		ctx := ports.WithCorrelationID(r.Context(), middleware.GetReqID(r.Context()))
		fields := []interface{}{
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if ww.Status() >= http.StatusInternalServerError {
			s.logger.Error(ctx, "request failed", fields...)
			return
		}
		s.logger.Info(ctx, "request served", fields...)
	})
}

func (s *Server) delay(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(s.latency):
		case <-r.Context().Done():
			return
		}
		next.ServeHTTP(w, r)
	})
}
