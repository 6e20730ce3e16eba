// Package server exposes the repository over a small JSON API meant for a
// local browser front end. It binds to loopback by default and has no auth.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/repticare/internal/repository"
)

// Options configures NewRouter.
type Options struct {
	Repo   *repository.Repository
	Logger *zap.Logger      // nil discards logs
	Now    func() time.Time // nil means time.Now
}

// api carries the dependencies shared by all handlers.
type api struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time
}

// NewRouter builds the HTTP handler.
func NewRouter(opts Options) http.Handler {
	a := &api{repo: opts.Repo, log: opts.Logger, now: opts.Now}
	if a.log == nil {
		a.log = zap.NewNop()
	}
	if a.now == nil {
		a.now = time.Now
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(a.requestLogger)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/entry-types", a.listEntryTypes)

	r.Route("/profiles", func(pr chi.Router) {
		pr.Get("/", a.listProfiles)
		pr.Post("/", a.createProfile)

		pr.Route("/{profileID}", func(one chi.Router) {
			one.Get("/", a.getProfile)
			one.Delete("/", a.deleteProfile)
			one.Get("/entries", a.listEntries)
			one.Post("/entries", a.createEntry)
			one.Get("/stats", a.getStats)
		})
	})

	r.Delete("/entries/{entryID}", a.deleteEntry)

	r.Get("/selection", a.getSelection)
	r.Put("/selection", a.putSelection)

	return r
}

// requestLogger logs one line per request at debug level.
func (a *api) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		a.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", chimw.GetReqID(r.Context())))
	})
}
