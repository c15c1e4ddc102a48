package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"tigawane/internal/bootstrap/logging"
	"tigawane/internal/errs"
	"tigawane/internal/ports"
	"tigawane/internal/usecase/sharing"
)

// Server exposes the sharing service over HTTP. Identity is the
// X-User-ID header: authentication runs in front of this API, the header is
// the seam it hands the verified user through.
type Server struct {
	svc  *sharing.Service
	feed ports.ChangeFeed
	http *http.Server
}

func NewServer(addr string, svc *sharing.Service, feed ports.ChangeFeed, uploadsDir string) *Server {
	s := &Server{svc: svc, feed: feed}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Route("/items", func(r chi.Router) {
		r.Get("/", s.handleListItems)
		r.Post("/", s.handleShareItem)
		r.Get("/nearby", s.handleListNearby)
		r.Route("/{itemID}", func(r chi.Router) {
			r.Get("/", s.handleGetItem)
			r.Patch("/", s.handleUpdateItem)
			r.Delete("/", s.handleDeleteItem)
			r.Post("/claims", s.handleClaimItem)
		})
	})
	r.Route("/claims", func(r chi.Router) {
		r.Get("/", s.handleListMyClaims)
		r.Post("/{claimID}/respond", s.handleRespondToClaim)
		r.Post("/{claimID}/complete", s.handleCompleteClaim)
		r.Post("/{claimID}/cancel", s.handleCancelClaim)
	})
	r.Route("/profiles", func(r chi.Router) {
		r.Get("/{userID}", s.handleGetProfile)
		r.Put("/{userID}", s.handleUpdateProfile)
	})
	r.Route("/collaborations", func(r chi.Router) {
		r.Get("/", s.handleListCollaborations)
		r.Post("/", s.handleRequestCollaboration)
		r.Post("/{requestID}/respond", s.handleRespondToCollaboration)
	})
	r.Get("/notifications", s.handleListNotifications)
	r.Post("/notifications/{notificationID}/read", s.handleMarkNotificationRead)
	r.Get("/stats", s.handleStats)
	r.Get("/feed", s.handleFeed)

	if uploadsDir != "" {
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir)))
		r.Get("/uploads/*", fileServer.ServeHTTP)
	}

	s.http = &http.Server{Addr: addr, Handler: r}
	return s
}

// Handler returns the router, mainly for httptest.
func (s *Server) Handler() http.Handler { return s.http.Handler }

func (s *Server) Start(ctx context.Context) error {
	logging.Info(ctx, "http server started", slog.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errs.Wrap(err, "serve http")
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// requestLogger seeds the context logger with per-request attributes so
// every downstream log line carries them.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logging.WithAttrs(r.Context(),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userID extracts the caller identity set by the auth layer in front of the
// API. Empty means the request is anonymous; handlers that mutate reject it.
func userID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-User-ID"))
}
