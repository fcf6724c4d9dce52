package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/averyk/lifequest/internal/activity"
	"github.com/averyk/lifequest/internal/character"
	"github.com/averyk/lifequest/internal/database"
	"github.com/averyk/lifequest/internal/handler"
	"github.com/averyk/lifequest/internal/logger"
	"github.com/averyk/lifequest/internal/metrics"
	"github.com/averyk/lifequest/internal/tree"
)

type Server struct {
	httpServer       *http.Server
	dbPool           database.Pool
	characterService character.Service
	activityService  activity.Service
	treeService      tree.Service
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, characterService character.Service, activityService activity.Service, treeService tree.Service) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(RateLimitMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Character routes
		r.Route("/character", func(r chi.Router) {
			r.Post("/", handler.HandleCreateCharacter(characterService))
			r.Get("/", handler.HandleGetCharacter(characterService))
			r.Get("/full", handler.HandleGetCharacterFull(characterService))
			r.Get("/stats", handler.HandleGetCharacterStats(characterService))
			r.Get("/stat", handler.HandleGetCharacterStat(characterService))
			r.Post("/name", handler.HandleUpdateName(characterService))
			r.Post("/skill/use", handler.HandleUseSkill(characterService))
		})

		// Activity routes
		r.Route("/activity", func(r chi.Router) {
			r.Post("/log", handler.HandleLogActivity(activityService))
			r.Post("/log-batch", handler.HandleLogBatch(activityService))
			r.Get("/get", handler.HandleGetActivity(activityService))
			r.Get("/recent", handler.HandleGetRecentActivities(activityService))
			r.Get("/range", handler.HandleGetActivitiesByRange(activityService))
			r.Get("/types", handler.HandleGetActivityTypes())
		})

		// Skill tree routes
		treeHandlers := handler.NewTreeHandlers(treeService)
		r.Route("/tree", func(r chi.Router) {
			r.Get("/", treeHandlers.HandleGetTree())
			r.Get("/node", treeHandlers.HandleGetNode())
			r.Get("/reachable", treeHandlers.HandleGetReachable())
			r.Get("/can-allocate", treeHandlers.HandleCanAllocate())
			r.Post("/allocate", treeHandlers.HandleAllocate())
			r.Post("/respec", treeHandlers.HandleRespec())
		})

		// Admin routes
		r.Route("/admin", func(r chi.Router) {
			r.Post("/character/add-points", handler.HandleAddStatPoints(characterService))
			r.Post("/tree/reload", treeHandlers.HandleInvalidateCache())
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:           dbPool,
		characterService: characterService,
		activityService:  activityService,
		treeService:      treeService,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Health checks and scrapes would dominate the log otherwise
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
