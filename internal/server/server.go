package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/plategate/apiserver/config"
	"github.com/plategate/apiserver/internal/auth"
	"github.com/plategate/apiserver/internal/db"
	"github.com/plategate/apiserver/internal/events"
	"github.com/plategate/apiserver/internal/export"
	"github.com/plategate/apiserver/internal/handlers"
	"github.com/plategate/apiserver/internal/services"
	"github.com/plategate/apiserver/internal/storage"
	"github.com/plategate/apiserver/internal/store"
	"github.com/rs/zerolog"
)

// Server wraps the HTTP server, the export job and shared clients.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	exportJob  *export.Job
	publisher  *events.Publisher
	logger     zerolog.Logger
}

// New constructs a fully wired Server: database (with schema init), object
// storage, optional event broker, services, handlers and the export job.
func New(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*Server, error) {
	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.EnsureSchema(ctx, dbConn, cfg, logger); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	objectStore, err := newObjectStorage(ctx, cfg.Storage)
	if err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("init object storage: %w", err)
	}
	if err := objectStore.EnsureBucket(ctx); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("ensure bucket: %w", err)
	}

	publisher, err := newEventPublisher(ctx, cfg.Events)
	if err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("init event publisher: %w", err)
	}

	userRepo := store.NewUserRepository(dbConn)
	provinceRepo := store.NewProvinceRepository(dbConn)
	plateRepo := store.NewPlateRepository(dbConn)
	accessRepo := store.NewAccessRepository(dbConn)
	detectionRepo := store.NewDetectionRepository(dbConn)

	var servicePublisher services.EventPublisher
	if publisher != nil {
		servicePublisher = publisher
	}

	userService := services.NewUserService(userRepo)
	provinceService := services.NewProvinceService(provinceRepo)
	plateService := services.NewPlateService(plateRepo, provinceRepo)
	accessService := services.NewAccessService(accessRepo, servicePublisher, logger)
	detectionService := services.NewDetectionService(detectionRepo, servicePublisher, logger)
	exportService := services.NewExportService(plateRepo, objectStore, cfg.Export)

	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.CORS.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Get("/healthz", handlers.Healthz)
	router.Route("/api", func(r chi.Router) {
		handlers.AuthRouter(r, userService, tokens, logger)
		handlers.PlateRouter(r, plateService, logger)
		handlers.ProvinceRouter(r, provinceService, logger)
		handlers.HistoryRouter(r, accessService, logger)
		handlers.DetectionRouter(r, detectionService, logger)
	})

	exportJob := export.NewJob(exportService, cfg.Export.Interval, logger)

	port := cfg.ServerPort
	if port == 0 {
		port = 8000
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
		exportJob:  exportJob,
		publisher:  publisher,
		logger:     logger,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start launches the export job and runs the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.exportJob.Start(ctx)
	s.logger.Info().Str("addr", s.httpServer.Addr).Msg("starting server")
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	s.exportJob.Stop()
	if s.publisher != nil {
		_ = s.publisher.Close()
	}
	if s.db != nil {
		_ = s.db.Close()
	}
	return s.httpServer.Close()
}

func newObjectStorage(ctx context.Context, cfg config.StorageConfig) (*storage.Storage, error) {
	switch cfg.Backend {
	case config.StorageBackendMinio:
		client, err := storage.NewMinioClient(cfg.Minio)
		if err != nil {
			return nil, err
		}
		return storage.NewStorage(client), nil
	case config.StorageBackendGCS:
		client, err := storage.NewGCSClient(ctx, cfg.GCS)
		if err != nil {
			return nil, err
		}
		return storage.NewStorage(client), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

func newEventPublisher(ctx context.Context, cfg config.EventsConfig) (*events.Publisher, error) {
	switch cfg.Backend {
	case "":
		return nil, nil
	case config.EventsBackendRabbitMQ:
		client, err := events.NewRabbitMQClient(cfg.RabbitMQ)
		if err != nil {
			return nil, err
		}
		return events.New(client), nil
	case config.EventsBackendPubSub:
		client, err := events.NewPubSubClient(ctx, cfg.PubSub)
		if err != nil {
			return nil, err
		}
		return events.New(client), nil
	default:
		return nil, fmt.Errorf("unknown events backend %q", cfg.Backend)
	}
}
