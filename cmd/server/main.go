// @title           GenAI Space Backend API
// @version         1.0.0
// @description     Submission queue for AI interior design generation. Users upload inspiration and area images per row and submit them for generation; admins work the queue. Live updates are pushed over server-sent events.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"k8s.io/utils/clock"

	"genai-space-backend/internal/admin"
	"genai-space-backend/internal/cache"
	"genai-space-backend/internal/config"
	"genai-space-backend/internal/database"
	"genai-space-backend/internal/handlers"
	"genai-space-backend/internal/localstore"
	"genai-space-backend/internal/logger"
	"genai-space-backend/internal/metrics"
	"genai-space-backend/internal/objectstore"
	"genai-space-backend/internal/services"
	"genai-space-backend/internal/store"
	"genai-space-backend/internal/studio"
	"genai-space-backend/internal/submissions"
	"genai-space-backend/internal/supabase"
	"genai-space-backend/internal/tokens"
	"genai-space-backend/internal/wishlist"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.InitLog(logger.ParseLevel(cfg.LogLevel))
	defer func() { _ = log.Sync() }()
	undo := zap.ReplaceGlobals(log)
	defer undo()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	clk := clock.RealClock{}

	docs, closeDocs, err := newDocumentStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeDocs()

	blobs, err := newBlobStore(ctx, cfg, log)
	if err != nil {
		return err
	}

	local, err := localstore.Open(cfg.LocalDBPath)
	if err != nil {
		return fmt.Errorf("failed to open local store: %w", err)
	}
	defer local.Close()

	// Shared submission cache, one subscription per process.
	submissionCache := cache.New(submissions.NewRepository(docs, clk, log), log)
	projector := studio.NewProjector()
	submissionCache.Listen(metrics.SubmissionListener)
	submissionCache.Listen(projector.Apply)
	if err := submissionCache.Start(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to submissions: %w", err)
	}
	defer submissionCache.Close()

	storageService := services.NewStorageService(blobs, clk, log)
	ledger := tokens.NewLedger(cfg.TokenAllowance, log)
	drafts := studio.NewDraftBook(cfg.DraftRows, local, log)
	studioService := studio.NewService(drafts, storageService, submissionCache, ledger, projector, clk, log)
	adminService := admin.NewService(submissionCache, storageService, clk, cfg.ProgressStepInterval, log)
	defer adminService.Close()
	wishlistService := wishlist.NewService(local, log)

	router := gin.New()
	router.Use(logger.GinLogger(log, "http"), gin.Recovery())
	router.Use(newCORS(cfg.AllowedOrigins))

	metricMiddleware := metrics.NewMiddleware("genai_space")
	metricMiddleware.MustRegisterDefault()
	router.Use(metricMiddleware.Handler())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h := handlers.Handlers{
		Health:   handlers.NewHealthHandler(submissionCache),
		Studio:   handlers.NewStudioHandler(studioService),
		Tokens:   handlers.NewTokensHandler(ledger),
		Wishlist: handlers.NewWishlistHandler(wishlistService),
		Admin:    handlers.NewAdminHandler(adminService),
		Events:   handlers.NewEventsHandler(studioService, adminService, submissionCache, handlers.DefaultKeepAlive),
	}
	if memBlobs, ok := blobs.(*store.MemoryBlobStore); ok {
		h.Blobs = handlers.NewBlobsHandler(memBlobs)
	}
	handlers.RegisterRoutes(router, cfg, h)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting",
			zap.String("port", cfg.Port),
			zap.String("store_backend", cfg.StoreBackend),
			zap.String("blob_backend", cfg.BlobBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newDocumentStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (store.DocumentStore, func(), error) {
	if cfg.StoreBackend == config.BackendMemory {
		log.Warn("using in-memory document store, submissions are lost on restart")
		return store.NewMemoryStore(), func() {}, nil
	}

	migrator, err := database.NewMigrator(cfg.DatabaseURL, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize migrator: %w", err)
	}
	err = migrator.Run(ctx)
	migrator.Close()
	if err != nil {
		return nil, nil, fmt.Errorf("migration failed: %w", err)
	}

	client, err := supabase.NewClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	db, err := supabase.NewDatabaseClient(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database client: %w", err)
	}
	realtime, err := supabase.NewRealtimeClient(cfg.DatabaseURL, log)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to initialize change feed: %w", err)
	}

	closeFn := func() {
		if err := realtime.Close(); err != nil {
			log.Warn("failed to close change feed", zap.Error(err))
		}
		if err := db.Close(); err != nil {
			log.Warn("failed to close database", zap.Error(err))
		}
	}
	return supabase.NewDocumentStore(client, db, realtime, log), closeFn, nil
}

func newBlobStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (store.BlobStore, error) {
	switch cfg.BlobBackend {
	case config.BackendMinio:
		m, err := objectstore.NewMinioStore(
			objectstore.WithEndpoint(cfg.MinioEndpoint),
			objectstore.WithBucket(cfg.MinioBucket),
			objectstore.WithAccessKey(cfg.MinioAccessKey),
			objectstore.WithSecretKey(cfg.MinioSecretKey),
			objectstore.WithSSL(cfg.MinioUseSSL),
		)
		if err != nil {
			return nil, err
		}
		if err := m.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return m, nil
	case config.BackendMemory:
		log.Warn("using in-memory blob store, uploads are lost on restart")
		return store.NewMemoryBlobStore(strings.TrimRight(cfg.BaseURL, "/") + "/blobs"), nil
	default:
		return supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabaseServiceRoleKey, cfg.SupabaseStorageBucket), nil
	}
}

func newCORS(origins []string) gin.HandlerFunc {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
		c.AllowCredentials = true
	}
	return cors.New(c)
}
