package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/posterlab/posters-ms-go/internal/cache"
	"github.com/posterlab/posters-ms-go/internal/config"
	"github.com/posterlab/posters-ms-go/internal/db"
	"github.com/posterlab/posters-ms-go/internal/handler/api"
	"github.com/posterlab/posters-ms-go/internal/logger"
	cMiddleware "github.com/posterlab/posters-ms-go/internal/middleware"
	"github.com/posterlab/posters-ms-go/internal/port"
	"github.com/posterlab/posters-ms-go/internal/poster"
	"github.com/posterlab/posters-ms-go/internal/repository/mariadb"
	"github.com/posterlab/posters-ms-go/internal/storage"
	"github.com/posterlab/posters-ms-go/internal/task"
	imageSvc "github.com/posterlab/posters-ms-go/internal/usecase/image"
	msuuid "github.com/posterlab/posters-ms-go/internal/uuid"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()

	database := initDb(ctx, cfg)

	r := initRouter(ctx)

	strg := initStorage(ctx, cfg)
	initBuckets(ctx, strg, []string{imageSvc.StagingBucket, imageSvc.PostersBucket})

	imageRepo := mariadb.NewImageRepository(database.DB)

	var ca port.Cache
	var dispatcher port.TaskDispatcher
	if cfg.RedisAddr != "" {
		ca = cache.NewCache(cfg.RedisAddr, cfg.RedisPassword)
		dispatcher = task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword)
		logger.Info(ctx, "✅  Redis queue and cache enabled")
	} else {
		// no Redis: generate posters inside this process so triggered
		// images still resolve within a bounded time
		rend := initRenderer(ctx)
		generatorSvc := imageSvc.NewPosterGenerator(imageRepo, rend, strg)
		ca = cache.NewNoop()
		dispatcher = task.NewInProcessDispatcher(generatorSvc, cfg.ProcessTimeout)
		logger.Warn(ctx, "⚠️  Redis not configured; posters are generated in-process and caching is disabled")
	}

	r.Get("/health", api.HealthHandler())

	uploaderSvc := imageSvc.NewImageUploader(imageRepo, strg, msuuid.NewUUID)
	r.Post("/images", api.UploadImageHandler(uploaderSvc))

	statusSvc := imageSvc.NewStatusGetter(imageRepo)
	r.With(cMiddleware.WithImageID()).
		Get("/images/{id}/status", api.GetImageStatusHandler(statusSvc))

	triggerSvc := imageSvc.NewProcessTrigger(imageRepo, dispatcher)
	r.With(cMiddleware.WithImageID()).
		Post("/images/{id}/process", api.TriggerProcessHandler(triggerSvc))

	downloadSvc := imageSvc.NewImageDownloader(imageRepo, strg)
	r.With(cMiddleware.WithImageID()).
		Get("/images/{id}/download", api.DownloadImageHandler(downloadSvc))

	signedURLSvc := imageSvc.NewSignedURLGetter(imageRepo, strg, ca, cfg.SignedURLTTL)
	r.With(cMiddleware.WithImageID()).
		Get("/images/{id}/signed-url", api.GetSignedURLHandler(signedURLSvc))

	listerSvc := imageSvc.NewImageLister(imageRepo)
	r.With(cMiddleware.WithJWTAuth(cfg.JWTSecret)).
		Get("/images", api.ListImagesHandler(listerSvc))

	listenRouter(ctx, r, cfg, database, dispatcher)
}

func initDb(ctx context.Context, cfg *config.Settings) *db.Database {
	logger.Info(ctx, "initialising database...")

	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}

	return database
}

func initRouter(ctx context.Context) *chi.Mux {
	logger.Info(ctx, "initialising router...")

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.NotFound(api.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	return r
}

func initStorage(ctx context.Context, cfg *config.Settings) port.Storage {
	strg, err := storage.NewStorage(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
	)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}

	return strg
}

func initBuckets(ctx context.Context, strg port.Storage, buckets []string) {
	for _, b := range buckets {
		if err := strg.InitBucket(b); err != nil {
			logger.Errorf(ctx, "❌  Failed to initialize bucket %q: %v", b, err)
			os.Exit(1)
		}
	}
}

func initRenderer(ctx context.Context) port.PosterRenderer {
	rend, err := poster.NewRenderer()
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize poster renderer: %v", err)
		os.Exit(1)
	}
	return rend
}

func listenRouter(ctx context.Context, r *chi.Mux, cfg *config.Settings, database *db.Database, dispatcher port.TaskDispatcher) {
	srv := &http.Server{Addr: ":" + strconv.Itoa(cfg.ServerPort), Handler: r}

	// start serving
	go func() {
		logger.Infof(ctx, "🚀 API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Listen error: %v", err)
			os.Exit(1)
		}
	}()

	// block until we get SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "❌  Server shutdown failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "✅  Server gracefully stopped")

	// let in-process generations resolve before the DB goes away
	if inProc, ok := dispatcher.(*task.InProcessDispatcher); ok {
		inProc.Wait()
	}

	if err := database.Close(); err != nil {
		logger.Errorf(ctx, "DB close error: %v", err)
		os.Exit(1)
	}
}
