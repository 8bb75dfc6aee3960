package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Anilcodes01/analyze-service/internal/api"
	"github.com/Anilcodes01/analyze-service/internal/domain/port"
	"github.com/Anilcodes01/analyze-service/internal/infra/cloudinary"
	"github.com/Anilcodes01/analyze-service/internal/infra/config"
	"github.com/Anilcodes01/analyze-service/internal/infra/deepface"
	"github.com/Anilcodes01/analyze-service/internal/infra/download"
	"github.com/Anilcodes01/analyze-service/internal/infra/ffmpeg"
	"github.com/Anilcodes01/analyze-service/internal/infra/metrics"
	miniostorage "github.com/Anilcodes01/analyze-service/internal/infra/minio"
	"github.com/Anilcodes01/analyze-service/internal/infra/tracing"
	"github.com/Anilcodes01/analyze-service/internal/usecase"
	"github.com/Anilcodes01/analyze-service/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	fatalOnErr(err, "load config")

	log, err := logger.New(cfg.LogLevel)
	fatalOnErr(err, "init logger")
	defer log.Sync()

	log.Info("starting analyze-service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Tracing (non-fatal if Jaeger unavailable)
	tp, err := tracing.InitTracer(ctx, cfg.JaegerEndpoint)
	if err != nil {
		log.Warn("tracing init failed, continuing without tracing", zap.Error(err))
	} else {
		defer tp.Shutdown(ctx)
	}

	uploader, err := newUploader(ctx, cfg, log)
	fatalOnErr(err, "create image uploader")

	// Infra adapters
	fetcher := download.NewFetcher(cfg.FetchTimeout, cfg.MaxVideoBytes, log)
	prober := ffmpeg.NewProber()
	sampler := ffmpeg.NewSampler(cfg.SampleInterval, cfg.FFmpegQuality, log)
	snapshotter := ffmpeg.NewSnapshotter(cfg.FFmpegQuality)
	detector := deepface.NewClient(cfg.DetectorURL, cfg.DetectorTimeout, log)

	// Use cases
	timeline := usecase.NewTimelineAnalyzer(prober, sampler, detector, log, usecase.TimelineConfig{
		SampleInterval:      cfg.SampleInterval,
		ConfidenceThreshold: cfg.ConfidenceThreshold,
	})
	analyze := usecase.NewAnalyzeVideoUseCase(fetcher, timeline, snapshotter, uploader, log, cfg.TempDir)

	// Metrics server
	metricsSrv := metrics.StartMetricsServer(cfg.MetricsPort, log)

	// HTTP API
	handler := api.NewAnalyzeHandler(analyze, cfg.AnalyzeTimeout, log)
	router := api.NewRouter(handler, log)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("http server starting", zap.Int("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", zap.Error(err))
			cancel()
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("received shutdown signal", zap.String("signal", sig.String()))
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	srv.Shutdown(shutdownCtx)
	metricsSrv.Shutdown(shutdownCtx)

	log.Info("analyze-service stopped")
}

func newUploader(ctx context.Context, cfg *config.Config, log *zap.Logger) (port.ImageUploader, error) {
	switch cfg.UploadProvider {
	case "cloudinary":
		return cloudinary.NewUploader(
			cfg.CloudinaryCloudName,
			cfg.CloudinaryAPIKey,
			cfg.CloudinaryAPISecret,
			cfg.CloudinaryFolder,
			log,
		)
	case "s3":
		storage, err := miniostorage.NewStorage(miniostorage.StorageConfig{
			Endpoint:    cfg.MinIOEndpoint,
			AccessKey:   cfg.MinIOAccessKey,
			SecretKey:   cfg.MinIOSecretKey,
			UseSSL:      cfg.MinIOUseSSL,
			ImageBucket: cfg.MinIOImageBucket,
			PublicURL:   cfg.MinIOPublicURL,
		})
		if err != nil {
			return nil, err
		}
		if err := storage.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return storage, nil
	default:
		return nil, fmt.Errorf("unknown upload provider %q", cfg.UploadProvider)
	}
}

func fatalOnErr(err error, msg string) {
	if err != nil {
		panic(msg + ": " + err.Error())
	}
}
