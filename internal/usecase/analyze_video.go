package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Anilcodes01/analyze-service/internal/domain/entity"
	"github.com/Anilcodes01/analyze-service/internal/domain/port"
	"github.com/Anilcodes01/analyze-service/internal/infra/metrics"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// AnalyzeVideoUseCase runs the full request pipeline: fetch the remote
// video into a request-scoped workdir, build the emotion timeline, then
// snapshot and upload one representative frame per interval.
type AnalyzeVideoUseCase struct {
	fetcher     port.VideoFetcher
	timeline    *TimelineAnalyzer
	snapshotter port.FrameSnapshotter
	uploader    port.ImageUploader
	logger      *zap.Logger
	tempDir     string
}

func NewAnalyzeVideoUseCase(
	fetcher port.VideoFetcher,
	timeline *TimelineAnalyzer,
	snapshotter port.FrameSnapshotter,
	uploader port.ImageUploader,
	logger *zap.Logger,
	tempDir string,
) *AnalyzeVideoUseCase {
	return &AnalyzeVideoUseCase{
		fetcher:     fetcher,
		timeline:    timeline,
		snapshotter: snapshotter,
		uploader:    uploader,
		logger:      logger,
		tempDir:     tempDir,
	}
}

func (uc *AnalyzeVideoUseCase) Execute(ctx context.Context, req entity.AnalyzeRequest) (*entity.AnalysisReport, error) {
	tracer := otel.Tracer("usecase")
	ctx, span := tracer.Start(ctx, "AnalyzeVideoUseCase.Execute")
	defer span.End()

	totalTimer := time.Now()

	requestID := uuid.New().String()
	span.SetAttributes(
		attribute.String("request.id", requestID),
		attribute.String("request.video_url", req.VideoURL),
		attribute.String("request.expression", req.Expression),
	)

	log := uc.logger.With(
		zap.String("request_id", requestID),
		zap.String("video_url", req.VideoURL),
	)

	metrics.ActiveRequests.Inc()
	defer metrics.ActiveRequests.Dec()

	workDir := filepath.Join(uc.tempDir, requestID)
	if err := os.MkdirAll(workDir, 0755); err != nil {
		metrics.RequestsTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("create workdir: %w", err)
	}
	defer os.RemoveAll(workDir)

	fetchStart := time.Now()
	fetchCtx, fetchSpan := tracer.Start(ctx, "fetch_video")
	asset, err := uc.fetcher.Fetch(fetchCtx, req.VideoURL, workDir)
	fetchSpan.End()
	if err != nil {
		log.Error("video fetch failed", zap.Error(err))
		metrics.RequestsTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("fetch video: %w", err)
	}
	metrics.StageDuration.WithLabelValues("fetch").Observe(time.Since(fetchStart).Seconds())

	timeline, err := uc.timeline.Analyze(ctx, asset.Path, workDir)
	if err != nil {
		log.Error("timeline analysis failed", zap.Error(err))
		metrics.RequestsTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("analyze timeline: %w", err)
	}

	selected := timeline.SelectExpressions(req.Expression)

	exportStart := time.Now()
	exportCtx, exportSpan := tracer.Start(ctx, "export_intervals")
	expressions, err := uc.exportIntervals(exportCtx, requestID, asset.Path, selected, log)
	exportSpan.End()
	if err != nil {
		log.Error("interval export failed", zap.Error(err))
		metrics.RequestsTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("export intervals: %w", err)
	}
	metrics.StageDuration.WithLabelValues("export").Observe(time.Since(exportStart).Seconds())

	metrics.RequestsTotal.WithLabelValues("completed").Inc()
	metrics.StageDuration.WithLabelValues("total").Observe(time.Since(totalTimer).Seconds())

	log.Info("analysis completed",
		zap.Float64("duration_secs", timeline.Duration),
		zap.Int("frames_analyzed", timeline.FramesAnalyzed),
		zap.String("expression", req.Expression),
	)

	return &entity.AnalysisReport{
		Expressions:    expressions,
		Duration:       timeline.Duration,
		FramesAnalyzed: timeline.FramesAnalyzed,
		Interval:       timeline.SampleInterval,
	}, nil
}

// exportIntervals snapshots the peak-confidence frame of every selected
// interval and uploads it. A failed snapshot or upload drops that interval
// from the report rather than failing the request.
func (uc *AnalyzeVideoUseCase) exportIntervals(
	ctx context.Context,
	requestID string,
	videoPath string,
	selected map[string][]entity.Interval,
	log *zap.Logger,
) (map[string][]entity.ImageRef, error) {
	expressions := make(map[string][]entity.ImageRef, len(selected))
	for name, intervals := range selected {
		refs := make([]entity.ImageRef, 0, len(intervals))
		for i, iv := range intervals {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			image, err := uc.snapshotter.Snapshot(ctx, videoPath, iv.PeakSeconds)
			if err != nil {
				log.Warn("snapshot failed",
					zap.String("emotion", name),
					zap.String("timestamp", iv.PeakTimestamp),
					zap.Error(err),
				)
				continue
			}

			key := fmt.Sprintf("%s/%s_%d", requestID, name, i)
			url, err := uc.uploader.UploadImage(ctx, key, image)
			if err != nil {
				metrics.UploadsTotal.WithLabelValues("failed").Inc()
				log.Warn("image upload failed",
					zap.String("emotion", name),
					zap.String("key", key),
					zap.Error(err),
				)
				continue
			}
			metrics.UploadsTotal.WithLabelValues("completed").Inc()

			refs = append(refs, entity.ImageRef{
				URL:        url,
				Timestamp:  iv.PeakTimestamp,
				Start:      iv.Start,
				End:        iv.End,
				Confidence: iv.Confidence,
			})
		}
		expressions[name] = refs
	}
	return expressions, nil
}
