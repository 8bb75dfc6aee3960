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
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

// TimelineAnalyzer turns a video on disk into an emotion timeline: probe the
// duration, sample frames at a fixed interval, classify each frame, then
// coalesce contiguous qualifying frames into intervals.
type TimelineAnalyzer struct {
	prober   port.VideoProber
	sampler  port.FrameSampler
	detector port.EmotionDetector
	logger   *zap.Logger
	cfg      TimelineConfig
}

type TimelineConfig struct {
	SampleInterval      float64
	ConfidenceThreshold float64
}

func NewTimelineAnalyzer(
	prober port.VideoProber,
	sampler port.FrameSampler,
	detector port.EmotionDetector,
	logger *zap.Logger,
	cfg TimelineConfig,
) *TimelineAnalyzer {
	return &TimelineAnalyzer{
		prober:   prober,
		sampler:  sampler,
		detector: detector,
		logger:   logger,
		cfg:      cfg,
	}
}

func (a *TimelineAnalyzer) Analyze(ctx context.Context, videoPath string, workDir string) (*entity.Timeline, error) {
	tracer := otel.Tracer("usecase")

	probeStart := time.Now()
	probeCtx, probeSpan := tracer.Start(ctx, "probe_video")
	duration, err := a.prober.Duration(probeCtx, videoPath)
	probeSpan.End()
	if err != nil {
		a.logger.Warn("could not probe video duration", zap.Error(err))
	}
	metrics.StageDuration.WithLabelValues("probe").Observe(time.Since(probeStart).Seconds())

	sampleStart := time.Now()
	sampleCtx, sampleSpan := tracer.Start(ctx, "sample_frames")
	framesDir := filepath.Join(workDir, "frames")
	if err := os.MkdirAll(framesDir, 0755); err != nil {
		sampleSpan.End()
		return nil, fmt.Errorf("create frames dir: %w", err)
	}
	samples, err := a.sampler.Sample(sampleCtx, videoPath, framesDir)
	sampleSpan.End()
	if err != nil {
		return nil, fmt.Errorf("sample frames: %w", err)
	}
	metrics.StageDuration.WithLabelValues("sample").Observe(time.Since(sampleStart).Seconds())
	metrics.FramesSampledTotal.Add(float64(len(samples)))

	classifyStart := time.Now()
	classifyCtx, classifySpan := tracer.Start(ctx, "classify_frames")
	frames := make([]entity.FrameEmotion, 0, len(samples))
	for _, sample := range samples {
		if err := classifyCtx.Err(); err != nil {
			classifySpan.End()
			return nil, err
		}

		reading, err := a.detector.Detect(classifyCtx, sample.Path)
		os.Remove(sample.Path)
		if err != nil {
			a.logger.Warn("frame classification failed",
				zap.String("timestamp", sample.Timestamp),
				zap.Error(err),
			)
			continue
		}

		metrics.DetectionsTotal.WithLabelValues(reading.Label).Inc()
		frames = append(frames, entity.FrameEmotion{
			Timestamp:  sample.Timestamp,
			Label:      reading.Label,
			Confidence: reading.Confidence,
			Seconds:    sample.Seconds,
		})
	}
	classifySpan.End()
	metrics.StageDuration.WithLabelValues("classify").Observe(time.Since(classifyStart).Seconds())

	intervals := entity.Coalesce(frames, a.cfg.ConfidenceThreshold, a.cfg.SampleInterval)

	a.logger.Info("timeline built",
		zap.Int("frames_analyzed", len(frames)),
		zap.Int("intervals", len(intervals)),
		zap.Float64("video_duration", duration),
	)

	return &entity.Timeline{
		Intervals:      entity.GroupIntervals(intervals),
		Duration:       duration,
		FramesAnalyzed: len(frames),
		SampleInterval: a.cfg.SampleInterval,
	}, nil
}
