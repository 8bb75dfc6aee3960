package ffmpeg

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"

	"github.com/Anilcodes01/analyze-service/internal/domain/entity"
	"go.uber.org/zap"
)

type Sampler struct {
	interval float64
	quality  int
	logger   *zap.Logger
}

func NewSampler(interval float64, quality int, logger *zap.Logger) *Sampler {
	return &Sampler{interval: interval, quality: quality, logger: logger}
}

// Sample decodes one frame per sampling step into outputDir and returns the
// samples in playback order, each stamped with its elapsed offset.
func (s *Sampler) Sample(ctx context.Context, videoPath string, outputDir string) ([]entity.FrameSample, error) {
	framePattern := filepath.Join(outputDir, "frame_%05d.jpg")
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-i", videoPath,
		"-vf", fmt.Sprintf("fps=1/%g", s.interval),
		"-q:v", fmt.Sprintf("%d", s.quality),
		"-y",
		framePattern,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg error: %w, output: %s", err, string(output))
	}

	frames, err := filepath.Glob(filepath.Join(outputDir, "frame_*.jpg"))
	if err != nil {
		return nil, fmt.Errorf("glob frames: %w", err)
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("no frames sampled from video")
	}
	sort.Strings(frames)

	samples := make([]entity.FrameSample, 0, len(frames))
	for i, path := range frames {
		seconds := float64(i) * s.interval
		samples = append(samples, entity.FrameSample{
			Path:      path,
			Timestamp: entity.FormatTimestamp(seconds),
			Seconds:   seconds,
			Index:     i,
		})
	}

	s.logger.Info("frames sampled",
		zap.Int("count", len(samples)),
		zap.Float64("interval", s.interval),
	)

	return samples, nil
}
