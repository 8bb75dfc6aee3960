package port

import (
	"context"

	"github.com/Anilcodes01/analyze-service/internal/domain/entity"
)

type VideoProber interface {
	Duration(ctx context.Context, videoPath string) (float64, error)
}

type FrameSampler interface {
	Sample(ctx context.Context, videoPath string, outputDir string) ([]entity.FrameSample, error)
}
