package port

import (
	"context"

	"github.com/Anilcodes01/analyze-service/internal/domain/entity"
)

type VideoFetcher interface {
	Fetch(ctx context.Context, videoURL string, destDir string) (*entity.VideoAsset, error)
}
