package port

import (
	"context"

	"github.com/Anilcodes01/analyze-service/internal/domain/entity"
)

type EmotionDetector interface {
	Detect(ctx context.Context, imagePath string) (*entity.EmotionReading, error)
}
