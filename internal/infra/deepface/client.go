package deepface

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Anilcodes01/analyze-service/internal/domain/entity"
	"go.uber.org/zap"
)

// Client talks to a DeepFace-compatible analysis server. The server scores
// emotions as percentages; readings are normalized to the 0..1 scale the
// rest of the pipeline works in.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type analyzeRequest struct {
	Img     string   `json:"img"`
	Actions []string `json:"actions"`
}

type analyzeResult struct {
	DominantEmotion string             `json:"dominant_emotion"`
	Emotion         map[string]float64 `json:"emotion"`
	FaceConfidence  float64            `json:"face_confidence"`
}

type analyzeResponse struct {
	Results []analyzeResult `json:"results"`
}

func (c *Client) Detect(ctx context.Context, imagePath string) (*entity.EmotionReading, error) {
	img, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, fmt.Errorf("read frame: %w", err)
	}

	payload, err := json.Marshal(analyzeRequest{
		Img:     "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(img),
		Actions: []string{"emotion"},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal analyze request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build analyze request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call detector: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read detector response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("detector %s: %s", resp.Status, string(body))
	}

	var parsed analyzeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode detector response: %w", err)
	}
	if len(parsed.Results) == 0 {
		return nil, fmt.Errorf("no face detected")
	}

	result := parsed.Results[0]
	scores := make(map[string]float64, len(result.Emotion))
	for label, pct := range result.Emotion {
		scores[strings.ToLower(label)] = pct / 100
	}
	label := strings.ToLower(result.DominantEmotion)

	c.logger.Debug("frame classified",
		zap.String("label", label),
		zap.Float64("confidence", scores[label]),
		zap.Float64("face_confidence", result.FaceConfidence),
	)

	return &entity.EmotionReading{
		Label:      label,
		Confidence: scores[label],
		Scores:     scores,
	}, nil
}
