package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Anilcodes01/analyze-service/internal/domain/entity"
	"go.uber.org/zap"
)

// Fetcher downloads a remote video into a request-scoped directory. The name
// encodes the fetch time and an extension derived from the Content-Type so
// ffmpeg gets a hint about the container.
type Fetcher struct {
	http     *http.Client
	maxBytes int64
	logger   *zap.Logger
}

func NewFetcher(timeout time.Duration, maxBytes int64, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		http:     &http.Client{Timeout: timeout},
		maxBytes: maxBytes,
		logger:   logger,
	}
}

func (f *Fetcher) Fetch(ctx context.Context, videoURL string, destDir string) (*entity.VideoAsset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, videoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build fetch request: %w", err)
	}

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch video: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch video: unexpected status %s", resp.Status)
	}

	mimeType := resp.Header.Get("Content-Type")
	path := filepath.Join(destDir, fmt.Sprintf("video_%d.%s", time.Now().Unix(), extensionFor(mimeType)))

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create video file: %w", err)
	}
	defer file.Close()

	body := resp.Body
	if f.maxBytes > 0 {
		body = io.NopCloser(io.LimitReader(resp.Body, f.maxBytes+1))
	}
	written, err := io.Copy(file, body)
	if err != nil {
		return nil, fmt.Errorf("write video file: %w", err)
	}
	if f.maxBytes > 0 && written > f.maxBytes {
		return nil, fmt.Errorf("video exceeds %d byte limit", f.maxBytes)
	}

	f.logger.Info("video fetched",
		zap.String("path", path),
		zap.Int64("bytes", written),
	)

	return &entity.VideoAsset{Path: path, MimeType: mimeType, Size: written}, nil
}

func extensionFor(contentType string) string {
	ct := strings.TrimSpace(strings.Split(contentType, ";")[0])
	if ct == "" {
		ct = "video/mp4"
	}
	parts := strings.Split(ct, "/")
	ext := parts[len(parts)-1]
	if ext == "" {
		return "mp4"
	}
	return ext
}
