package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

type Snapshotter struct {
	quality int
}

func NewSnapshotter(quality int) *Snapshotter {
	return &Snapshotter{quality: quality}
}

// Snapshot decodes the single frame nearest the given offset and returns it
// as JPEG bytes without touching disk.
func (s *Snapshotter) Snapshot(ctx context.Context, videoPath string, seconds float64) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-ss", fmt.Sprintf("%.2f", seconds),
		"-i", videoPath,
		"-vframes", "1",
		"-q:v", fmt.Sprintf("%d", s.quality),
		"-f", "image2pipe",
		"-vcodec", "mjpeg",
		"pipe:1",
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg error: %w, output: %s", err, stderr.String())
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("no frame decoded at %.2fs", seconds)
	}

	return stdout.Bytes(), nil
}
