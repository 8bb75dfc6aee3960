package port

import "context"

type FrameSnapshotter interface {
	Snapshot(ctx context.Context, videoPath string, seconds float64) ([]byte, error)
}
