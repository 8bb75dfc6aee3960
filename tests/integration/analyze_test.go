package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Anilcodes01/analyze-service/internal/api"
	"github.com/Anilcodes01/analyze-service/internal/domain/entity"
	"github.com/Anilcodes01/analyze-service/internal/infra/deepface"
	"github.com/Anilcodes01/analyze-service/internal/infra/download"
	"github.com/Anilcodes01/analyze-service/internal/infra/ffmpeg"
	miniostorage "github.com/Anilcodes01/analyze-service/internal/infra/minio"
	"github.com/Anilcodes01/analyze-service/internal/usecase"
	"github.com/Anilcodes01/analyze-service/pkg/logger"
	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcminio "github.com/testcontainers/testcontainers-go/modules/minio"
)

func TestAnalyzeVideoEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	for _, bin := range []string{"ffmpeg", "ffprobe"} {
		if _, err := exec.LookPath(bin); err != nil {
			t.Skipf("%s not found in PATH", bin)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// Generate a two second test clip
	videoPath := filepath.Join(t.TempDir(), "test.mp4")
	gen := exec.CommandContext(ctx, "ffmpeg",
		"-f", "lavfi",
		"-i", "testsrc=duration=2:size=320x240:rate=30",
		"-pix_fmt", "yuv420p",
		"-y", videoPath,
	)
	out, err := gen.CombinedOutput()
	require.NoError(t, err, "generate test video: %s", string(out))

	// Serve the clip over HTTP
	videoSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, videoPath)
	}))
	defer videoSrv.Close()

	// Stub detector: every frame reads happy at 91%
	detectorSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"results": [{"dominant_emotion": "happy", "emotion": {"happy": 91.0, "neutral": 6.0, "sad": 3.0}, "face_confidence": 0.99}]}`)
	}))
	defer detectorSrv.Close()

	// Start MinIO container
	minioContainer, err := tcminio.Run(ctx,
		"minio/minio:latest",
		tcminio.WithUsername("minioadmin"),
		tcminio.WithPassword("minioadmin"),
	)
	t.Cleanup(func() {
		if minioContainer != nil {
			_ = minioContainer.Terminate(context.Background())
		}
	})
	require.NoError(t, err)

	minioEndpoint, err := minioContainer.ConnectionString(ctx)
	require.NoError(t, err)

	storage, err := miniostorage.NewStorage(miniostorage.StorageConfig{
		Endpoint:    minioEndpoint,
		AccessKey:   "minioadmin",
		SecretKey:   "minioadmin",
		UseSSL:      false,
		ImageBucket: "frames",
	})
	require.NoError(t, err)
	require.NoError(t, storage.EnsureBucket(ctx))

	// Wire the pipeline
	log, _ := logger.New("debug")
	timeline := usecase.NewTimelineAnalyzer(
		ffmpeg.NewProber(),
		ffmpeg.NewSampler(0.5, 2, log),
		deepface.NewClient(detectorSrv.URL, 30*time.Second, log),
		log,
		usecase.TimelineConfig{SampleInterval: 0.5, ConfidenceThreshold: 0.5},
	)
	analyze := usecase.NewAnalyzeVideoUseCase(
		download.NewFetcher(time.Minute, 1<<30, log),
		timeline,
		ffmpeg.NewSnapshotter(2),
		storage,
		log,
		t.TempDir(),
	)

	// Drive through the HTTP API
	handler := api.NewAnalyzeHandler(analyze, 5*time.Minute, log)
	apiSrv := httptest.NewServer(api.NewRouter(handler, log))
	defer apiSrv.Close()

	body := fmt.Sprintf(`{"videoUrl": %q, "expression": "all"}`, videoSrv.URL+"/test.mp4")
	resp, err := http.Post(apiSrv.URL+"/api/analyze", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var report entity.AnalysisReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))

	// Assert report
	assert.InDelta(t, 2.0, report.Duration, 0.5)
	assert.Greater(t, report.FramesAnalyzed, 0)
	assert.Equal(t, 0.5, report.Interval)
	assert.Len(t, report.Expressions, 7)

	require.NotEmpty(t, report.Expressions["happy"], "expected a happy interval")
	ref := report.Expressions["happy"][0]
	assert.Equal(t, "00:00:00", ref.Start)
	assert.InDelta(t, 0.91, ref.Confidence, 1e-6)
	assert.Contains(t, ref.URL, "/frames/")
	assert.Empty(t, report.Expressions["sad"])

	// Verify the uploaded image exists in the bucket
	minioClient, err := miniogo.New(minioEndpoint, &miniogo.Options{
		Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
		Secure: false,
	})
	require.NoError(t, err)

	objects := 0
	for obj := range minioClient.ListObjects(ctx, "frames", miniogo.ListObjectsOptions{Recursive: true}) {
		require.NoError(t, obj.Err)
		assert.True(t, strings.HasSuffix(obj.Key, ".jpg"), "object %s should be a jpg", obj.Key)
		objects++
	}
	assert.Greater(t, objects, 0, "bucket should hold at least one representative frame")

	// A single-expression request narrows the report to that key
	body = fmt.Sprintf(`{"videoUrl": %q, "expression": "sad"}`, videoSrv.URL+"/test.mp4")
	resp2, err := http.Post(apiSrv.URL+"/api/analyze", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp2.Body.Close()
	require.Equal(t, http.StatusOK, resp2.StatusCode)

	var filtered entity.AnalysisReport
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&filtered))
	require.Len(t, filtered.Expressions, 1)
	require.NotNil(t, filtered.Expressions["sad"])
	assert.Empty(t, filtered.Expressions["sad"])

	t.Logf("Test passed: %d frames analyzed, %d images uploaded", report.FramesAnalyzed, objects)
}
