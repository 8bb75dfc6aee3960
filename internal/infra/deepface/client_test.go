package deepface

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeFrame(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "frame_00000.jpg")
	require.NoError(t, os.WriteFile(path, []byte("jpeg-bytes"), 0644))
	return path
}

func TestDetect(t *testing.T) {
	var gotBody analyzeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/analyze", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(analyzeResponse{Results: []analyzeResult{{
			DominantEmotion: "Happy",
			Emotion: map[string]float64{
				"Happy":    93.5,
				"sad":      2.1,
				"surprise": 4.4,
			},
			FaceConfidence: 0.98,
		}}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, zap.NewNop())
	reading, err := client.Detect(context.Background(), writeFrame(t))
	require.NoError(t, err)

	assert.Equal(t, "happy", reading.Label)
	assert.InDelta(t, 0.935, reading.Confidence, 1e-9)
	assert.InDelta(t, 0.044, reading.Scores["surprise"], 1e-9)

	assert.Equal(t, []string{"emotion"}, gotBody.Actions)
	require.True(t, strings.HasPrefix(gotBody.Img, "data:image/jpeg;base64,"))
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(gotBody.Img, "data:image/jpeg;base64,"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(decoded))
}

func TestDetectServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, zap.NewNop())
	_, err := client.Detect(context.Background(), writeFrame(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "model not loaded")
}

func TestDetectNoFace(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(analyzeResponse{Results: nil})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, zap.NewNop())
	_, err := client.Detect(context.Background(), writeFrame(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no face detected")
}

func TestDetectMissingFrame(t *testing.T) {
	client := NewClient("http://127.0.0.1:0", time.Second, zap.NewNop())
	_, err := client.Detect(context.Background(), filepath.Join(t.TempDir(), "gone.jpg"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read frame")
}
