package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "analyze_requests_total",
		Help: "Total number of analyze requests, by status",
	}, []string{"status"})

	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "analyze_stage_duration_seconds",
		Help:    "Duration of each analysis pipeline stage",
		Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300},
	}, []string{"stage"})

	FramesSampledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "analyze_frames_sampled_total",
		Help: "Total number of frames sampled across all requests",
	})

	DetectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "analyze_detections_total",
		Help: "Total number of per-frame emotion verdicts, by label",
	}, []string{"emotion"})

	UploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "analyze_uploads_total",
		Help: "Total number of representative image uploads, by status",
	}, []string{"status"})

	ActiveRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "analyze_active_requests",
		Help: "Number of analyze requests currently in flight",
	})
)
