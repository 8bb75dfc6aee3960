package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPPort       int           `env:"HTTP_PORT"       envDefault:"8080"`
	AnalyzeTimeout time.Duration `env:"ANALYZE_TIMEOUT" envDefault:"10m"`

	FetchTimeout  time.Duration `env:"FETCH_TIMEOUT"   envDefault:"2m"`
	MaxVideoBytes int64         `env:"MAX_VIDEO_BYTES" envDefault:"524288000"`

	SampleInterval      float64 `env:"SAMPLE_INTERVAL"      envDefault:"0.5"`
	ConfidenceThreshold float64 `env:"CONFIDENCE_THRESHOLD" envDefault:"0.5"`
	FFmpegQuality       int     `env:"FFMPEG_QUALITY"       envDefault:"2"`

	DetectorURL     string        `env:"DETECTOR_URL"     envDefault:"http://deepface:5000"`
	DetectorTimeout time.Duration `env:"DETECTOR_TIMEOUT" envDefault:"60s"`

	UploadProvider string `env:"UPLOAD_PROVIDER" envDefault:"cloudinary"`

	CloudinaryCloudName string `env:"CLOUDINARY_CLOUD_NAME" envDefault:""`
	CloudinaryAPIKey    string `env:"CLOUDINARY_API_KEY"    envDefault:""`
	CloudinaryAPISecret string `env:"CLOUDINARY_API_SECRET" envDefault:""`
	CloudinaryFolder    string `env:"CLOUDINARY_FOLDER"     envDefault:"emotions"`

	MinIOEndpoint    string `env:"MINIO_ENDPOINT"     envDefault:"minio:9000"`
	MinIOAccessKey   string `env:"MINIO_ACCESS_KEY"   envDefault:"minioadmin"`
	MinIOSecretKey   string `env:"MINIO_SECRET_KEY"   envDefault:"minioadmin"`
	MinIOUseSSL      bool   `env:"MINIO_USE_SSL"      envDefault:"false"`
	MinIOImageBucket string `env:"MINIO_IMAGE_BUCKET" envDefault:"frames"`
	MinIOPublicURL   string `env:"MINIO_PUBLIC_URL"   envDefault:""`

	MetricsPort    int    `env:"METRICS_PORT"    envDefault:"8083"`
	JaegerEndpoint string `env:"JAEGER_ENDPOINT" envDefault:"http://jaeger:4318/v1/traces"`
	LogLevel       string `env:"LOG_LEVEL"       envDefault:"info"`

	TempDir string `env:"TEMP_DIR" envDefault:"/tmp/analyze"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
