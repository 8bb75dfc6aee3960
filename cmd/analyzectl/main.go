package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Anilcodes01/analyze-service/internal/domain/entity"
	"github.com/Anilcodes01/analyze-service/internal/infra/deepface"
	"github.com/Anilcodes01/analyze-service/internal/infra/ffmpeg"
	"github.com/Anilcodes01/analyze-service/internal/usecase"
	"github.com/Anilcodes01/analyze-service/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	flagInterval        float64
	flagThreshold       float64
	flagDetectorURL     string
	flagDetectorTimeout time.Duration
	flagQuality         int
	flagExpression      string
	flagOutput          string
	flagLogLevel        string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "analyzectl <video>",
		Short:        "Analyze facial emotions in a local video file",
		Args:         cobra.ExactArgs(1),
		RunE:         run,
		SilenceUsage: true,
	}

	rootCmd.Flags().Float64Var(&flagInterval, "interval", 0.5, "sampling interval in seconds")
	rootCmd.Flags().Float64Var(&flagThreshold, "threshold", 0.5, "confidence threshold for intervals")
	rootCmd.Flags().StringVar(&flagDetectorURL, "detector-url", "http://localhost:5000", "emotion detector base URL")
	rootCmd.Flags().DurationVar(&flagDetectorTimeout, "detector-timeout", 60*time.Second, "per-frame detector timeout")
	rootCmd.Flags().IntVar(&flagQuality, "quality", 2, "JPEG quality passed to ffmpeg (lower is better)")
	rootCmd.Flags().StringVar(&flagExpression, "expression", entity.ExpressionAll, "emotion to keep in the document, or \"all\"")
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "write the analysis document to a file instead of stdout")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "warn", "log level")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	videoPath := args[0]
	if _, err := os.Stat(videoPath); err != nil {
		return fmt.Errorf("open video: %w", err)
	}

	log, err := logger.New(flagLogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	workDir, err := os.MkdirTemp("", "analyzectl-*")
	if err != nil {
		return fmt.Errorf("create workdir: %w", err)
	}
	defer os.RemoveAll(workDir)

	analyzer := usecase.NewTimelineAnalyzer(
		ffmpeg.NewProber(),
		ffmpeg.NewSampler(flagInterval, flagQuality, log),
		deepface.NewClient(flagDetectorURL, flagDetectorTimeout, log),
		log,
		usecase.TimelineConfig{
			SampleInterval:      flagInterval,
			ConfidenceThreshold: flagThreshold,
		},
	)

	timeline, err := analyzer.Analyze(ctx, videoPath, workDir)
	if err != nil {
		return err
	}

	document := timeline.Document()
	if flagExpression != "" && flagExpression != entity.ExpressionAll {
		occurrences, ok := document.Analysis[flagExpression]
		if !ok {
			occurrences = []entity.Occurrence{}
		}
		document.Analysis = map[string][]entity.Occurrence{flagExpression: occurrences}
	}

	doc, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	if flagOutput != "" {
		if err := os.WriteFile(flagOutput, doc, 0644); err != nil {
			return fmt.Errorf("write document: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "analysis written to %s\n", flagOutput)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(doc))
	return nil
}
