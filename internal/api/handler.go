package api

import (
	"context"
	"net/http"
	"time"

	"github.com/Anilcodes01/analyze-service/internal/domain/entity"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Analyzer interface {
	Execute(ctx context.Context, req entity.AnalyzeRequest) (*entity.AnalysisReport, error)
}

type AnalyzeHandler struct {
	analyze Analyzer
	timeout time.Duration
	logger  *zap.Logger
}

func NewAnalyzeHandler(analyze Analyzer, timeout time.Duration, logger *zap.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{analyze: analyze, timeout: timeout, logger: logger}
}

func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req entity.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.VideoURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing videoUrl"})
		return
	}
	if req.Expression == "" {
		req.Expression = entity.ExpressionAll
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	report, err := h.analyze.Execute(ctx, req)
	if err != nil {
		h.logger.Error("analyze request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, report)
}
