package api

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/enact-eco/enact/internal/analysis"
	"github.com/enact-eco/enact/internal/carbon"
)

// maxUploadBytes bounds uploaded source files. The analyzer is line-based,
// so anything bigger than this is not source code worth analyzing.
const maxUploadBytes = 1 << 20

// languageByExtension maps upload file extensions to analyzer languages.
var languageByExtension = map[string]string{
	".py":   "python",
	".js":   "javascript",
	".ts":   "typescript",
	".go":   "go",
	".java": "java",
	".c":    "c",
	".cpp":  "cpp",
	".cs":   "csharp",
	".rb":   "ruby",
	".rs":   "rust",
	".php":  "php",
}

type analyzeCodeRequest struct {
	Code     string `json:"code" binding:"required"`
	Language string `json:"language"`
}

func (s *Server) analyzeCode(c *gin.Context) {
	var req analyzeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Language == "" {
		req.Language = "python"
	}

	s.respondAnalysis(c, req.Code, req.Language)
}

func (s *Server) uploadCode(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "file field is required"})
		return
	}
	if header.Size > maxUploadBytes {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "file too large"})
		return
	}

	language, ok := languageByExtension[strings.ToLower(filepath.Ext(header.Filename))]
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unsupported file type"})
		return
	}

	f, err := header.Open()
	if err != nil {
		s.abortError(c, err)
		return
	}
	defer f.Close()

	code, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		s.abortError(c, err)
		return
	}

	s.respondAnalysis(c, string(code), language)
}

// respondAnalysis runs the static analysis, estimates the execution
// footprint of the code as a code_execution activity at nominal load, and
// asks the advisor for optimization suggestions.
func (s *Server) respondAnalysis(c *gin.Context, code, language string) {
	report := analysis.Analyze(code, language)

	duration := report.EstimatedDurationSeconds()
	result, err := s.estimator.Estimate("code_execution", duration, carbon.Metadata{}, carbon.CPUNormalizationDivisor)
	if err != nil {
		s.abortError(c, err)
		return
	}

	suggestions := s.advisor.CodeSuggestions(c.Request.Context(), code, language, report)

	c.JSON(http.StatusOK, gin.H{
		"language": language,
		"analysis": report,
		"emissions": gin.H{
			"estimated_duration_seconds": duration,
			"energy_kwh":                 result.EnergyKWh,
			"co2_grams":                  result.CO2Grams,
		},
		"suggestions": suggestions,
	})
}

func (s *Server) systemMetrics(c *gin.Context) {
	snap, err := s.probe.Snapshot(c.Request.Context())
	if err != nil {
		s.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}
