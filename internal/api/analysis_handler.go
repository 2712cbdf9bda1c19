package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gym-tracker/internal/ai"
	"gym-tracker/internal/service"
)

// AnalysisHandler holds the analysis service dependency.
type AnalysisHandler struct {
	analysisService service.AnalysisService
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analysisService service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

// AnalysisResponse carries the generated weekly summary text.
type AnalysisResponse struct {
	Analysis string `json:"analysis"`
}

// AnalysisFailureResponse reports a generation failure without treating it
// as a server fault.
type AnalysisFailureResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// WeeklyAnalysis generates a natural-language summary of the target user's
// current training week. Generation failures come back as gateway errors
// with a machine-readable kind, not 500s.
func (h *AnalysisHandler) WeeklyAnalysis(c *gin.Context) {
	ids, ok := callerAndTarget(c)
	if !ok {
		return
	}

	result, err := h.analysisService.WeeklyAnalysis(c.Request.Context(), ids.caller, ids.target)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !result.OK() {
		status := http.StatusBadGateway
		if result.Err.Kind == ai.FailureTimeout {
			status = http.StatusGatewayTimeout
		}
		c.AbortWithStatusJSON(status, AnalysisFailureResponse{
			Error: result.Err.Message,
			Kind:  string(result.Err.Kind),
		})
		return
	}
	c.JSON(http.StatusOK, AnalysisResponse{Analysis: result.Response})
}
