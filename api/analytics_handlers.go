package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sumry-app/SUMRY-sub001/internal/analytics"
	apperrors "github.com/sumry-app/SUMRY-sub001/internal/errors"
)

// ScoreReportRequest selects the fields for a progress report over a
// collection's records.
type ScoreReportRequest struct {
	ScoreField       string   `json:"score_field"`
	PassingScore     float64  `json:"passing_score,omitempty"`
	StrugglingCutoff float64  `json:"struggling_cutoff,omitempty"`
	TopN             int      `json:"top_n,omitempty"`
	SubjectFields    []string `json:"subject_fields,omitempty"`
	AttendanceField  string   `json:"attendance_field,omitempty"`
}

// TrendReportRequest selects the fields for a score trend report. ScoreFields
// must be given in chronological order.
type TrendReportRequest struct {
	IDField     string   `json:"id_field"`
	ScoreFields []string `json:"score_fields"`
}

// scoreReport computes score statistics, grade distribution, pass/fail
// rates, and performer lists over a collection.
func (api *API) scoreReport(c *gin.Context) {
	name := c.Param("name")

	var req ScoreReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest,
			"Invalid request body: "+err.Error())
		return
	}
	if req.ScoreField == "" {
		SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed,
			"Field 'score_field' is required")
		return
	}

	records, err := api.engine.Records(name)
	if err != nil {
		if errors.Is(err, apperrors.ErrCollectionNotFound) {
			SendCollectionNotFoundError(c, name)
			return
		}
		SendInternalError(c, "load collection records", err)
		return
	}

	report := gin.H{
		"collection":         name,
		"score_field":        req.ScoreField,
		"stats":              analytics.ComputeScoreStats(records, req.ScoreField),
		"grade_distribution": analytics.GradeDistribution(records, req.ScoreField),
		"pass_fail":          analytics.PassFailRate(records, req.ScoreField, req.PassingScore),
		"top_performers":     analytics.TopPerformers(records, req.ScoreField, req.TopN),
		"struggling":         analytics.StrugglingStudents(records, req.ScoreField, req.StrugglingCutoff, req.TopN),
	}
	if len(req.SubjectFields) > 0 {
		report["subject_averages"] = analytics.SubjectAverages(records, req.SubjectFields)
	}
	if req.AttendanceField != "" {
		report["attendance_impact"] = analytics.ComputeAttendanceImpact(records, req.ScoreField, req.AttendanceField)
	}

	c.JSON(http.StatusOK, report)
}

// trendReport classifies each record's score trajectory across a sequence of
// assessment fields.
func (api *API) trendReport(c *gin.Context) {
	name := c.Param("name")

	var req TrendReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest,
			"Invalid request body: "+err.Error())
		return
	}
	if len(req.ScoreFields) == 0 {
		SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed,
			"Field 'score_fields' is required")
		return
	}
	if req.IDField == "" {
		req.IDField = "id"
	}

	records, err := api.engine.Records(name)
	if err != nil {
		if errors.Is(err, apperrors.ErrCollectionNotFound) {
			SendCollectionNotFoundError(c, name)
			return
		}
		SendInternalError(c, "load collection records", err)
		return
	}

	trends := analytics.ProgressTrends(records, req.IDField, req.ScoreFields)
	c.JSON(http.StatusOK, gin.H{
		"collection": name,
		"trends":     trends,
		"total":      len(trends),
	})
}

// searchAnalytics reports on tracked search activity. The window defaults to
// the last 24 hours.
func (api *API) searchAnalytics(c *gin.Context) {
	window := 24 * time.Hour
	if raw := c.Query("window"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 {
			SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed,
				"Invalid window parameter: must be a positive duration like 1h")
			return
		}
		window = parsed
	}

	limit := 10
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed,
				"Invalid limit parameter: must be a positive integer")
			return
		}
		limit = parsed
	}

	since := time.Now().Add(-window)
	c.JSON(http.StatusOK, gin.H{
		"window":           window.String(),
		"total_events":     api.analytics.EventCount(),
		"popular_searches": api.analytics.PopularSearches(since, limit),
		"avg_duration_ms":  api.analytics.AvgDuration(since),
	})
}
