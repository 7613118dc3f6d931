package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/enact-eco/enact/internal/advisor"
	"github.com/enact-eco/enact/internal/carbon"
	"github.com/enact-eco/enact/internal/metrics"
	"github.com/enact-eco/enact/internal/storage"
)

type trackEmissionRequest struct {
	ActivityType    string          `json:"activity_type" binding:"required"`
	DurationSeconds float64         `json:"duration_seconds"`
	Metadata        carbon.Metadata `json:"metadata"`
	CPUPercent      float64         `json:"cpu_percent"`
}

// thresholdAlert is attached to a tracking response when the record pushed
// a running total over its budget.
type thresholdAlert struct {
	Type           string             `json:"type"`
	CurrentGrams   float64            `json:"current_grams"`
	ThresholdGrams float64            `json:"threshold_grams"`
	Suggestions    advisor.Suggestion `json:"suggestions"`
}

type trackEmissionResponse struct {
	Status          string          `json:"status"`
	Record          storage.Record  `json:"record"`
	TodayTotalGrams float64         `json:"today_total_grams"`
	ThresholdAlert  *thresholdAlert `json:"threshold_alert,omitempty"`
}

func (s *Server) trackEmission(c *gin.Context) {
	var req trackEmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.EstimationFailures.Inc()
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.estimator.Estimate(req.ActivityType, req.DurationSeconds, req.Metadata, req.CPUPercent)
	if err != nil {
		s.abortError(c, err)
		return
	}

	rec, err := s.store.Append(storage.Record{
		ActivityType:    req.ActivityType,
		DurationSeconds: req.DurationSeconds,
		EnergyKWh:       result.EnergyKWh,
		CO2Grams:        result.CO2Grams,
		PowerWatts:      result.PowerWatts,
		CPULoadFactor:   result.CPULoadFactor,
		Metadata:        req.Metadata,
	})
	if err != nil {
		s.abortError(c, err)
		return
	}
	metrics.ObserveRecord(rec.ActivityType, rec.CO2Grams, rec.EnergyKWh)

	todayTotal, err := s.store.TodayTotal()
	if err != nil {
		s.abortError(c, err)
		return
	}

	resp := trackEmissionResponse{
		Status:          "tracked",
		Record:          rec,
		TodayTotalGrams: todayTotal,
	}
	resp.ThresholdAlert = s.checkThresholds(c, todayTotal)

	c.JSON(http.StatusOK, resp)
}

// checkThresholds returns an alert if the daily budget is exceeded, or
// failing that the weekly one. Advice generation never fails the request;
// the advisor always has a static fallback.
func (s *Server) checkThresholds(c *gin.Context, todayTotal float64) *thresholdAlert {
	if todayTotal > s.thresholds.DailyGrams {
		return &thresholdAlert{
			Type:           "daily",
			CurrentGrams:   todayTotal,
			ThresholdGrams: s.thresholds.DailyGrams,
			Suggestions:    s.advisor.ThresholdAdvice(c.Request.Context(), todayTotal, s.thresholds.DailyGrams, "daily"),
		}
	}

	weeklyTotal, err := s.store.WeeklyTotal()
	if err != nil {
		s.log.Warn().Err(err).Msg("weekly total unavailable for threshold check")
		return nil
	}
	if weeklyTotal > s.thresholds.WeeklyGrams {
		return &thresholdAlert{
			Type:           "weekly",
			CurrentGrams:   weeklyTotal,
			ThresholdGrams: s.thresholds.WeeklyGrams,
			Suggestions:    s.advisor.ThresholdAdvice(c.Request.Context(), weeklyTotal, s.thresholds.WeeklyGrams, "weekly"),
		}
	}
	return nil
}

func (s *Server) emissionsByDate(c *gin.Context) {
	date := c.Param("date")
	if date == "today" {
		date = s.store.Today()
	}

	records, err := s.store.Day(date)
	if err != nil {
		s.abortError(c, err)
		return
	}
	summary, err := s.store.SummaryForDay(date)
	if err != nil {
		s.abortError(c, err)
		return
	}
	if records == nil {
		records = []storage.Record{}
	}

	c.JSON(http.StatusOK, gin.H{
		"date":    date,
		"records": records,
		"summary": summary,
	})
}

func (s *Server) emissionsSummary(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || days <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
		return
	}
	allHistory := c.Query("all_history") == "true"
	includeDemo := c.Query("include_demo") == "true"

	if includeDemo {
		if err := s.seedDemoIfEmpty(days); err != nil {
			s.abortError(c, err)
			return
		}
	}

	var summaries []carbon.DailySummary
	if allHistory {
		summaries, err = s.store.HistorySummaries(0)
	} else {
		summaries, err = s.store.RecentSummaries(days)
	}
	if err != nil {
		s.abortError(c, err)
		return
	}
	if summaries == nil {
		summaries = []carbon.DailySummary{}
	}

	totalGrams, totalKWh := 0.0, 0.0
	for _, sum := range summaries {
		totalGrams += sum.EmissionsGrams
		totalKWh += sum.EnergyKWh
	}
	score := carbon.ComputeEcoScore(summaries)

	c.JSON(http.StatusOK, gin.H{
		"summaries":        summaries,
		"total_grams":      totalGrams,
		"total_energy_kwh": totalKWh,
		"eco_score":        score,
		"rating":           carbon.ScoreRating(score),
	})
}

// seedDemoIfEmpty backfills demo data when the log has no records at all,
// so first-run dashboards are not blank.
func (s *Server) seedDemoIfEmpty(days int) error {
	dates, err := s.store.Dates()
	if err != nil {
		return err
	}
	if len(dates) > 0 {
		return nil
	}
	s.log.Info().Int("days", days).Msg("seeding demo data for empty log")
	return s.store.SeedDemoData(days, s.estimator)
}

func (s *Server) ecoScore(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || days <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
		return
	}

	summaries, err := s.store.RecentSummaries(days)
	if err != nil {
		s.abortError(c, err)
		return
	}

	totalGrams := 0.0
	for _, sum := range summaries {
		totalGrams += sum.EmissionsGrams
	}
	score := carbon.ComputeEcoScore(summaries)

	c.JSON(http.StatusOK, gin.H{
		"eco_score":           score,
		"rating":              carbon.ScoreRating(score),
		"period_days":         days,
		"total_grams":         totalGrams,
		"average_daily_grams": totalGrams / float64(days),
		"equivalent":          carbon.EquivalencyFor(totalGrams).String(),
	})
}
