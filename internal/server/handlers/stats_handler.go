package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/adnanfarms/chickledger/internal/service/reporting"
)

// StatsHandler serves the derived dashboard snapshot and the daily report.
type StatsHandler struct {
	source       reporting.StatsSource
	reportingSvc *reporting.Service
	logger       *zap.Logger
	now          func() time.Time
}

// NewStatsHandler constructs the HTTP adapter over the aggregation engine.
func NewStatsHandler(source reporting.StatsSource, reportingSvc *reporting.Service, logger *zap.Logger) *StatsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsHandler{
		source:       source,
		reportingSvc: reportingSvc,
		logger:       logger,
		now:          time.Now,
	}
}

// GetStats returns the current DashboardStats snapshot.
func (h *StatsHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.source.Snapshot())
}

// GetDailyReport returns today's summary plus its formatted text, the data
// behind the printable report.
func (h *StatsHandler) GetDailyReport(c *gin.Context) {
	summary := h.reportingSvc.DailySummary(h.now())
	c.JSON(http.StatusOK, gin.H{
		"summary": summary,
		"message": h.reportingSvc.FormatDailySummary(summary),
	})
}
