package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/adnanfarms/chickledger/internal/config"
	"github.com/adnanfarms/chickledger/internal/repository/sheets"
	"github.com/adnanfarms/chickledger/internal/service/reporting"
	"github.com/adnanfarms/chickledger/internal/service/stats"
	"github.com/adnanfarms/chickledger/pkg/clients/webhook"
)

// Scheduler runs the daily rollover: a recompute shortly after midnight so
// the price history gains the new date even on days without data entry,
// followed by the optional summary push and sheets export.
type Scheduler struct {
	cron         *cron.Cron
	engine       *stats.Engine
	reportingSvc *reporting.Service
	notifier     webhook.Client
	sheetsRepo   sheets.Repository
	cfg          config.ReportingConfig
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler instance. notifier and sheetsRepo may
// be nil; the corresponding step is skipped.
func NewScheduler(cfg config.ReportingConfig, engine *stats.Engine, reportingSvc *reporting.Service, notifier webhook.Client, sheetsRepo sheets.Repository, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("unknown timezone, falling back to local", zap.String("timezone", cfg.Timezone), zap.Error(err))
		loc = time.Local
	}

	return &Scheduler{
		cron:         cron.New(cron.WithLocation(loc)),
		engine:       engine,
		reportingSvc: reportingSvc,
		notifier:     notifier,
		sheetsRepo:   sheetsRepo,
		cfg:          cfg,
		logger:       logger,
	}
}

// Start registers the rollover job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.runDailyRollover); err != nil {
		s.logger.Error("failed to schedule daily rollover", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runDailyRollover() {
	s.logger.Info("running daily rollover")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	s.engine.Recompute(ctx)
	snap := s.engine.Snapshot()

	summary := s.reportingSvc.DailySummary(time.Now())

	if s.notifier != nil {
		text := s.reportingSvc.FormatDailySummary(summary)
		if err := s.notifier.SendDailySummary(ctx, summary, text); err != nil {
			s.logger.Error("failed to send daily summary", zap.Error(err))
		} else {
			s.logger.Info("daily summary sent successfully")
		}
	}

	if s.sheetsRepo != nil && len(snap.DailyChickPrices) > 0 {
		latest := snap.DailyChickPrices[len(snap.DailyChickPrices)-1]
		if err := s.sheetsRepo.AppendDailySnapshot(ctx, latest); err != nil {
			s.logger.Error("failed to export daily snapshot to sheets", zap.Error(err))
		}
	}
}
