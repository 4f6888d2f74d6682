package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/rancher/internal/config"
	"github.com/mamadbah2/rancher/internal/repository/sheets"
	"github.com/mamadbah2/rancher/internal/service/advisor"
	"github.com/mamadbah2/rancher/internal/service/reporting"
)

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron         *cron.Cron
	reportingSvc *reporting.Service
	advisorSvc   *advisor.Service
	exporter     sheets.Exporter
	cfg          config.Config
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler instance. The exporter may be nil when
// the spreadsheet export is not configured.
func NewScheduler(cfg config.Config, reportingSvc *reporting.Service, advisorSvc *advisor.Service, exporter sheets.Exporter, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	location, err := time.LoadLocation(cfg.Snapshot.Timezone)
	if err != nil {
		logger.Warn("unknown timezone, falling back to local", zap.String("timezone", cfg.Snapshot.Timezone), zap.Error(err))
		location = time.Local
	}

	return &Scheduler{
		cron:         cron.New(cron.WithLocation(location)),
		reportingSvc: reportingSvc,
		advisorSvc:   advisorSvc,
		exporter:     exporter,
		cfg:          cfg,
		logger:       logger,
	}
}

// Start registers the snapshot job and starts the scheduler.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.Snapshot.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.Snapshot.CronSchedule, s.runSnapshot); err != nil {
		s.logger.Error("failed to schedule financial snapshot", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

// runSnapshot computes the trailing-week profit and loss statement, logs it,
// and exports it to the configured spreadsheet. Everything here is
// best-effort; failures only log.
func (s *Scheduler) runSnapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	now := time.Now()
	end := now.Truncate(24 * time.Hour)
	start := end.AddDate(0, 0, -7)

	report := s.reportingSvc.PeriodReport(start, end)

	s.logger.Info("weekly financial snapshot",
		zap.String("start", report.Start),
		zap.String("end", report.End),
		zap.Float64("revenue", report.TotalRevenue),
		zap.Float64("direct_costs", report.DirectCosts),
		zap.Float64("fixed_costs", report.FixedCosts),
		zap.Float64("net_result", report.NetResult),
		zap.Int("sold_in_period", report.SoldInPeriod))

	if s.advisorSvc != nil {
		insights := s.advisorSvc.GenerateInsights(ctx, s.reportingSvc.Summary())
		s.logger.Info("weekly advisory insights", zap.String("insights", insights))
	}

	if s.exporter == nil {
		return
	}

	row := sheets.SnapshotRow{
		Date:          now.Format("2006-01-02"),
		PeriodStart:   report.Start,
		PeriodEnd:     report.End,
		TotalRevenue:  report.TotalRevenue,
		DirectCosts:   report.DirectCosts,
		FixedCosts:    report.FixedCosts,
		NetResult:     report.NetResult,
		ActiveAnimals: report.ActiveAnimals,
	}

	if err := s.exporter.AppendSnapshot(ctx, row); err != nil {
		s.logger.Error("failed to export snapshot", zap.Error(err))
	} else {
		s.logger.Info("snapshot exported to spreadsheet")
	}
}
