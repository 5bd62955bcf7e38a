package scheduler

import (
	"stocktrack-backend/internal/alert"
	"stocktrack-backend/internal/config"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Scheduler runs the periodic low-stock alert scan. Each run recomputes from
// scratch; a failing run never blocks the next one.
type Scheduler struct {
	cron   *cron.Cron
	db     *gorm.DB
	sender alert.Sender
	cfg    *config.Config
	logger *zap.Logger
}

func New(cfg *config.Config, db *gorm.DB, sender alert.Sender, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:   cron.New(),
		db:     db,
		sender: sender,
		cfg:    cfg,
		logger: logger,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.AlertSchedule, s.runAlertScan); err != nil {
		return err
	}

	s.logger.Info("scheduler started", zap.String("alert_schedule", s.cfg.AlertSchedule))
	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runAlertScan() {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("alert scan panicked", zap.Any("panic", r))
		}
	}()

	s.logger.Info("checking stock levels")
	if err := alert.Run(s.db, s.sender, s.logger); err != nil {
		s.logger.Error("alert scan failed", zap.Error(err))
	}
}
