package queue

import (
	"time"

	"github.com/hibiken/asynq"

	"artstore-backend/internal/config"
	"artstore-backend/internal/shared"
	"artstore-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	jobConfig config.JobConfig
}

func NewScheduler(redisAddress string, jobConfig config.JobConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		jobConfig: jobConfig,
	}
}

// RegisterMaintenanceJobs wires the nightly sweeps. Crons come from config
// and are staggered so the two database sweeps do not overlap.
func (s *Scheduler) RegisterMaintenanceJobs() error {
	if err := s.registerDeactivateExpiredCouponsJob(); err != nil {
		return err
	}
	return s.registerPurgeActivityLogJob()
}

func (s *Scheduler) registerDeactivateExpiredCouponsJob() error {
	task := asynq.NewTask(shared.TypeDeactivateExpiredCoupons, nil)

	_, err := s.scheduler.Register(
		s.jobConfig.DeactivateExpiredCouponsCron,
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(2),
		asynq.Timeout(5*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register DeactivateExpiredCoupons job", err)
		return err
	}

	logger.Info("Registered DeactivateExpiredCoupons", map[string]interface{}{
		"cron": s.jobConfig.DeactivateExpiredCouponsCron,
	})
	return nil
}

func (s *Scheduler) registerPurgeActivityLogJob() error {
	task := asynq.NewTask(shared.TypePurgeActivityLog, nil)

	_, err := s.scheduler.Register(
		s.jobConfig.PurgeActivityLogCron,
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(2),
		asynq.Timeout(10*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register PurgeActivityLog job", err)
		return err
	}

	logger.Info("Registered PurgeActivityLog", map[string]interface{}{
		"cron":           s.jobConfig.PurgeActivityLogCron,
		"retention_days": s.jobConfig.ActivityRetentionDays,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
