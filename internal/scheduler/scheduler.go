package scheduler

import (
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Job represents a scheduled job
type Job interface {
	Run() error
	Name() string
}

// Scheduler manages background jobs
type Scheduler struct {
	cron *cron.Cron
	log  *logrus.Entry
}

// New creates a new scheduler
func New(log *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		log:  log.WithField("component", "scheduler"),
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("Scheduler started")
}

// Stop stops the scheduler and waits for running jobs
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("Scheduler stopped")
}

// AddJob registers a job with a cron schedule, e.g. "*/5 * * * *",
// "@hourly" or "@every 15m".
func (s *Scheduler) AddJob(schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		if err := s.RunNow(job); err != nil {
			s.log.WithField("job", job.Name()).Errorf("Job failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{"job": job.Name(), "schedule": schedule}).Info("Job registered")
	return nil
}

// RunNow executes a job immediately, outside its schedule
func (s *Scheduler) RunNow(job Job) error {
	s.log.WithField("job", job.Name()).Debug("Running job")
	return job.Run()
}
