// Package jobs runs the periodic monitoring rules on fixed intervals.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/metrics"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/services"
	"github.com/robfig/cron/v3"
)

// Rule evaluates one monitoring rule at the given instant.
type Rule func(ctx context.Context, now time.Time) (services.RuleResult, error)

type Job struct {
	Name     string
	Interval time.Duration
	Rule     Rule
}

type Scheduler struct {
	cron       *cron.Cron
	jobs       []Job
	now        func() time.Time
	timeout    time.Duration
	runOnStart bool
	startup    sync.WaitGroup
}

func NewScheduler(jobs ...Job) *Scheduler {
	logger := cronLogger{}
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		jobs:       jobs,
		now:        time.Now,
		timeout:    5 * time.Minute,
		runOnStart: true,
	}
}

// MonitorJobs returns the two caregiver alert rules at their configured intervals.
func MonitorJobs(monitor *services.MonitorService, missedInterval time.Duration, activityInterval time.Duration) []Job {
	return []Job{
		{Name: "missed_reminders", Interval: missedInterval, Rule: monitor.CheckMissedReminders},
		{Name: "game_activity", Interval: activityInterval, Rule: monitor.CheckGameActivity},
	}
}

// Start registers every job, runs each once in the background so a restart
// does not delay the first sweep by a full interval, and starts the cron loop.
func (scheduler *Scheduler) Start() error {
	for _, job := range scheduler.jobs {
		if job.Interval <= 0 {
			return fmt.Errorf("job %s: interval must be positive", job.Name)
		}
		job := job
		if _, err := scheduler.cron.AddFunc("@every "+job.Interval.String(), func() {
			scheduler.Run(context.Background(), job)
		}); err != nil {
			return fmt.Errorf("scheduling job %s: %w", job.Name, err)
		}
		slog.Info("scheduled job", "job", job.Name, "interval", job.Interval)
	}
	scheduler.cron.Start()

	if scheduler.runOnStart {
		for _, job := range scheduler.jobs {
			scheduler.startup.Add(1)
			go func() {
				defer scheduler.startup.Done()
				scheduler.Run(context.Background(), job)
			}()
		}
	}
	return nil
}

// Stop halts scheduling and waits for running jobs to finish or ctx to end.
func (scheduler *Scheduler) Stop(ctx context.Context) {
	cronDone := scheduler.cron.Stop()
	done := make(chan struct{})
	go func() {
		<-cronDone.Done()
		scheduler.startup.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		slog.Warn("stopping scheduler before running jobs finished")
	}
}

// Run evaluates a job once, recording metrics and logging the outcome.
func (scheduler *Scheduler) Run(ctx context.Context, job Job) (services.RuleResult, error) {
	ctx, cancel := context.WithTimeout(ctx, scheduler.timeout)
	defer cancel()

	started := time.Now()
	result, err := job.Rule(ctx, scheduler.now())
	metrics.JobDuration.WithLabelValues(job.Name).Observe(time.Since(started).Seconds())
	metrics.JobRuns.WithLabelValues(job.Name, metrics.Result(err)).Inc()

	attributes := []any{
		"job", job.Name,
		"candidates", result.Candidates,
		"created", result.Created,
		"failed", result.Failed,
		"duration", time.Since(started),
	}
	if err != nil {
		slog.Error("job finished with errors", append(attributes, "error", err)...)
		return result, err
	}
	slog.Info("job finished", attributes...)
	return result, nil
}

// cronLogger routes cron's internal logging through slog.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	slog.Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	slog.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
