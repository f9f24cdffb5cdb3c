package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/metrics"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/services"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_PassesClockAndRecordsMetrics(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	var seen time.Time
	job := Job{
		Name:     "test_success",
		Interval: time.Hour,
		Rule: func(ctx context.Context, now time.Time) (services.RuleResult, error) {
			seen = now
			return services.RuleResult{Candidates: 2, Created: 1}, nil
		},
	}

	scheduler := NewScheduler(job)
	scheduler.now = func() time.Time { return fixed }

	before := testutil.ToFloat64(metrics.JobRuns.WithLabelValues("test_success", metrics.ResultSuccess))
	result, err := scheduler.Run(context.Background(), job)
	require.NoError(t, err)

	assert.Equal(t, fixed, seen)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.JobRuns.WithLabelValues("test_success", metrics.ResultSuccess)))
}

func TestRun_RecordsFailure(t *testing.T) {
	job := Job{
		Name:     "test_failure",
		Interval: time.Hour,
		Rule: func(ctx context.Context, now time.Time) (services.RuleResult, error) {
			return services.RuleResult{Candidates: 3, Created: 2, Failed: 1}, errors.New("one item failed")
		},
	}

	scheduler := NewScheduler(job)
	before := testutil.ToFloat64(metrics.JobRuns.WithLabelValues("test_failure", metrics.ResultFailure))

	result, err := scheduler.Run(context.Background(), job)
	require.Error(t, err)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.JobRuns.WithLabelValues("test_failure", metrics.ResultFailure)))
}

func TestStart_RejectsNonPositiveInterval(t *testing.T) {
	scheduler := NewScheduler(Job{Name: "broken", Interval: 0, Rule: func(context.Context, time.Time) (services.RuleResult, error) {
		return services.RuleResult{}, nil
	}})

	assert.Error(t, scheduler.Start())
}

func TestStart_FiresOnInterval(t *testing.T) {
	var runs atomic.Int32
	scheduler := NewScheduler(Job{
		Name:     "test_interval",
		Interval: time.Second,
		Rule: func(context.Context, time.Time) (services.RuleResult, error) {
			runs.Add(1)
			return services.RuleResult{}, nil
		},
	})
	scheduler.runOnStart = false

	require.NoError(t, scheduler.Start())
	defer scheduler.Stop(context.Background())

	assert.Eventually(t, func() bool { return runs.Load() > 0 }, 5*time.Second, 50*time.Millisecond)
}

func TestStart_RunsEachJobOnceAtStartup(t *testing.T) {
	var missed, activity atomic.Int32
	counting := func(counter *atomic.Int32) Rule {
		return func(context.Context, time.Time) (services.RuleResult, error) {
			counter.Add(1)
			return services.RuleResult{}, nil
		}
	}
	scheduler := NewScheduler(
		Job{Name: "test_startup_missed", Interval: time.Hour, Rule: counting(&missed)},
		Job{Name: "test_startup_activity", Interval: 6 * time.Hour, Rule: counting(&activity)},
	)

	require.NoError(t, scheduler.Start())
	assert.Eventually(t, func() bool { return missed.Load() == 1 && activity.Load() == 1 }, 5*time.Second, 10*time.Millisecond)

	scheduler.Stop(context.Background())
	assert.Equal(t, int32(1), missed.Load())
	assert.Equal(t, int32(1), activity.Load())
}
