package grpc

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/carrierplus-go/internal/application/scheduler"
)

// schedulerRunner adapts a bare scheduler to JobRunner the way the engine does
type schedulerRunner struct {
	*scheduler.Scheduler
}

func (r schedulerRunner) RunJob(ctx context.Context, name string) error {
	return r.RunNow(ctx, name)
}

func socketPath(t *testing.T) string {
	t.Helper()
	// Short directory: unix socket paths are limited to ~100 bytes
	dir, err := os.MkdirTemp("", "cpd")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	return filepath.Join(dir, "daemon.sock")
}

func startDaemon(t *testing.T, sched *scheduler.Scheduler) *DaemonClient {
	t.Helper()
	path := socketPath(t)

	server, err := NewDaemonServer(schedulerRunner{sched}, path, nil)
	require.NoError(t, err)
	go func() { _ = server.Serve() }()
	t.Cleanup(func() { server.Shutdown(context.Background()) })

	client, err := NewDaemonClient(path)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestDaemon_RunJobUsesDaemonScheduler(t *testing.T) {
	sched := scheduler.New(nil)
	var calls atomic.Int32
	require.NoError(t, sched.Register("payroll", time.Hour, func(ctx context.Context) error {
		calls.Add(1)
		return nil
	}))
	client := startDaemon(t, sched)

	_, err := client.RunJob(context.Background(), "payroll")
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load())
	jobs, err := client.ListJobs(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "payroll", jobs[0].Name)
	assert.Equal(t, time.Hour, jobs[0].Interval)
	assert.Equal(t, 1, jobs[0].Runs)
	assert.False(t, jobs[0].Running)
	assert.NotNil(t, jobs[0].LastRunAt)
}

func TestDaemon_ManualRunCannotOverlapRunningJob(t *testing.T) {
	sched := scheduler.New(nil)
	release := make(chan struct{})
	var calls atomic.Int32
	require.NoError(t, sched.Register("payroll", time.Hour, func(ctx context.Context) error {
		calls.Add(1)
		<-release
		return nil
	}))
	client := startDaemon(t, sched)

	firstDone := make(chan error, 1)
	go func() {
		_, err := client.RunJob(context.Background(), "payroll")
		firstDone <- err
	}()
	require.Eventually(t, func() bool {
		jobs, err := client.ListJobs(context.Background())
		return err == nil && len(jobs) == 1 && jobs[0].Running
	}, 5*time.Second, 10*time.Millisecond)

	_, err := client.RunJob(context.Background(), "payroll")
	assert.ErrorIs(t, err, scheduler.ErrJobRunning)

	close(release)
	require.NoError(t, <-firstDone)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDaemon_ErrorsCrossTheSocket(t *testing.T) {
	sched := scheduler.New(nil)
	require.NoError(t, sched.Register("mission_expiry", time.Hour, func(ctx context.Context) error {
		return errors.New("database is locked")
	}))
	client := startDaemon(t, sched)

	_, err := client.RunJob(context.Background(), "unknown")
	assert.ErrorIs(t, err, scheduler.ErrJobNotFound)

	_, err = client.RunJob(context.Background(), "mission_expiry")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is locked")

	jobs, err := client.ListJobs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, jobs[0].Failures)
	assert.Equal(t, "database is locked", jobs[0].LastError)
}

func TestDaemonClient_NoDaemon(t *testing.T) {
	client, err := NewDaemonClient(socketPath(t))
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err = client.ListJobs(ctx)

	assert.ErrorIs(t, err, ErrDaemonUnavailable)
}
