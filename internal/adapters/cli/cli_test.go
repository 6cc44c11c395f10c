package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/carrierplus-go/internal/adapters/grpc"
	"github.com/andrescamacho/carrierplus-go/internal/application/scheduler"
	"github.com/andrescamacho/carrierplus-go/internal/infrastructure/config"
	"github.com/andrescamacho/carrierplus-go/internal/infrastructure/pidfile"
)

func TestRootCommand_RegistersGroups(t *testing.T) {
	root := NewRootCommand()

	for _, path := range [][]string{
		{"jobs", "list"},
		{"jobs", "run"},
		{"db", "migrate"},
		{"config", "show"},
		{"ledger", "transactions"},
		{"production", "start"},
		{"production", "cancel"},
	} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}

func TestJobsRun_RequiresJobName(t *testing.T) {
	root := NewRootCommand()
	root.SetArgs([]string{"jobs", "run"})

	assert.Error(t, root.Execute())
}

func TestLedgerTransactions_RejectsBadCompanyID(t *testing.T) {
	root := NewRootCommand()
	root.SetArgs([]string{"ledger", "transactions", "--company", "not-a-uuid"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --company")
}

func TestDescribeInterval(t *testing.T) {
	assert.Equal(t, "disabled", describeInterval(-time.Second))
	assert.Equal(t, "5m0s", describeInterval(5*time.Minute))
}

type recordingRunner struct {
	mu  sync.Mutex
	ran []string
}

func (r *recordingRunner) RunJob(_ context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ran = append(r.ran, name)
	return nil
}

func (r *recordingRunner) Jobs() []scheduler.JobInfo {
	return []scheduler.JobInfo{{Name: "payroll", Interval: time.Hour}}
}

func jobsConfig(t *testing.T) *config.Config {
	t.Helper()
	dir, err := os.MkdirTemp("", "cpcli")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	cfg := &config.Config{}
	cfg.Scheduler.SocketPath = filepath.Join(dir, "daemon.sock")
	cfg.Scheduler.PIDFile = filepath.Join(dir, "daemon.pid")
	return cfg
}

func TestRunJob_GoesThroughRunningDaemon(t *testing.T) {
	cfg := jobsConfig(t)
	runner := &recordingRunner{}
	server, err := grpc.NewDaemonServer(runner, cfg.Scheduler.SocketPath, nil)
	require.NoError(t, err)
	go func() { _ = server.Serve() }()
	defer server.Shutdown(context.Background())

	where, _, err := runJob(context.Background(), cfg, "payroll")
	require.NoError(t, err)

	assert.Equal(t, "daemon", where)
	runner.mu.Lock()
	defer runner.mu.Unlock()
	assert.Equal(t, []string{"payroll"}, runner.ran)
	_, statErr := os.Stat(cfg.Scheduler.PIDFile)
	assert.True(t, errors.Is(statErr, os.ErrNotExist), "a daemon run leaves the PID file alone")
}

func TestRunJob_RefusesLocalRunWhileDaemonHoldsPIDFile(t *testing.T) {
	cfg := jobsConfig(t)
	// The parent process is alive and is not us
	require.NoError(t, os.WriteFile(cfg.Scheduler.PIDFile, []byte(fmt.Sprintf("%d\n", os.Getppid())), 0644))

	_, _, err := runJob(context.Background(), cfg, "payroll")

	require.Error(t, err)
	var running *pidfile.AlreadyRunningError
	require.ErrorAs(t, err, &running)
	assert.Equal(t, os.Getppid(), running.PID)
	assert.Contains(t, err.Error(), "does not answer")
}

func TestPrintLiveJobs(t *testing.T) {
	lastRun := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	var out bytes.Buffer

	require.NoError(t, printLiveJobs(&out, []scheduler.JobInfo{
		{Name: "payroll", Interval: time.Hour, Running: true, Runs: 3, Failures: 1, LastRunAt: &lastRun, LastError: "database is locked"},
		{Name: "mission_expiry", Interval: 15 * time.Minute},
	}))

	text := out.String()
	assert.Contains(t, text, "payroll")
	assert.Contains(t, text, "running")
	assert.Contains(t, text, "database is locked")
	assert.Contains(t, text, "15m0s")
}
