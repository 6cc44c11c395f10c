package grpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"

	"google.golang.org/grpc"

	"github.com/andrescamacho/carrierplus-go/internal/application/common"
)

// DaemonServer exposes the running engine's scheduler to the CLI over a
// unix socket. Manual runs go through the same per-job lock as timer runs.
type DaemonServer struct {
	listener net.Listener
	server   *grpc.Server
	logger   common.Logger
}

// NewDaemonServer listens on socketPath. The caller must hold the engine
// PID file, since a leftover socket file is removed.
func NewDaemonServer(runner JobRunner, socketPath string, logger common.Logger) (*DaemonServer, error) {
	if logger == nil {
		logger = common.NopLogger{}
	}

	if err := os.RemoveAll(socketPath); err != nil {
		return nil, fmt.Errorf("failed to remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create unix socket listener: %w", err)
	}

	// Owner only
	if err := os.Chmod(socketPath, 0600); err != nil {
		listener.Close()
		return nil, fmt.Errorf("failed to set socket permissions: %w", err)
	}

	server := grpc.NewServer()
	server.RegisterService(&jobServiceDesc, &jobService{runner: runner})

	return &DaemonServer{listener: listener, server: server, logger: logger}, nil
}

// Addr is the socket the server listens on
func (s *DaemonServer) Addr() string {
	return s.listener.Addr().String()
}

// Serve blocks until the server stops
func (s *DaemonServer) Serve() error {
	s.logger.Info("daemon socket listening", "socket", s.Addr())
	if err := s.server.Serve(s.listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("gRPC server error: %w", err)
	}
	return nil
}

// Shutdown waits for in-flight manual runs, or drops them when ctx ends
func (s *DaemonServer) Shutdown(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		s.logger.Warn("daemon socket shutdown timed out, closing connections")
		s.server.Stop()
	}
}
