package grpc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/andrescamacho/carrierplus-go/internal/application/scheduler"
)

// ErrDaemonUnavailable is returned when nothing answers on the daemon socket
var ErrDaemonUnavailable = errors.New("daemon not reachable")

// DaemonClient talks to a running daemon over its unix socket
type DaemonClient struct {
	conn       *grpc.ClientConn
	socketPath string
}

// NewDaemonClient prepares a client. The connection is made lazily, so a
// missing daemon shows up as ErrDaemonUnavailable on the first call.
func NewDaemonClient(socketPath string) (*DaemonClient, error) {
	conn, err := grpc.NewClient(
		"unix:"+socketPath,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create daemon client: %w", err)
	}
	return &DaemonClient{conn: conn, socketPath: socketPath}, nil
}

// Close closes the client connection
func (c *DaemonClient) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// ListJobs returns the daemon's live job state
func (c *DaemonClient) ListJobs(ctx context.Context) ([]scheduler.JobInfo, error) {
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, listJobsMethod, &emptypb.Empty{}, out); err != nil {
		return nil, c.translate(err)
	}

	values := out.GetFields()[jobsListFieldKey].GetListValue().GetValues()
	jobs := make([]scheduler.JobInfo, 0, len(values))
	for _, v := range values {
		jobs = append(jobs, jobInfoFromStruct(v.GetStructValue()))
	}
	return jobs, nil
}

// RunJob runs a job inside the daemon and waits for it. The errors
// scheduler.ErrJobNotFound and scheduler.ErrJobRunning survive the trip.
func (c *DaemonClient) RunJob(ctx context.Context, name string) (time.Duration, error) {
	out := new(durationpb.Duration)
	if err := c.conn.Invoke(ctx, runJobMethod, wrapperspb.String(name), out); err != nil {
		return 0, c.translate(err)
	}
	return out.AsDuration(), nil
}

// remoteError carries a daemon-side message and the local sentinel it maps to
type remoteError struct {
	kind error
	msg  string
}

func (e *remoteError) Error() string { return e.msg }
func (e *remoteError) Unwrap() error { return e.kind }

func (c *DaemonClient) translate(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.Unavailable:
		return &remoteError{kind: ErrDaemonUnavailable, msg: fmt.Sprintf("%s at %s: %s", ErrDaemonUnavailable, c.socketPath, st.Message())}
	case codes.NotFound:
		return &remoteError{kind: scheduler.ErrJobNotFound, msg: st.Message()}
	case codes.FailedPrecondition:
		return &remoteError{kind: scheduler.ErrJobRunning, msg: st.Message()}
	default:
		return errors.New(st.Message())
	}
}
