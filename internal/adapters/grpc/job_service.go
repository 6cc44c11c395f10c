package grpc

import (
	"context"
	"errors"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/andrescamacho/carrierplus-go/internal/application/scheduler"
)

const (
	jobServiceName   = "carrierplus.daemon.v1.JobService"
	listJobsMethod   = "/" + jobServiceName + "/ListJobs"
	runJobMethod     = "/" + jobServiceName + "/RunJob"
	lastRunAtLayout  = time.RFC3339Nano
	jobsListFieldKey = "jobs"
)

// JobRunner is the part of the engine the daemon exposes to the CLI
type JobRunner interface {
	RunJob(ctx context.Context, name string) error
	Jobs() []scheduler.JobInfo
}

// JobServiceServer is the server API of the daemon job service. Messages are
// protobuf well-known types so no generated code is needed.
type JobServiceServer interface {
	ListJobs(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
	RunJob(ctx context.Context, req *wrapperspb.StringValue) (*durationpb.Duration, error)
}

var jobServiceDesc = grpc.ServiceDesc{
	ServiceName: jobServiceName,
	HandlerType: (*JobServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListJobs", Handler: listJobsHandler},
		{MethodName: "RunJob", Handler: runJobHandler},
	},
	Streams: []grpc.StreamDesc{},
}

func listJobsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(JobServiceServer).ListJobs(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: listJobsMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(JobServiceServer).ListJobs(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func runJobHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(JobServiceServer).RunJob(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: runJobMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(JobServiceServer).RunJob(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

// jobService implements JobServiceServer on top of the daemon's scheduler
type jobService struct {
	runner JobRunner
}

func (s *jobService) ListJobs(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	jobs := s.runner.Jobs()
	list := make([]interface{}, 0, len(jobs))
	for _, job := range jobs {
		list = append(list, jobInfoToMap(job))
	}
	result, err := structpb.NewStruct(map[string]interface{}{jobsListFieldKey: list})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode jobs: %v", err)
	}
	return result, nil
}

func (s *jobService) RunJob(ctx context.Context, req *wrapperspb.StringValue) (*durationpb.Duration, error) {
	start := time.Now()
	err := s.runner.RunJob(ctx, req.GetValue())
	switch {
	case err == nil:
		return durationpb.New(time.Since(start)), nil
	case errors.Is(err, scheduler.ErrJobNotFound):
		return nil, status.Error(codes.NotFound, err.Error())
	case errors.Is(err, scheduler.ErrJobRunning):
		return nil, status.Error(codes.FailedPrecondition, err.Error())
	default:
		return nil, status.Error(codes.Internal, err.Error())
	}
}

func jobInfoToMap(job scheduler.JobInfo) map[string]interface{} {
	m := map[string]interface{}{
		"name":             job.Name,
		"interval_seconds": job.Interval.Seconds(),
		"running":          job.Running,
		"runs":             job.Runs,
		"failures":         job.Failures,
		"last_error":       job.LastError,
	}
	if job.LastRunAt != nil {
		m["last_run_at"] = job.LastRunAt.UTC().Format(lastRunAtLayout)
	}
	return m
}

func jobInfoFromStruct(s *structpb.Struct) scheduler.JobInfo {
	fields := s.GetFields()
	job := scheduler.JobInfo{
		Name:      fields["name"].GetStringValue(),
		Interval:  time.Duration(fields["interval_seconds"].GetNumberValue() * float64(time.Second)),
		Running:   fields["running"].GetBoolValue(),
		Runs:      int(fields["runs"].GetNumberValue()),
		Failures:  int(fields["failures"].GetNumberValue()),
		LastError: fields["last_error"].GetStringValue(),
	}
	if raw := fields["last_run_at"].GetStringValue(); raw != "" {
		if at, err := time.Parse(lastRunAtLayout, raw); err == nil {
			job.LastRunAt = &at
		}
	}
	return job
}
