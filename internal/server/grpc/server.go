// Package grpc exposes the standard gRPC health service for the server's
// backing stores.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/paperkeeper/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Check probes one dependency. Name is reported as the health service name.
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

type HealthServer struct {
	address  string
	interval time.Duration
	checks   []Check
	health   *health.Server
	logger   logging.Logger
}

func NewHealthServer(a string, l logging.Logger, interval time.Duration, checks ...Check) *HealthServer {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &HealthServer{
		address:  a,
		interval: interval,
		checks:   checks,
		health:   health.NewServer(),
		logger:   l.With("module", "grpc_server"),
	}
}

func (s *HealthServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

func (s *HealthServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))
	healthpb.RegisterHealthServer(srv, s.health)

	s.probe(ctx)
	go s.watch(ctx)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}

func (s *HealthServer) watch(ctx context.Context) {
	t := time.NewTicker(s.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.probe(ctx)
		}
	}
}

// probe runs every check and sets per-service status. The overall ("")
// status is SERVING only when every check passes.
func (s *HealthServer) probe(ctx context.Context) {
	overall := healthpb.HealthCheckResponse_SERVING
	for _, c := range s.checks {
		st := healthpb.HealthCheckResponse_SERVING
		pctx, cancel := context.WithTimeout(ctx, s.interval)
		err := c.Ping(pctx)
		cancel()
		if err != nil {
			s.logger.Warn(ctx, "health check failed", "service", c.Name, "error", err)
			st = healthpb.HealthCheckResponse_NOT_SERVING
			overall = healthpb.HealthCheckResponse_NOT_SERVING
		}
		s.health.SetServingStatus(c.Name, st)
	}
	s.health.SetServingStatus("", overall)
}
