package gameserver

import (
	"fmt"
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the name reported by the health service for the world.
const ServiceName = "deltamud.World"

// HealthServer serves the standard gRPC health protocol.
//
// It implements server.Service: Start serves until Stop.
type HealthServer struct {
	lis    net.Listener
	grpc   *grpc.Server
	health *health.Server
	logger *zap.Logger
}

// NewHealthServer registers the health service on a new gRPC server bound to
// lis. Both the overall status and ServiceName report NOT_SERVING until
// SetServing is called.
//
// Precondition: lis and logger must be non-nil.
func NewHealthServer(lis net.Listener, logger *zap.Logger) *HealthServer {
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	srv := grpc.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	return &HealthServer{lis: lis, grpc: srv, health: hs, logger: logger}
}

// SetServing marks the world as ready or not.
func (h *HealthServer) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(ServiceName, status)
}

// Addr returns the listen address.
func (h *HealthServer) Addr() net.Addr { return h.lis.Addr() }

// Start serves until Stop.
func (h *HealthServer) Start() error {
	h.logger.Info("health service listening", zap.String("addr", h.lis.Addr().String()))
	if err := h.grpc.Serve(h.lis); err != nil && err != grpc.ErrServerStopped {
		return fmt.Errorf("serving health: %w", err)
	}
	return nil
}

// Stop reports NOT_SERVING to watchers and stops the server.
func (h *HealthServer) Stop() {
	h.health.Shutdown()
	h.grpc.GracefulStop()
}
