package grpc

import (
	"fmt"
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/config"
	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/pkg/logger"
)

// PaymentServiceName is the health check name reported next to the overall status.
const PaymentServiceName = "upi.PaymentService"

// Server gRPC 서버 구조체
type Server struct {
	server  *grpc.Server
	health  *health.Server
	logger  *zap.Logger
	address string
}

// NewServer creates a gRPC server exposing the standard health service
func NewServer(cfg config.GRPCConfig, zapLogger *zap.Logger) *Server {
	server := grpc.NewServer(
		grpc.ChainUnaryInterceptor(logger.NewGrpcUnaryServerInterceptor(zapLogger)),
		grpc.ChainStreamInterceptor(logger.NewGrpcStreamServerInterceptor(zapLogger)),
	)

	// 헬스 체크 서비스 등록
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(server, healthServer)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(PaymentServiceName, healthpb.HealthCheckResponse_SERVING)

	reflection.Register(server)

	return &Server{
		server:  server,
		health:  healthServer,
		logger:  zapLogger,
		address: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
	}
}

// Start listens on the configured address and serves until Stop
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("failed to listen for gRPC: %w", err)
	}
	return s.Serve(listener)
}

// Serve serves on an existing listener
func (s *Server) Serve(listener net.Listener) error {
	s.logger.Info("gRPC server starting", zap.String("address", listener.Addr().String()))
	return s.server.Serve(listener)
}

// Stop marks every service NOT_SERVING and drains in-flight calls
func (s *Server) Stop() {
	s.logger.Info("gRPC server shutting down")
	s.health.Shutdown()
	s.server.GracefulStop()
	s.logger.Info("gRPC server stopped")
}
