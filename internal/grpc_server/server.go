package grpc_server

import (
	"context"
	"fmt"
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Logger — минимальный интерфейс логгера для Deps.
type Logger interface {
	Info(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	Debug(msg string, fields ...zap.Field)
}

// Deps — зависимости gRPC сервера.
type Deps struct {
	Generator Generator
	Logger    Logger
}

// NewGRPCServer создаёт gRPC сервер с DocsService и стандартным health-сервисом
func NewGRPCServer(deps Deps) *grpc.Server {
	grpcServer := grpc.NewServer(
		grpc.MaxSendMsgSize(10*1024*1024), // 10MB
		grpc.ChainUnaryInterceptor(loggingInterceptor(deps.Logger)),
	)
	RegisterDocsServiceServer(grpcServer, NewDocsServer(deps.Generator, deps.Logger))

	healthServer := health.NewServer()
	healthServer.SetServingStatus(DocsServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	return grpcServer
}

// RunGRPC слушает порт до отмены ctx, затем останавливает сервер через GracefulStop
func RunGRPC(ctx context.Context, port string, grpcServer *grpc.Server, logger Logger) error {
	lis, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	go func() {
		<-ctx.Done()
		grpcServer.GracefulStop()
	}()

	logger.Info("Starting gRPC server", zap.String("port", port))
	return grpcServer.Serve(lis)
}

func loggingInterceptor(logger Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err != nil {
			logger.Debug("gRPC call failed", zap.String("method", info.FullMethod), zap.Error(err))
		} else {
			logger.Debug("gRPC call", zap.String("method", info.FullMethod))
		}
		return resp, err
	}
}
