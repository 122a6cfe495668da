package grpc_server

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/psds-microservice/openapi-docs/internal/annotation"
)

// Имена сервиса и метода (proto: psds.openapi.v1.DocsService)
const (
	DocsServiceName       = "psds.openapi.v1.DocsService"
	GetDocumentFullMethod = "/" + DocsServiceName + "/GetDocument"
)

// Generator — источник OpenAPI-документа (swagger.Builder).
type Generator interface {
	Build(ctx context.Context) (annotation.Document, error)
}

// DocsServiceServer — серверная часть DocsService.
type DocsServiceServer interface {
	GetDocument(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
}

// DocsServer отдаёт OpenAPI-документ как google.protobuf.Struct
type DocsServer struct {
	generator Generator
	logger    Logger
}

// NewDocsServer создает gRPC сервер документации
func NewDocsServer(generator Generator, logger Logger) *DocsServer {
	return &DocsServer{generator: generator, logger: logger}
}

// GetDocument собирает документ заново на каждый вызов
func (s *DocsServer) GetDocument(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	doc, err := s.generator.Build(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	out, err := structpb.NewStruct(map[string]any(doc))
	if err != nil {
		s.logger.Error("Failed to convert OpenAPI document", zap.Error(err))
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

// mapError маппит ошибку сборки в gRPC status: аналог HTTP 400 — InvalidArgument.
func mapError(err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.InvalidArgument, err.Error())
	}
}

// RegisterDocsServiceServer регистрирует DocsService на gRPC сервере
func RegisterDocsServiceServer(s grpc.ServiceRegistrar, srv DocsServiceServer) {
	s.RegisterService(&DocsServiceDesc, srv)
}

// DocsServiceDesc — описание сервиса без сгенерированного кода: сообщения — well-known types.
var DocsServiceDesc = grpc.ServiceDesc{
	ServiceName: DocsServiceName,
	HandlerType: (*DocsServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetDocument",
			Handler:    getDocumentHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "psds/openapi/v1/docs.proto",
}

func getDocumentHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DocsServiceServer).GetDocument(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GetDocumentFullMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DocsServiceServer).GetDocument(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// DocsServiceClient — клиент DocsService
type DocsServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewDocsServiceClient создает клиент поверх соединения
func NewDocsServiceClient(cc grpc.ClientConnInterface) *DocsServiceClient {
	return &DocsServiceClient{cc: cc}
}

// GetDocument запрашивает OpenAPI-документ
func (c *DocsServiceClient) GetDocument(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GetDocumentFullMethod, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
