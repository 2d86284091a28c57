package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "rpgbattle.v1alpha1.BattleService"

const (
	simulateMethod    = "/" + ServiceName + "/Simulate"
	getReportMethod   = "/" + ServiceName + "/GetReport"
	listReportsMethod = "/" + ServiceName + "/ListReports"
)

// BattleServiceServer is the server API for BattleService. Messages are
// free-form structs; field names match the JSON encoding of reports.
type BattleServiceServer interface {
	Simulate(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetReport(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListReports(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// UnimplementedBattleServiceServer can be embedded for forward compatibility
type UnimplementedBattleServiceServer struct{}

// Simulate implements BattleServiceServer
func (UnimplementedBattleServiceServer) Simulate(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method Simulate not implemented")
}

// GetReport implements BattleServiceServer
func (UnimplementedBattleServiceServer) GetReport(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetReport not implemented")
}

// ListReports implements BattleServiceServer
func (UnimplementedBattleServiceServer) ListReports(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method ListReports not implemented")
}

// RegisterBattleServiceServer registers srv on s
func RegisterBattleServiceServer(s grpc.ServiceRegistrar, srv BattleServiceServer) {
	s.RegisterService(&BattleServiceDesc, srv)
}

func unaryHandler(
	method string,
	call func(BattleServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(BattleServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(BattleServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// BattleServiceDesc is the grpc.ServiceDesc for BattleService
var BattleServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BattleServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Simulate",
			Handler:    unaryHandler(simulateMethod, BattleServiceServer.Simulate),
		},
		{
			MethodName: "GetReport",
			Handler:    unaryHandler(getReportMethod, BattleServiceServer.GetReport),
		},
		{
			MethodName: "ListReports",
			Handler:    unaryHandler(listReportsMethod, BattleServiceServer.ListReports),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "rpgbattle/v1alpha1/battle.proto",
}

// BattleServiceClient is the client API for BattleService
type BattleServiceClient interface {
	Simulate(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetReport(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListReports(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type battleServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewBattleServiceClient creates a client on cc
func NewBattleServiceClient(cc grpc.ClientConnInterface) BattleServiceClient {
	return &battleServiceClient{cc: cc}
}

func (c *battleServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts []grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *battleServiceClient) Simulate(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, simulateMethod, in, opts)
}

func (c *battleServiceClient) GetReport(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, getReportMethod, in, opts)
}

func (c *battleServiceClient) ListReports(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, listReportsMethod, in, opts)
}
