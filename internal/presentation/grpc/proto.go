package grpc

// proto.go defines the gRPC server interface for mortgage.v1.SimulatorService.
// Messages travel with the JSON codec registered in json_codec.go.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const simulatorServiceName = "mortgage.v1.SimulatorService"

// Fully qualified method names, as seen by interceptors.
const (
	MethodRunSimulation   = "/" + simulatorServiceName + "/RunSimulation"
	MethodGetSimulation   = "/" + simulatorServiceName + "/GetSimulation"
	MethodListSimulations = "/" + simulatorServiceName + "/ListSimulations"
)

// SimulatorServiceServer is the server API for SimulatorService.
type SimulatorServiceServer interface {
	RunSimulation(context.Context, *RunSimulationRequestMsg) (*SimulationResponseMsg, error)
	GetSimulation(context.Context, *GetSimulationRequestMsg) (*SimulationResponseMsg, error)
	ListSimulations(context.Context, *ListSimulationsRequestMsg) (*ListSimulationsResponseMsg, error)
	mustEmbedUnimplementedSimulatorServiceServer()
}

// UnimplementedSimulatorServiceServer provides forward-compatible default implementations.
type UnimplementedSimulatorServiceServer struct{}

func (UnimplementedSimulatorServiceServer) RunSimulation(context.Context, *RunSimulationRequestMsg) (*SimulationResponseMsg, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RunSimulation not implemented")
}
func (UnimplementedSimulatorServiceServer) GetSimulation(context.Context, *GetSimulationRequestMsg) (*SimulationResponseMsg, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetSimulation not implemented")
}
func (UnimplementedSimulatorServiceServer) ListSimulations(context.Context, *ListSimulationsRequestMsg) (*ListSimulationsResponseMsg, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListSimulations not implemented")
}
func (UnimplementedSimulatorServiceServer) mustEmbedUnimplementedSimulatorServiceServer() {}

// RegisterSimulatorServiceServer registers the SimulatorServiceServer with the gRPC server.
func RegisterSimulatorServiceServer(s grpclib.ServiceRegistrar, srv SimulatorServiceServer) {
	s.RegisterService(&_SimulatorService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _SimulatorService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: simulatorServiceName,
	HandlerType: (*SimulatorServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "RunSimulation", Handler: _SimulatorService_RunSimulation_Handler},     //nolint:revive // gRPC handler registration
		{MethodName: "GetSimulation", Handler: _SimulatorService_GetSimulation_Handler},     //nolint:revive // gRPC handler registration
		{MethodName: "ListSimulations", Handler: _SimulatorService_ListSimulations_Handler}, //nolint:revive // gRPC handler registration
	},
	Streams: []grpclib.StreamDesc{},
}

//nolint:revive,errcheck // gRPC handler registration
func _SimulatorService_RunSimulation_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	in := new(RunSimulationRequestMsg)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SimulatorServiceServer).RunSimulation(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: MethodRunSimulation}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SimulatorServiceServer).RunSimulation(ctx, req.(*RunSimulationRequestMsg))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _SimulatorService_GetSimulation_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	in := new(GetSimulationRequestMsg)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SimulatorServiceServer).GetSimulation(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: MethodGetSimulation}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SimulatorServiceServer).GetSimulation(ctx, req.(*GetSimulationRequestMsg))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _SimulatorService_ListSimulations_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	in := new(ListSimulationsRequestMsg)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SimulatorServiceServer).ListSimulations(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: MethodListSimulations}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SimulatorServiceServer).ListSimulations(ctx, req.(*ListSimulationsRequestMsg))
	}
	return interceptor(ctx, in, info, handler)
}
