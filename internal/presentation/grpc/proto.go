package grpc

// proto.go defines the gRPC server interface for bib/risk/v1/risk.proto.
// Messages travel with the JSON codec registered in json_codec.go, so this file
// stands in for generated code.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "bib.risk.v1.RiskService"

// RiskServiceServer is the server API for RiskService.
type RiskServiceServer interface {
	AssessApplicant(context.Context, *AssessApplicantRequest) (*AssessApplicantResponse, error)
	ListRules(context.Context, *ListRulesRequest) (*ListRulesResponse, error)
	DescribeVariables(context.Context, *DescribeVariablesRequest) (*DescribeVariablesResponse, error)
	mustEmbedUnimplementedRiskServiceServer()
}

// UnimplementedRiskServiceServer provides forward-compatible default implementations.
type UnimplementedRiskServiceServer struct{}

func (UnimplementedRiskServiceServer) AssessApplicant(context.Context, *AssessApplicantRequest) (*AssessApplicantResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AssessApplicant not implemented")
}
func (UnimplementedRiskServiceServer) ListRules(context.Context, *ListRulesRequest) (*ListRulesResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListRules not implemented")
}
func (UnimplementedRiskServiceServer) DescribeVariables(context.Context, *DescribeVariablesRequest) (*DescribeVariablesResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DescribeVariables not implemented")
}
func (UnimplementedRiskServiceServer) mustEmbedUnimplementedRiskServiceServer() {}

// RegisterRiskServiceServer registers the RiskServiceServer with the gRPC server.
func RegisterRiskServiceServer(s grpclib.ServiceRegistrar, srv RiskServiceServer) {
	s.RegisterService(&_RiskService_serviceDesc, srv)
}

var _RiskService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RiskServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "AssessApplicant", Handler: _RiskService_AssessApplicant_Handler},
		{MethodName: "ListRules", Handler: _RiskService_ListRules_Handler},
		{MethodName: "DescribeVariables", Handler: _RiskService_DescribeVariables_Handler},
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "bib/risk/v1/risk.proto",
}

func _RiskService_AssessApplicant_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(AssessApplicantRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RiskServiceServer).AssessApplicant(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/AssessApplicant"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RiskServiceServer).AssessApplicant(ctx, req.(*AssessApplicantRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func _RiskService_ListRules_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(ListRulesRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RiskServiceServer).ListRules(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/ListRules"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RiskServiceServer).ListRules(ctx, req.(*ListRulesRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func _RiskService_DescribeVariables_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(DescribeVariablesRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RiskServiceServer).DescribeVariables(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/DescribeVariables"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RiskServiceServer).DescribeVariables(ctx, req.(*DescribeVariablesRequest))
	}
	return interceptor(ctx, req, info, handler)
}
