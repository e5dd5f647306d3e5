package airplanes_service_api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName = "airplanes.v1.AirplanesService"

	createAirplaneMethod = "/" + ServiceName + "/CreateAirplane"
	listAirplanesMethod  = "/" + ServiceName + "/ListAirplanes"
)

// AirplanesServiceServer is the server API for the airplanes service.
// Requests and responses are protobuf well-known types, so no generated code is needed.
type AirplanesServiceServer interface {
	CreateAirplane(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListAirplanes(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
}

func RegisterAirplanesServiceServer(s grpc.ServiceRegistrar, srv AirplanesServiceServer) {
	s.RegisterService(&AirplanesService_ServiceDesc, srv)
}

var AirplanesService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AirplanesServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateAirplane",
			Handler:    createAirplaneHandler,
		},
		{
			MethodName: "ListAirplanes",
			Handler:    listAirplanesHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "airplanes/v1/airplanes.proto",
}

func createAirplaneHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AirplanesServiceServer).CreateAirplane(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: createAirplaneMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AirplanesServiceServer).CreateAirplane(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func listAirplanesHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AirplanesServiceServer).ListAirplanes(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: listAirplanesMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AirplanesServiceServer).ListAirplanes(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// Client is a thin client for the airplanes service.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) CreateAirplane(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, createAirplaneMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListAirplanes(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, listAirplanesMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
