// Code generated by protoc-gen-go-grpc. DO NOT EDIT.
// versions:
// - protoc-gen-go-grpc v1.5.1
// - protoc             (unknown)
// source: harbinger.proto

package pb

import (
	context "context"
	grpc "google.golang.org/grpc"
	codes "google.golang.org/grpc/codes"
	status "google.golang.org/grpc/status"
)

// This is a compile-time assertion to ensure that this generated file
// is compatible with the grpc package it is being compiled against.
// Requires gRPC-Go v1.64.0 or later.
const _ = grpc.SupportPackageIsVersion9

const (
	DecisionFeed_StreamDecisions_FullMethodName = "/harbinger.v1.DecisionFeed/StreamDecisions"
)

// DecisionFeedClient is the client API for DecisionFeed service.
//
// For semantics around ctx use and closing/ending streaming RPCs, please refer to https://pkg.go.dev/google.golang.org/grpc/?tab=doc#ClientConn.NewStream.
//
// DecisionFeed streams the engine's per-cycle decision summaries to
// monitoring clients.
type DecisionFeedClient interface {
	// StreamDecisions sends a snapshot of recent decisions, then streams new
	// ones as each cycle completes. The stream ends when the client
	// disconnects.
	StreamDecisions(ctx context.Context, in *StreamDecisionsRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[DecisionEvent], error)
}

type decisionFeedClient struct {
	cc grpc.ClientConnInterface
}

func NewDecisionFeedClient(cc grpc.ClientConnInterface) DecisionFeedClient {
	return &decisionFeedClient{cc}
}

func (c *decisionFeedClient) StreamDecisions(ctx context.Context, in *StreamDecisionsRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[DecisionEvent], error) {
	cOpts := append([]grpc.CallOption{grpc.StaticMethod()}, opts...)
	stream, err := c.cc.NewStream(ctx, &DecisionFeed_ServiceDesc.Streams[0], DecisionFeed_StreamDecisions_FullMethodName, cOpts...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[StreamDecisionsRequest, DecisionEvent]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// This type alias is provided for backwards compatibility with existing code that references the prior non-generic stream type by name.
type DecisionFeed_StreamDecisionsClient = grpc.ServerStreamingClient[DecisionEvent]

// DecisionFeedServer is the server API for DecisionFeed service.
// All implementations must embed UnimplementedDecisionFeedServer
// for forward compatibility.
//
// DecisionFeed streams the engine's per-cycle decision summaries to
// monitoring clients.
type DecisionFeedServer interface {
	// StreamDecisions sends a snapshot of recent decisions, then streams new
	// ones as each cycle completes. The stream ends when the client
	// disconnects.
	StreamDecisions(*StreamDecisionsRequest, grpc.ServerStreamingServer[DecisionEvent]) error
	mustEmbedUnimplementedDecisionFeedServer()
}

// UnimplementedDecisionFeedServer must be embedded to have
// forward compatible implementations.
//
// NOTE: this should be embedded by value instead of pointer to avoid a nil
// pointer dereference when methods are called.
type UnimplementedDecisionFeedServer struct{}

func (UnimplementedDecisionFeedServer) StreamDecisions(*StreamDecisionsRequest, grpc.ServerStreamingServer[DecisionEvent]) error {
	return status.Errorf(codes.Unimplemented, "method StreamDecisions not implemented")
}
func (UnimplementedDecisionFeedServer) mustEmbedUnimplementedDecisionFeedServer() {}
func (UnimplementedDecisionFeedServer) testEmbeddedByValue()                      {}

// UnsafeDecisionFeedServer may be embedded to opt out of forward compatibility for this service.
// Use of this interface is not recommended, as added methods to DecisionFeedServer will
// result in compilation errors.
type UnsafeDecisionFeedServer interface {
	mustEmbedUnimplementedDecisionFeedServer()
}

func RegisterDecisionFeedServer(s grpc.ServiceRegistrar, srv DecisionFeedServer) {
	// If the following call pancis, it indicates UnimplementedDecisionFeedServer was
	// embedded by pointer and is nil.  This will cause panics if an
	// unimplemented method is ever invoked, so we test this at initialization
	// time to prevent it from happening at runtime later due to I/O.
	if t, ok := srv.(interface{ testEmbeddedByValue() }); ok {
		t.testEmbeddedByValue()
	}
	s.RegisterService(&DecisionFeed_ServiceDesc, srv)
}

func _DecisionFeed_StreamDecisions_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(StreamDecisionsRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(DecisionFeedServer).StreamDecisions(m, &grpc.GenericServerStream[StreamDecisionsRequest, DecisionEvent]{ServerStream: stream})
}

// This type alias is provided for backwards compatibility with existing code that references the prior non-generic stream type by name.
type DecisionFeed_StreamDecisionsServer = grpc.ServerStreamingServer[DecisionEvent]

// DecisionFeed_ServiceDesc is the grpc.ServiceDesc for DecisionFeed service.
// It's only intended for direct use with grpc.RegisterService,
// and not to be introspected or modified (even as a copy)
var DecisionFeed_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "harbinger.v1.DecisionFeed",
	HandlerType: (*DecisionFeedServer)(nil),
	Methods:     []grpc.MethodDesc{},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "StreamDecisions",
			Handler:       _DecisionFeed_StreamDecisions_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "harbinger.proto",
}
