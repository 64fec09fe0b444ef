package chatrpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Fully qualified names of the Board service and its methods.
const (
	ServiceName        = "onelinechat.v1.Board"
	PutMessageMethod   = "/onelinechat.v1.Board/PutMessage"
	RemoveAuthorMethod = "/onelinechat.v1.Board/RemoveAuthor"
)

// PutMessageRequest sets the current message of an author.
type PutMessageRequest struct {
	Author string `json:"author"`
	Text   string `json:"text"`
}

// RemoveAuthorRequest drops an author from the board.
type RemoveAuthorRequest struct {
	Author string `json:"author"`
}

// Ack is the empty response of every Board method.
type Ack struct{}

// BoardServer is the server API for the Board service.
type BoardServer interface {
	PutMessage(context.Context, *PutMessageRequest) (*Ack, error)
	RemoveAuthor(context.Context, *RemoveAuthorRequest) (*Ack, error)
}

// UnimplementedBoardServer can be embedded to have forward compatible
// implementations.
type UnimplementedBoardServer struct{}

func (UnimplementedBoardServer) PutMessage(context.Context, *PutMessageRequest) (*Ack, error) {
	return nil, status.Error(codes.Unimplemented, "method PutMessage not implemented")
}

func (UnimplementedBoardServer) RemoveAuthor(context.Context, *RemoveAuthorRequest) (*Ack, error) {
	return nil, status.Error(codes.Unimplemented, "method RemoveAuthor not implemented")
}

// RegisterBoardServer registers srv on s.
func RegisterBoardServer(s grpc.ServiceRegistrar, srv BoardServer) {
	s.RegisterService(&BoardServiceDesc, srv)
}

// BoardServiceDesc is the grpc.ServiceDesc for the Board service.
var BoardServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BoardServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "PutMessage", Handler: putMessageHandler},
		{MethodName: "RemoveAuthor", Handler: removeAuthorHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "onelinechat/v1/board",
}

func putMessageHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(PutMessageRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BoardServer).PutMessage(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: PutMessageMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(BoardServer).PutMessage(ctx, req.(*PutMessageRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func removeAuthorHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(RemoveAuthorRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BoardServer).RemoveAuthor(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: RemoveAuthorMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(BoardServer).RemoveAuthor(ctx, req.(*RemoveAuthorRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// BoardClient is the client API for the Board service.
type BoardClient interface {
	PutMessage(ctx context.Context, in *PutMessageRequest, opts ...grpc.CallOption) (*Ack, error)
	RemoveAuthor(ctx context.Context, in *RemoveAuthorRequest, opts ...grpc.CallOption) (*Ack, error)
}

type boardClient struct {
	cc grpc.ClientConnInterface
}

// NewBoardClient returns a BoardClient that encodes every call with Codec.
func NewBoardClient(cc grpc.ClientConnInterface) BoardClient {
	return &boardClient{cc: cc}
}

func (c *boardClient) PutMessage(ctx context.Context, in *PutMessageRequest, opts ...grpc.CallOption) (*Ack, error) {
	out := new(Ack)
	if err := c.cc.Invoke(ctx, PutMessageMethod, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *boardClient) RemoveAuthor(ctx context.Context, in *RemoveAuthorRequest, opts ...grpc.CallOption) (*Ack, error) {
	out := new(Ack)
	if err := c.cc.Invoke(ctx, RemoveAuthorMethod, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func withCodec(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}
