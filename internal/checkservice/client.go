package checkservice

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Result is the verdict returned by the check service
type Result struct {
	OK   bool
	Kind string // Rejection kind; empty when OK
}

// Client calls a remote sfl.v1.Checker
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient creates a client on an existing connection
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Check sends source to the service and returns its verdict
func (c *Client) Check(ctx context.Context, source string, opts ...grpc.CallOption) (Result, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, checkMethod, wrapperspb.String(source), out, opts...); err != nil {
		return Result{}, err
	}

	fields := out.GetFields()
	return Result{
		OK:   fields["ok"].GetBoolValue(),
		Kind: fields["kind"].GetStringValue(),
	}, nil
}
