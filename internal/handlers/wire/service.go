package wire

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-progression/internal/errors"
)

// UnaryMethod builds the method descriptor for call. The request Struct is
// decoded into Req before call runs and the response is encoded back to a
// Struct; interceptors see the Struct forms.
func UnaryMethod[S, Req, Resp any](
	service, method string,
	call func(srv S, ctx context.Context, req *Req) (*Resp, error),
) grpc.MethodDesc {
	fullMethod := FullMethod(service, method)

	invoke := func(srv S, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
		req := new(Req)
		if err := Decode(in, req); err != nil {
			return nil, errors.ToGRPCError(err)
		}

		resp, err := call(srv, ctx, req)
		if err != nil {
			return nil, err
		}

		out, err := Encode(resp)
		if err != nil {
			return nil, errors.ToGRPCError(err)
		}
		return out, nil
	}

	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return invoke(srv.(S), ctx, in)
			}

			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: fullMethod,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return invoke(srv.(S), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// FullMethod is the "/service/method" path clients invoke
func FullMethod(service, method string) string {
	return "/" + service + "/" + method
}
