package errors

import (
	"encoding/json"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// ToGRPCError converts an error to a gRPC status error. Metadata rides along
// as a Struct detail of the form {code, message, meta}.
func ToGRPCError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	var e *Error
	if !As(err, &e) {
		return status.Error(codes.Internal, err.Error())
	}

	st := status.New(e.Code.GRPCCode(), e.Message)
	if len(e.Meta) == 0 {
		return st.Err()
	}
	details, derr := errorDetails(e)
	if derr != nil {
		return st.Err()
	}
	if withDetails, derr := st.WithDetails(details); derr == nil {
		st = withDetails
	}
	return st.Err()
}

// FromGRPCError converts a gRPC error back into an *Error, restoring the
// metadata written by ToGRPCError. Non-status errors pass through.
func FromGRPCError(err error) error {
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	out := &Error{
		Code:    codeFromGRPC(st.Code()),
		Message: st.Message(),
	}
	for _, detail := range st.Details() {
		if d, ok := detail.(*structpb.Struct); ok {
			if meta := d.GetFields()["meta"].GetStructValue(); meta != nil {
				out.Meta = meta.AsMap()
			}
			break
		}
	}

	return out
}

// errorDetails packs code, message and meta into a Struct detail. Meta values
// are normalized through JSON since Struct only holds JSON-shaped data.
func errorDetails(e *Error) (*structpb.Struct, error) {
	raw, err := json.Marshal(e.Meta)
	if err != nil {
		return nil, err
	}
	var meta map[string]any
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, err
	}

	return structpb.NewStruct(map[string]any{
		"code":    string(e.Code),
		"message": e.Message,
		"meta":    meta,
	})
}
