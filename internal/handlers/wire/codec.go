// Package wire carries handler requests and responses as
// google.protobuf.Struct messages. Request and response types are plain Go
// structs with json tags; the Struct is their JSON object form.
package wire

import (
	"bytes"
	"context"
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-progression/internal/errors"
)

// Decode fills out from req. Unknown fields are rejected. A nil req decodes
// as an empty object.
func Decode(req *structpb.Struct, out any) error {
	if req == nil {
		req = &structpb.Struct{}
	}

	data, err := protojson.Marshal(req)
	if err != nil {
		return errors.InvalidArgumentf("malformed request: %v", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return errors.InvalidArgumentf("malformed request: %v", err)
	}
	return nil
}

// Encode converts v, which must marshal to a JSON object, into a Struct
func Encode(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Internalf("failed to encode response: %v", err)
	}

	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, errors.Internalf("failed to encode response: %v", err)
	}
	return out, nil
}

// Invoke calls a unary method whose messages are Structs, encoding req and
// decoding the reply into resp
func Invoke(ctx context.Context, conn grpc.ClientConnInterface, method string, req, resp any) error {
	in, err := Encode(req)
	if err != nil {
		return err
	}

	out := &structpb.Struct{}
	if err := conn.Invoke(ctx, method, in, out); err != nil {
		return errors.FromGRPCError(err)
	}

	data, err := protojson.Marshal(out)
	if err != nil {
		return errors.Internalf("malformed response: %v", err)
	}
	if err := json.Unmarshal(data, resp); err != nil {
		return errors.Internalf("malformed response: %v", err)
	}
	return nil
}
