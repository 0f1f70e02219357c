package errors

import "google.golang.org/grpc/codes"

// Code classifies an error. Codes line up one to one with gRPC status codes.
type Code string

// Error codes
const (
	CodeOK                 Code = "OK"
	CodeCanceled           Code = "CANCELED"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeDeadlineExceeded   Code = "DEADLINE_EXCEEDED"
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodePermissionDenied   Code = "PERMISSION_DENIED"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeAborted            Code = "ABORTED"
	CodeUnimplemented      Code = "UNIMPLEMENTED"
	CodeInternal           Code = "INTERNAL"
	CodeUnavailable        Code = "UNAVAILABLE"
	CodeUnauthenticated    Code = "UNAUTHENTICATED"
)

var grpcCodes = map[Code]codes.Code{
	CodeOK:                 codes.OK,
	CodeCanceled:           codes.Canceled,
	CodeInvalidArgument:    codes.InvalidArgument,
	CodeDeadlineExceeded:   codes.DeadlineExceeded,
	CodeNotFound:           codes.NotFound,
	CodeAlreadyExists:      codes.AlreadyExists,
	CodePermissionDenied:   codes.PermissionDenied,
	CodeFailedPrecondition: codes.FailedPrecondition,
	CodeAborted:            codes.Aborted,
	CodeUnimplemented:      codes.Unimplemented,
	CodeInternal:           codes.Internal,
	CodeUnavailable:        codes.Unavailable,
	CodeUnauthenticated:    codes.Unauthenticated,
}

var fromGRPCCodes = func() map[codes.Code]Code {
	out := make(map[codes.Code]Code, len(grpcCodes))
	for c, g := range grpcCodes {
		out[g] = c
	}
	return out
}()

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// GRPCCode returns the corresponding gRPC code. Unknown codes map to Unknown.
func (c Code) GRPCCode() codes.Code {
	if g, ok := grpcCodes[c]; ok {
		return g
	}
	return codes.Unknown
}

// codeFromGRPC maps a gRPC code back. Codes this service never produces
// become Internal.
func codeFromGRPC(g codes.Code) Code {
	if c, ok := fromGRPCCodes[g]; ok {
		return c
	}
	return CodeInternal
}

// Retryable reports whether a call failing with this code may succeed when
// repeated unchanged
func (c Code) Retryable() bool {
	switch c {
	case CodeAborted, CodeUnavailable, CodeDeadlineExceeded:
		return true
	default:
		return false
	}
}
