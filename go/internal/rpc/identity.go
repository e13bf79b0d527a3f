package rpc

import (
	"context"
	"errors"
	"fmt"

	"connectrpc.com/connect"
	"github.com/google/uuid"
)

// UserIDHeader carries the authenticated caller, set by the upstream auth proxy.
const UserIDHeader = "X-User-Id"

type callerKey struct{}

// WithCaller returns a context carrying the caller's user id.
func WithCaller(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, callerKey{}, id)
}

// CallerID returns the caller stored by the identity interceptor.
func CallerID(ctx context.Context) (uuid.UUID, error) {
	id, ok := ctx.Value(callerKey{}).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, connect.NewError(connect.CodeUnauthenticated, errors.New("missing caller identity"))
	}
	return id, nil
}

// NewIdentityInterceptor parses UserIDHeader on incoming calls. On outgoing
// calls it forwards the caller found in the context.
func NewIdentityInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if req.Spec().IsClient {
				if id, ok := ctx.Value(callerKey{}).(uuid.UUID); ok {
					req.Header().Set(UserIDHeader, id.String())
				}
				return next(ctx, req)
			}

			raw := req.Header().Get(UserIDHeader)
			if raw == "" {
				return next(ctx, req)
			}
			id, err := uuid.Parse(raw)
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, fmt.Errorf("invalid %s header: %w", UserIDHeader, err))
			}
			return next(WithCaller(ctx, id), req)
		}
	}
}
