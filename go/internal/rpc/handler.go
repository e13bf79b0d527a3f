package rpc

import (
	"context"
	"fmt"
	"net/http"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/mcdev12/scorepool/go/internal/models"
)

// ServiceMux routes the unary procedures of one service.
type ServiceMux struct {
	name string
	mux  *http.ServeMux
	opts []connect.HandlerOption
}

// NewServiceMux creates a mux for the fully qualified service name, e.g.
// "scorepool.v1.LeagueService". Every handler gets the JSON codec and the
// identity interceptor ahead of opts.
func NewServiceMux(name string, opts ...connect.HandlerOption) *ServiceMux {
	base := []connect.HandlerOption{
		connect.WithCodec(JSONCodec{}),
		connect.WithInterceptors(NewIdentityInterceptor()),
	}
	return &ServiceMux{
		name: name,
		mux:  http.NewServeMux(),
		opts: append(base, opts...),
	}
}

// Path is the prefix to mount the service under.
func (s *ServiceMux) Path() string {
	return "/" + s.name + "/"
}

// Handler returns the routed handler.
func (s *ServiceMux) Handler() http.Handler {
	return s.mux
}

// Procedure returns the full procedure path for method.
func (s *ServiceMux) Procedure(method string) string {
	return s.Path() + method
}

// Handle registers fn as the unary procedure method on s. Errors returned by
// fn are mapped with ToConnectError.
func Handle[Req, Res any](s *ServiceMux, method string, fn func(context.Context, *Req) (*Res, error)) {
	procedure := s.Procedure(method)
	s.mux.Handle(procedure, connect.NewUnaryHandler(
		procedure,
		func(ctx context.Context, req *connect.Request[Req]) (*connect.Response[Res], error) {
			res, err := fn(ctx, req.Msg)
			if err != nil {
				return nil, ToConnectError(err)
			}
			return connect.NewResponse(res), nil
		},
		s.opts...,
	))
}

// ParseID parses a uuid request field, naming it in the error.
func ParseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s: %v", models.ErrInvalidArgument, field, err)
	}
	return id, nil
}

// ParseOptionalID is ParseID for fields that may be empty.
func ParseOptionalID(field, raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := ParseID(field, raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
