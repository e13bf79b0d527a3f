package rpc

import (
	"context"
	"errors"

	"connectrpc.com/connect"
	"github.com/mcdev12/scorepool/go/internal/models"
)

var codeBySentinel = []struct {
	err  error
	code connect.Code
}{
	{models.ErrInvalidArgument, connect.CodeInvalidArgument},
	{models.ErrSelfAction, connect.CodeInvalidArgument},
	{models.ErrNotFound, connect.CodeNotFound},
	{models.ErrInvalidInvite, connect.CodeNotFound},
	{models.ErrNotMember, connect.CodePermissionDenied},
	{models.ErrRoleNotPermitted, connect.CodePermissionDenied},
	{models.ErrOwnerRoleImmutable, connect.CodeFailedPrecondition},
	{models.ErrOwnerMustTransfer, connect.CodeFailedPrecondition},
	{models.ErrNotAMember, connect.CodeFailedPrecondition},
	{models.ErrWrongSeason, connect.CodeFailedPrecondition},
	{models.ErrLocked, connect.CodeFailedPrecondition},
	{models.ErrMatchFinished, connect.CodeFailedPrecondition},
	{models.ErrDuplicateLeagueName, connect.CodeAlreadyExists},
	{models.ErrAlreadyExists, connect.CodeAlreadyExists},
	{models.ErrInviteCodeExhausted, connect.CodeResourceExhausted},
	{models.ErrInconsistentState, connect.CodeDataLoss},
	{context.Canceled, connect.CodeCanceled},
	{context.DeadlineExceeded, connect.CodeDeadlineExceeded},
}

// ToConnectError maps domain errors onto connect codes. Errors that are
// already *connect.Error pass through unchanged.
func ToConnectError(err error) error {
	if err == nil {
		return nil
	}

	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}

	for _, m := range codeBySentinel {
		if errors.Is(err, m.err) {
			return connect.NewError(m.code, err)
		}
	}
	return connect.NewError(connect.CodeInternal, err)
}
