package types

import (
	"cosmossdk.io/errors"
	"google.golang.org/grpc/codes"
)

var (
	ErrInvalidRequest       = errors.RegisterWithGRPCCode(ModuleName, 2, codes.InvalidArgument, "invalid request")
	ErrStrategyNotFound     = errors.RegisterWithGRPCCode(ModuleName, 3, codes.NotFound, "strategy not found")
	ErrExceedsMaxWithdraw   = errors.RegisterWithGRPCCode(ModuleName, 4, codes.FailedPrecondition, "withdraw more than max")
	ErrTransferUnauthorized = errors.RegisterWithGRPCCode(ModuleName, 5, codes.PermissionDenied, "transfer unauthorized")
	ErrZeroAssetsWithSupply = errors.RegisterWithGRPCCode(ModuleName, 6, codes.FailedPrecondition, "zero total assets with outstanding share supply")
	ErrArithmeticOverflow   = errors.RegisterWithGRPCCode(ModuleName, 7, codes.OutOfRange, "arithmetic overflow")
	ErrUnauthorized         = errors.RegisterWithGRPCCode(ModuleName, 8, codes.PermissionDenied, "unauthorized")
	ErrStrategyExists       = errors.RegisterWithGRPCCode(ModuleName, 9, codes.AlreadyExists, "strategy already exists")
)

// CriticalError wraps a failure that happened after external funds moved inside an
// operation's cached context. The cache is discarded, but the condition points at an
// inconsistency between the ledger and the lending pool and is logged as such.
type CriticalError struct {
	// Reason is a stable, hard-coded description of the failed step.
	Reason string
	// Err is the underlying error, which may include deeper SDK or keeper details.
	Err error
}

// Error implements the error interface by returning the underlying error message.
func (e *CriticalError) Error() string { return e.Err.Error() }

// Unwrap allows errors.Unwrap and errors.Is/As to inspect the underlying error.
func (e *CriticalError) Unwrap() error { return e.Err }

// CriticalErr constructs a new CriticalError with the given reason string and underlying error.
func CriticalErr(reason string, err error) error {
	return &CriticalError{Reason: reason, Err: err}
}
