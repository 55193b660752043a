package campaign

import (
	"errors"
	"fmt"

	"ezcrow.dev/crowdfund/internal/pkg/amount"
)

// Engine errors. Any of them aborts the invocation as a whole.
var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrCampaignEnded      = errors.New("campaign has ended")
	ErrInvalidAmount      = errors.New("donation amount must be positive")
	ErrTransferFailed     = errors.New("token transfer failed")
	ErrNotInitialized     = errors.New("campaign is not initialized")
	ErrAlreadyInitialized = errors.New("campaign is already initialized")
	ErrAmountOverflow     = errors.New("amount overflow")
	ErrCorruptState       = errors.New("corrupt campaign state")
)

// TransferError reports a rejected token transfer during Donate.
// errors.Is matches both ErrTransferFailed and the host's own error.
type TransferError struct {
	Token  Address
	From   Address
	To     Address
	Amount amount.Int
	Err    error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("transfer of %s from %s to %s on %s: %v", e.Amount, e.From, e.To, e.Token, e.Err)
}

func (e *TransferError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrTransferFailed) hold for every TransferError.
func (e *TransferError) Is(target error) bool {
	return target == ErrTransferFailed
}
