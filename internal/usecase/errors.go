package usecase

import (
	"context"
	"errors"
	"net/http"

	"ezcrow.dev/crowdfund/internal/campaign"
	"ezcrow.dev/crowdfund/internal/host"
	"ezcrow.dev/crowdfund/internal/pkg/amount"
	apperrors "ezcrow.dev/crowdfund/internal/pkg/errors"
)

// Translate maps engine and host errors onto the API error envelope.
// Errors that are already AppErrors pass through unchanged.
func Translate(err error) *apperrors.AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := apperrors.IsAppError(err); ok {
		return appErr
	}

	var out *apperrors.AppError
	switch {
	case errors.Is(err, campaign.ErrUnauthorized):
		if errors.Is(err, host.ErrMissingSignature) {
			out = apperrors.Unauthorized(apperrors.CodeUnauthorized, "invocation is missing a required signature")
		} else {
			out = apperrors.Forbidden(apperrors.CodeUnauthorized, "caller is not the campaign owner")
		}
	case errors.Is(err, campaign.ErrCampaignEnded):
		out = apperrors.Conflict(apperrors.CodeCampaignEnded, "campaign has ended")
	case errors.Is(err, campaign.ErrInvalidAmount), errors.Is(err, host.ErrNegativeAmount):
		out = apperrors.BadRequest(apperrors.CodeInvalidAmount, "amount must be positive")
	case errors.Is(err, campaign.ErrTransferFailed):
		out = apperrors.PaymentRequired(apperrors.CodeTransferFailed, "token transfer failed")
	case errors.Is(err, campaign.ErrNotInitialized):
		out = apperrors.Conflict(apperrors.CodeNotInitialized, "campaign is not initialized")
	case errors.Is(err, campaign.ErrAlreadyInitialized):
		out = apperrors.Conflict(apperrors.CodeAlreadyInitialized, "campaign is already initialized")
	case errors.Is(err, campaign.ErrAmountOverflow), errors.Is(err, amount.ErrOverflow):
		out = apperrors.Unprocessable(apperrors.CodeAmountOverflow, "amount exceeds the 128-bit range")
	case errors.Is(err, campaign.ErrInvalidAddress):
		out = apperrors.BadRequest(apperrors.CodeInvalidAddress, "invalid address")
	case errors.Is(err, campaign.ErrCorruptState):
		out = apperrors.Internal(apperrors.CodeCorruptState, "stored campaign state is inconsistent")
	case errors.Is(err, host.ErrContractPanic):
		out = apperrors.Internal(apperrors.CodeInvocationFailed, "contract invocation aborted")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		out = apperrors.New(apperrors.CodeStorageUnavail, "invocation did not complete", http.StatusServiceUnavailable)
	default:
		out = apperrors.Internal(apperrors.CodeInternal, "an internal error occurred")
	}
	return out.WithCause(err)
}

// ErrorCode returns the envelope code for err, or "" for nil.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	return Translate(err).Code
}
