// Package lifecycle manages asset-request state transitions.
//
// The state machine starts at Pending. Approve moves Pending to
// Approved, dispatch moves Approved to Dispatched and reassigns the
// target asset in the same transaction, reject moves Pending or
// Approved to Rejected. Rejected and Dispatched are terminal.
package lifecycle

import (
	"errors"
	"fmt"

	"assetledger/models"
)

var (
	ErrRequestNotFound   = errors.New("asset request not found")
	ErrAssetNotFound     = errors.New("asset referenced by request not found")
	ErrReasonRequired    = errors.New("rejection reason is required")
	ErrInvalidTransition = errors.New("invalid request state transition")
)

// Action is one of the operations a reviewer can take on a request.
type Action string

const (
	ActionApprove  Action = "approve"
	ActionReject   Action = "reject"
	ActionDispatch Action = "dispatch"
)

// IsTerminal reports whether no further transition is allowed.
func IsTerminal(status string) bool {
	return status == models.RequestRejected || status == models.RequestDispatched
}

// ValidateTransition checks whether an action is legal from the given
// status. Approving an already-Approved request is allowed so that a
// repeated approve is idempotent.
func ValidateTransition(status string, action Action) error {
	switch action {
	case ActionApprove:
		if status == models.RequestPending || status == models.RequestApproved {
			return nil
		}
	case ActionReject:
		if status == models.RequestPending || status == models.RequestApproved {
			return nil
		}
	case ActionDispatch:
		if status == models.RequestApproved {
			return nil
		}
	default:
		return fmt.Errorf("%w: unknown action %q", ErrInvalidTransition, action)
	}
	return fmt.Errorf("%w: cannot %s a %s request", ErrInvalidTransition, action, status)
}

// Apply performs a transition on the in-memory request record. The
// stored rejection reason is set if and only if the request ends up
// Rejected. Persistence is handled by Service.
func Apply(req *models.AssetRequest, action Action, reason string) error {
	if err := ValidateTransition(req.Status, action); err != nil {
		return err
	}

	switch action {
	case ActionApprove:
		req.Status = models.RequestApproved
	case ActionReject:
		if reason == "" {
			return ErrReasonRequired
		}
		req.Status = models.RequestRejected
		req.RejectionReason = reason
	case ActionDispatch:
		req.Status = models.RequestDispatched
	}
	return nil
}
