package lifecycle

import (
	"errors"
	"testing"

	"assetledger/models"
)

func TestValidateTransitionTable(t *testing.T) {
	cases := []struct {
		status string
		action Action
		ok     bool
	}{
		{models.RequestPending, ActionApprove, true},
		{models.RequestApproved, ActionApprove, true}, // idempotent approve
		{models.RequestRejected, ActionApprove, false},
		{models.RequestDispatched, ActionApprove, false},

		{models.RequestPending, ActionReject, true},
		{models.RequestApproved, ActionReject, true},
		{models.RequestRejected, ActionReject, false},
		{models.RequestDispatched, ActionReject, false},

		{models.RequestPending, ActionDispatch, false},
		{models.RequestApproved, ActionDispatch, true},
		{models.RequestRejected, ActionDispatch, false},
		{models.RequestDispatched, ActionDispatch, false},
	}

	for _, c := range cases {
		err := ValidateTransition(c.status, c.action)
		if c.ok && err != nil {
			t.Errorf("%s on %s: unexpected error %v", c.action, c.status, err)
		}
		if !c.ok {
			if !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("%s on %s: expected ErrInvalidTransition, got %v", c.action, c.status, err)
			}
		}
	}
}

func TestApplyApprove(t *testing.T) {
	req := &models.AssetRequest{Status: models.RequestPending}
	if err := Apply(req, ActionApprove, ""); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if req.Status != models.RequestApproved {
		t.Fatalf("expected Approved, got %s", req.Status)
	}
}

func TestApplyApproveIsIdempotent(t *testing.T) {
	req := &models.AssetRequest{Status: models.RequestPending}
	if err := Apply(req, ActionApprove, ""); err != nil {
		t.Fatalf("first approve failed: %v", err)
	}
	if err := Apply(req, ActionApprove, ""); err != nil {
		t.Fatalf("second approve failed: %v", err)
	}
	if req.Status != models.RequestApproved {
		t.Fatalf("expected Approved after double approve, got %s", req.Status)
	}
}

func TestApplyReject(t *testing.T) {
	req := &models.AssetRequest{Status: models.RequestPending}
	if err := Apply(req, ActionReject, "damaged"); err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if req.Status != models.RequestRejected {
		t.Fatalf("expected Rejected, got %s", req.Status)
	}
	if req.RejectionReason != "damaged" {
		t.Fatalf("expected rejection reason to be stored, got %q", req.RejectionReason)
	}
}

func TestApplyRejectRequiresReason(t *testing.T) {
	req := &models.AssetRequest{Status: models.RequestPending}
	err := Apply(req, ActionReject, "")
	if !errors.Is(err, ErrReasonRequired) {
		t.Fatalf("expected ErrReasonRequired, got %v", err)
	}
	if req.Status != models.RequestPending {
		t.Fatalf("request should be unchanged, got %s", req.Status)
	}
}

func TestRejectionReasonOnlyWhenRejected(t *testing.T) {
	// Approve and dispatch paths must never set a rejection reason.
	req := &models.AssetRequest{Status: models.RequestPending}
	if err := Apply(req, ActionApprove, ""); err != nil {
		t.Fatal(err)
	}
	if req.RejectionReason != "" {
		t.Fatal("approve must not set a rejection reason")
	}
	if err := Apply(req, ActionDispatch, ""); err != nil {
		t.Fatal(err)
	}
	if req.RejectionReason != "" {
		t.Fatal("dispatch must not set a rejection reason")
	}
}

func TestApplyDispatchOnlyFromApproved(t *testing.T) {
	req := &models.AssetRequest{Status: models.RequestPending}
	if err := Apply(req, ActionDispatch, ""); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	req.Status = models.RequestApproved
	if err := Apply(req, ActionDispatch, ""); err != nil {
		t.Fatalf("dispatch from Approved failed: %v", err)
	}
	if req.Status != models.RequestDispatched {
		t.Fatalf("expected Dispatched, got %s", req.Status)
	}
}

func TestRejectDispatchedRequestFails(t *testing.T) {
	req := &models.AssetRequest{Status: models.RequestDispatched}
	if err := Apply(req, ActionReject, "too late"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if req.RejectionReason != "" {
		t.Fatal("failed reject must not store a reason")
	}
}

func TestIsTerminal(t *testing.T) {
	if IsTerminal(models.RequestPending) || IsTerminal(models.RequestApproved) {
		t.Fatal("Pending and Approved are not terminal")
	}
	if !IsTerminal(models.RequestRejected) || !IsTerminal(models.RequestDispatched) {
		t.Fatal("Rejected and Dispatched are terminal")
	}
}
