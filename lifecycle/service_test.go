package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"assetledger/models"
)

// fakeDispatchStore records the writes the transaction body issues so
// the tests can check the asset side effect without a live database.
type fakeDispatchStore struct {
	request *models.AssetRequest

	requestMatched int64
	assetMatched   int64

	dispatchedID     primitive.ObjectID
	assignedAssetID  primitive.ObjectID
	assignedEmployee string
	assignCalled     bool
}

func (f *fakeDispatchStore) findRequest(ctx context.Context, id primitive.ObjectID) (*models.AssetRequest, error) {
	if f.request == nil {
		return nil, ErrRequestNotFound
	}
	r := *f.request
	return &r, nil
}

func (f *fakeDispatchStore) markDispatched(ctx context.Context, id primitive.ObjectID, at time.Time) (int64, error) {
	f.dispatchedID = id
	return f.requestMatched, nil
}

func (f *fakeDispatchStore) assignAsset(ctx context.Context, assetID primitive.ObjectID, employeeID string, at time.Time) (int64, error) {
	f.assignCalled = true
	f.assignedAssetID = assetID
	f.assignedEmployee = employeeID
	return f.assetMatched, nil
}

func approvedRequest() *models.AssetRequest {
	return &models.AssetRequest{
		ID:         primitive.NewObjectID(),
		AssetID:    primitive.NewObjectID(),
		EmployeeID: "EMP-007",
		Status:     models.RequestApproved,
	}
}

func TestDispatchRequestAssignsAsset(t *testing.T) {
	req := approvedRequest()
	store := &fakeDispatchStore{request: req, requestMatched: 1, assetMatched: 1}

	got, from, err := dispatchRequest(context.Background(), store, req.ID)
	if err != nil {
		t.Fatalf("dispatchRequest: %v", err)
	}
	if from != models.RequestApproved {
		t.Fatalf("prior status = %q, want %q", from, models.RequestApproved)
	}
	if got.Status != models.RequestDispatched {
		t.Fatalf("status = %q, want %q", got.Status, models.RequestDispatched)
	}
	if store.dispatchedID != req.ID {
		t.Fatal("request update targeted the wrong document")
	}
	if store.assignedAssetID != req.AssetID {
		t.Fatalf("asset update targeted %s, want %s", store.assignedAssetID.Hex(), req.AssetID.Hex())
	}
	if store.assignedEmployee != "EMP-007" {
		t.Fatalf("assigned_to = %q, want the request's employee", store.assignedEmployee)
	}
}

func TestDispatchRequestMissingAssetAborts(t *testing.T) {
	req := approvedRequest()
	store := &fakeDispatchStore{request: req, requestMatched: 1, assetMatched: 0}

	_, _, err := dispatchRequest(context.Background(), store, req.ID)
	if !errors.Is(err, ErrAssetNotFound) {
		t.Fatalf("expected ErrAssetNotFound so the transaction aborts, got %v", err)
	}
}

func TestDispatchRequestConcurrentTransitionLoses(t *testing.T) {
	// The request read as Approved but another writer moved it first:
	// the guarded update matches nothing and the asset stays untouched.
	req := approvedRequest()
	store := &fakeDispatchStore{request: req, requestMatched: 0, assetMatched: 1}

	_, _, err := dispatchRequest(context.Background(), store, req.ID)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if store.assignCalled {
		t.Fatal("asset must not be assigned when the request update matched nothing")
	}
}

func TestDispatchRequestNotApproved(t *testing.T) {
	req := approvedRequest()
	req.Status = models.RequestPending
	store := &fakeDispatchStore{request: req, requestMatched: 1, assetMatched: 1}

	_, _, err := dispatchRequest(context.Background(), store, req.ID)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for a Pending request, got %v", err)
	}
	if store.assignCalled {
		t.Fatal("asset must not be assigned for a Pending request")
	}
}

func TestDispatchRequestNotFound(t *testing.T) {
	store := &fakeDispatchStore{request: nil}

	_, _, err := dispatchRequest(context.Background(), store, primitive.NewObjectID())
	if !errors.Is(err, ErrRequestNotFound) {
		t.Fatalf("expected ErrRequestNotFound, got %v", err)
	}
}
