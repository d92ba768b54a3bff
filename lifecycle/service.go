package lifecycle

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"assetledger/models"
)

// Service persists request transitions. Dispatch writes the request
// and the asset inside a single transaction so a failure between the
// two writes cannot leave a Dispatched request pointing at an
// unassigned asset.
type Service struct {
	client   *mongo.Client
	requests *mongo.Collection
	assets   *mongo.Collection
}

func NewService(client *mongo.Client, requests, assets *mongo.Collection) *Service {
	return &Service{client: client, requests: requests, assets: assets}
}

// dispatchStore is the slice of persistence the dispatch transaction
// touches. Service implements it against mongo; tests inject a fake.
type dispatchStore interface {
	findRequest(ctx context.Context, id primitive.ObjectID) (*models.AssetRequest, error)
	markDispatched(ctx context.Context, id primitive.ObjectID, at time.Time) (matched int64, err error)
	assignAsset(ctx context.Context, assetID primitive.ObjectID, employeeID string, at time.Time) (matched int64, err error)
}

func (s *Service) findRequest(ctx context.Context, id primitive.ObjectID) (*models.AssetRequest, error) {
	var req models.AssetRequest
	err := s.requests.FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if err == mongo.ErrNoDocuments {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Approve moves a Pending request to Approved. Approving an
// already-Approved request returns the same record unchanged. The
// second return value is the status the request left, for the
// status-change broadcast.
func (s *Service) Approve(ctx context.Context, id primitive.ObjectID) (*models.AssetRequest, string, error) {
	req, err := s.findRequest(ctx, id)
	if err != nil {
		return nil, "", err
	}
	from := req.Status
	if err := Apply(req, ActionApprove, ""); err != nil {
		return nil, "", err
	}

	req.UpdatedAt = time.Now().UTC()
	result, err := s.requests.UpdateOne(ctx,
		// Filtering on the observed states keeps a concurrent reject or
		// dispatch from being overwritten.
		bson.M{"_id": id, "status": bson.M{"$in": bson.A{models.RequestPending, models.RequestApproved}}},
		bson.M{"$set": bson.M{"status": req.Status, "updated_at": req.UpdatedAt}},
	)
	if err != nil {
		return nil, "", err
	}
	if result.MatchedCount == 0 {
		return nil, "", ErrInvalidTransition
	}
	return req, from, nil
}

// Reject moves a Pending or Approved request to Rejected and stores
// the supplied reason.
func (s *Service) Reject(ctx context.Context, id primitive.ObjectID, reason string) (*models.AssetRequest, string, error) {
	req, err := s.findRequest(ctx, id)
	if err != nil {
		return nil, "", err
	}
	from := req.Status
	if err := Apply(req, ActionReject, reason); err != nil {
		return nil, "", err
	}

	req.UpdatedAt = time.Now().UTC()
	result, err := s.requests.UpdateOne(ctx,
		bson.M{"_id": id, "status": bson.M{"$in": bson.A{models.RequestPending, models.RequestApproved}}},
		bson.M{"$set": bson.M{
			"status":           req.Status,
			"rejection_reason": req.RejectionReason,
			"updated_at":       req.UpdatedAt,
		}},
	)
	if err != nil {
		return nil, "", err
	}
	if result.MatchedCount == 0 {
		return nil, "", ErrInvalidTransition
	}
	return req, from, nil
}

// Dispatch finalizes an Approved request: the request becomes
// Dispatched and the asset is marked In Use and assigned to the
// request's employee. Both writes happen in one transaction.
func (s *Service) Dispatch(ctx context.Context, id primitive.ObjectID) (*models.AssetRequest, string, error) {
	session, err := s.client.StartSession()
	if err != nil {
		return nil, "", err
	}
	defer session.EndSession(ctx)

	var from string
	txnOpts := options.Transaction()
	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		req, f, err := dispatchRequest(sc, s, id)
		from = f
		return req, err
	}, txnOpts)

	if err != nil {
		return nil, "", err
	}
	return result.(*models.AssetRequest), from, nil
}

// dispatchRequest is the transaction body. Any error aborts the
// enclosing transaction, rolling the request back to Approved.
func dispatchRequest(ctx context.Context, store dispatchStore, id primitive.ObjectID) (*models.AssetRequest, string, error) {
	req, err := store.findRequest(ctx, id)
	if err != nil {
		return nil, "", err
	}
	from := req.Status
	if err := Apply(req, ActionDispatch, ""); err != nil {
		return nil, "", err
	}

	req.UpdatedAt = time.Now().UTC()
	matched, err := store.markDispatched(ctx, id, req.UpdatedAt)
	if err != nil {
		return nil, "", err
	}
	if matched == 0 {
		return nil, "", ErrInvalidTransition
	}

	matched, err = store.assignAsset(ctx, req.AssetID, req.EmployeeID, time.Now().UTC())
	if err != nil {
		return nil, "", err
	}
	if matched == 0 {
		return nil, "", ErrAssetNotFound
	}
	return req, from, nil
}

func (s *Service) markDispatched(ctx context.Context, id primitive.ObjectID, at time.Time) (int64, error) {
	res, err := s.requests.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.RequestApproved},
		bson.M{"$set": bson.M{"status": models.RequestDispatched, "updated_at": at}},
	)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (s *Service) assignAsset(ctx context.Context, assetID primitive.ObjectID, employeeID string, at time.Time) (int64, error) {
	res, err := s.assets.UpdateOne(ctx,
		bson.M{"_id": assetID},
		bson.M{"$set": bson.M{
			"status":      models.AssetInUse,
			"assigned_to": employeeID,
			"updated_at":  at,
		}},
	)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}
