package services

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/dediosardie/dns-maynilad-vmms/models"
)

// fakeDisposalStore is an in-memory DisposalStore. PlaceBid mirrors the
// database implementation's compare-and-append contract, including the
// conflict signal, so the retry path can be exercised without a database.
type fakeDisposalStore struct {
	vehicles map[string]models.VehicleStatus
	requests map[string]*models.DisposalRequest
	auctions map[string]*models.DisposalAuction
	bids     []models.Bid

	// forceConflicts makes the next N PlaceBid calls fail with ErrBidConflict
	// after bumping the highest bid, simulating a competing bidder.
	forceConflicts int
}

func newFakeStore() *fakeDisposalStore {
	return &fakeDisposalStore{
		vehicles: map[string]models.VehicleStatus{"veh-1": models.VehicleStatusActive},
		requests: map[string]*models.DisposalRequest{},
		auctions: map[string]*models.DisposalAuction{},
	}
}

func (f *fakeDisposalStore) VehicleExists(_ context.Context, id string) (bool, error) {
	_, ok := f.vehicles[id]
	return ok, nil
}

func (f *fakeDisposalStore) UpdateVehicleStatus(_ context.Context, vehicleID string, status models.VehicleStatus) error {
	f.vehicles[vehicleID] = status
	return nil
}

func (f *fakeDisposalStore) CreateRequest(_ context.Context, req *models.DisposalRequest) error {
	cp := *req
	f.requests[req.ID] = &cp
	return nil
}

func (f *fakeDisposalStore) GetRequest(_ context.Context, id string) (*models.DisposalRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, models.ErrDisposalRequestNotFound
	}
	cp := *req
	return &cp, nil
}

func (f *fakeDisposalStore) ListRequests(_ context.Context) ([]models.DisposalRequest, error) {
	out := make([]models.DisposalRequest, 0, len(f.requests))
	for _, req := range f.requests {
		out = append(out, *req)
	}
	return out, nil
}

func (f *fakeDisposalStore) SaveRequest(_ context.Context, req *models.DisposalRequest) error {
	cp := *req
	f.requests[req.ID] = &cp
	return nil
}

func (f *fakeDisposalStore) HasOpenAuction(_ context.Context, disposalID string) (bool, error) {
	for _, a := range f.auctions {
		if a.DisposalID == disposalID && !a.AuctionStatus.IsTerminal() {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeDisposalStore) CreateAuction(_ context.Context, auction *models.DisposalAuction, request *models.DisposalRequest) error {
	ac, rc := *auction, *request
	f.auctions[auction.ID] = &ac
	f.requests[request.ID] = &rc
	return nil
}

func (f *fakeDisposalStore) GetAuction(_ context.Context, id string) (*models.DisposalAuction, error) {
	a, ok := f.auctions[id]
	if !ok {
		return nil, models.ErrAuctionNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeDisposalStore) ListAuctions(_ context.Context) ([]models.DisposalAuction, error) {
	out := make([]models.DisposalAuction, 0, len(f.auctions))
	for _, a := range f.auctions {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeDisposalStore) SaveAuction(_ context.Context, auction *models.DisposalAuction) error {
	cp := *auction
	f.auctions[auction.ID] = &cp
	return nil
}

func (f *fakeDisposalStore) SaveAuctionAndRequest(_ context.Context, auction *models.DisposalAuction, request *models.DisposalRequest) error {
	ac, rc := *auction, *request
	f.auctions[auction.ID] = &ac
	f.requests[request.ID] = &rc
	return nil
}

func (f *fakeDisposalStore) ListBids(_ context.Context, auctionID string) ([]models.Bid, error) {
	var out []models.Bid
	for _, b := range f.bids {
		if b.AuctionID == auctionID {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeDisposalStore) PlaceBid(_ context.Context, bid *models.Bid, expectedHighest float64) error {
	auction, ok := f.auctions[bid.AuctionID]
	if !ok {
		return models.ErrAuctionNotFound
	}
	if auction.AuctionStatus != models.AuctionActive {
		return models.ErrAuctionNotActive
	}
	if f.forceConflicts > 0 {
		f.forceConflicts--
		auction.CurrentHighestBid += auction.BidIncrement
		auction.TotalBids++
		return models.ErrBidConflict
	}
	if auction.CurrentHighestBid != expectedHighest {
		return models.ErrBidConflict
	}
	f.bids = append(f.bids, *bid)
	auction.CurrentHighestBid = bid.BidAmount
	auction.TotalBids++
	return nil
}

func newTestService(store *fakeDisposalStore) *DisposalService {
	svc := NewDisposalService(store, 50)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	tick := 0
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return svc
}

func submit(t *testing.T, svc *DisposalService, value float64) *models.DisposalRequest {
	t.Helper()
	req, err := svc.SubmitRequest(context.Background(), SubmitDisposalRequestInput{
		VehicleID:         "veh-1",
		RequestedBy:       "user-1",
		DisposalReason:    models.ReasonEndOfLife,
		RecommendedMethod: models.MethodAuction,
		ConditionRating:   models.ConditionFair,
		CurrentMileage:    120000,
		EstimatedValue:    value,
	})
	if err != nil {
		t.Fatalf("SubmitRequest: %v", err)
	}
	return req
}

func openAuction(t *testing.T, svc *DisposalService, requestID string, starting float64, reserve *float64) *models.DisposalAuction {
	t.Helper()
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	auction, err := svc.CreateAuction(context.Background(), requestID, CreateAuctionInput{
		AuctionType:   models.AuctionOnline,
		StartingPrice: starting,
		ReservePrice:  reserve,
		StartDate:     start,
		EndDate:       start.Add(10 * 24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateAuction: %v", err)
	}
	if _, err := svc.ActivateAuction(context.Background(), auction.ID); err != nil {
		t.Fatalf("ActivateAuction: %v", err)
	}
	return auction
}

func placeBid(t *testing.T, svc *DisposalService, auctionID, bidder string, amount float64) *models.Bid {
	t.Helper()
	bid, err := svc.PlaceBid(context.Background(), auctionID, PlaceBidInput{
		BidderName:  bidder,
		BidderEmail: bidder + "@example.com",
		BidderPhone: "0917-000-0000",
		BidAmount:   amount,
	})
	if err != nil {
		t.Fatalf("PlaceBid(%s, %.2f): %v", bidder, amount, err)
	}
	return bid
}

func TestSubmitRequestApprovalRouting(t *testing.T) {
	svc := newTestService(newFakeStore())

	low := submit(t, svc, 8000)
	if low.ApprovalStatus != models.ApprovalApproved || low.Status != models.DisposalListed {
		t.Fatalf("expected low-value request auto-approved and listed, got %s/%s", low.ApprovalStatus, low.Status)
	}
	if low.ApprovedBy != models.AutoApprover || low.ApprovalDate == nil {
		t.Fatalf("expected auto-approval stamp, got %q", low.ApprovedBy)
	}

	high := submit(t, svc, 15000)
	if high.ApprovalStatus != models.ApprovalPending || high.Status != models.DisposalPendingApproval {
		t.Fatalf("expected high-value request pending, got %s/%s", high.ApprovalStatus, high.Status)
	}

	boundary := submit(t, svc, 10000)
	if boundary.ApprovalStatus != models.ApprovalApproved {
		t.Fatalf("expected exactly-threshold request auto-approved, got %s", boundary.ApprovalStatus)
	}
}

func TestSubmitRequestValidation(t *testing.T) {
	svc := newTestService(newFakeStore())

	_, err := svc.SubmitRequest(context.Background(), SubmitDisposalRequestInput{VehicleID: "missing"})
	if !errors.Is(err, models.ErrVehicleNotFound) {
		t.Fatalf("expected ErrVehicleNotFound, got %v", err)
	}

	_, err = svc.SubmitRequest(context.Background(), SubmitDisposalRequestInput{VehicleID: "veh-1", CurrentMileage: -1})
	if !errors.Is(err, models.ErrNegativeMileage) {
		t.Fatalf("expected ErrNegativeMileage, got %v", err)
	}

	_, err = svc.SubmitRequest(context.Background(), SubmitDisposalRequestInput{VehicleID: "veh-1", EstimatedValue: -500})
	if !errors.Is(err, models.ErrNegativeEstimatedValue) {
		t.Fatalf("expected ErrNegativeEstimatedValue, got %v", err)
	}
}

func TestApproveRequestIdempotent(t *testing.T) {
	svc := newTestService(newFakeStore())
	req := submit(t, svc, 15000)

	approved, err := svc.ApproveRequest(context.Background(), req.ID, "mgr-1")
	if err != nil {
		t.Fatalf("ApproveRequest: %v", err)
	}
	if approved.Status != models.DisposalListed || approved.ApprovedBy != "mgr-1" {
		t.Fatalf("expected listed by mgr-1, got %s/%s", approved.Status, approved.ApprovedBy)
	}

	again, err := svc.ApproveRequest(context.Background(), req.ID, "mgr-2")
	if err != nil {
		t.Fatalf("expected re-approval to be a no-op, got %v", err)
	}
	if again.ApprovedBy != "mgr-1" {
		t.Fatalf("expected original approver kept, got %s", again.ApprovedBy)
	}
}

func TestRejectThenApproveFails(t *testing.T) {
	svc := newTestService(newFakeStore())
	req := submit(t, svc, 15000)

	if _, err := svc.RejectRequest(context.Background(), req.ID, "mgr-1"); err != nil {
		t.Fatalf("RejectRequest: %v", err)
	}
	if _, err := svc.ApproveRequest(context.Background(), req.ID, "mgr-1"); !errors.Is(err, models.ErrRequestNotPending) {
		t.Fatalf("expected ErrRequestNotPending after rejection, got %v", err)
	}
}

func TestCreateAuctionValidation(t *testing.T) {
	svc := newTestService(newFakeStore())
	req := submit(t, svc, 8000)
	ctx := context.Background()
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	// Duration is checked before the reserve price; both are wrong here and
	// the duration error must win.
	badReserve := 100.0
	_, err := svc.CreateAuction(ctx, req.ID, CreateAuctionInput{
		AuctionType:   models.AuctionOnline,
		StartingPrice: 5000,
		ReservePrice:  &badReserve,
		StartDate:     start,
		EndDate:       start.Add(3 * 24 * time.Hour),
	})
	if !errors.Is(err, models.ErrAuctionTooShort) {
		t.Fatalf("expected ErrAuctionTooShort first, got %v", err)
	}

	_, err = svc.CreateAuction(ctx, req.ID, CreateAuctionInput{
		AuctionType:   models.AuctionOnline,
		StartingPrice: 5000,
		ReservePrice:  &badReserve,
		StartDate:     start,
		EndDate:       start.Add(10 * 24 * time.Hour),
	})
	if !errors.Is(err, models.ErrReserveBelowStarting) {
		t.Fatalf("expected ErrReserveBelowStarting, got %v", err)
	}

	_, err = svc.CreateAuction(ctx, req.ID, CreateAuctionInput{
		AuctionType:   models.AuctionOnline,
		StartingPrice: 0,
		StartDate:     start,
		EndDate:       start.Add(10 * 24 * time.Hour),
	})
	if !errors.Is(err, models.ErrInvalidStartingPrice) {
		t.Fatalf("expected ErrInvalidStartingPrice, got %v", err)
	}
}

func TestCreateAuctionRequiresApproval(t *testing.T) {
	svc := newTestService(newFakeStore())
	req := submit(t, svc, 15000)
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.CreateAuction(context.Background(), req.ID, CreateAuctionInput{
		AuctionType:   models.AuctionOnline,
		StartingPrice: 9000,
		StartDate:     start,
		EndDate:       start.Add(10 * 24 * time.Hour),
	})
	if !errors.Is(err, models.ErrRequestNotApproved) {
		t.Fatalf("expected ErrRequestNotApproved, got %v", err)
	}
}

func TestCreateAuctionRejectsSecondOpen(t *testing.T) {
	svc := newTestService(newFakeStore())
	req := submit(t, svc, 8000)
	openAuction(t, svc, req.ID, 5000, nil)
	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.CreateAuction(context.Background(), req.ID, CreateAuctionInput{
		AuctionType:   models.AuctionOnline,
		StartingPrice: 5000,
		StartDate:     start,
		EndDate:       start.Add(10 * 24 * time.Hour),
	})
	if !errors.Is(err, models.ErrAuctionAlreadyOpen) {
		t.Fatalf("expected ErrAuctionAlreadyOpen, got %v", err)
	}
}

func TestPlaceBidMinimums(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	req := submit(t, svc, 8000)
	auction := openAuction(t, svc, req.ID, 5000, nil)
	ctx := context.Background()

	// Below the starting price while there are no bids.
	_, err := svc.PlaceBid(ctx, auction.ID, PlaceBidInput{
		BidderName: "ana", BidderEmail: "ana@example.com", BidderPhone: "0917", BidAmount: 4999,
	})
	var tooLow *models.BidTooLowError
	if !errors.As(err, &tooLow) || tooLow.Minimum != 5000 {
		t.Fatalf("expected BidTooLowError with minimum 5000, got %v", err)
	}

	placeBid(t, svc, auction.ID, "ana", 5000)

	// Now the floor is highest + increment.
	_, err = svc.PlaceBid(ctx, auction.ID, PlaceBidInput{
		BidderName: "ben", BidderEmail: "ben@example.com", BidderPhone: "0918", BidAmount: 5049,
	})
	if !errors.As(err, &tooLow) || tooLow.Minimum != 5050 {
		t.Fatalf("expected BidTooLowError with minimum 5050, got %v", err)
	}

	placeBid(t, svc, auction.ID, "ben", 5100)

	updated, err := svc.GetAuction(ctx, auction.ID)
	if err != nil {
		t.Fatalf("GetAuction: %v", err)
	}
	if updated.CurrentHighestBid != 5100 || updated.TotalBids != 2 {
		t.Fatalf("expected highest 5100 with 2 bids, got %.2f/%d", updated.CurrentHighestBid, updated.TotalBids)
	}
}

func TestPlaceBidValidatesBidder(t *testing.T) {
	svc := newTestService(newFakeStore())

	_, err := svc.PlaceBid(context.Background(), "any", PlaceBidInput{BidderName: " ", BidderEmail: "x@y.z", BidderPhone: "1"})
	if !errors.Is(err, models.ErrMissingBidderDetails) {
		t.Fatalf("expected ErrMissingBidderDetails, got %v", err)
	}
}

func TestPlaceBidRetriesOnConflict(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	req := submit(t, svc, 8000)
	auction := openAuction(t, svc, req.ID, 5000, nil)

	// Two competing bids land first; the third attempt succeeds with the
	// minimum recomputed from the fresh state.
	store.forceConflicts = 2
	bid := placeBid(t, svc, auction.ID, "ana", 9000)
	if bid.BidAmount != 9000 {
		t.Fatalf("expected accepted bid of 9000, got %.2f", bid.BidAmount)
	}

	// A conflict on every attempt surfaces as ErrBidConflict.
	store.forceConflicts = maxBidAttempts
	_, err := svc.PlaceBid(context.Background(), auction.ID, PlaceBidInput{
		BidderName: "ben", BidderEmail: "ben@example.com", BidderPhone: "0918", BidAmount: 99999,
	})
	if !errors.Is(err, models.ErrBidConflict) {
		t.Fatalf("expected ErrBidConflict after exhausted retries, got %v", err)
	}
}

func TestCloseAuction(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	req := submit(t, svc, 8000)
	reserve := 5500.0
	auction := openAuction(t, svc, req.ID, 5000, &reserve)
	ctx := context.Background()

	// No bids yet.
	if _, err := svc.CloseAuction(ctx, auction.ID); !errors.Is(err, models.ErrNoBidsPlaced) {
		t.Fatalf("expected ErrNoBidsPlaced, got %v", err)
	}

	// Best bid below the reserve.
	placeBid(t, svc, auction.ID, "ana", 5200)
	if _, err := svc.CloseAuction(ctx, auction.ID); !errors.Is(err, models.ErrReserveNotMet) {
		t.Fatalf("expected ErrReserveNotMet, got %v", err)
	}

	placeBid(t, svc, auction.ID, "ben", 5600)
	closed, err := svc.CloseAuction(ctx, auction.ID)
	if err != nil {
		t.Fatalf("CloseAuction: %v", err)
	}
	if closed.AuctionStatus != models.AuctionClosed || closed.WinnerID != "ben" {
		t.Fatalf("expected closed with winner ben, got %s/%s", closed.AuctionStatus, closed.WinnerID)
	}
	if closed.WinningBid == nil || *closed.WinningBid != 5600 {
		t.Fatalf("expected winning bid 5600, got %v", closed.WinningBid)
	}

	soldReq, err := svc.GetRequest(ctx, req.ID)
	if err != nil {
		t.Fatalf("GetRequest: %v", err)
	}
	if soldReq.Status != models.DisposalSold {
		t.Fatalf("expected request sold, got %s", soldReq.Status)
	}

	// Bidding and re-closing a finished auction both fail.
	if _, err := svc.CloseAuction(ctx, auction.ID); !errors.Is(err, models.ErrAuctionFinished) {
		t.Fatalf("expected ErrAuctionFinished on re-close, got %v", err)
	}
	_, err = svc.PlaceBid(ctx, auction.ID, PlaceBidInput{
		BidderName: "cy", BidderEmail: "cy@example.com", BidderPhone: "0919", BidAmount: 9999,
	})
	if !errors.Is(err, models.ErrAuctionFinished) {
		t.Fatalf("expected ErrAuctionFinished on late bid, got %v", err)
	}
}

func TestCancelAuctionRelistsRequest(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	req := submit(t, svc, 8000)
	auction := openAuction(t, svc, req.ID, 5000, nil)
	ctx := context.Background()

	cancelled, err := svc.CancelAuction(ctx, auction.ID)
	if err != nil {
		t.Fatalf("CancelAuction: %v", err)
	}
	if cancelled.AuctionStatus != models.AuctionCancelled {
		t.Fatalf("expected cancelled, got %s", cancelled.AuctionStatus)
	}

	relisted, err := svc.GetRequest(ctx, req.ID)
	if err != nil {
		t.Fatalf("GetRequest: %v", err)
	}
	if relisted.Status != models.DisposalListed {
		t.Fatalf("expected request re-listed, got %s", relisted.Status)
	}

	// A fresh auction can now be opened.
	openAuction(t, svc, req.ID, 5000, nil)
}

func TestMarkTransferred(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	req := submit(t, svc, 8000)
	auction := openAuction(t, svc, req.ID, 5000, nil)
	ctx := context.Background()

	// Transfer is only valid after a sale.
	if _, err := svc.MarkTransferred(ctx, req.ID); !errors.Is(err, models.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition before sale, got %v", err)
	}

	placeBid(t, svc, auction.ID, "ana", 5000)
	if _, err := svc.CloseAuction(ctx, auction.ID); err != nil {
		t.Fatalf("CloseAuction: %v", err)
	}

	transferred, err := svc.MarkTransferred(ctx, req.ID)
	if err != nil {
		t.Fatalf("MarkTransferred: %v", err)
	}
	if transferred.Status != models.DisposalTransferred {
		t.Fatalf("expected transferred, got %s", transferred.Status)
	}
	if store.vehicles["veh-1"] != models.VehicleStatusDisposed {
		t.Fatalf("expected vehicle retired, got %s", store.vehicles["veh-1"])
	}
}

func TestRecomputeAuctionCounters(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	req := submit(t, svc, 8000)
	auction := openAuction(t, svc, req.ID, 5000, nil)
	ctx := context.Background()

	placeBid(t, svc, auction.ID, "ana", 5000)
	placeBid(t, svc, auction.ID, "ben", 5200)

	// Simulate cache drift.
	drifted, _ := store.GetAuction(ctx, auction.ID)
	drifted.CurrentHighestBid = 42
	drifted.TotalBids = 99
	store.SaveAuction(ctx, drifted)

	fixed, err := svc.RecomputeAuctionCounters(ctx, auction.ID)
	if err != nil {
		t.Fatalf("RecomputeAuctionCounters: %v", err)
	}
	if fixed.CurrentHighestBid != 5200 || fixed.TotalBids != 2 {
		t.Fatalf("expected counters rebuilt to 5200/2, got %.2f/%d", fixed.CurrentHighestBid, fixed.TotalBids)
	}
}

func TestDisposalStats(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	submit(t, svc, 15000) // stays pending

	sold := submit(t, svc, 8000)
	auction := openAuction(t, svc, sold.ID, 5000, nil)
	placeBid(t, svc, auction.ID, "ana", 5000)
	ctx := context.Background()
	if _, err := svc.CloseAuction(ctx, auction.ID); err != nil {
		t.Fatalf("CloseAuction: %v", err)
	}
	if _, err := svc.MarkTransferred(ctx, sold.ID); err != nil {
		t.Fatalf("MarkTransferred: %v", err)
	}

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.PendingRequests != 1 {
		t.Fatalf("expected 1 pending request, got %d", stats.PendingRequests)
	}
	if stats.TotalDisposals != 1 {
		t.Fatalf("expected 1 completed disposal, got %d", stats.TotalDisposals)
	}
	if stats.TotalRevenue != 5000 {
		t.Fatalf("expected revenue 5000, got %.2f", stats.TotalRevenue)
	}
}
