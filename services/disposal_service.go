package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dediosardie/dns-maynilad-vmms/models"
)

// DisposalStore is the persistence boundary of the disposal/auction workflow.
// Implementations must make PlaceBid an atomic compare-and-append: the bid is
// accepted only while the auction's highest bid still equals expectedHighest.
type DisposalStore interface {
	VehicleExists(ctx context.Context, id string) (bool, error)
	UpdateVehicleStatus(ctx context.Context, vehicleID string, status models.VehicleStatus) error

	CreateRequest(ctx context.Context, req *models.DisposalRequest) error
	GetRequest(ctx context.Context, id string) (*models.DisposalRequest, error)
	ListRequests(ctx context.Context) ([]models.DisposalRequest, error)
	SaveRequest(ctx context.Context, req *models.DisposalRequest) error

	HasOpenAuction(ctx context.Context, disposalID string) (bool, error)
	CreateAuction(ctx context.Context, auction *models.DisposalAuction, request *models.DisposalRequest) error
	GetAuction(ctx context.Context, id string) (*models.DisposalAuction, error)
	ListAuctions(ctx context.Context) ([]models.DisposalAuction, error)
	SaveAuction(ctx context.Context, auction *models.DisposalAuction) error
	SaveAuctionAndRequest(ctx context.Context, auction *models.DisposalAuction, request *models.DisposalRequest) error

	ListBids(ctx context.Context, auctionID string) ([]models.Bid, error)
	PlaceBid(ctx context.Context, bid *models.Bid, expectedHighest float64) error
}

// maxBidAttempts bounds transparent retries when a competing bid lands first.
const maxBidAttempts = 3

type DisposalService struct {
	store               DisposalStore
	defaultBidIncrement float64
	now                 func() time.Time
}

func NewDisposalService(store DisposalStore, defaultBidIncrement float64) *DisposalService {
	return &DisposalService{
		store:               store,
		defaultBidIncrement: defaultBidIncrement,
		now:                 time.Now,
	}
}

type SubmitDisposalRequestInput struct {
	VehicleID         string
	RequestedBy       string
	DisposalReason    models.DisposalReason
	RecommendedMethod models.DisposalMethod
	ConditionRating   models.ConditionRating
	CurrentMileage    int
	EstimatedValue    float64
	RequestDate       time.Time
}

// SubmitRequest validates and persists a new disposal request. Requests above
// the approval threshold start pending; everything else is auto-approved and
// listed immediately.
func (s *DisposalService) SubmitRequest(ctx context.Context, in SubmitDisposalRequestInput) (*models.DisposalRequest, error) {
	exists, err := s.store.VehicleExists(ctx, in.VehicleID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.ErrVehicleNotFound
	}
	if in.CurrentMileage < 0 {
		return nil, models.ErrNegativeMileage
	}
	if in.EstimatedValue < 0 {
		return nil, models.ErrNegativeEstimatedValue
	}

	now := s.now()
	requestDate := in.RequestDate
	if requestDate.IsZero() {
		requestDate = now
	}

	req := &models.DisposalRequest{
		ID:                uuid.New().String(),
		DisposalNumber:    models.NewDisposalNumber(now),
		VehicleID:         in.VehicleID,
		RequestedBy:       in.RequestedBy,
		DisposalReason:    in.DisposalReason,
		RecommendedMethod: in.RecommendedMethod,
		ConditionRating:   in.ConditionRating,
		CurrentMileage:    in.CurrentMileage,
		EstimatedValue:    in.EstimatedValue,
		RequestDate:       requestDate,
	}

	if models.NeedsApproval(in.EstimatedValue) {
		req.ApprovalStatus = models.ApprovalPending
		req.Status = models.DisposalPendingApproval
	} else {
		approvalDate := now
		req.ApprovalStatus = models.ApprovalApproved
		req.Status = models.DisposalListed
		req.ApprovedBy = models.AutoApprover
		req.ApprovalDate = &approvalDate
	}

	if err := s.store.CreateRequest(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// ApproveRequest moves a pending request to approved/listed. Re-approving an
// already-approved request is a no-op returning the current state.
func (s *DisposalService) ApproveRequest(ctx context.Context, requestID, approverID string) (*models.DisposalRequest, error) {
	req, err := s.store.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if req.ApprovalStatus == models.ApprovalApproved {
		return req, nil
	}
	if req.ApprovalStatus != models.ApprovalPending {
		return nil, models.ErrRequestNotPending
	}

	approvalDate := s.now()
	req.ApprovalStatus = models.ApprovalApproved
	req.ApprovedBy = approverID
	req.ApprovalDate = &approvalDate
	req.Status = models.DisposalListed

	if err := s.store.SaveRequest(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// RejectRequest marks a pending request rejected, terminally.
func (s *DisposalService) RejectRequest(ctx context.Context, requestID, approverID string) (*models.DisposalRequest, error) {
	req, err := s.store.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if req.ApprovalStatus == models.ApprovalRejected {
		return req, nil
	}
	if req.ApprovalStatus != models.ApprovalPending {
		return nil, models.ErrRequestNotPending
	}

	approvalDate := s.now()
	req.ApprovalStatus = models.ApprovalRejected
	req.ApprovedBy = approverID
	req.ApprovalDate = &approvalDate
	req.Status = models.DisposalRejected

	if err := s.store.SaveRequest(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// MarkTransferred records the final handover of a sold vehicle and retires it
// from the fleet.
func (s *DisposalService) MarkTransferred(ctx context.Context, requestID string) (*models.DisposalRequest, error) {
	req, err := s.store.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !req.Status.CanTransitionTo(models.DisposalTransferred) {
		return nil, models.ErrInvalidTransition
	}

	req.Status = models.DisposalTransferred
	if err := s.store.SaveRequest(ctx, req); err != nil {
		return nil, err
	}
	if err := s.store.UpdateVehicleStatus(ctx, req.VehicleID, models.VehicleStatusDisposed); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *DisposalService) ListRequests(ctx context.Context) ([]models.DisposalRequest, error) {
	return s.store.ListRequests(ctx)
}

func (s *DisposalService) GetRequest(ctx context.Context, id string) (*models.DisposalRequest, error) {
	return s.store.GetRequest(ctx, id)
}

type CreateAuctionInput struct {
	AuctionType   models.AuctionType
	StartingPrice float64
	ReservePrice  *float64
	BidIncrement  float64
	StartDate     time.Time
	EndDate       time.Time
}

// CreateAuction opens an auction for an approved request. Validation order is
// fixed: duration first, then reserve price; the first failure wins and
// nothing is written.
func (s *DisposalService) CreateAuction(ctx context.Context, requestID string, in CreateAuctionInput) (*models.DisposalAuction, error) {
	req, err := s.store.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.ApprovalStatus != models.ApprovalApproved {
		return nil, models.ErrRequestNotApproved
	}
	open, err := s.store.HasOpenAuction(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if open {
		return nil, models.ErrAuctionAlreadyOpen
	}
	if !req.Status.CanTransitionTo(models.DisposalBiddingOpen) {
		return nil, models.ErrInvalidTransition
	}

	if in.StartingPrice <= 0 {
		return nil, models.ErrInvalidStartingPrice
	}
	if err := models.ValidateAuctionWindow(in.StartDate, in.EndDate); err != nil {
		return nil, err
	}
	if in.ReservePrice != nil && *in.ReservePrice < in.StartingPrice {
		return nil, models.ErrReserveBelowStarting
	}

	increment := in.BidIncrement
	if increment <= 0 {
		increment = s.defaultBidIncrement
	}

	auction := &models.DisposalAuction{
		ID:            uuid.New().String(),
		DisposalID:    requestID,
		AuctionType:   in.AuctionType,
		StartingPrice: in.StartingPrice,
		ReservePrice:  in.ReservePrice,
		BidIncrement:  increment,
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		AuctionStatus: models.AuctionScheduled,
		TotalBids:     0,
	}

	req.Status = models.DisposalBiddingOpen
	if err := s.store.CreateAuction(ctx, auction, req); err != nil {
		return nil, err
	}
	return auction, nil
}

// ActivateAuction opens the bidding window. Activation is time-driven in the
// field; this is the explicit trigger.
func (s *DisposalService) ActivateAuction(ctx context.Context, auctionID string) (*models.DisposalAuction, error) {
	auction, err := s.store.GetAuction(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	if !auction.AuctionStatus.CanTransitionTo(models.AuctionActive) {
		return nil, models.ErrInvalidTransition
	}

	auction.AuctionStatus = models.AuctionActive
	if err := s.store.SaveAuction(ctx, auction); err != nil {
		return nil, err
	}
	return auction, nil
}

type PlaceBidInput struct {
	BidderName  string
	BidderEmail string
	BidderPhone string
	BidAmount   float64
}

// PlaceBid validates and appends a bid. Acceptance is atomic against
// competing bids: when the store reports a conflict the minimum is recomputed
// from the fresh state and the attempt retried, up to maxBidAttempts.
func (s *DisposalService) PlaceBid(ctx context.Context, auctionID string, in PlaceBidInput) (*models.Bid, error) {
	if strings.TrimSpace(in.BidderName) == "" ||
		strings.TrimSpace(in.BidderEmail) == "" ||
		strings.TrimSpace(in.BidderPhone) == "" {
		return nil, models.ErrMissingBidderDetails
	}

	for attempt := 0; attempt < maxBidAttempts; attempt++ {
		auction, err := s.store.GetAuction(ctx, auctionID)
		if err != nil {
			return nil, err
		}
		if auction.AuctionStatus.IsTerminal() {
			return nil, models.ErrAuctionFinished
		}
		if !auction.CanBid() {
			return nil, models.ErrAuctionNotActive
		}

		minimum := models.MinimumBid(auction.StartingPrice, auction.CurrentHighestBid, auction.BidIncrement)
		if in.BidAmount < minimum {
			return nil, &models.BidTooLowError{Minimum: minimum}
		}

		bid := &models.Bid{
			ID:          uuid.New().String(),
			AuctionID:   auctionID,
			BidderName:  in.BidderName,
			BidderEmail: in.BidderEmail,
			BidderPhone: in.BidderPhone,
			BidAmount:   in.BidAmount,
			BidDate:     s.now(),
			IsValid:     true,
		}

		err = s.store.PlaceBid(ctx, bid, auction.CurrentHighestBid)
		if errors.Is(err, models.ErrBidConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return bid, nil
	}

	return nil, models.ErrBidConflict
}

// CloseAuction settles an auction. The winner is read from the bid log, not
// the cached highest-bid column; on an exact tie the earliest bid wins.
func (s *DisposalService) CloseAuction(ctx context.Context, auctionID string) (*models.DisposalAuction, error) {
	auction, err := s.store.GetAuction(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	if auction.AuctionStatus.IsTerminal() {
		return nil, models.ErrAuctionFinished
	}

	bids, err := s.store.ListBids(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	winner := models.WinningBid(bids)
	if winner == nil {
		return nil, models.ErrNoBidsPlaced
	}
	if auction.ReservePrice != nil && winner.BidAmount < *auction.ReservePrice {
		return nil, models.ErrReserveNotMet
	}
	if !auction.AuctionStatus.CanTransitionTo(models.AuctionClosed) {
		return nil, models.ErrInvalidTransition
	}

	req, err := s.store.GetRequest(ctx, auction.DisposalID)
	if err != nil {
		return nil, err
	}

	winningAmount := winner.BidAmount
	auction.AuctionStatus = models.AuctionClosed
	auction.WinnerID = winner.BidderName
	auction.WinningBid = &winningAmount
	req.Status = models.DisposalSold

	if err := s.store.SaveAuctionAndRequest(ctx, auction, req); err != nil {
		return nil, err
	}
	return auction, nil
}

// CancelAuction terminates an auction without a sale and re-lists the parent
// request.
func (s *DisposalService) CancelAuction(ctx context.Context, auctionID string) (*models.DisposalAuction, error) {
	auction, err := s.store.GetAuction(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	if !auction.AuctionStatus.CanTransitionTo(models.AuctionCancelled) {
		return nil, models.ErrAuctionFinished
	}

	req, err := s.store.GetRequest(ctx, auction.DisposalID)
	if err != nil {
		return nil, err
	}

	auction.AuctionStatus = models.AuctionCancelled
	if req.Status.CanTransitionTo(models.DisposalListed) {
		req.Status = models.DisposalListed
	}

	if err := s.store.SaveAuctionAndRequest(ctx, auction, req); err != nil {
		return nil, err
	}
	return auction, nil
}

// RecomputeAuctionCounters rebuilds the cached highest-bid and bid-count
// columns from the bid log. The log is the source of truth; the cache exists
// for cheap reads and can drift after a partial failure.
func (s *DisposalService) RecomputeAuctionCounters(ctx context.Context, auctionID string) (*models.DisposalAuction, error) {
	auction, err := s.store.GetAuction(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	bids, err := s.store.ListBids(ctx, auctionID)
	if err != nil {
		return nil, err
	}

	var highest float64
	total := 0
	for _, b := range bids {
		if !b.IsValid {
			continue
		}
		total++
		if b.BidAmount > highest {
			highest = b.BidAmount
		}
	}

	auction.CurrentHighestBid = highest
	auction.TotalBids = total
	if err := s.store.SaveAuction(ctx, auction); err != nil {
		return nil, err
	}
	return auction, nil
}

func (s *DisposalService) ListAuctions(ctx context.Context) ([]models.DisposalAuction, error) {
	return s.store.ListAuctions(ctx)
}

func (s *DisposalService) GetAuction(ctx context.Context, id string) (*models.DisposalAuction, error) {
	return s.store.GetAuction(ctx, id)
}

func (s *DisposalService) ListBids(ctx context.Context, auctionID string) ([]models.Bid, error) {
	return s.store.ListBids(ctx, auctionID)
}

// DisposalStats backs the module's dashboard cards.
type DisposalStats struct {
	PendingRequests int     `json:"pending_requests"`
	ActiveAuctions  int     `json:"active_auctions"`
	TotalDisposals  int     `json:"total_disposals"`
	TotalRevenue    float64 `json:"total_revenue"`
}

func (s *DisposalService) Stats(ctx context.Context) (*DisposalStats, error) {
	requests, err := s.store.ListRequests(ctx)
	if err != nil {
		return nil, err
	}
	auctions, err := s.store.ListAuctions(ctx)
	if err != nil {
		return nil, err
	}

	stats := &DisposalStats{}
	for _, r := range requests {
		if r.ApprovalStatus == models.ApprovalPending {
			stats.PendingRequests++
		}
		if r.Status == models.DisposalTransferred {
			stats.TotalDisposals++
		}
	}
	for _, a := range auctions {
		if a.AuctionStatus == models.AuctionActive {
			stats.ActiveAuctions++
		}
		if a.WinningBid != nil {
			stats.TotalRevenue += *a.WinningBid
		}
	}
	return stats, nil
}
