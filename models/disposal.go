package models

import (
	"fmt"
	"time"
)

type DisposalReason string

const (
	ReasonEndOfLife            DisposalReason = "end_of_life"
	ReasonExcessiveMaintenance DisposalReason = "excessive_maintenance"
	ReasonAccidentDamage       DisposalReason = "accident_damage"
	ReasonUpgrade              DisposalReason = "upgrade"
	ReasonPolicyChange         DisposalReason = "policy_change"
)

type DisposalMethod string

const (
	MethodAuction   DisposalMethod = "auction"
	MethodBestOffer DisposalMethod = "best_offer"
	MethodTradeIn   DisposalMethod = "trade_in"
	MethodScrap     DisposalMethod = "scrap"
	MethodDonation  DisposalMethod = "donation"
)

type ConditionRating string

const (
	ConditionExcellent ConditionRating = "excellent"
	ConditionGood      ConditionRating = "good"
	ConditionFair      ConditionRating = "fair"
	ConditionPoor      ConditionRating = "poor"
	ConditionSalvage   ConditionRating = "salvage"
)

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

type DisposalStatus string

const (
	DisposalPendingApproval DisposalStatus = "pending_approval"
	DisposalListed          DisposalStatus = "listed"
	DisposalBiddingOpen     DisposalStatus = "bidding_open"
	DisposalSold            DisposalStatus = "sold"
	DisposalTransferred     DisposalStatus = "transferred"
	DisposalRejected        DisposalStatus = "rejected"
)

// disposalTransitions is the allowed lifecycle graph for disposal requests.
// Transferred and rejected are terminal.
var disposalTransitions = map[DisposalStatus][]DisposalStatus{
	DisposalPendingApproval: {DisposalListed, DisposalRejected},
	DisposalListed:          {DisposalBiddingOpen},
	DisposalBiddingOpen:     {DisposalSold, DisposalListed},
	DisposalSold:            {DisposalTransferred},
	DisposalTransferred:     {},
	DisposalRejected:        {},
}

func (s DisposalStatus) CanTransitionTo(to DisposalStatus) bool {
	for _, allowed := range disposalTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ApprovalThreshold is the estimated value above which a disposal request
// requires explicit human approval before listing.
const ApprovalThreshold = 10000.0

// NeedsApproval reports whether a request with the given estimated value must
// be routed to a human approver. Evaluated once at submission time.
func NeedsApproval(estimatedValue float64) bool {
	return estimatedValue > ApprovalThreshold
}

// AutoApprover marks requests approved automatically at submission.
const AutoApprover = "auto_approved"

// NewDisposalNumber derives a human-readable disposal number from the
// submission time. Uniqueness is backed by a unique index on the column.
func NewDisposalNumber(t time.Time) string {
	return fmt.Sprintf("DISP-%d", t.UnixMilli())
}

type DisposalRequest struct {
	ID                string          `json:"id" gorm:"primaryKey;size:191"`
	DisposalNumber    string          `json:"disposal_number" gorm:"uniqueIndex;not null;size:30"`
	VehicleID         string          `json:"vehicle_id" gorm:"not null;size:191;index"`
	RequestedBy       string          `json:"requested_by" gorm:"not null;size:191"`
	DisposalReason    DisposalReason  `json:"disposal_reason" gorm:"not null;size:30"`
	RecommendedMethod DisposalMethod  `json:"recommended_method" gorm:"not null;size:20"`
	ConditionRating   ConditionRating `json:"condition_rating" gorm:"not null;size:20"`
	CurrentMileage    int             `json:"current_mileage" gorm:"not null"`
	EstimatedValue    float64         `json:"estimated_value" gorm:"not null"`
	RequestDate       time.Time       `json:"request_date" gorm:"not null"`
	ApprovalStatus    ApprovalStatus  `json:"approval_status" gorm:"not null;size:20;index"`
	Status            DisposalStatus  `json:"status" gorm:"not null;size:20;index"`
	ApprovedBy        string          `json:"approved_by" gorm:"size:191"`
	ApprovalDate      *time.Time      `json:"approval_date"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`

	Vehicle  Vehicle           `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`
	Auctions []DisposalAuction `json:"auctions,omitempty" gorm:"foreignKey:DisposalID"`
}

type AuctionType string

const (
	AuctionPublic    AuctionType = "public"
	AuctionSealedBid AuctionType = "sealed_bid"
	AuctionOnline    AuctionType = "online"
)

type AuctionStatus string

const (
	AuctionScheduled AuctionStatus = "scheduled"
	AuctionActive    AuctionStatus = "active"
	AuctionClosed    AuctionStatus = "closed"
	AuctionCancelled AuctionStatus = "cancelled"
)

// IsTerminal reports whether no further transitions are allowed.
func (s AuctionStatus) IsTerminal() bool {
	return s == AuctionClosed || s == AuctionCancelled
}

var auctionTransitions = map[AuctionStatus][]AuctionStatus{
	AuctionScheduled: {AuctionActive, AuctionCancelled},
	AuctionActive:    {AuctionClosed, AuctionCancelled},
	AuctionClosed:    {},
	AuctionCancelled: {},
}

func (s AuctionStatus) CanTransitionTo(to AuctionStatus) bool {
	for _, allowed := range auctionTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// MinAuctionDuration is the shortest allowed window between start and end.
const MinAuctionDuration = 7 * 24 * time.Hour

// ValidateAuctionWindow checks the duration rule; exactly 7 days passes.
func ValidateAuctionWindow(start, end time.Time) error {
	if end.Sub(start) < MinAuctionDuration {
		return ErrAuctionTooShort
	}
	return nil
}

// Suggested listing prices pre-populate the auction form; they are not
// enforced on submission.
func SuggestedStartingPrice(estimatedValue float64) float64 { return estimatedValue * 0.70 }
func SuggestedReservePrice(estimatedValue float64) float64  { return estimatedValue * 0.85 }

type DisposalAuction struct {
	ID                string        `json:"id" gorm:"primaryKey;size:191"`
	DisposalID        string        `json:"disposal_id" gorm:"not null;size:191;index"`
	AuctionType       AuctionType   `json:"auction_type" gorm:"not null;size:20"`
	StartingPrice     float64       `json:"starting_price" gorm:"not null"`
	ReservePrice      *float64      `json:"reserve_price"`
	BidIncrement      float64       `json:"bid_increment" gorm:"not null"`
	StartDate         time.Time     `json:"start_date" gorm:"not null"`
	EndDate           time.Time     `json:"end_date" gorm:"not null"`
	AuctionStatus     AuctionStatus `json:"auction_status" gorm:"not null;size:20;index"`
	CurrentHighestBid float64       `json:"current_highest_bid"`
	TotalBids         int           `json:"total_bids"`
	WinnerID          string        `json:"winner_id" gorm:"size:255"`
	WinningBid        *float64      `json:"winning_bid"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`

	Request DisposalRequest `json:"request,omitempty" gorm:"foreignKey:DisposalID"`
	Bids    []Bid           `json:"bids,omitempty" gorm:"foreignKey:AuctionID"`
}

// MinimumBid computes the smallest acceptable next bid for the auction.
// currentHighest is 0 when no valid bids exist yet.
func MinimumBid(startingPrice, currentHighest, increment float64) float64 {
	min := currentHighest + increment
	if startingPrice > min {
		return startingPrice
	}
	return min
}

// CanBid reports whether the auction currently accepts bids.
func (a *DisposalAuction) CanBid() bool {
	return a.AuctionStatus == AuctionActive
}

type Bid struct {
	ID          string    `json:"id" gorm:"primaryKey;size:191"`
	AuctionID   string    `json:"auction_id" gorm:"not null;size:191;index"`
	BidderName  string    `json:"bidder_name" gorm:"not null;size:255"`
	BidderEmail string    `json:"bidder_email" gorm:"not null;size:255"`
	BidderPhone string    `json:"bidder_phone" gorm:"not null;size:50"`
	BidAmount   float64   `json:"bid_amount" gorm:"not null"`
	BidDate     time.Time `json:"bid_date" gorm:"not null"`
	IsValid     bool      `json:"is_valid" gorm:"not null;default:true"`
	CreatedAt   time.Time `json:"created_at"`
}

// WinningBid picks the highest valid bid; on an exact tie the bid submitted
// first wins. Returns nil when no valid bids exist.
func WinningBid(bids []Bid) *Bid {
	var winner *Bid
	for i := range bids {
		b := &bids[i]
		if !b.IsValid {
			continue
		}
		if winner == nil || b.BidAmount > winner.BidAmount {
			winner = b
		}
	}
	return winner
}
