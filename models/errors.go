package models

import (
	"errors"
	"fmt"
)

// Domain errors shared across controllers and services. Controllers map these
// onto HTTP status codes in one place instead of inventing ad-hoc strings.
var (
	// Not-found errors
	ErrVehicleNotFound         = errors.New("vehicle not found")
	ErrDriverNotFound          = errors.New("driver not found")
	ErrDisposalRequestNotFound = errors.New("disposal request not found")
	ErrAuctionNotFound         = errors.New("auction not found")
	ErrIncidentNotFound        = errors.New("incident not found")

	// Invalid-argument errors
	ErrNegativeMileage        = errors.New("current mileage must not be negative")
	ErrNegativeEstimatedValue = errors.New("estimated value must not be negative")
	ErrInvalidStartingPrice   = errors.New("starting price must be greater than 0")
	ErrAuctionTooShort        = errors.New("auction duration must be at least 7 days")
	ErrReserveBelowStarting   = errors.New("reserve price must be greater than or equal to starting price")
	ErrMissingBidderDetails   = errors.New("bidder name, email and phone are required")

	// Invalid-state errors
	ErrRequestNotPending  = errors.New("disposal request is not pending approval")
	ErrRequestNotApproved = errors.New("disposal request is not approved")
	ErrAuctionAlreadyOpen = errors.New("disposal request already has an open auction")
	ErrAuctionNotActive   = errors.New("auction is not accepting bids")
	ErrAuctionFinished    = errors.New("auction is already closed or cancelled")
	ErrNoBidsPlaced       = errors.New("cannot close auction with no bids")
	ErrReserveNotMet      = errors.New("reserve price not met")
	ErrInvalidTransition  = errors.New("invalid status transition")

	// Conflict errors
	ErrBidConflict = errors.New("a competing bid was accepted first, please retry")
)

// BidTooLowError carries the computed minimum so the rejection message can
// tell the bidder exactly what to offer next.
type BidTooLowError struct {
	Minimum float64
}

func (e *BidTooLowError) Error() string {
	return fmt.Sprintf("minimum bid amount is %.2f", e.Minimum)
}
