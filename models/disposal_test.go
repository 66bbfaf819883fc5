package models

import (
	"errors"
	"testing"
	"time"
)

func TestNeedsApproval(t *testing.T) {
	if NeedsApproval(9999.99) {
		t.Fatalf("expected no approval below threshold")
	}
	if NeedsApproval(10000) {
		t.Fatalf("expected no approval at exactly the threshold")
	}
	if !NeedsApproval(10000.01) {
		t.Fatalf("expected approval just above the threshold")
	}
}

func TestDisposalTransitions(t *testing.T) {
	if !DisposalPendingApproval.CanTransitionTo(DisposalListed) {
		t.Fatalf("expected pending_approval -> listed allowed")
	}
	if !DisposalPendingApproval.CanTransitionTo(DisposalRejected) {
		t.Fatalf("expected pending_approval -> rejected allowed")
	}
	if !DisposalBiddingOpen.CanTransitionTo(DisposalListed) {
		t.Fatalf("expected bidding_open -> listed allowed on cancellation")
	}
	if DisposalPendingApproval.CanTransitionTo(DisposalSold) {
		t.Fatalf("expected pending_approval -> sold not allowed")
	}
	if DisposalTransferred.CanTransitionTo(DisposalListed) {
		t.Fatalf("expected transferred to be terminal")
	}
	if DisposalRejected.CanTransitionTo(DisposalPendingApproval) {
		t.Fatalf("expected rejected to be terminal")
	}
}

func TestAuctionTransitions(t *testing.T) {
	if !AuctionScheduled.CanTransitionTo(AuctionActive) {
		t.Fatalf("expected scheduled -> active allowed")
	}
	if !AuctionActive.CanTransitionTo(AuctionClosed) {
		t.Fatalf("expected active -> closed allowed")
	}
	if AuctionScheduled.CanTransitionTo(AuctionClosed) {
		t.Fatalf("expected scheduled -> closed not allowed")
	}
	if AuctionClosed.CanTransitionTo(AuctionActive) {
		t.Fatalf("expected closed to be terminal")
	}
	if !AuctionClosed.IsTerminal() || !AuctionCancelled.IsTerminal() {
		t.Fatalf("expected closed and cancelled to be terminal")
	}
	if AuctionActive.IsTerminal() {
		t.Fatalf("expected active not terminal")
	}
}

func TestValidateAuctionWindow(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	if err := ValidateAuctionWindow(start, start.Add(7*24*time.Hour)); err != nil {
		t.Fatalf("expected exactly 7 days to pass, got %v", err)
	}
	if err := ValidateAuctionWindow(start, start.Add(10*24*time.Hour)); err != nil {
		t.Fatalf("expected 10 days to pass, got %v", err)
	}

	err := ValidateAuctionWindow(start, start.Add(7*24*time.Hour-time.Minute))
	if !errors.Is(err, ErrAuctionTooShort) {
		t.Fatalf("expected ErrAuctionTooShort just under 7 days, got %v", err)
	}
	if !errors.Is(ValidateAuctionWindow(start, start), ErrAuctionTooShort) {
		t.Fatalf("expected zero-length window rejected")
	}
}

func TestMinimumBid(t *testing.T) {
	// No bids yet: the floor is the starting price.
	if got := MinimumBid(5000, 0, 100); got != 5000 {
		t.Fatalf("expected 5000 with no bids, got %.2f", got)
	}
	// Highest plus increment once that exceeds the starting price.
	if got := MinimumBid(5000, 5200, 100); got != 5300 {
		t.Fatalf("expected 5300, got %.2f", got)
	}
	// Starting price still wins while highest+increment is below it.
	if got := MinimumBid(5000, 100, 50); got != 5000 {
		t.Fatalf("expected 5000, got %.2f", got)
	}
}

func TestSuggestedPrices(t *testing.T) {
	if got := SuggestedStartingPrice(10000); got != 7000 {
		t.Fatalf("expected 7000, got %.2f", got)
	}
	if got := SuggestedReservePrice(10000); got != 8500 {
		t.Fatalf("expected 8500, got %.2f", got)
	}
}

func TestWinningBid(t *testing.T) {
	if WinningBid(nil) != nil {
		t.Fatalf("expected nil winner for no bids")
	}

	bids := []Bid{
		{ID: "a", BidAmount: 5000, IsValid: true},
		{ID: "b", BidAmount: 5500, IsValid: true},
		{ID: "c", BidAmount: 6000, IsValid: false},
	}
	winner := WinningBid(bids)
	if winner == nil || winner.ID != "b" {
		t.Fatalf("expected highest valid bid b to win, got %+v", winner)
	}

	// Exact tie: the bid submitted first wins.
	tied := []Bid{
		{ID: "first", BidAmount: 5500, IsValid: true},
		{ID: "second", BidAmount: 5500, IsValid: true},
	}
	winner = WinningBid(tied)
	if winner == nil || winner.ID != "first" {
		t.Fatalf("expected earliest tied bid to win, got %+v", winner)
	}
}

func TestNewDisposalNumber(t *testing.T) {
	at := time.UnixMilli(1756700000000)
	if got := NewDisposalNumber(at); got != "DISP-1756700000000" {
		t.Fatalf("unexpected disposal number %s", got)
	}
}
