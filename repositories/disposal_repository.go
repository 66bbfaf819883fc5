package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dediosardie/dns-maynilad-vmms/models"
)

// DisposalRepository is the gorm-backed store for the disposal/auction
// workflow. Multi-record effects (auction creation, closure, bid acceptance)
// run inside a single transaction so both writes land or neither does.
type DisposalRepository struct {
	db *gorm.DB
}

func NewDisposalRepository(db *gorm.DB) *DisposalRepository {
	return &DisposalRepository{db: db}
}

func (r *DisposalRepository) VehicleExists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Vehicle{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to look up vehicle: %w", err)
	}
	return count > 0, nil
}

func (r *DisposalRepository) UpdateVehicleStatus(ctx context.Context, vehicleID string, status models.VehicleStatus) error {
	return r.db.WithContext(ctx).Model(&models.Vehicle{}).
		Where("id = ?", vehicleID).
		Update("status", status).Error
}

func (r *DisposalRepository) CreateRequest(ctx context.Context, req *models.DisposalRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *DisposalRepository) GetRequest(ctx context.Context, id string) (*models.DisposalRequest, error) {
	var req models.DisposalRequest
	if err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrDisposalRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *DisposalRepository) ListRequests(ctx context.Context) ([]models.DisposalRequest, error) {
	var requests []models.DisposalRequest
	err := r.db.WithContext(ctx).Preload("Vehicle").Order("created_at DESC").Find(&requests).Error
	return requests, err
}

func (r *DisposalRepository) SaveRequest(ctx context.Context, req *models.DisposalRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

// HasOpenAuction reports whether the request already has a non-terminal
// auction. The workflow allows at most one.
func (r *DisposalRepository) HasOpenAuction(ctx context.Context, disposalID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.DisposalAuction{}).
		Where("disposal_id = ? AND auction_status IN ?", disposalID,
			[]models.AuctionStatus{models.AuctionScheduled, models.AuctionActive}).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to look up open auctions: %w", err)
	}
	return count > 0, nil
}

// CreateAuction persists the auction and the parent request's status change
// together.
func (r *DisposalRepository) CreateAuction(ctx context.Context, auction *models.DisposalAuction, request *models.DisposalRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(auction).Error; err != nil {
			return err
		}
		return tx.Save(request).Error
	})
}

func (r *DisposalRepository) GetAuction(ctx context.Context, id string) (*models.DisposalAuction, error) {
	var auction models.DisposalAuction
	if err := r.db.WithContext(ctx).First(&auction, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrAuctionNotFound
		}
		return nil, err
	}
	return &auction, nil
}

func (r *DisposalRepository) ListAuctions(ctx context.Context) ([]models.DisposalAuction, error) {
	var auctions []models.DisposalAuction
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&auctions).Error
	return auctions, err
}

func (r *DisposalRepository) SaveAuction(ctx context.Context, auction *models.DisposalAuction) error {
	return r.db.WithContext(ctx).Save(auction).Error
}

// SaveAuctionAndRequest persists an auction state change together with its
// parent request's status change (close and cancel paths).
func (r *DisposalRepository) SaveAuctionAndRequest(ctx context.Context, auction *models.DisposalAuction, request *models.DisposalRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(auction).Error; err != nil {
			return err
		}
		return tx.Save(request).Error
	})
}

// ListBids returns the auction's bid log in submission order, which is also
// the tie-break order on close.
func (r *DisposalRepository) ListBids(ctx context.Context, auctionID string) ([]models.Bid, error) {
	var bids []models.Bid
	err := r.db.WithContext(ctx).
		Where("auction_id = ?", auctionID).
		Order("created_at ASC").
		Find(&bids).Error
	return bids, err
}

// PlaceBid appends the bid and bumps the auction's cached highest bid in one
// transaction. The guarded UPDATE only matches while current_highest_bid
// still equals the value the caller validated against; when a competing bid
// moved it first, the transaction rolls back with ErrBidConflict and the
// caller re-reads and retries.
func (r *DisposalRepository) PlaceBid(ctx context.Context, bid *models.Bid, expectedHighest float64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var auction models.DisposalAuction
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&auction, "id = ?", bid.AuctionID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrAuctionNotFound
			}
			return fmt.Errorf("failed to get auction for bid: %w", err)
		}

		if auction.AuctionStatus != models.AuctionActive {
			return models.ErrAuctionNotActive
		}
		if auction.CurrentHighestBid != expectedHighest {
			return models.ErrBidConflict
		}

		if err := tx.Create(bid).Error; err != nil {
			return fmt.Errorf("failed to insert bid: %w", err)
		}

		result := tx.Model(&models.DisposalAuction{}).
			Where("id = ? AND current_highest_bid = ?", bid.AuctionID, expectedHighest).
			Updates(map[string]interface{}{
				"current_highest_bid": bid.BidAmount,
				"total_bids":          gorm.Expr("total_bids + 1"),
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update auction highest bid: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return models.ErrBidConflict
		}
		return nil
	})
}
