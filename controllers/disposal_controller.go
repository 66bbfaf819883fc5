package controllers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dediosardie/dns-maynilad-vmms/models"
	"github.com/dediosardie/dns-maynilad-vmms/services"
	"github.com/dediosardie/dns-maynilad-vmms/utils"
)

type DisposalController struct {
	disposals     *services.DisposalService
	notifications *services.NotificationService
}

func NewDisposalController(disposals *services.DisposalService, notifications *services.NotificationService) *DisposalController {
	return &DisposalController{disposals: disposals, notifications: notifications}
}

type DisposalRequestRequest struct {
	VehicleID         string                 `json:"vehicle_id" binding:"required"`
	DisposalReason    models.DisposalReason  `json:"disposal_reason" binding:"required,oneof=end_of_life excessive_maintenance accident_damage upgrade policy_change"`
	RecommendedMethod models.DisposalMethod  `json:"recommended_method" binding:"required,oneof=auction best_offer trade_in scrap donation"`
	ConditionRating   models.ConditionRating `json:"condition_rating" binding:"required,oneof=excellent good fair poor salvage"`
	CurrentMileage    int                    `json:"current_mileage"`
	EstimatedValue    float64                `json:"estimated_value"`
	RequestDate       time.Time              `json:"request_date"`
}

func (dc *DisposalController) GetRequests(c *gin.Context) {
	requests, err := dc.disposals.ListRequests(c.Request.Context())
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch disposal requests")
		return
	}
	c.JSON(http.StatusOK, requests)
}

// GetRequest returns a single disposal request together with the price
// suggestions used to pre-fill the auction form.
func (dc *DisposalController) GetRequest(c *gin.Context) {
	request, err := dc.disposals.GetRequest(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.SendDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"request":                  request,
		"suggested_starting_price": models.SuggestedStartingPrice(request.EstimatedValue),
		"suggested_reserve_price":  models.SuggestedReservePrice(request.EstimatedValue),
	})
}

func (dc *DisposalController) CreateRequest(c *gin.Context) {
	var req DisposalRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	request, err := dc.disposals.SubmitRequest(c.Request.Context(), services.SubmitDisposalRequestInput{
		VehicleID:         req.VehicleID,
		RequestedBy:       c.GetString("user_id"),
		DisposalReason:    req.DisposalReason,
		RecommendedMethod: req.RecommendedMethod,
		ConditionRating:   req.ConditionRating,
		CurrentMileage:    req.CurrentMileage,
		EstimatedValue:    req.EstimatedValue,
		RequestDate:       req.RequestDate,
	})
	if err != nil {
		utils.SendDomainError(c, err)
		return
	}

	if request.ApprovalStatus == models.ApprovalPending {
		if err := dc.notifications.NotifyRole(
			models.NotificationApprovalRequired,
			"Disposal approval required",
			fmt.Sprintf("Disposal request %s (estimated value %.2f) needs approval", request.DisposalNumber, request.EstimatedValue),
			request.ID,
			models.RoleAdmin, models.RoleFleetManager,
		); err != nil {
			log.Printf("Warning: failed to notify approvers for %s: %v", request.DisposalNumber, err)
		}
	}

	utils.SendCreated(c, "Disposal request submitted", request)
}

func (dc *DisposalController) ApproveRequest(c *gin.Context) {
	request, err := dc.disposals.ApproveRequest(c.Request.Context(), c.Param("id"), c.GetString("user_id"))
	if err != nil {
		utils.SendDomainError(c, err)
		return
	}
	utils.SendSuccess(c, "Disposal request approved", request)
}

func (dc *DisposalController) RejectRequest(c *gin.Context) {
	request, err := dc.disposals.RejectRequest(c.Request.Context(), c.Param("id"), c.GetString("user_id"))
	if err != nil {
		utils.SendDomainError(c, err)
		return
	}
	utils.SendSuccess(c, "Disposal request rejected", request)
}

func (dc *DisposalController) MarkTransferred(c *gin.Context) {
	request, err := dc.disposals.MarkTransferred(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.SendDomainError(c, err)
		return
	}
	utils.SendSuccess(c, "Vehicle ownership transferred", request)
}

type AuctionRequest struct {
	AuctionType   models.AuctionType `json:"auction_type" binding:"required,oneof=online sealed_bid public"`
	StartingPrice float64            `json:"starting_price" binding:"required"`
	ReservePrice  *float64           `json:"reserve_price"`
	BidIncrement  float64            `json:"bid_increment"`
	StartDate     time.Time          `json:"start_date" binding:"required"`
	EndDate       time.Time          `json:"end_date" binding:"required"`
}

func (dc *DisposalController) GetAuctions(c *gin.Context) {
	auctions, err := dc.disposals.ListAuctions(c.Request.Context())
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch auctions")
		return
	}
	c.JSON(http.StatusOK, auctions)
}

func (dc *DisposalController) GetAuction(c *gin.Context) {
	auction, err := dc.disposals.GetAuction(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.SendDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, auction)
}

func (dc *DisposalController) CreateAuction(c *gin.Context) {
	var req AuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	auction, err := dc.disposals.CreateAuction(c.Request.Context(), c.Param("id"), services.CreateAuctionInput{
		AuctionType:   req.AuctionType,
		StartingPrice: req.StartingPrice,
		ReservePrice:  req.ReservePrice,
		BidIncrement:  req.BidIncrement,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
	})
	if err != nil {
		utils.SendDomainError(c, err)
		return
	}
	utils.SendCreated(c, "Auction created", auction)
}

func (dc *DisposalController) ActivateAuction(c *gin.Context) {
	auction, err := dc.disposals.ActivateAuction(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.SendDomainError(c, err)
		return
	}
	utils.SendSuccess(c, "Auction activated", auction)
}

func (dc *DisposalController) CloseAuction(c *gin.Context) {
	auction, err := dc.disposals.CloseAuction(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.SendDomainError(c, err)
		return
	}

	if auction.WinningBid != nil {
		if err := dc.notifications.NotifyRole(
			models.NotificationAuctionClosed,
			"Auction closed",
			fmt.Sprintf("Auction closed with winning bid %.2f from %s", *auction.WinningBid, auction.WinnerID),
			auction.ID,
			models.RoleAdmin, models.RoleFleetManager,
		); err != nil {
			log.Printf("Warning: failed to send auction close notification: %v", err)
		}
	}

	utils.SendSuccess(c, "Auction closed", auction)
}

func (dc *DisposalController) CancelAuction(c *gin.Context) {
	auction, err := dc.disposals.CancelAuction(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.SendDomainError(c, err)
		return
	}
	utils.SendSuccess(c, "Auction cancelled", auction)
}

// RecountAuction rebuilds the auction's cached bid counters from the bid log.
func (dc *DisposalController) RecountAuction(c *gin.Context) {
	auction, err := dc.disposals.RecomputeAuctionCounters(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.SendDomainError(c, err)
		return
	}
	utils.SendSuccess(c, "Auction counters recomputed", auction)
}

type BidRequest struct {
	BidderName  string  `json:"bidder_name" binding:"required"`
	BidderEmail string  `json:"bidder_email" binding:"required,email"`
	BidderPhone string  `json:"bidder_phone" binding:"required"`
	BidAmount   float64 `json:"bid_amount" binding:"required"`
}

func (dc *DisposalController) GetBids(c *gin.Context) {
	bids, err := dc.disposals.ListBids(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.SendDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, bids)
}

func (dc *DisposalController) PlaceBid(c *gin.Context) {
	var req BidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	bid, err := dc.disposals.PlaceBid(c.Request.Context(), c.Param("id"), services.PlaceBidInput{
		BidderName:  req.BidderName,
		BidderEmail: req.BidderEmail,
		BidderPhone: req.BidderPhone,
		BidAmount:   req.BidAmount,
	})
	if err != nil {
		utils.SendDomainError(c, err)
		return
	}
	utils.SendCreated(c, "Bid placed", bid)
}

func (dc *DisposalController) GetStatistics(c *gin.Context) {
	stats, err := dc.disposals.Stats(c.Request.Context())
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to compute disposal statistics")
		return
	}
	c.JSON(http.StatusOK, stats)
}
