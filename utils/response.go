package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dediosardie/dns-maynilad-vmms/models"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	Total      int64       `json:"total"`
	TotalPages int         `json:"total_pages"`
}

func SendError(c *gin.Context, status int, err string) {
	c.JSON(status, ErrorResponse{
		Error: err,
		Code:  status,
	})
}

func SendValidationError(c *gin.Context, err string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "Validation failed",
		Message: err,
		Code:    http.StatusBadRequest,
	})
}

func SendSuccess(c *gin.Context, message string, data interface{}) {
	response := SuccessResponse{
		Message: message,
	}
	if data != nil {
		response.Data = data
	}
	c.JSON(http.StatusOK, response)
}

func SendCreated(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, SuccessResponse{
		Message: message,
		Data:    data,
	})
}

func SendPaginated(c *gin.Context, data interface{}, page, limit int, total int64) {
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	c.JSON(http.StatusOK, PaginatedResponse{
		Data:       data,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	})
}

// SendDomainError translates a domain error into the matching HTTP status.
// Unrecognized errors are reported as internal failures; the message is
// passed through verbatim so the first failing check reaches the user.
func SendDomainError(c *gin.Context, err error) {
	var bidTooLow *models.BidTooLowError
	if errors.As(err, &bidTooLow) {
		SendError(c, http.StatusBadRequest, bidTooLow.Error())
		return
	}

	switch {
	case errors.Is(err, models.ErrVehicleNotFound),
		errors.Is(err, models.ErrDriverNotFound),
		errors.Is(err, models.ErrDisposalRequestNotFound),
		errors.Is(err, models.ErrAuctionNotFound),
		errors.Is(err, models.ErrIncidentNotFound):
		SendError(c, http.StatusNotFound, err.Error())

	case errors.Is(err, models.ErrNegativeMileage),
		errors.Is(err, models.ErrNegativeEstimatedValue),
		errors.Is(err, models.ErrInvalidStartingPrice),
		errors.Is(err, models.ErrAuctionTooShort),
		errors.Is(err, models.ErrReserveBelowStarting),
		errors.Is(err, models.ErrMissingBidderDetails):
		SendError(c, http.StatusBadRequest, err.Error())

	case errors.Is(err, models.ErrRequestNotPending),
		errors.Is(err, models.ErrRequestNotApproved),
		errors.Is(err, models.ErrAuctionAlreadyOpen),
		errors.Is(err, models.ErrAuctionNotActive),
		errors.Is(err, models.ErrAuctionFinished),
		errors.Is(err, models.ErrNoBidsPlaced),
		errors.Is(err, models.ErrReserveNotMet),
		errors.Is(err, models.ErrInvalidTransition),
		errors.Is(err, models.ErrBidConflict):
		SendError(c, http.StatusConflict, err.Error())

	default:
		SendError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
