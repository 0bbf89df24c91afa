package handler

import (
	"math/big"
	"net/http"
	"strconv"

	"github.com/blues/das/internal/chain"
	"github.com/blues/das/internal/logger"
	"github.com/blues/das/internal/logic"
	"github.com/blues/das/internal/model"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuctionHandler struct {
	auctionLogic    *logic.AuctionLogic
	settlementLogic *logic.SettlementLogic
}

func NewAuctionHandler(db *gorm.DB, transfer chain.TransferService, clock chain.Clock) *AuctionHandler {
	return &AuctionHandler{
		auctionLogic:    logic.NewAuctionLogic(db, transfer, clock),
		settlementLogic: logic.NewSettlementLogic(db, transfer, clock),
	}
}

// CreateAuction 创建拍卖
func (h *AuctionHandler) CreateAuction(c *gin.Context) {
	var req CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	params, err := toCreateParams(&req)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	// 调用logic层创建拍卖
	auction, err := h.auctionLogic.CreateAuction(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to create auction: %v", err)
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "拍卖创建成功", ToAuctionResponse(auction))
}

// GetAuctions 获取拍卖列表
func (h *AuctionHandler) GetAuctions(c *gin.Context) {
	// 获取查询参数
	status := c.Query("status")
	auctioneer := c.Query("auctioneer")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	// 调用logic层获取拍卖列表
	auctions, total, err := h.auctionLogic.GetAuctions(status, auctioneer, page, pageSize)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	responses := make([]AuctionResponse, 0, len(auctions))
	for i := range auctions {
		responses = append(responses, ToAuctionResponse(&auctions[i]))
	}

	totalPage := (total + int64(pageSize) - 1) / int64(pageSize)
	SuccessResponse(c, http.StatusOK, "", GetAuctionsResponse{
		Auctions: responses,
		Pagination: Pagination{
			Page:      page,
			PageSize:  pageSize,
			Total:     total,
			TotalPage: totalPage,
		},
	})
}

// GetAuction 获取单个拍卖详情
func (h *AuctionHandler) GetAuction(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的拍卖ID")
		return
	}

	// 调用logic层获取拍卖详情
	auction, err := h.auctionLogic.GetAuction(id)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", ToAuctionResponse(auction))
}

// GetCurrentPrice 获取拍卖当前价格
func (h *AuctionHandler) GetCurrentPrice(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的拍卖ID")
		return
	}

	price, err := h.auctionLogic.GetCurrentPrice(id)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", PriceResponse{
		AuctionID:    id,
		Price:        price.String(),
		PriceDisplay: displayAmount(price.String()),
	})
}

// ClaimAuction 按当前价格成交并取出拍品
func (h *AuctionHandler) ClaimAuction(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的拍卖ID")
		return
	}

	var req CallerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if !common.IsHexAddress(req.Caller) {
		ErrorResponse(c, http.StatusBadRequest, "无效的调用方地址")
		return
	}

	auction, err := h.settlementLogic.ClaimAndWithdrawAsset(c.Request.Context(), id, common.HexToAddress(req.Caller))
	if err != nil {
		logger.Error("Failed to claim auction %d: %v", id, err)
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "成交成功", ClaimResponse{
		AuctionID:       auction.Id,
		Receiver:        auction.WinnerAddress,
		AssetAddress:    auction.AssetAddress,
		TokenIdOrAmount: auction.TokenIdOrAmount.String(),
		Price:           auction.EscrowedFunds.String(),
	})
}

// WithdrawFunds 拍卖人提取成交款
func (h *AuctionHandler) WithdrawFunds(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的拍卖ID")
		return
	}

	var req CallerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if !common.IsHexAddress(req.Caller) {
		ErrorResponse(c, http.StatusBadRequest, "无效的调用方地址")
		return
	}

	amount, err := h.settlementLogic.WithdrawFunds(c.Request.Context(), id, common.HexToAddress(req.Caller))
	if err != nil {
		logger.Error("Failed to withdraw funds from auction %d: %v", id, err)
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "提取成功", WithdrawResponse{
		AuctionID: id,
		Amount:    amount.String(),
	})
}

// toCreateParams 请求转换为logic层参数
func toCreateParams(req *CreateAuctionRequest) (*logic.CreateAuctionParams, error) {
	for _, addr := range []string{req.Auctioneer, req.AssetAddress, req.SettlementToken} {
		if !common.IsHexAddress(addr) {
			return nil, logic.ErrInvalidParams
		}
	}

	tokenIdOrAmount, ok := new(big.Int).SetString(req.TokenIdOrAmount, 10)
	if !ok {
		return nil, logic.ErrInvalidParams
	}
	startingPrice, ok := new(big.Int).SetString(req.StartingPrice, 10)
	if !ok {
		return nil, logic.ErrInvalidParams
	}
	reservedPrice := new(big.Int)
	if req.ReservedPrice != "" {
		if reservedPrice, ok = new(big.Int).SetString(req.ReservedPrice, 10); !ok {
			return nil, logic.ErrInvalidParams
		}
	}

	return &logic.CreateAuctionParams{
		Name:            req.Name,
		Description:     req.Description,
		ImageURL:        req.ImageURL,
		Auctioneer:      common.HexToAddress(req.Auctioneer),
		AssetKind:       model.AssetKind(req.AssetKind),
		AssetAddress:    common.HexToAddress(req.AssetAddress),
		TokenIdOrAmount: tokenIdOrAmount,
		SettlementToken: common.HexToAddress(req.SettlementToken),
		StartingPrice:   startingPrice,
		ReservedPrice:   reservedPrice,
		DecayRate:       req.DecayRate,
		DurationSeconds: req.DurationSeconds,
	}, nil
}
