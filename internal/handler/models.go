package handler

import (
	"time"

	"github.com/blues/das/internal/model"
	"github.com/shopspring/decimal"
)

// 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// 分页信息结构
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"pageSize"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"totalPage"`
}

// 请求模型

// CreateAuctionRequest 创建拍卖请求
type CreateAuctionRequest struct {
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description"`
	ImageURL        string `json:"imageUrl"`
	Auctioneer      string `json:"auctioneer" binding:"required"`
	AssetKind       string `json:"assetKind" binding:"required"`
	AssetAddress    string `json:"assetAddress" binding:"required"`
	TokenIdOrAmount string `json:"tokenIdOrAmount" binding:"required"`
	SettlementToken string `json:"settlementToken" binding:"required"`
	StartingPrice   string `json:"startingPrice" binding:"required"`
	ReservedPrice   string `json:"reservedPrice"`
	DecayRate       int64  `json:"decayRate" binding:"required"`
	DurationSeconds int64  `json:"durationSeconds" binding:"required"`
}

// CallerRequest 携带调用方地址的请求（claim / withdraw）
type CallerRequest struct {
	Caller string `json:"caller" binding:"required"`
}

// 响应模型

// AuctionResponse 拍卖响应模型
type AuctionResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	ImageURL        string    `json:"imageUrl"`
	Auctioneer      string    `json:"auctioneer"`
	AssetKind       string    `json:"assetKind"`
	AssetAddress    string    `json:"assetAddress"`
	TokenIdOrAmount string    `json:"tokenIdOrAmount"`
	SettlementToken string    `json:"settlementToken"`
	StartingPrice   string    `json:"startingPrice"`
	ReservedPrice   string    `json:"reservedPrice"`
	DecayRate       int64     `json:"decayRate"`
	StartTime       time.Time `json:"startTime"`
	Deadline        time.Time `json:"deadline"`
	Winner          string    `json:"winner"`
	EscrowedFunds   string    `json:"escrowedFunds"`
	Settled         bool      `json:"settled"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// GetAuctionsResponse 获取拍卖列表响应
type GetAuctionsResponse struct {
	Auctions   []AuctionResponse `json:"auctions"`
	Pagination Pagination        `json:"pagination"`
}

// PriceResponse 当前价格响应，wei 原值加易读展示值
type PriceResponse struct {
	AuctionID    int64  `json:"auctionId"`
	Price        string `json:"price"`
	PriceDisplay string `json:"priceDisplay"`
}

// ClaimResponse 成交响应
type ClaimResponse struct {
	AuctionID       int64  `json:"auctionId"`
	Receiver        string `json:"receiver"`
	AssetAddress    string `json:"assetAddress"`
	TokenIdOrAmount string `json:"tokenIdOrAmount"`
	Price           string `json:"price"`
}

// WithdrawResponse 提取资金响应
type WithdrawResponse struct {
	AuctionID int64  `json:"auctionId"`
	Amount    string `json:"amount"`
}

// 转换函数

// ToAuctionResponse 将数据库模型转换为响应模型
func ToAuctionResponse(auction *model.AuctionModel) AuctionResponse {
	return AuctionResponse{
		ID:              auction.Id,
		Name:            auction.Name,
		Description:     auction.Description,
		ImageURL:        auction.ImageURL,
		Auctioneer:      auction.AuctioneerAddress,
		AssetKind:       string(auction.AssetKind),
		AssetAddress:    auction.AssetAddress,
		TokenIdOrAmount: auction.TokenIdOrAmount.String(),
		SettlementToken: auction.SettlementToken,
		StartingPrice:   auction.StartingPrice.String(),
		ReservedPrice:   auction.ReservedPrice.String(),
		DecayRate:       auction.DecayRate,
		StartTime:       auction.StartTime,
		Deadline:        auction.Deadline,
		Winner:          auction.WinnerAddress,
		EscrowedFunds:   auction.EscrowedFunds.String(),
		Settled:         auction.Settled,
		Status:          string(auction.Status),
		CreatedAt:       auction.CreatedAt,
		UpdatedAt:       auction.UpdatedAt,
	}
}

// displayAmount wei 转为 18 位小数的展示值
func displayAmount(wei string) string {
	d, err := decimal.NewFromString(wei)
	if err != nil {
		return wei
	}
	return d.Shift(-18).String()
}
