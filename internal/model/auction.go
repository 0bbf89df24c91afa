package model

import (
	"time"
)

// AuctionModel 荷兰式拍卖模型
type AuctionModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 基本信息
	Name        string `json:"name" gorm:"not null" binding:"required"`
	Description string `json:"description" gorm:"type:text"`
	ImageURL    string `json:"image_url"`

	// 拍卖人信息
	AuctioneerAddress string `json:"auctioneer_address" gorm:"not null;index"`

	// 拍品信息
	AssetKind       AssetKind `json:"asset_kind" gorm:"not null"`
	AssetAddress    string    `json:"asset_address" gorm:"not null"`
	TokenIdOrAmount BigInt    `json:"token_id_or_amount" gorm:"not null"`

	// 价格信息（wei，18位定点）
	SettlementToken string `json:"settlement_token" gorm:"not null"`
	StartingPrice   BigInt `json:"starting_price" gorm:"not null"`
	ReservedPrice   BigInt `json:"reserved_price" gorm:"not null"`
	DecayRate       int64  `json:"decay_rate" gorm:"not null"` // 1e5 = 1.0

	// 时间信息
	StartTime time.Time `json:"start_time" gorm:"not null"`
	Deadline  time.Time `json:"deadline" gorm:"not null"`

	// 结算信息
	WinnerAddress string `json:"winner_address"`
	EscrowedFunds BigInt `json:"escrowed_funds"`
	Settled       bool   `json:"settled" gorm:"default:false"`

	// 状态
	Status AuctionStatus `json:"status" gorm:"default:'active';index"`
}

// TableName 自定义表名
func (AuctionModel) TableName() string {
	return "auction"
}

// AssetKind 拍品类型
type AssetKind string

const (
	AssetKindNFT      AssetKind = "nft"      // 非同质化资产（按 token id 托管）
	AssetKindFungible AssetKind = "fungible" // 同质化资产（按数量托管）
)

// AuctionStatus 拍卖状态（仅用于展示和筛选，结算判定只看 Settled 和 Deadline）
type AuctionStatus string

const (
	AuctionStatusActive  AuctionStatus = "active"  // 进行中
	AuctionStatusExpired AuctionStatus = "expired" // 已过期（拍卖人仍可收回拍品）
	AuctionStatusSettled AuctionStatus = "settled" // 已成交
)
