package model

import (
	"time"
)

// EventModel 拍卖事件记录
type EventModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	AuctionId int64  `json:"auction_id" gorm:"not null;index"`
	EventType string `json:"event_type" gorm:"not null"`
	Data      string `json:"data" gorm:"type:text"`
	Processed bool   `json:"processed" gorm:"default:false"`
}

// TableName 自定义表名
func (EventModel) TableName() string {
	return "event"
}

// 事件类型
const (
	EventTypeAuctionCreated = "AuctionCreated" // 拍卖创建
	EventTypeItemWithdrawn  = "ItemWithdrawn"  // 拍品取出
	EventTypeFundsWithdrawn = "FundsWithdrawn" // 资金提取
)
