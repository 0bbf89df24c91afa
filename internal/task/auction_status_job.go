package task

import (
	"time"

	"github.com/blues/das/internal/chain"
	"github.com/blues/das/internal/config"
	"github.com/blues/das/internal/logger"
	"github.com/blues/das/internal/model"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// AuctionStatusJob 拍卖状态更新任务：将已过截止时间且未成交的拍卖
// 标记为过期。状态字段仅用于展示和筛选，结算判定不读它。
type AuctionStatusJob struct {
	db     *gorm.DB
	config *config.Config
	clock  chain.Clock
}

// NewAuctionStatusJob 创建拍卖状态更新任务
func NewAuctionStatusJob(db *gorm.DB, cfg *config.Config, clock chain.Clock) *AuctionStatusJob {
	return &AuctionStatusJob{
		db:     db,
		config: cfg,
		clock:  clock,
	}
}

// GetName 获取任务名称
func (j *AuctionStatusJob) GetName() string {
	return "auction_status_updater"
}

// GetSchedule 获取调度配置
func (j *AuctionStatusJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *AuctionStatusJob) Execute() {
	now := j.clock.Now()

	result := j.db.Model(&model.AuctionModel{}).
		Where("status = ? AND settled = ? AND deadline <= ?",
			model.AuctionStatusActive, false, now).
		Update("status", model.AuctionStatusExpired)

	if result.Error != nil {
		logger.Error("Failed to update expired auctions: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		logger.Info("Auction status task completed. Marked %d auctions as expired", result.RowsAffected)
	}
}
