package task

import (
	"time"

	"github.com/blues/das/internal/config"
	"github.com/blues/das/internal/logger"
	"github.com/blues/das/internal/logic"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// EventPublishJob 事件通知任务：分批取出未处理的拍卖事件，
// 输出通知并标记为已处理
type EventPublishJob struct {
	db         *gorm.DB
	config     *config.Config
	eventLogic *logic.EventLogic
}

// NewEventPublishJob 创建事件通知任务
func NewEventPublishJob(db *gorm.DB, cfg *config.Config) *EventPublishJob {
	return &EventPublishJob{
		db:         db,
		config:     cfg,
		eventLogic: logic.NewEventLogic(db),
	}
}

// GetName 获取任务名称
func (j *EventPublishJob) GetName() string {
	return "event_publisher"
}

// GetSchedule 获取调度配置
func (j *EventPublishJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *EventPublishJob) Execute() {
	events, err := j.eventLogic.GetUnprocessedEvents(100)
	if err != nil {
		logger.Error("Failed to fetch unprocessed events: %v", err)
		return
	}

	publishedCount := 0

	for _, event := range events {
		logger.Info("Auction event: type=%s auction=%d data=%s",
			event.EventType, event.AuctionId, event.Data)

		if err := j.eventLogic.UpdateEventProcessed(event.Id, true); err != nil {
			logger.Error("Failed to mark event %d as processed: %v", event.Id, err)
			continue
		}
		publishedCount++
	}

	if publishedCount > 0 {
		logger.Info("Event publish task completed. Published %d events", publishedCount)
	}
}
