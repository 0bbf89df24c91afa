package logic

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/blues/das/internal/model"
	"gorm.io/gorm"
)

// EventLogic 事件业务逻辑
type EventLogic struct {
	db *gorm.DB
}

// NewEventLogic 创建事件业务逻辑
func NewEventLogic(db *gorm.DB) *EventLogic {
	return &EventLogic{db: db}
}

// recordEvent 在当前事务内写入一条事件记录，payload 序列化为JSON
func recordEvent(tx *gorm.DB, auctionId int64, eventType string, payload map[string]interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("序列化事件数据失败: %w", err)
	}

	event := &model.EventModel{
		AuctionId: auctionId,
		EventType: eventType,
		Data:      string(data),
	}
	if err := tx.Create(event).Error; err != nil {
		return fmt.Errorf("创建事件记录失败: %w", err)
	}

	return nil
}

// GetEvents 获取拍卖的事件列表
func (e *EventLogic) GetEvents(auctionId int64, eventType string, page, pageSize int) ([]model.EventModel, int64, error) {
	var events []model.EventModel
	var total int64

	// 构建查询条件
	query := e.db.Model(&model.EventModel{})
	if auctionId > 0 {
		query = query.Where("auction_id = ?", auctionId)
	}
	if eventType != "" {
		query = query.Where("event_type = ?", eventType)
	}

	// 获取总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("获取事件总数失败: %w", err)
	}

	// 分页查询
	offset := (page - 1) * pageSize
	if err := query.Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&events).Error; err != nil {
		return nil, 0, fmt.Errorf("获取事件列表失败: %w", err)
	}

	return events, total, nil
}

// GetEvent 获取单个事件
func (e *EventLogic) GetEvent(id int64) (*model.EventModel, error) {
	var event model.EventModel
	if err := e.db.First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("事件不存在")
		}
		return nil, fmt.Errorf("获取事件失败: %w", err)
	}

	return &event, nil
}

// GetUnprocessedEvents 获取未处理的事件
func (e *EventLogic) GetUnprocessedEvents(limit int) ([]model.EventModel, error) {
	var events []model.EventModel
	if err := e.db.Where("processed = ?", false).
		Order("created_at ASC").
		Limit(limit).
		Find(&events).Error; err != nil {
		return nil, fmt.Errorf("获取未处理事件失败: %w", err)
	}

	return events, nil
}

// UpdateEventProcessed 更新事件处理状态
func (e *EventLogic) UpdateEventProcessed(id int64, processed bool) error {
	if err := e.db.Model(&model.EventModel{}).Where("id = ?", id).Update("processed", processed).Error; err != nil {
		return fmt.Errorf("更新事件处理状态失败: %w", err)
	}

	return nil
}
