package logic

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/blues/rfs/internal/chain"
	"github.com/blues/rfs/internal/model"
	"github.com/ethereum/go-ethereum/common"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EventLogic 事件业务逻辑
type EventLogic struct {
	db    *gorm.DB
	codec *chain.EventCodec
}

// NewEventLogic 创建事件业务逻辑
func NewEventLogic(db *gorm.DB, codec *chain.EventCodec) *EventLogic {
	return &EventLogic{db: db, codec: codec}
}

// Emit 在调用方事务中追加事件，事务回滚时事件一并丢弃
func (e *EventLogic) Emit(tx *gorm.DB, event model.DomainEvent, now time.Time) error {
	args, err := eventArgs(event)
	if err != nil {
		return err
	}

	topic, raw, err := e.codec.Encode(event.EventName(), args...)
	if err != nil {
		return err
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", event.EventName(), err)
	}

	record := model.EventModel{
		CreatedAt: now,
		ProjectId: event.EventProjectId(),
		EventType: event.EventName(),
		Topic:     topic.Hex(),
		RawData:   raw,
		Data:      datatypes.JSON(data),
	}
	if err := tx.Create(&record).Error; err != nil {
		return fmt.Errorf("创建事件记录失败: %w", err)
	}
	return nil
}

// GetEvents 获取事件列表
func (e *EventLogic) GetEvents(projectId uint64, eventType string, page, pageSize int) ([]model.EventModel, int64, error) {
	var events []model.EventModel
	var total int64

	query := e.db.Model(&model.EventModel{})
	if projectId > 0 {
		query = query.Where("project_id = ?", projectId)
	}
	if eventType != "" {
		query = query.Where("event_type = ?", eventType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("获取事件总数失败: %w", err)
	}

	page, pageSize = normalizePage(page, pageSize)
	if err := query.Offset((page - 1) * pageSize).Limit(pageSize).Order("id ASC").Find(&events).Error; err != nil {
		return nil, 0, fmt.Errorf("获取事件列表失败: %w", err)
	}

	return events, total, nil
}

// GetUnprocessedEvents 按写入顺序获取未处理的事件
func (e *EventLogic) GetUnprocessedEvents(limit int) ([]model.EventModel, error) {
	var events []model.EventModel
	if err := e.db.Where("processed = ?", false).
		Order("id ASC").
		Limit(limit).
		Find(&events).Error; err != nil {
		return nil, fmt.Errorf("获取未处理事件失败: %w", err)
	}

	return events, nil
}

// MarkEventsProcessed 标记事件已处理
func (e *EventLogic) MarkEventsProcessed(ids []int64, now time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	if err := e.db.Model(&model.EventModel{}).Where("id IN ?", ids).Updates(map[string]interface{}{
		"processed":    true,
		"processed_at": now,
	}).Error; err != nil {
		return fmt.Errorf("更新事件处理状态失败: %w", err)
	}
	return nil
}

// eventArgs 按ABI参数顺序展开事件字段
func eventArgs(event model.DomainEvent) ([]interface{}, error) {
	switch e := event.(type) {
	case model.ProjectCreatedEvent:
		return []interface{}{e.ProjectId, common.HexToAddress(e.Creator), e.FundingGoal, e.Title}, nil
	case model.ProjectContributionEvent:
		return []interface{}{e.ProjectId, common.HexToAddress(e.Contributor), e.Amount, e.TotalFunding}, nil
	case model.ProjectFundedEvent:
		return []interface{}{e.ProjectId, e.TotalFunding}, nil
	case model.MilestoneSubmittedEvent:
		hash, err := chain.ParseHash(e.EvidenceHash)
		if err != nil {
			return nil, err
		}
		return []interface{}{e.ProjectId, e.MilestoneIndex, [32]byte(hash)}, nil
	case model.MilestoneCompletedEvent:
		return []interface{}{e.ProjectId, e.MilestoneIndex, e.FundsReleased}, nil
	case model.MilestoneRejectedEvent:
		return []interface{}{e.ProjectId, e.MilestoneIndex, common.HexToAddress(e.Validator)}, nil
	case model.ProjectCompletedEvent:
		return []interface{}{e.ProjectId, e.TotalReleased}, nil
	case model.ProjectCancelledEvent:
		return []interface{}{e.ProjectId, e.TotalRefunded}, nil
	case model.ContributionRefundedEvent:
		return []interface{}{e.ProjectId, common.HexToAddress(e.Contributor), e.Amount}, nil
	case model.NFTMintedEvent:
		return []interface{}{e.ProjectId, common.HexToAddress(e.Contributor), e.Amount}, nil
	default:
		return nil, fmt.Errorf("%w: %T", chain.ErrUnknownEvent, event)
	}
}
